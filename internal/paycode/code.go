// Package paycode generates the verification codes embedded in bank transfer
// content and recovers them from what the bank sends back.
package paycode

import (
	"crypto/rand"
	"math/big"
)

const (
	// Alphabet is the code alphabet. Banks upper-case transfer content, so
	// lower-case letters would not survive the round trip.
	Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// Length is the number of characters in a generated code.
	Length = 8
)

var alphabetSize = big.NewInt(int64(len(Alphabet)))

// Generator produces verification codes.
type Generator func() (string, error)

// Generate returns a new random code of Length characters.
func Generate() (string, error) {
	buf := make([]byte, Length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", err
		}
		buf[i] = Alphabet[n.Int64()]
	}
	return string(buf), nil
}
