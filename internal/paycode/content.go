package paycode

import (
	"regexp"
	"strings"
)

// Marker precedes the verification code in transfer content.
const Marker = "Code:"

var codePattern = regexp.MustCompile(`(?i)Code:\s*([A-Z0-9]{8,})`)

// BuildContent returns the transfer content a payer is asked to use.
func BuildContent(description, code string) string {
	return strings.TrimSpace(description) + " - " + Marker + " " + code
}

// ExtractCode finds the verification code in bank-provided text. Banks may
// prepend their own prefix and append a reference, so the match is not
// anchored. The result is upper-cased.
func ExtractCode(text string) (string, bool) {
	m := codePattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.ToUpper(m[1]), true
}

// ExtractFrom tries each text in order and returns the first code found.
func ExtractFrom(texts ...string) (string, bool) {
	for _, text := range texts {
		if code, ok := ExtractCode(text); ok {
			return code, true
		}
	}
	return "", false
}
