// Package qrrender turns a payment request into something a banking app can
// scan: a NAPAS VietQR (EMVCo) payload, its PNG rendering and a hosted image
// URL.
package qrrender

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// EMVCo tags used by VietQR.
const (
	tagPayloadFormat   = "00"
	tagInitiation      = "01"
	tagMerchantAccount = "38"
	tagCurrency        = "53"
	tagAmount          = "54"
	tagCountry         = "58"
	tagAdditionalData  = "62"
	tagCRC             = "63"

	napasGUID         = "A000000727"
	serviceToAccount  = "QRIBFTTA"
	currencyVND       = "704"
	countryVN         = "VN"
	initiationDynamic = "12"
	subTagPurpose     = "08"
)

// MaxPurposeLength bounds the transfer content carried in the QR. Banks
// truncate longer content, so the tail (which carries the code) is kept.
const MaxPurposeLength = 50

// BankAccount is the receiving account rendered into every QR.
type BankAccount struct {
	BIN           string
	BankCode      string
	AccountNumber string
	AccountName   string
}

// Configured reports whether the account has what a VietQR payload needs.
func (a BankAccount) Configured() bool {
	return a.BIN != "" && a.AccountNumber != ""
}

// Payload builds the EMVCo string for a transfer of amount to the account
// with the given content.
func Payload(account BankAccount, amount decimal.Decimal, content string) string {
	beneficiary := tlv("00", account.BIN) + tlv("01", account.AccountNumber)
	merchant := tlv("00", napasGUID) + tlv("01", beneficiary) + tlv("02", serviceToAccount)

	var b strings.Builder
	b.WriteString(tlv(tagPayloadFormat, "01"))
	b.WriteString(tlv(tagInitiation, initiationDynamic))
	b.WriteString(tlv(tagMerchantAccount, merchant))
	b.WriteString(tlv(tagCurrency, currencyVND))
	if amount.IsPositive() {
		b.WriteString(tlv(tagAmount, amount.Round(0).String()))
	}
	b.WriteString(tlv(tagCountry, countryVN))
	if purpose := FitPurpose(content); purpose != "" {
		b.WriteString(tlv(tagAdditionalData, tlv(subTagPurpose, purpose)))
	}
	b.WriteString(tagCRC + "04")
	b.WriteString(fmt.Sprintf("%04X", crc16CCITT([]byte(b.String()))))
	return b.String()
}

// FitPurpose trims content to MaxPurposeLength characters, keeping the end.
func FitPurpose(content string) string {
	content = strings.TrimSpace(content)
	runes := []rune(content)
	if len(runes) <= MaxPurposeLength {
		return content
	}
	return strings.TrimSpace(string(runes[len(runes)-MaxPurposeLength:]))
}

func tlv(tag, value string) string {
	return fmt.Sprintf("%s%02d%s", tag, len(value), value)
}

// crc16CCITT is CRC-16/CCITT-FALSE (poly 0x1021, init 0xFFFF) as EMVCo requires.
func crc16CCITT(data []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
