package qrrender

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"net/url"

	"github.com/shopspring/decimal"
	"github.com/skip2/go-qrcode"
)

const (
	imageSize      = 256
	vietQRImageURL = "https://img.vietqr.io/image/"
)

// Result is a rendered payment QR.
type Result struct {
	Payload string `json:"qr_payload"`
	Image   string `json:"qr_image"`
	URL     string `json:"qr_url"`
}

// Renderer renders payment QRs for one receiving account.
type Renderer struct {
	account BankAccount
}

// NewRenderer creates a Renderer. A renderer for an unconfigured account
// renders nothing.
func NewRenderer(account BankAccount) *Renderer {
	return &Renderer{account: account}
}

// Enabled reports whether Render produces output.
func (r *Renderer) Enabled() bool {
	return r != nil && r.account.Configured()
}

// Render builds the QR for a transfer. It returns nil when no account is configured.
func (r *Renderer) Render(amount decimal.Decimal, content string) (*Result, error) {
	if !r.Enabled() {
		return nil, nil
	}

	payload := Payload(r.account, amount, content)
	qr, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, qr.Image(imageSize)); err != nil {
		return nil, err
	}

	return &Result{
		Payload: payload,
		Image:   base64.StdEncoding.EncodeToString(buf.Bytes()),
		URL:     r.imageURL(amount, content),
	}, nil
}

func (r *Renderer) imageURL(amount decimal.Decimal, content string) string {
	bank := r.account.BankCode
	if bank == "" {
		bank = r.account.BIN
	}
	q := url.Values{}
	q.Set("amount", amount.Round(0).String())
	q.Set("addInfo", FitPurpose(content))
	if r.account.AccountName != "" {
		q.Set("accountName", r.account.AccountName)
	}
	return vietQRImageURL + url.PathEscape(bank) + "-" + url.PathEscape(r.account.AccountNumber) + "-compact2.png?" + q.Encode()
}
