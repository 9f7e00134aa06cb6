package notify

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender is the part of *tgbotapi.BotAPI the notifier uses.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier posts notifications into a single operator chat.
type TelegramNotifier struct {
	sender Sender
	chatID int64
}

// NewTelegramNotifier creates a notifier that sends through sender.
func NewTelegramNotifier(sender Sender, chatID int64) *TelegramNotifier {
	return &TelegramNotifier{sender: sender, chatID: chatID}
}

// NewFromConfig connects to the Bot API. It returns Nop when the bot token or
// chat id is missing.
func NewFromConfig(token string, chatID int64) (Notifier, error) {
	if token == "" || chatID == 0 {
		return Nop{}, nil
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return Nop{}, fmt.Errorf("telegram: %w", err)
	}
	return NewTelegramNotifier(bot, chatID), nil
}

// PaymentCompleted sends a summary of the completed payment.
func (n *TelegramNotifier) PaymentCompleted(ctx context.Context, event PaymentEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(n.chatID, FormatPayment(event))
	msg.DisableWebPagePreview = true
	if _, err := n.sender.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}

// FormatPayment renders the notification text.
func FormatPayment(event PaymentEvent) string {
	var b strings.Builder
	b.WriteString("Payment received\n")
	fmt.Fprintf(&b, "Code: %s\n", event.VerificationCode)
	fmt.Fprintf(&b, "Amount: %s", event.TransferAmount.StringFixed(0))
	if !event.TransferAmount.Equal(event.Amount) {
		fmt.Fprintf(&b, " (requested %s)", event.Amount.StringFixed(0))
	}
	b.WriteString("\n")
	if event.Description != "" {
		fmt.Fprintf(&b, "Note: %s\n", event.Description)
	}
	if event.Gateway != "" {
		fmt.Fprintf(&b, "Bank: %s\n", event.Gateway)
	}
	fmt.Fprintf(&b, "Bank txn: %s\n", event.ExternalID)
	fmt.Fprintf(&b, "Entry: %s", event.EntryID)
	return b.String()
}
