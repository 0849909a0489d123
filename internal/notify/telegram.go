package notify

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/digkill/cinexa/internal/service"
)

// Sender is the subset of *tgbotapi.BotAPI used here.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram posts checkout events to an admin chat so the transfer can be
// reconciled by hand.
type Telegram struct {
	api    Sender
	chatID int64
}

func NewTelegram(api Sender, chatID int64) *Telegram {
	return &Telegram{api: api, chatID: chatID}
}

func (t *Telegram) NotifyCheckout(ctx context.Context, event service.CheckoutEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(t.chatID, FormatCheckout(event))
	msg.DisableWebPagePreview = true
	if _, err := t.api.Send(msg); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	return nil
}

func FormatCheckout(event service.CheckoutEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New checkout: %s ($%d/month, +%d credits)\n", event.Plan.Name, event.Plan.Price, event.Plan.Credits)
	fmt.Fprintf(&b, "Customer: %s <%s> (%s)\n", event.Account.DisplayName, event.Account.Email, event.Account.ID)
	fmt.Fprintf(&b, "Method: %s %s\n", event.Method.Icon, event.Method.Name)
	if event.Method.BankName != "" {
		fmt.Fprintf(&b, "Bank: %s\n", event.Method.BankName)
	}
	if event.Method.AccountNumber != "" {
		fmt.Fprintf(&b, "Account: %s\n", event.Method.AccountNumber)
	}
	if event.Method.Beneficiary != "" {
		fmt.Fprintf(&b, "Beneficiary: %s\n", event.Method.Beneficiary)
	}
	fmt.Fprintf(&b, "At: %s", event.At.UTC().Format("2006-01-02 15:04:05 UTC"))
	return b.String()
}
