// Package notify pushes sales summaries to the shop owner over Telegram.
// The notifier is optional: with no token configured everything is a
// no-op.
package notify

import (
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"eggmart/internal/report"
)

// ErrDisabled is returned when sending without a configured bot.
var ErrDisabled = errors.New("telegram notifier not configured")

type Notifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger *zap.Logger
}

// New connects the bot. An empty token yields a nil notifier, which is
// safe to call and always reports ErrDisabled.
func New(token string, chatID int64, logger *zap.Logger) (*Notifier, error) {
	if token == "" {
		return nil, nil
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{
		bot:    bot,
		chatID: chatID,
		logger: logger,
	}, nil
}

// SendReport delivers a period summary to the configured chat.
func (n *Notifier) SendReport(r *report.Report) error {
	if n == nil || n.bot == nil {
		return ErrDisabled
	}
	msg := tgbotapi.NewMessage(n.chatID, FormatSummary(r))
	if _, err := n.bot.Send(msg); err != nil {
		n.logger.Error("failed to send report notification", zap.Error(err))
		return fmt.Errorf("send report notification: %w", err)
	}
	n.logger.Info("report notification sent", zap.Int64("chat_id", n.chatID))
	return nil
}

// FormatSummary renders the report as a plain-text message.
func FormatSummary(r *report.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Sales report (%s)\n", r.PeriodType)
	fmt.Fprintf(&b, "%s — %s\n\n", r.Range.Start.Format("02 Jan 2006"), r.Range.End.Format("02 Jan 2006"))
	fmt.Fprintf(&b, "Total sales: ₹%.2f\n", r.Stats.TotalSales)
	fmt.Fprintf(&b, "Transactions: %d\n", r.Stats.TotalTransactions)
	fmt.Fprintf(&b, "Average order: ₹%.2f\n", r.Stats.AverageOrderValue)
	fmt.Fprintf(&b, "Items sold: %d\n", r.Stats.TotalItemsSold)
	if len(r.Stats.PaymentOrder) > 0 {
		b.WriteString("\nPayments:\n")
		for _, method := range r.Stats.PaymentOrder {
			p := r.Stats.PaymentBreakdown[method]
			fmt.Fprintf(&b, "  %s: ₹%.2f (%d txns)\n", method, p.Total, p.Count)
		}
	}
	if pct := r.Comparison.TotalSales.Percent; pct != nil {
		fmt.Fprintf(&b, "\nvs previous period: %+.1f%%\n", *pct)
	}
	return b.String()
}
