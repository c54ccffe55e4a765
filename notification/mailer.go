package notification

import (
	"context"
	"fmt"
	"time"

	"inovatrust/config"
	"inovatrust/domain/interfaces"

	"github.com/mailgun/mailgun-go/v4"
	log "github.com/sirupsen/logrus"
)

const sendTimeout = 10 * time.Second

// Mailer sends withdrawal receipt emails through Mailgun. When the
// Mailgun credentials are not configured it logs and reports the send
// as skipped instead of failing.
type Mailer struct {
	mg   mailgun.Mailgun
	from string
}

// NewMailer creates a mailer from the application config. A nil-client
// mailer is returned when Mailgun is not configured.
func NewMailer(cfg *config.Config) *Mailer {
	if !cfg.MailConfigured() {
		log.Warn("Mailgun not configured, receipt emails disabled")
		return &Mailer{}
	}
	return &Mailer{
		mg:   mailgun.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey),
		from: cfg.MailgunFrom,
	}
}

// SendWithdrawalReceipt emails the receipt and reports whether it was
// actually sent. Failures are logged, never returned: receipt delivery
// must not fail an approval.
func (m *Mailer) SendWithdrawalReceipt(ctx context.Context, receipt interfaces.WithdrawalReceipt) bool {
	if m.mg == nil {
		log.WithField("invoice", receipt.InvoiceNumber).Info("Skipping receipt email, mailer disabled")
		return false
	}
	if receipt.UserEmail == "" {
		log.WithField("invoice", receipt.InvoiceNumber).Warn("Skipping receipt email, user has no address")
		return false
	}

	subject := fmt.Sprintf("Withdrawal Receipt - %s", receipt.InvoiceNumber)
	body := receiptBody(receipt)

	message := mailgun.NewMessage(m.from, subject, body, receipt.UserEmail)
	message.SetHTML(receiptHTML(receipt))

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	_, _, err := m.mg.Send(ctx, message)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"invoice": receipt.InvoiceNumber,
			"email":   receipt.UserEmail,
		}).Error("Failed to send receipt email")
		return false
	}

	log.WithFields(log.Fields{
		"invoice": receipt.InvoiceNumber,
		"email":   receipt.UserEmail,
	}).Info("Receipt email sent")
	return true
}

func receiptBody(r interfaces.WithdrawalReceipt) string {
	return fmt.Sprintf(
		"Hello %s,\n\n"+
			"Your withdrawal has been approved and processed.\n\n"+
			"Invoice: %s\n"+
			"Amount: $%s\n"+
			"Method: %s\n"+
			"Wallet: %s\n"+
			"Processed: %s\n\n"+
			"Thank you for using InovaTrust.\n",
		r.UserName,
		r.InvoiceNumber,
		r.Amount.StringFixed(2),
		r.Method,
		r.WalletAddress,
		r.ProcessedAt.Format("January 2, 2006 15:04 MST"),
	)
}

func receiptHTML(r interfaces.WithdrawalReceipt) string {
	return fmt.Sprintf(
		`<h2>Withdrawal Receipt</h2>
<p>Hello %s,</p>
<p>Your withdrawal has been approved and processed.</p>
<table>
  <tr><td><strong>Invoice</strong></td><td>%s</td></tr>
  <tr><td><strong>Amount</strong></td><td>$%s</td></tr>
  <tr><td><strong>Method</strong></td><td>%s</td></tr>
  <tr><td><strong>Wallet</strong></td><td>%s</td></tr>
  <tr><td><strong>Processed</strong></td><td>%s</td></tr>
</table>
<p>Thank you for using InovaTrust.</p>`,
		r.UserName,
		r.InvoiceNumber,
		r.Amount.StringFixed(2),
		r.Method,
		r.WalletAddress,
		r.ProcessedAt.Format("January 2, 2006 15:04 MST"),
	)
}
