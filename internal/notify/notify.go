// Package notify delivers shortlist notifications to candidates over the
// Brevo transactional email API. Delivery is asynchronous and best-effort;
// a failed or dropped notification never affects the stored application.
package notify

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"recruitapi/internal/config"
)

const brevoEndpoint = "https://api.brevo.com/v3/smtp/email"

// Notification carries everything needed to congratulate a shortlisted
// candidate.
type Notification struct {
	CandidateName  string
	CandidateEmail string
	JobTitle       string
	MatchScore     float64
}

// Notifier sends a single shortlist notification.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// BrevoNotifier sends transactional email through Brevo.
type BrevoNotifier struct {
	client   *resty.Client
	cfg      config.EmailConfig
	log      *zap.Logger
	endpoint string
}

// NewBrevo builds a BrevoNotifier from the email configuration.
func NewBrevo(cfg config.EmailConfig, log *zap.Logger) *BrevoNotifier {
	return &BrevoNotifier{
		client:   resty.New(),
		cfg:      cfg,
		log:      log,
		endpoint: brevoEndpoint,
	}
}

var _ Notifier = (*BrevoNotifier)(nil)

func (b *BrevoNotifier) Notify(ctx context.Context, n Notification) error {
	if b.cfg.APIKey == "" {
		return fmt.Errorf("brevo api key is not set")
	}

	body := map[string]any{
		"sender": map[string]string{
			"name":  b.cfg.SenderName,
			"email": b.cfg.SenderEmail,
		},
		"to": []map[string]string{
			{"email": n.CandidateEmail, "name": n.CandidateName},
		},
		"subject":     "Congratulations! Shortlisted at ABCD Bank",
		"htmlContent": shortlistBody(n),
	}

	res, err := b.client.R().
		SetContext(ctx).
		SetHeader("api-key", b.cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(b.endpoint)
	if err != nil {
		return fmt.Errorf("send shortlist email: %w", err)
	}
	if res.IsError() {
		return fmt.Errorf("send shortlist email: brevo returned status %d", res.StatusCode())
	}
	return nil
}

func shortlistBody(n Notification) string {
	return fmt.Sprintf(
		"<p>Dear %s,</p>"+
			"<p>Congratulations! You have been shortlisted for the <b>%s</b> position at ABCD Bank "+
			"with a match score of %.1f%%.</p>"+
			"<p>Please book your interview slot here: "+
			`<a href="https://cal.com/abcd-bank/interview">https://cal.com/abcd-bank/interview</a></p>`+
			"<p>Best regards,<br>HR Team<br>ABCD Bank</p>",
		n.CandidateName, n.JobTitle, n.MatchScore)
}
