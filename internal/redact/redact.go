package redact

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"recruitapi/internal/config"
)

// Redactor removes personally identifying spans from text before it leaves
// the trust boundary. Implementations must never fail the caller: on internal
// failure they return the original text and log the degradation as a security
// warning.
type Redactor interface {
	Redact(ctx context.Context, text string) string
}

// HTTPRedactor calls an external anonymization service.
type HTTPRedactor struct {
	client *resty.Client
	url    string
	log    *zap.Logger
}

// NewHTTP builds a Redactor backed by the configured redaction service.
func NewHTTP(cfg config.RedactionConfig, log *zap.Logger) *HTTPRedactor {
	client := resty.New().SetTimeout(time.Duration(cfg.TimeoutSec) * time.Second)
	return &HTTPRedactor{client: client, url: cfg.URL, log: log}
}

// Redact sends the text to the anonymization service and returns the redacted
// variant. Any failure returns the original text unchanged.
func (r *HTTPRedactor) Redact(ctx context.Context, text string) string {
	if text == "" {
		return ""
	}

	resp, err := r.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"text": text}).
		Post(r.url)
	if err != nil {
		r.log.Warn("pii redaction failed, sending unredacted text",
			zap.String("component", "redaction"), zap.Error(err))
		return text
	}
	if resp.IsError() {
		r.log.Warn("pii redaction service returned error status, sending unredacted text",
			zap.String("component", "redaction"), zap.Int("status", resp.StatusCode()))
		return text
	}

	redacted := gjson.Get(resp.String(), "text")
	if !redacted.Exists() {
		r.log.Warn("pii redaction response missing text field, sending unredacted text",
			zap.String("component", "redaction"))
		return text
	}
	return redacted.String()
}

// Passthrough is the Redactor used when no redaction service is configured.
// Every call is a logged security degradation.
type Passthrough struct {
	log *zap.Logger
}

// NewPassthrough builds the pass-through Redactor.
func NewPassthrough(log *zap.Logger) *Passthrough {
	return &Passthrough{log: log}
}

func (p *Passthrough) Redact(ctx context.Context, text string) string {
	p.log.Warn("no redaction service configured, sending unredacted text",
		zap.String("component", "redaction"))
	return text
}
