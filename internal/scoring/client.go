package scoring

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"recruitapi/internal/config"
)

// Kind classifies scoring failures. Retryable conditions (connection failure,
// timeout, 5xx) are retried internally and only surface as KindUnreachable
// once all attempts are exhausted; every other kind is terminal.
type Kind int

const (
	// KindNotConfigured means no scoring endpoint URL is set. A deployment
	// error, never retried.
	KindNotConfigured Kind = iota
	// KindUnreachable means all attempts failed on retryable conditions.
	KindUnreachable
	// KindInvalidResponseFormat means the service answered but the payload
	// was rejected: unexpected status, missing result record, or an explicit
	// embedded error. Retrying cannot fix a semantic or shape error.
	KindInvalidResponseFormat
)

func (k Kind) String() string {
	switch k {
	case KindNotConfigured:
		return "not_configured"
	case KindUnreachable:
		return "unreachable"
	default:
		return "invalid_response_format"
	}
}

// Error is the tagged scoring error type inspected by callers.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("scoring: %s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("scoring: %s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the scoring failure kind carried by err, if any.
func KindOf(err error) (Kind, bool) {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind, true
	}
	return 0, false
}

// Result is the normalized outcome of one scoring call. List fields are never
// nil and MatchScore is always finite; absent fields default to zero values
// at the deserialization boundary rather than propagating into persistence.
type Result struct {
	MatchScore      float64
	Shortlisted     bool
	Skills          []string
	Strengths       []string
	MissingSkills   []string
	ExperienceYears int
	Education       string
}

// Client submits resume and job text to the external scoring service.
type Client interface {
	Score(ctx context.Context, resumeText, jobDescription, jobRequirements string) (*Result, error)
}

// HTTPClient implements Client against the remote scoring endpoint with
// bounded retry and exponential backoff.
type HTTPClient struct {
	client *resty.Client
	cfg    config.ScoringConfig
	log    *zap.Logger

	// sleep is a seam so tests can observe backoff without wall-clock delay.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewHTTP builds an HTTPClient. Each individual attempt is bounded by the
// configured per-call timeout; the caller's context bounds the whole loop.
func NewHTTP(cfg config.ScoringConfig, log *zap.Logger) *HTTPClient {
	client := resty.New().SetTimeout(time.Duration(cfg.TimeoutSec) * time.Second)
	return &HTTPClient{
		client: client,
		cfg:    cfg,
		log:    log,
		sleep:  sleepCtx,
	}
}

var _ Client = (*HTTPClient)(nil)

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Score runs the retry loop: attempt, classify, back off, retry while the
// failure is retryable and attempts remain. Delays occur only between
// attempts: backoff(n) = baseDelay * 2^(n-1) after attempt n.
func (c *HTTPClient) Score(ctx context.Context, resumeText, jobDescription, jobRequirements string) (*Result, error) {
	if c.cfg.EndpointURL == "" {
		return nil, &Error{Kind: KindNotConfigured, Msg: "scoring endpoint URL is not set"}
	}

	payload := map[string]any{
		"data": []string{resumeText, jobDescription, jobRequirements},
	}
	baseDelay := time.Duration(c.cfg.BaseDelaySec) * time.Second

	var lastErr error
	for attempt := 1; attempt <= c.cfg.MaxAttempts; attempt++ {
		res, retryable, err := c.attempt(ctx, payload)
		if err == nil {
			return res, nil
		}
		if ctx.Err() != nil {
			// Caller deadline expired mid-attempt; abandon the loop.
			return nil, ctx.Err()
		}
		if !retryable {
			return nil, err
		}

		lastErr = err
		if attempt == c.cfg.MaxAttempts {
			break
		}

		delay := baseDelay << (attempt - 1)
		c.log.Warn("scoring attempt failed, backing off",
			zap.String("component", "scoring"),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", delay),
			zap.Error(err))
		if serr := c.sleep(ctx, delay); serr != nil {
			return nil, serr
		}
	}

	return nil, &Error{Kind: KindUnreachable, Msg: fmt.Sprintf("giving up after %d attempts", c.cfg.MaxAttempts), Err: lastErr}
}

// attempt performs a single request. The second return value reports whether
// the failure is retryable.
func (c *HTTPClient) attempt(ctx context.Context, payload map[string]any) (*Result, bool, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(c.cfg.EndpointURL)
	if err != nil {
		// Connection failures and timeouts are retryable.
		return nil, true, fmt.Errorf("scoring request: %w", err)
	}

	status := resp.StatusCode()
	switch {
	case status >= 500:
		return nil, true, fmt.Errorf("scoring service status %d", status)
	case status >= 400:
		return nil, false, &Error{Kind: KindInvalidResponseFormat, Msg: fmt.Sprintf("scoring service rejected request with status %d", status)}
	}

	res, err := normalize(resp.String())
	if err != nil {
		return nil, false, err
	}
	return res, false, nil
}

// normalize validates the remote payload shape and applies per-field defaults.
// The top-level result is expected at data.0; its absence or an explicit
// embedded error string is a terminal shape error.
func normalize(body string) (*Result, error) {
	record := gjson.Get(body, "data.0")
	if !record.Exists() || !record.IsObject() {
		return nil, &Error{Kind: KindInvalidResponseFormat, Msg: "response payload missing result record"}
	}
	if remoteErr := record.Get("error").String(); remoteErr != "" {
		return nil, &Error{Kind: KindInvalidResponseFormat, Msg: fmt.Sprintf("remote error: %s", remoteErr)}
	}

	score := record.Get("match_score").Float()
	if math.IsNaN(score) || math.IsInf(score, 0) {
		score = 0.0
	}

	years := int(record.Get("experience_years").Int())
	if years < 0 {
		years = 0
	}

	return &Result{
		MatchScore:      score,
		Shortlisted:     record.Get("shortlisted").Bool(),
		Skills:          stringList(record.Get("skills")),
		Strengths:       stringList(record.Get("strengths")),
		MissingSkills:   stringList(record.Get("missing_skills")),
		ExperienceYears: years,
		Education:       record.Get("education").String(),
	}, nil
}

func stringList(v gjson.Result) []string {
	out := make([]string, 0)
	if !v.IsArray() {
		return out
	}
	for _, item := range v.Array() {
		out = append(out, item.String())
	}
	return out
}
