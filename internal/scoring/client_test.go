package scoring

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"recruitapi/internal/config"
)

const goodBody = `{"data":[{"match_score":82.5,"shortlisted":true,"skills":["Go","SQL"],"strengths":["Backend depth"],"missing_skills":["Kubernetes"],"experience_years":4,"education":"BSc Computer Science"}]}`

// newTestClient wires an HTTPClient against url with an instant sleep that
// records requested backoff delays.
func newTestClient(url string, maxAttempts int) (*HTTPClient, *[]time.Duration) {
	c := NewHTTP(config.ScoringConfig{
		EndpointURL:  url,
		TimeoutSec:   5,
		MaxAttempts:  maxAttempts,
		BaseDelaySec: 1,
	}, zap.NewNop())

	delays := &[]time.Duration{}
	c.sleep = func(ctx context.Context, d time.Duration) error {
		*delays = append(*delays, d)
		return nil
	}
	return c, delays
}

func TestScore_Success(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte(goodBody))
	}))
	defer srv.Close()

	c, delays := newTestClient(srv.URL, 5)
	res, err := c.Score(context.Background(), "resume", "desc", "reqs")

	require.NoError(t, err)
	assert.Equal(t, 82.5, res.MatchScore)
	assert.True(t, res.Shortlisted)
	assert.Equal(t, []string{"Go", "SQL"}, res.Skills)
	assert.Equal(t, []string{"Backend depth"}, res.Strengths)
	assert.Equal(t, []string{"Kubernetes"}, res.MissingSkills)
	assert.Equal(t, 4, res.ExperienceYears)
	assert.Equal(t, "BSc Computer Science", res.Education)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
	assert.Empty(t, *delays)
}

func TestScore_RetryableFailuresThenSuccess(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) <= 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(goodBody))
	}))
	defer srv.Close()

	c, delays := newTestClient(srv.URL, 5)
	res, err := c.Score(context.Background(), "resume", "desc", "reqs")

	require.NoError(t, err)
	assert.Equal(t, 82.5, res.MatchScore)
	// Exactly three attempts with backoff 1s then 2s between them.
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
	assert.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second}, *delays)
}

func TestScore_ExhaustedRetriesIsUnreachable(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c, delays := newTestClient(srv.URL, 5)
	res, err := c.Score(context.Background(), "resume", "desc", "reqs")

	require.Error(t, err)
	assert.Nil(t, res)
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindUnreachable, kind)
	// Exactly maxAttempts attempts, never more; no sleep after the last one.
	assert.Equal(t, int32(5), atomic.LoadInt32(&hits))
	assert.Equal(t, []time.Duration{
		1 * time.Second, 2 * time.Second, 4 * time.Second, 8 * time.Second,
	}, *delays)
}

func TestScore_ConnectionFailureIsRetryable(t *testing.T) {
	// Nothing listens here; every attempt fails at the transport layer.
	c, delays := newTestClient("http://127.0.0.1:1", 3)
	_, err := c.Score(context.Background(), "resume", "desc", "reqs")

	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindUnreachable, kind)
	assert.Len(t, *delays, 2)
}

func TestScore_NonRetryableFailsImmediately(t *testing.T) {
	tests := []struct {
		name string
		h    http.HandlerFunc
	}{
		{
			name: "client error status",
			h: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnprocessableEntity)
			},
		},
		{
			name: "missing result record",
			h: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"data":[]}`))
			},
		},
		{
			name: "result record is not an object",
			h: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"data":["oops"]}`))
			},
		},
		{
			name: "embedded error field",
			h: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"data":[{"error":"model overloaded"}]}`))
			},
		},
		{
			name: "body is not json",
			h: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`<html>gateway page</html>`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&hits, 1)
				tt.h(w, r)
			}))
			defer srv.Close()

			c, delays := newTestClient(srv.URL, 5)
			_, err := c.Score(context.Background(), "resume", "desc", "reqs")

			require.Error(t, err)
			kind, ok := KindOf(err)
			require.True(t, ok)
			assert.Equal(t, KindInvalidResponseFormat, kind)
			// Zero additional attempts and zero backoff delay.
			assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
			assert.Empty(t, *delays)
		})
	}
}

func TestScore_DefensiveScoreParsing(t *testing.T) {
	tests := []struct {
		name string
		body string
		want float64
	}{
		{"missing score", `{"data":[{"shortlisted":false}]}`, 0.0},
		{"non-numeric score", `{"data":[{"match_score":"n/a"}]}`, 0.0},
		{"numeric string score", `{"data":[{"match_score":"73.5"}]}`, 73.5},
		{"integer score", `{"data":[{"match_score":90}]}`, 90.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c, _ := newTestClient(srv.URL, 5)
			res, err := c.Score(context.Background(), "resume", "desc", "reqs")

			require.NoError(t, err)
			assert.Equal(t, tt.want, res.MatchScore)
			// Absent list fields come back empty, never nil.
			assert.NotNil(t, res.Skills)
			assert.NotNil(t, res.Strengths)
			assert.NotNil(t, res.MissingSkills)
		})
	}
}

func TestScore_NegativeExperienceClamped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"match_score":10,"experience_years":-3}]}`))
	}))
	defer srv.Close()

	c, _ := newTestClient(srv.URL, 5)
	res, err := c.Score(context.Background(), "resume", "desc", "reqs")

	require.NoError(t, err)
	assert.Equal(t, 0, res.ExperienceYears)
}

func TestScore_NotConfigured(t *testing.T) {
	c, delays := newTestClient("", 5)
	res, err := c.Score(context.Background(), "resume", "desc", "reqs")

	require.Error(t, err)
	assert.Nil(t, res)
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindNotConfigured, kind)
	assert.Empty(t, *delays)
}

func TestScore_DeadlineExpiredDuringBackoff(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewHTTP(config.ScoringConfig{
		EndpointURL:  srv.URL,
		TimeoutSec:   5,
		MaxAttempts:  5,
		BaseDelaySec: 1,
	}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	c.sleep = func(ctx context.Context, d time.Duration) error {
		cancel()
		return ctx.Err()
	}

	_, err := c.Score(ctx, "resume", "desc", "reqs")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScore_RequestPayloadShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"data":["resume text","job description","job requirements"]}`, string(body))
		fmt.Fprint(w, goodBody)
	}))
	defer srv.Close()

	c, _ := newTestClient(srv.URL, 5)
	_, err := c.Score(context.Background(), "resume text", "job description", "job requirements")
	assert.NoError(t, err)
}
