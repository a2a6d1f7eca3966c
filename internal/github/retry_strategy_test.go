package github

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRetryStrategy(t *testing.T) {
	strategy := DefaultRetryStrategy()
	assert.Equal(t, 3, strategy.MaxAttempts)
	assert.Equal(t, 1*time.Second, strategy.InitialDelay)
	assert.Equal(t, 30*time.Second, strategy.MaxDelay)
	assert.Equal(t, 2.0, strategy.Multiplier)
	assert.True(t, strategy.Jitter)
}

func TestRetryStrategy_GetRetryDelay(t *testing.T) {
	strategy := RetryStrategy{
		MaxAttempts:  5,
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     1 * time.Second,
		Multiplier:   2.0,
	}

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{attempt: 0, want: 0},
		{attempt: 1, want: 100 * time.Millisecond},
		{attempt: 2, want: 200 * time.Millisecond},
		{attempt: 3, want: 400 * time.Millisecond},
		{attempt: 5, want: 1 * time.Second},
	}

	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.attempt), func(t *testing.T) {
			assert.Equal(t, tt.want, strategy.GetRetryDelay(tt.attempt))
		})
	}

	t.Run("ジッターは最大25%", func(t *testing.T) {
		jittered := strategy
		jittered.Jitter = true
		for i := 0; i < 20; i++ {
			delay := jittered.GetRetryDelay(1)
			assert.GreaterOrEqual(t, delay, 100*time.Millisecond)
			assert.LessOrEqual(t, delay, 125*time.Millisecond)
		}
	})
}

func TestRetryStrategy_Backoff(t *testing.T) {
	strategy := RetryStrategy{
		MaxAttempts:  3,
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     10 * time.Second,
		Multiplier:   2.0,
	}

	t.Run("レスポンスが無い場合は指数バックオフ", func(t *testing.T) {
		assert.Equal(t, 100*time.Millisecond, strategy.Backoff(0, 0, 0, nil))
		assert.Equal(t, 200*time.Millisecond, strategy.Backoff(0, 0, 1, nil))
	})

	t.Run("Retry-Afterを優先する", func(t *testing.T) {
		resp := &http.Response{StatusCode: 429, Header: http.Header{"Retry-After": []string{"3"}}}
		assert.Equal(t, 3*time.Second, strategy.Backoff(0, 0, 0, resp))
	})

	t.Run("Retry-AfterはMaxDelayで頭打ち", func(t *testing.T) {
		resp := &http.Response{StatusCode: 429, Header: http.Header{"Retry-After": []string{"3600"}}}
		assert.Equal(t, 10*time.Second, strategy.Backoff(0, 0, 0, resp))
	})

	t.Run("レート制限のリセット時刻まで待つ", func(t *testing.T) {
		reset := time.Now().Add(5 * time.Second).Unix()
		resp := &http.Response{StatusCode: 403, Header: http.Header{
			"X-Ratelimit-Remaining": []string{"0"},
			"X-Ratelimit-Reset":     []string{strconv.FormatInt(reset, 10)},
		}}
		wait := strategy.Backoff(0, 0, 0, resp)
		assert.Greater(t, wait, time.Duration(0))
		assert.LessOrEqual(t, wait, 5*time.Second)
	})
}

func TestCheckRetry(t *testing.T) {
	tests := []struct {
		name   string
		status int
		header http.Header
		want   bool
	}{
		{name: "200はリトライしない", status: 200, want: false},
		{name: "404はリトライしない", status: 404, want: false},
		{name: "403はリトライしない", status: 403, want: false},
		{name: "401はリトライしない", status: 401, want: false},
		{name: "422はリトライしない", status: 422, want: false},
		{name: "429はリトライする", status: 429, want: true},
		{name: "セカンダリレート制限の403はリトライする", status: 403, header: http.Header{"Retry-After": []string{"1"}}, want: true},
		{name: "残数0の403はリトライする", status: 403, header: http.Header{"X-Ratelimit-Remaining": []string{"0"}}, want: true},
		{name: "500はリトライする", status: 500, want: true},
		{name: "501はリトライしない", status: 501, want: false},
		{name: "502はリトライする", status: 502, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := tt.header
			if header == nil {
				header = http.Header{}
			}
			retry, err := CheckRetry(context.Background(), &http.Response{StatusCode: tt.status, Header: header}, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, retry)
		})
	}

	t.Run("ネットワークエラーはリトライする", func(t *testing.T) {
		retry, err := CheckRetry(context.Background(), nil, errors.New("connection reset by peer"))
		assert.NoError(t, err)
		assert.True(t, retry)
	})

	t.Run("キャンセル済みのコンテキストではリトライしない", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		retry, err := CheckRetry(ctx, &http.Response{StatusCode: 502, Header: http.Header{}}, nil)
		assert.False(t, retry)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
