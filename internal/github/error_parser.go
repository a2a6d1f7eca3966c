package github

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/go-github/v50/github"
)

var (
	// レスポンスを伴わないエラー（トランスポート層）の判定に使う
	rateLimitRegex   = regexp.MustCompile(`(?i)(rate limit|API rate limit exceeded|You have exceeded a secondary rate limit)`)
	authRegex        = regexp.MustCompile(`(?i)(unauthorized|bad credentials|requires authentication)`)
	networkRegex     = regexp.MustCompile(`(?i)(timeout|connection refused|connection reset|no such host|network|dial tcp|EOF)`)
	serverErrorRegex = regexp.MustCompile(`(?i)(internal server error|server error|502|503|504)`)
)

// ClassifyError takes an error returned by go-github and converts it into a GitHubError
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}

	var ghErr *GitHubError
	if errors.As(err, &ghErr) {
		return err
	}

	// RateLimitError / AbuseRateLimitError はErrorResponseとは別の型
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return &GitHubError{
			Type:        ErrorTypeRateLimit,
			StatusCode:  statusCodeOf(rateErr.Response),
			Message:     rateErr.Message,
			RetryAfter:  time.Until(rateErr.Rate.Reset.Time),
			OriginalErr: err,
		}
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return &GitHubError{
			Type:        ErrorTypeRateLimit,
			StatusCode:  statusCodeOf(abuseErr.Response),
			Message:     abuseErr.Message,
			RetryAfter:  abuseErr.GetRetryAfter(),
			OriginalErr: err,
		}
	}

	var respErr *github.ErrorResponse
	if errors.As(err, &respErr) {
		statusCode := statusCodeOf(respErr.Response)
		var header http.Header
		if respErr.Response != nil {
			header = respErr.Response.Header
		}
		return &GitHubError{
			Type:        classifyStatus(statusCode, header),
			StatusCode:  statusCode,
			Message:     respErr.Message,
			RetryAfter:  retryAfterFromHeader(header),
			OriginalErr: err,
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &GitHubError{
			Type:        ErrorTypeNetworkTimeout,
			Message:     err.Error(),
			OriginalErr: err,
		}
	}

	return parseErrorMessage(err.Error(), err)
}

// parseErrorMessage はレスポンスの無いエラーをメッセージから分類する
func parseErrorMessage(errOutput string, err error) *GitHubError {
	ghErr := &GitHubError{
		Type:        ErrorTypeUnknown,
		Message:     strings.TrimSpace(errOutput),
		OriginalErr: err,
	}

	switch {
	case rateLimitRegex.MatchString(errOutput):
		ghErr.Type = ErrorTypeRateLimit
	case authRegex.MatchString(errOutput):
		ghErr.Type = ErrorTypeAuthentication
	case networkRegex.MatchString(errOutput):
		ghErr.Type = ErrorTypeNetworkTimeout
	case serverErrorRegex.MatchString(errOutput):
		ghErr.Type = ErrorTypeServerError
	}

	return ghErr
}

// classifyStatus はHTTPステータスとヘッダーからエラー種別を決める
func classifyStatus(statusCode int, header http.Header) GitHubErrorType {
	switch {
	case statusCode == http.StatusTooManyRequests:
		return ErrorTypeRateLimit
	case statusCode == http.StatusForbidden && isRateLimited(header):
		// セカンダリレート制限は403で返る
		return ErrorTypeRateLimit
	case statusCode == http.StatusUnauthorized:
		return ErrorTypeAuthentication
	case statusCode == http.StatusForbidden:
		return ErrorTypeForbidden
	case statusCode == http.StatusNotFound:
		return ErrorTypeNotFound
	case statusCode == http.StatusNotImplemented:
		return ErrorTypeUnknown
	case statusCode >= 500 && statusCode < 600:
		return ErrorTypeServerError
	default:
		return ErrorTypeUnknown
	}
}

func isRateLimited(header http.Header) bool {
	if header == nil {
		return false
	}
	return header.Get("Retry-After") != "" || header.Get("X-RateLimit-Remaining") == "0"
}

// retryAfterFromHeader はRetry-After、またはレート制限のリセット時刻から待ち時間を求める
func retryAfterFromHeader(header http.Header) time.Duration {
	if header == nil {
		return 0
	}

	if v := header.Get("Retry-After"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}

	if header.Get("X-RateLimit-Remaining") == "0" {
		if v := header.Get("X-RateLimit-Reset"); v != "" {
			if epoch, err := strconv.ParseInt(v, 10, 64); err == nil {
				if d := time.Until(time.Unix(epoch, 0)); d > 0 {
					return d
				}
			}
		}
	}

	return 0
}

func statusCodeOf(resp *http.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode
}
