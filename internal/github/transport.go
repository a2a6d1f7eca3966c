package github

import (
	"net/http"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/oauth2"
)

// newHTTPClient はGitHub API用のHTTPクライアントを組み立てる
//
// retryablehttp -> oauth2 -> loggingRoundTripper -> cleanhttp の順に通る。
// リトライはこの層だけで行い、上位ではリトライしない。
func newHTTPClient(token string, o *clientOptions) *http.Client {
	base := o.transport
	if base == nil {
		base = cleanhttp.DefaultPooledTransport()
	}

	authed := &oauth2.Transport{
		Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
		Base: &loggingRoundTripper{
			base:   base,
			logger: o.logger,
		},
	}

	retryMax := o.strategy.MaxAttempts - 1
	if retryMax < 0 {
		retryMax = 0
	}

	rc := retryablehttp.NewClient()
	rc.HTTPClient = &http.Client{Transport: authed}
	rc.Logger = o.logger
	rc.RetryMax = retryMax
	rc.RetryWaitMin = o.strategy.InitialDelay
	rc.RetryWaitMax = o.strategy.MaxDelay
	rc.Backoff = o.strategy.Backoff
	rc.CheckRetry = CheckRetry
	// 最後のレスポンスをそのまま返し、go-githubにErrorResponseを組み立てさせる
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return rc.StandardClient()
}
