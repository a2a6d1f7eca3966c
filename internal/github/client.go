package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v50/github"

	"github.com/douhashi/remove-safe-to-test-label/internal/logger"
)

// Client はGitHub APIクライアントのラッパー
type Client struct {
	github *github.Client
	logger logger.Logger
}

type clientOptions struct {
	baseURL   string
	userAgent string
	logger    logger.Logger
	strategy  RetryStrategy
	transport http.RoundTripper
}

// ClientOption はClientの設定オプション
type ClientOption func(*clientOptions)

// WithBaseURL はAPIのベースURLを設定する（GitHub Enterprise Server、GITHUB_API_URL）
func WithBaseURL(baseURL string) ClientOption {
	return func(o *clientOptions) {
		o.baseURL = baseURL
	}
}

// WithUserAgent はUser-Agentを設定する
func WithUserAgent(userAgent string) ClientOption {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}

// WithLogger はHTTP通信とリトライのログ出力先を設定する
func WithLogger(log logger.Logger) ClientOption {
	return func(o *clientOptions) {
		o.logger = log
	}
}

// WithRetryStrategy はトランスポート層のリトライ戦略を設定する
func WithRetryStrategy(strategy RetryStrategy) ClientOption {
	return func(o *clientOptions) {
		o.strategy = strategy
	}
}

// WithTransport は最下層のRoundTripperを差し替える
func WithTransport(rt http.RoundTripper) ClientOption {
	return func(o *clientOptions) {
		o.transport = rt
	}
}

// NewClient は新しいGitHub APIクライアントを作成する
func NewClient(token string, opts ...ClientOption) (*Client, error) {
	if token == "" {
		return nil, errors.New("GitHub token is required")
	}

	o := &clientOptions{
		logger:   logger.NewNop(),
		strategy: DefaultRetryStrategy(),
	}
	for _, opt := range opts {
		opt(o)
	}

	gh := github.NewClient(newHTTPClient(token, o))

	if o.baseURL != "" {
		baseURL, err := parseBaseURL(o.baseURL)
		if err != nil {
			return nil, err
		}
		gh.BaseURL = baseURL
	}
	if o.userAgent != "" {
		gh.UserAgent = o.userAgent
	}

	return &Client{
		github: gh,
		logger: o.logger,
	}, nil
}

// RemoveLabel はIssue（プルリクエスト）からラベルを削除する
func (c *Client) RemoveLabel(ctx context.Context, owner, repo string, number int, name string) error {
	if owner == "" {
		return errors.New("owner is required")
	}
	if repo == "" {
		return errors.New("repo is required")
	}
	if name == "" {
		return errors.New("label name is required")
	}

	_, err := c.github.Issues.RemoveLabelForIssue(ctx, owner, repo, number, name)
	if err != nil {
		ghErr := ClassifyError(err)
		c.logger.Debug("github_remove_label_failed",
			"owner", owner,
			"repo", repo,
			"number", number,
			"label", name,
			"error", ghErr.Error(),
		)
		return ghErr
	}

	return nil
}

// parseBaseURL はベースURLを末尾スラッシュ付きで解析する
func parseBaseURL(raw string) (*url.URL, error) {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub API URL %q: %w", raw, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid GitHub API URL %q", raw)
	}
	return u, nil
}
