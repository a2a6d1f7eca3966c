package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	// DefaultAPIURL はgithub.comのREST APIのURL
	DefaultAPIURL = "https://api.github.com/"
	// DefaultEvents は既定で対象とするイベント種別（カンマ区切り）
	DefaultEvents = "pull_request,pull_request_target"
	// DefaultMaxRetries はトランスポート層での最大リトライ回数
	DefaultMaxRetries = 2
)

// Config はアクション全体の設定
type Config struct {
	Label      string       `mapstructure:"label"`
	RepoToken  string       `mapstructure:"repo_token"`
	Events     string       `mapstructure:"events"`
	Repository string       `mapstructure:"repository"`
	Event      EventConfig  `mapstructure:"event"`
	GitHub     GitHubConfig `mapstructure:"github"`
}

// EventConfig はワークフローを起動したイベントの情報
type EventConfig struct {
	Name string `mapstructure:"name"`
	Path string `mapstructure:"path"`
}

// GitHubConfig はGitHub API関連の設定
type GitHubConfig struct {
	APIURL     string `mapstructure:"api_url"`
	MaxRetries int    `mapstructure:"max_retries"`
}

// envBindings はキーと環境変数の対応。Actionsの入力は INPUT_<名前を大文字にしたもの> で渡される
var envBindings = map[string][]string{
	"label":              {"INPUT_LABEL"},
	"repo_token":         {"INPUT_REPO-TOKEN", "INPUT_REPO_TOKEN", "GITHUB_TOKEN"},
	"events":             {"INPUT_EVENTS"},
	"repository":         {"GITHUB_REPOSITORY"},
	"event.name":         {"GITHUB_EVENT_NAME"},
	"event.path":         {"GITHUB_EVENT_PATH"},
	"github.api_url":     {"GITHUB_API_URL"},
	"github.max_retries": {"INPUT_MAX-RETRIES", "INPUT_MAX_RETRIES"},
}

// NewConfig は新しいConfigを作成する
func NewConfig() *Config {
	return &Config{
		Events: DefaultEvents,
		GitHub: GitHubConfig{
			APIURL:     DefaultAPIURL,
			MaxRetries: DefaultMaxRetries,
		},
	}
}

// Load はviperから設定を読み込む
//
// vに設定ファイルが指定されていれば読み込み、環境変数とフラグで上書きする。
func (c *Config) Load(v *viper.Viper) error {
	for key, envs := range envBindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	v.SetDefault("events", DefaultEvents)
	v.SetDefault("github.api_url", DefaultAPIURL)
	v.SetDefault("github.max_retries", DefaultMaxRetries)

	if v.ConfigFileUsed() != "" {
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(c); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return nil
}

// Validate は設定の妥当性を検証する
//
// イベント名は検証しない。空の場合は対象外イベントとしてスキップされる。
func (c *Config) Validate() error {
	// Actionsの入力と同様に前後の空白は取り除く
	c.Label = strings.TrimSpace(c.Label)
	c.RepoToken = strings.TrimSpace(c.RepoToken)

	if c.Label == "" {
		return errors.New("input required and not supplied: label")
	}
	if c.RepoToken == "" {
		return errors.New("input required and not supplied: repo-token")
	}
	if len(c.AcceptedEvents()) == 0 {
		return errors.New("at least one event kind must be accepted")
	}
	if c.GitHub.MaxRetries < 0 {
		return errors.New("max retries must not be negative")
	}

	if c.GitHub.APIURL == "" {
		c.GitHub.APIURL = DefaultAPIURL
	}

	return nil
}

// AcceptedEvents は対象とするイベント種別をスライスで返す（カンマ・改行区切り、重複は除く）
func (c *Config) AcceptedEvents() []string {
	fields := strings.FieldsFunc(c.Events, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})

	seen := make(map[string]bool, len(fields))
	events := make([]string, 0, len(fields))
	for _, field := range fields {
		kind := strings.TrimSpace(field)
		if kind == "" || seen[kind] {
			continue
		}
		seen[kind] = true
		events = append(events, kind)
	}
	return events
}
