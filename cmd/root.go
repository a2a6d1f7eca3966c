package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/douhashi/remove-safe-to-test-label/internal/actions"
	"github.com/douhashi/remove-safe-to-test-label/internal/config"
	"github.com/douhashi/remove-safe-to-test-label/internal/event"
	"github.com/douhashi/remove-safe-to-test-label/internal/github"
	"github.com/douhashi/remove-safe-to-test-label/internal/logger"
	"github.com/douhashi/remove-safe-to-test-label/internal/revoke"
	"github.com/douhashi/remove-safe-to-test-label/internal/version"
)

const appName = "remove-safe-to-test-label"

var rootCmd *cobra.Command

func init() {
	rootCmd = newRootCmd()
}

// NewRootCmd creates a new root command
func NewRootCmd() *cobra.Command {
	return newRootCmd()
}

// rootOptions はコマンドの実行に使う依存関係
type rootOptions struct {
	cfgFile   string
	verbose   bool
	fs        afero.Fs
	// transport が設定されていればGitHub APIへの通信に使う
	transport http.RoundTripper
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	opts := &rootOptions{fs: afero.NewOsFs()}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "フォークからのプルリクエストに付いたsafe-to-testラベルを外す",
		Long: `remove-safe-to-test-labelは、フォークからのプルリクエストが更新されたときに
信頼済みを示すラベルを外すGitHub Actions用のコマンドです。
入力はActionsの環境変数（INPUT_*、GITHUB_*）またはフラグで指定します。`,
		Version:       version.Get().String(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := actions.NewRunnerFromEnv(cmd.OutOrStdout(), opts.fs)
			if err := runRoot(cmd, v, opts, runner); err != nil {
				runner.Error(err.Error())
				return err
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.cfgFile, "config", "c", "", "設定ファイルのパス")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "詳細出力")

	flags := cmd.Flags()
	flags.String("label", "", "外すラベルの名前 (INPUT_LABEL)")
	flags.String("repo-token", "", "GitHub APIのトークン (INPUT_REPO-TOKEN)")
	flags.String("events", config.DefaultEvents, "対象とするイベント種別（カンマ区切り） (INPUT_EVENTS)")
	flags.String("event-name", "", "ワークフローを起動したイベント (GITHUB_EVENT_NAME)")
	flags.String("event-path", "", "イベントペイロードのパス (GITHUB_EVENT_PATH)")
	flags.String("repository", "", "owner/name形式のリポジトリ (GITHUB_REPOSITORY)")
	flags.String("api-url", config.DefaultAPIURL, "GitHub APIのURL (GITHUB_API_URL)")
	flags.Int("max-retries", config.DefaultMaxRetries, "API呼び出しの最大リトライ回数 (INPUT_MAX-RETRIES)")

	bindings := map[string]string{
		"label":              "label",
		"repo_token":         "repo-token",
		"events":             "events",
		"event.name":         "event-name",
		"event.path":         "event-path",
		"repository":         "repository",
		"github.api_url":     "api-url",
		"github.max_retries": "max-retries",
	}
	for key, name := range bindings {
		_ = v.BindPFlag(key, flags.Lookup(name))
	}

	return cmd
}

// Execute はルートコマンドを実行する
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runRoot(cmd *cobra.Command, v *viper.Viper, opts *rootOptions, runner *actions.Runner) error {
	if opts.cfgFile != "" {
		v.SetConfigFile(opts.cfgFile)
	}

	cfg := config.NewConfig()
	if err := cfg.Load(v); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var logOpts []logger.Option
	logOpts = append(logOpts, logger.WithOutput(cmd.ErrOrStderr()))
	if opts.verbose {
		logOpts = append(logOpts, logger.WithLevel("debug"))
	}
	log, err := logger.NewFromEnv(logOpts...)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return run(cmd.Context(), cfg, opts.fs, runner, log, newClientFactory(cfg, log, opts.transport))
}

// run はイベントを読み込み、ラベル取り消しの判定結果をランナーへ報告する
func run(ctx context.Context, cfg *config.Config, fs afero.Fs, runner *actions.Runner, log logger.Logger, newClient revoke.ClientFactory) error {
	desc, err := event.Load(fs, cfg.Event.Name, cfg.Event.Path, cfg.Repository)
	if err != nil {
		return fmt.Errorf("failed to load event: %w", err)
	}

	log.Debug("Event loaded",
		"event", desc.Kind,
		"path", cfg.Event.Path,
		"has_payload", desc.Payload != nil,
	)
	runner.Debug(fmt.Sprintf("event=%s has_payload=%t", desc.Kind, desc.Payload != nil))

	evaluator := revoke.NewEvaluator(
		newClient,
		log,
		revoke.WithAcceptedEvents(cfg.AcceptedEvents()...),
	)
	outcome := evaluator.Evaluate(ctx, desc, revoke.Config{
		LabelName:  cfg.Label,
		Credential: cfg.RepoToken,
	})

	if err := writeOutputs(runner, outcome); err != nil {
		return err
	}
	reportOutcome(runner, outcome, cfg.Label)

	if outcome.IsFailure() {
		return errors.New(outcome.Message)
	}
	return nil
}

// newClientFactory は設定に従ってGitHubクライアントを作る関数を返す
//
// transportがnilの場合はgithubパッケージ既定のトランスポートを使う。
func newClientFactory(cfg *config.Config, log logger.Logger, transport http.RoundTripper) revoke.ClientFactory {
	return func(token string) (revoke.LabelRemover, error) {
		strategy := github.DefaultRetryStrategy()
		strategy.MaxAttempts = cfg.GitHub.MaxRetries + 1

		clientOpts := []github.ClientOption{
			github.WithBaseURL(cfg.GitHub.APIURL),
			github.WithUserAgent(appName + "/" + version.Get().Version),
			github.WithLogger(log),
			github.WithRetryStrategy(strategy),
		}
		if transport != nil {
			clientOpts = append(clientOpts, github.WithTransport(transport))
		}

		client, err := github.NewClient(token, clientOpts...)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}

func writeOutputs(runner *actions.Runner, outcome revoke.Outcome) error {
	if err := runner.SetOutput("result", outcome.Status.String()); err != nil {
		return err
	}
	return runner.SetOutput("reason", string(outcome.Reason))
}

// reportOutcome はスキップと完了をランナーの通知注釈として残す。失敗はRunEがエラー注釈で報告する
func reportOutcome(runner *actions.Runner, outcome revoke.Outcome, label string) {
	switch outcome.Status {
	case revoke.StatusCompleted:
		runner.Notice(fmt.Sprintf("Removed the %q label from pull request.", label))
	case revoke.StatusSkipped:
		runner.Notice(fmt.Sprintf("Skipped removing the %q label: %s", label, outcome.Reason))
	}
}
