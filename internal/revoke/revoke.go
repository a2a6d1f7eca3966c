// Package revoke はフォークからのプルリクエストに付いた safe-to-test ラベルを取り消す判定を行う。
package revoke

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/douhashi/remove-safe-to-test-label/internal/event"
	"github.com/douhashi/remove-safe-to-test-label/internal/logger"
	"github.com/douhashi/remove-safe-to-test-label/internal/utils"
)

// LabelDoesNotExistMessage はラベルが既に外れている場合にAPIが返すメッセージ。
//
// 重複したワークフロー実行が同じラベルを先に削除した競合はこの文字列の完全一致で判定している。
// API側の文言が変わるとこの判定は黙って効かなくなり、競合が失敗として報告される。
const LabelDoesNotExistMessage = "Label does not exist"

// DefaultAcceptedEvents は既定で対象とするイベント種別
var DefaultAcceptedEvents = []string{"pull_request", "pull_request_target"}

// LabelRemover はIssue/プルリクエストからラベルを外す外部操作
type LabelRemover interface {
	RemoveLabel(ctx context.Context, owner, repo string, number int, name string) error
}

// ClientFactory はトークンからLabelRemoverを作成する
type ClientFactory func(token string) (LabelRemover, error)

// Config は1回の評価に渡される設定
type Config struct {
	LabelName  string
	Credential string
}

// Evaluator はラベル取り消しの判定と実行を行う
type Evaluator struct {
	newClient      ClientFactory
	logger         logger.Logger
	acceptedEvents []string
}

// Option はEvaluatorの設定オプション
type Option func(*Evaluator)

// WithAcceptedEvents は対象とするイベント種別を置き換える
func WithAcceptedEvents(kinds ...string) Option {
	return func(e *Evaluator) {
		if len(kinds) > 0 {
			e.acceptedEvents = append([]string{}, kinds...)
		}
	}
}

// NewEvaluator は新しいEvaluatorを作成する
func NewEvaluator(newClient ClientFactory, log logger.Logger, opts ...Option) *Evaluator {
	if log == nil {
		log = logger.NewNop()
	}

	e := &Evaluator{
		newClient:      newClient,
		logger:         log,
		acceptedEvents: append([]string{}, DefaultAcceptedEvents...),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AcceptedEvents は対象とするイベント種別を返す
func (e *Evaluator) AcceptedEvents() []string {
	return append([]string{}, e.acceptedEvents...)
}

// Evaluate はイベントを評価し、条件を満たす場合にラベルを削除する
//
// 外部への変更はラベル削除の1回のみで、全てのフィルタを通過した場合に限られる。
// descは読み取り専用として扱う。
func (e *Evaluator) Evaluate(ctx context.Context, desc event.Descriptor, cfg Config) Outcome {
	log := e.logger.WithFields("event", desc.Kind, "label", cfg.LabelName)

	if !e.isAccepted(desc.Kind) {
		log.Info(fmt.Sprintf("Event %q, skipping. Only the following events are supported: %s.",
			desc.Kind, strings.Join(e.acceptedEvents, ", ")))
		return Skipped(ReasonUnsupportedEvent)
	}

	// 対象イベントにペイロードが無い、または項目を欠いているのはイベント送信側の契約違反
	if desc.PayloadErr != nil {
		outcome := Failed(desc.PayloadErr.Error())
		log.Error("pull request payload is malformed", "error", outcome.Message)
		return outcome
	}
	if desc.Payload == nil || desc.Payload.PullRequest == nil {
		outcome := Failed(fmt.Sprintf("event %q does not carry a pull request payload", desc.Kind))
		log.Error("pull request payload is missing", "error", outcome.Message)
		return outcome
	}

	pr := desc.Payload.PullRequest
	log = log.WithFields("number", pr.Number)

	if !desc.Payload.IsFork() {
		log.Info("Pull request is not from a fork, skipping.",
			"head", pr.HeadRepoFullName,
			"base", desc.Payload.BaseRepoFullName,
		)
		return Skipped(ReasonNotAFork)
	}

	if !pr.HasLabel(cfg.LabelName) {
		log.Info(fmt.Sprintf("Pull request does not have the %q label, skipping.", cfg.LabelName),
			"labels", pr.LabelNames(),
		)
		return Skipped(ReasonLabelAbsent)
	}

	repoInfo, err := e.targetRepository(desc)
	if err != nil {
		log.Error("failed to resolve target repository", "error", err.Error())
		return Failed(err.Error())
	}

	client, err := e.newClient(cfg.Credential)
	if err != nil {
		log.Error("failed to create GitHub client", "error", err.Error())
		return Failed(err.Error())
	}

	err = client.RemoveLabel(ctx, repoInfo.Owner, repoInfo.Repo, pr.Number, cfg.LabelName)
	if err != nil {
		message := failureMessage(err)
		if message == LabelDoesNotExistMessage {
			// 同時に動いた別の実行が先に削除した
			log.Info("Label was removed during the execution of the action, skipping.")
			return Skipped(ReasonLabelAlreadyRemoved)
		}

		log.Error("failed to remove label", "repository", repoInfo.FullName(), "error", message)
		return Failed(message)
	}

	log.Info(fmt.Sprintf("Removed the %q label from pull request.", cfg.LabelName),
		"repository", repoInfo.FullName(),
	)
	return Completed()
}

func (e *Evaluator) isAccepted(kind string) bool {
	for _, accepted := range e.acceptedEvents {
		if kind == accepted {
			return true
		}
	}
	return false
}

// targetRepository はラベル削除対象のリポジトリを決める
func (e *Evaluator) targetRepository(desc event.Descriptor) (*utils.GitHubRepoInfo, error) {
	fullName := desc.Repository
	if fullName == "" {
		fullName = desc.Payload.BaseRepoFullName
	}
	return utils.ParseFullName(fullName)
}

// apiMessager はAPIが返したメッセージをそのまま取り出せるエラー
type apiMessager interface {
	APIMessage() string
}

// failureMessage はエラーからAPIのメッセージを取り出す。取り出せない場合はError()を使う
func failureMessage(err error) string {
	var m apiMessager
	if errors.As(err, &m) {
		if msg := m.APIMessage(); msg != "" {
			return msg
		}
	}
	return err.Error()
}
