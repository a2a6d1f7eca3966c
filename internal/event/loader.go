package event

import (
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
)

var (
	// ErrInvalidPayload はイベントペイロードがJSONとして解釈できない場合のエラー
	ErrInvalidPayload = errors.New("event payload is not valid JSON")
	// ErrMalformedPayload は pull_request が評価に必要な項目を欠いている場合のエラー
	ErrMalformedPayload = errors.New("malformed pull request payload")
)

// Load はランナーが書き出したイベントファイル（GITHUB_EVENT_PATH）から記述子を組み立てる
func Load(fs afero.Fs, kind, path, repository string) (Descriptor, error) {
	if path == "" {
		return Descriptor{Kind: kind, Repository: repository}, nil
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return Descriptor{}, fmt.Errorf("failed to read event payload %s: %w", path, err)
	}

	return Parse(kind, data, repository)
}

// Parse はイベントペイロードのJSONから記述子を組み立てる
//
// pull_request が存在しない、またはnullの場合はPayloadをnilのまま返す。
// pull_request が必要な項目を欠いている場合はPayloadErrに理由を設定する。
// どちらも失敗とするかは呼び出し側（イベント種別の判定後）が決める。
func Parse(kind string, data []byte, repository string) (Descriptor, error) {
	desc := Descriptor{Kind: kind, Repository: repository}

	if !gjson.ValidBytes(data) {
		return Descriptor{}, ErrInvalidPayload
	}

	root := gjson.ParseBytes(data)
	pr := root.Get("pull_request")
	if !pr.Exists() || pr.Type == gjson.Null {
		return desc, nil
	}

	payload, err := parsePullRequest(root, pr)
	if err != nil {
		desc.PayloadErr = err
		return desc, nil
	}
	desc.Payload = payload

	return desc, nil
}

func parsePullRequest(root, pr gjson.Result) (*PullRequestPayload, error) {
	if !pr.IsObject() {
		return nil, malformed("pull_request is not an object")
	}

	headRepo, err := headRepoFullName(pr)
	if err != nil {
		return nil, err
	}

	number := pr.Get("number")
	if number.Type != gjson.Number {
		return nil, malformed("pull_request.number is missing")
	}

	labels := pr.Get("labels")
	if !labels.IsArray() {
		return nil, malformed("pull_request.labels is missing")
	}

	baseRepo := root.Get("repository.full_name")
	if baseRepo.Type != gjson.String {
		return nil, malformed("repository.full_name is missing")
	}

	pullRequest := &PullRequest{
		HeadRepoFullName: headRepo,
		Number:           int(number.Int()),
	}
	labels.ForEach(func(_, value gjson.Result) bool {
		pullRequest.Labels = append(pullRequest.Labels, Label{Name: value.Get("name").String()})
		return true
	})

	return &PullRequestPayload{
		PullRequest:      pullRequest,
		BaseRepoFullName: baseRepo.String(),
	}, nil
}

// headRepoFullName はheadリポジトリのフルネームを返す
//
// フォーク元が削除されたプルリクエストでは head.repo がnullになる。
// その場合は空文字列を返し、フォークとして扱う。
func headRepoFullName(pr gjson.Result) (string, error) {
	head := pr.Get("head")
	if !head.IsObject() {
		return "", malformed("pull_request.head is missing")
	}

	repo := head.Get("repo")
	switch {
	case repo.Type == gjson.Null && repo.Exists():
		return "", nil
	case !repo.IsObject():
		return "", malformed("pull_request.head.repo is missing")
	}

	fullName := repo.Get("full_name")
	if fullName.Type != gjson.String {
		return "", malformed("pull_request.head.repo.full_name is missing")
	}
	return fullName.String(), nil
}

func malformed(detail string) error {
	return fmt.Errorf("%w: %s", ErrMalformedPayload, detail)
}
