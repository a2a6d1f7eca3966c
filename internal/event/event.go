// Package event はワークフローを起動したイベントの記述子を扱う。
package event

// Descriptor はワークフローを起動したイベントの記述子
type Descriptor struct {
	// Kind はイベント種別（pull_request, pull_request_target など）
	Kind string
	// Repository はワークフローが動いているリポジトリ（owner/name）。空の場合はペイロードのベースリポジトリを使う
	Repository string
	// Payload はプルリクエストのペイロード。pull_request を含まないイベントではnil
	Payload *PullRequestPayload
	// PayloadErr は pull_request が存在するが必要な項目を欠いている場合の理由。このときPayloadはnil
	PayloadErr error
}

// PullRequestPayload は評価対象のプルリクエストとベースリポジトリ
type PullRequestPayload struct {
	PullRequest      *PullRequest
	BaseRepoFullName string
}

// PullRequest はイベント発生時点のプルリクエストの状態
type PullRequest struct {
	HeadRepoFullName string
	Number           int
	Labels           []Label
}

// Label はプルリクエストに付与されたラベル
type Label struct {
	Name string
}

// IsFork はプルリクエストがフォークから作成されたかを返す
func (p *PullRequestPayload) IsFork() bool {
	return p.PullRequest.HeadRepoFullName != p.BaseRepoFullName
}

// HasLabel は指定した名前のラベルが付与されているかを返す（大文字小文字を区別する）
func (pr *PullRequest) HasLabel(name string) bool {
	for _, label := range pr.Labels {
		if label.Name == name {
			return true
		}
	}
	return false
}

// LabelNames はラベル名の一覧を返す
func (pr *PullRequest) LabelNames() []string {
	names := make([]string, 0, len(pr.Labels))
	for _, label := range pr.Labels {
		names = append(names, label.Name)
	}
	return names
}
