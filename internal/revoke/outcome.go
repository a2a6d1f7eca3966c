package revoke

// Status は評価結果の種別
type Status int

const (
	// StatusSkipped は何もせずに成功として終了したことを示す
	StatusSkipped Status = iota
	// StatusCompleted はラベルを削除したことを示す
	StatusCompleted
	// StatusFailed は実行を失敗として報告すべきことを示す
	StatusFailed
)

// String returns the string representation of the status
func (s Status) String() string {
	switch s {
	case StatusSkipped:
		return "skipped"
	case StatusCompleted:
		return "completed"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// SkipReason はスキップした理由
type SkipReason string

const (
	ReasonUnsupportedEvent    SkipReason = "unsupported-event"
	ReasonNotAFork            SkipReason = "not-a-fork"
	ReasonLabelAbsent         SkipReason = "label-absent"
	ReasonLabelAlreadyRemoved SkipReason = "label-already-removed"
)

// Outcome は1回の評価の最終結果
type Outcome struct {
	Status Status
	// Reason はStatusSkippedの場合のみ設定される
	Reason SkipReason
	// Message はStatusFailedの場合の失敗内容
	Message string
}

// Skipped はスキップの結果を返す
func Skipped(reason SkipReason) Outcome {
	return Outcome{Status: StatusSkipped, Reason: reason}
}

// Completed はラベル削除完了の結果を返す
func Completed() Outcome {
	return Outcome{Status: StatusCompleted}
}

// Failed は失敗の結果を返す
func Failed(message string) Outcome {
	return Outcome{Status: StatusFailed, Message: message}
}

// IsFailure は実行を失敗として報告すべきかを返す
func (o Outcome) IsFailure() bool {
	return o.Status == StatusFailed
}
