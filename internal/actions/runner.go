// Package actions はGitHub Actionsランナーとのやり取り（ワークフローコマンドと出力ファイル）を扱う
package actions

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// OutputEnv はステップ出力ファイルのパスを渡す環境変数
const OutputEnv = "GITHUB_OUTPUT"

// Runner はワークフローコマンドを出力し、ステップ出力を書き込む
type Runner struct {
	out        io.Writer
	fs         afero.Fs
	outputPath string
}

// NewRunner は新しいRunnerを作成する
//
// outputPathが空の場合、SetOutputは何もしない。
func NewRunner(out io.Writer, fs afero.Fs, outputPath string) *Runner {
	return &Runner{
		out:        out,
		fs:         fs,
		outputPath: outputPath,
	}
}

// NewRunnerFromEnv はランナーの環境変数からRunnerを作成する
func NewRunnerFromEnv(out io.Writer, fs afero.Fs) *Runner {
	return NewRunner(out, fs, os.Getenv(OutputEnv))
}

// Error はエラー注釈を出力する。ステップの失敗として表示される
func (r *Runner) Error(msg string) {
	r.command("error", msg)
}

// Notice は通知注釈を出力する
func (r *Runner) Notice(msg string) {
	r.command("notice", msg)
}

// Debug はデバッグメッセージを出力する（RUNNER_DEBUG=1 の場合のみ表示される）
func (r *Runner) Debug(msg string) {
	r.command("debug", msg)
}

// SetOutput はステップ出力を追記する
func (r *Runner) SetOutput(name, value string) error {
	if r.outputPath == "" {
		return nil
	}
	if name == "" {
		return fmt.Errorf("output name is required")
	}

	f, err := r.fs.OpenFile(r.outputPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open output file %s: %w", r.outputPath, err)
	}
	defer f.Close()

	if _, err := io.WriteString(f, formatOutput(name, value)); err != nil {
		return fmt.Errorf("failed to write output %s: %w", name, err)
	}
	return nil
}

func (r *Runner) command(name, msg string) {
	fmt.Fprintf(r.out, "::%s::%s\n", name, EscapeData(msg))
}

// formatOutput は出力ファイルの1エントリを組み立てる。改行を含む値はヒアドキュメント形式にする
func formatOutput(name, value string) string {
	if !strings.ContainsAny(value, "\r\n") {
		return fmt.Sprintf("%s=%s\n", name, value)
	}

	delimiter := "ghadelimiter_" + uuid.NewString()
	return fmt.Sprintf("%s<<%s\n%s\n%s\n", name, delimiter, value, delimiter)
}

// EscapeData はワークフローコマンドのメッセージ部分をエスケープする
func EscapeData(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	s = strings.ReplaceAll(s, "\n", "%0A")
	return s
}
