// Package version はビルド時に埋め込まれるバージョン情報を提供する
package version

import "fmt"

// 以下はldflags（-X）で上書きされる
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info はバージョン情報を保持する構造体
type Info struct {
	Version string
	Commit  string
	Date    string
}

// Get は現在のバージョン情報を返す
func Get() Info {
	return Info{
		Version: Version,
		Commit:  Commit,
		Date:    Date,
	}
}

// String は --version で表示する文字列を返す
func (i Info) String() string {
	return fmt.Sprintf("%s (commit: %s, built at: %s)", i.Version, i.Commit, i.Date)
}
