package utils

import (
	"fmt"
	"regexp"
)

// GitHubRepoInfo はGitHubリポジトリの情報を保持する構造体
type GitHubRepoInfo struct {
	Owner string
	Repo  string
}

// FullName は owner/repo 形式の名前を返す
func (i *GitHubRepoInfo) FullName() string {
	return i.Owner + "/" + i.Repo
}

var fullNamePattern = regexp.MustCompile(`^([A-Za-z0-9](?:[A-Za-z0-9-]*[A-Za-z0-9])?)/([A-Za-z0-9._-]+)$`)

// ParseFullName は owner/repo 形式の文字列（GITHUB_REPOSITORY や repository.full_name）を分解する
func ParseFullName(fullName string) (*GitHubRepoInfo, error) {
	matches := fullNamePattern.FindStringSubmatch(fullName)
	if len(matches) != 3 {
		return nil, fmt.Errorf("invalid repository full name: %q", fullName)
	}

	return &GitHubRepoInfo{
		Owner: matches[1],
		Repo:  matches[2],
	}, nil
}
