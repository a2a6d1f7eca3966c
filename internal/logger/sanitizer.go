package logger

import (
	"regexp"
	"strings"
)

// センシティブなキーのパターン（大文字小文字を区別しない）
var sensitiveKeyPatterns = []string{
	"password",
	"token",
	"secret",
	"github_token",
	"repo_token",
	"authorization",
	"auth",
	"credential",
	"private_key",
	"access_token",
	"client_secret",
}

// センシティブな値のパターン（正規表現）
var sensitiveValuePatterns = []*regexp.Regexp{
	// GitHub personal access tokens (ghp_ + 36文字)
	regexp.MustCompile(`^ghp_[A-Za-z0-9]{36,}$`),
	// GitHub Actions / app installation tokens
	regexp.MustCompile(`^ghs_[A-Za-z0-9]{36,}$`),
	regexp.MustCompile(`^ghu_[A-Za-z0-9]{36,}$`),
	regexp.MustCompile(`^ghi_[A-Za-z0-9]{36,}$`),
	// fine-grained personal access tokens
	regexp.MustCompile(`^github_pat_[A-Za-z0-9_]{22,}$`),
	regexp.MustCompile(`(?i)^Bearer\s+[A-Za-z0-9\-_\.]{20,}$`),
	regexp.MustCompile(`(?i)^token\s+[A-Za-z0-9\-_\.]{20,}$`),
}

// トークン種別ごとに残すプレフィックス
var maskedPrefixes = []string{
	"ghp_",
	"ghs_",
	"ghu_",
	"ghi_",
	"github_pat_",
	"Bearer ",
	"token ",
}

const maskedValue = "***MASKED***"

// SanitizeValue は値がセンシティブかどうかを判定し、必要に応じてマスクする
func SanitizeValue(value interface{}) interface{} {
	if isSensitiveValue(value) {
		return maskValue(value)
	}
	return value
}

// SanitizeKeyValue はキーと値の組み合わせをチェックし、センシティブな情報をマスクする
func SanitizeKeyValue(key string, value interface{}) (string, interface{}) {
	if isSensitiveKey(key) {
		// Authorization の場合はスキームを残す
		if strings.ToLower(key) == "authorization" && isSensitiveValue(value) {
			return key, maskValue(value)
		}
		return key, maskedValue
	}

	if isSensitiveValue(value) {
		return key, maskValue(value)
	}

	return key, value
}

// SanitizeArgs はログ引数（key-valueペア）をサニタイズする
func SanitizeArgs(args ...interface{}) []interface{} {
	if len(args) == 0 {
		return args
	}

	sanitized := make([]interface{}, len(args))
	copy(sanitized, args)

	// 偶数インデックスがkey、奇数インデックスがvalue
	for i := 0; i < len(sanitized); i += 2 {
		// 対になる値が無いキーもzapはそのまま出力する
		if i == len(sanitized)-1 {
			sanitized[i] = SanitizeValue(sanitized[i])
			break
		}

		key, ok := sanitized[i].(string)
		if !ok {
			sanitized[i+1] = SanitizeValue(sanitized[i+1])
			continue
		}
		_, sanitizedValue := SanitizeKeyValue(key, sanitized[i+1])
		sanitized[i+1] = sanitizedValue
	}

	return sanitized
}

// isSensitiveKey はキーがセンシティブかどうかを判定する
func isSensitiveKey(key string) bool {
	// action.yml の入力名（repo-token）もスネークケースとして扱う
	lowerKey := strings.ReplaceAll(strings.ToLower(key), "-", "_")

	for _, pattern := range sensitiveKeyPatterns {
		if lowerKey == pattern ||
			strings.HasPrefix(lowerKey, pattern+"_") ||
			strings.HasSuffix(lowerKey, "_"+pattern) ||
			strings.Contains(lowerKey, "_"+pattern+"_") {
			return true
		}
	}

	return false
}

// isSensitiveValue は値がセンシティブかどうかを判定する
func isSensitiveValue(value interface{}) bool {
	str, ok := value.(string)
	if !ok || str == "" {
		return false
	}

	for _, pattern := range sensitiveValuePatterns {
		if pattern.MatchString(str) {
			return true
		}
	}

	return false
}

// maskValue はセンシティブな値をマスクする（プレフィックスを保持）
func maskValue(value interface{}) string {
	str, ok := value.(string)
	if !ok || str == "" {
		return maskedValue
	}

	for _, prefix := range maskedPrefixes {
		if strings.HasPrefix(str, prefix) {
			return prefix + maskedValue
		}
	}

	return maskedValue
}
