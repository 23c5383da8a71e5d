// File: /utils/validators.go
package utils

import "strings"

const (
	MaxNicknameLength = 20
	MaxLoginIDLength  = 50
)

func IsValidNickname(nickname string) bool {
	trimmed := strings.TrimSpace(nickname)
	return trimmed != "" && len(trimmed) <= MaxNicknameLength
}

func IsValidLoginID(loginID string) bool {
	trimmed := strings.TrimSpace(loginID)
	return trimmed != "" && len(trimmed) <= MaxLoginIDLength
}

func IsValidPassword(password string) bool {
	return len(password) >= 4
}
