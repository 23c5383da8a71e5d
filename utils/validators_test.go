// File: /utils/validators_test.go
package utils

import (
	"strings"
	"testing"
)

func TestIsValidNickname(t *testing.T) {
	tests := []struct {
		name     string
		nickname string
		want     bool
	}{
		{"valid nickname", "alice", true},
		{"empty", "", false},
		{"whitespace only", "   ", false},
		{"max length", strings.Repeat("a", 20), true},
		{"too long", strings.Repeat("a", 21), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidNickname(tt.nickname); got != tt.want {
				t.Errorf("IsValidNickname(%q) = %v, want %v", tt.nickname, got, tt.want)
			}
		})
	}
}

func TestIsValidLoginID(t *testing.T) {
	tests := []struct {
		name    string
		loginID string
		want    bool
	}{
		{"valid login id", "alice01", true},
		{"empty", "", false},
		{"max length", strings.Repeat("a", 50), true},
		{"too long", strings.Repeat("a", 51), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidLoginID(tt.loginID); got != tt.want {
				t.Errorf("IsValidLoginID(%q) = %v, want %v", tt.loginID, got, tt.want)
			}
		})
	}
}

func TestIsValidPassword(t *testing.T) {
	if IsValidPassword("abc") {
		t.Error("IsValidPassword() accepted a 3-character password")
	}
	if !IsValidPassword("abcd") {
		t.Error("IsValidPassword() rejected a 4-character password")
	}
}
