package utils

import (
	"strings"
	"testing"
)

const tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_-"

func TestNewInviteToken(t *testing.T) {
	token, err := NewInviteToken()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(token) != 32 {
		t.Errorf("expected 32 characters, got %d (%q)", len(token), token)
	}

	for _, r := range token {
		if !strings.ContainsRune(tokenAlphabet, r) {
			t.Errorf("token contains character %q outside the URL-safe alphabet", r)
		}
	}
}

func TestNewInviteTokenUniqueness(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 200; i++ {
		token, err := NewInviteToken()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if seen[token] {
			t.Fatalf("duplicate token generated: %q", token)
		}
		seen[token] = true
	}
}
