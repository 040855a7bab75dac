package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const inviteTokenLength = 32

// NewInviteToken returns a URL-safe random token carried in invite links.
func NewInviteToken() (string, error) {
	return gonanoid.New(inviteTokenLength)
}
