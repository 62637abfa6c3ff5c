package security

import (
	"crypto/rand"
	"fmt"
)

// inviteAlphabet deliberately omits confusable characters (0/O, 1/I/L)
const inviteAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// InviteCodeLength is the length of generated family invite codes
const InviteCodeLength = 8

// GenerateInviteCode returns a random human-friendly invite code
func GenerateInviteCode() (string, error) {
	buf := make([]byte, InviteCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate invite code: %w", err)
	}
	for i, b := range buf {
		buf[i] = inviteAlphabet[int(b)%len(inviteAlphabet)]
	}
	return string(buf), nil
}
