package mail

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
)

func TestDisabledMailerSkipsSend(t *testing.T) {
	m := NewInviteMailer(aws.Config{}, "", "")

	if m.IsEnabled() {
		t.Fatal("mailer with no from address should be disabled")
	}
	if err := m.SendInviteEmail(context.Background(), "a@example.com", "Alex", "Tanaka", "ABCD2345"); err != nil {
		t.Errorf("disabled mailer should no-op, got error %v", err)
	}
}
