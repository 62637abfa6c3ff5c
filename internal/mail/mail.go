// Package mail sends transactional email via Amazon SES
package mail

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// InviteMailer sends family invite emails. When no from address is
// configured the mailer is disabled and sends become logged no-ops.
type InviteMailer struct {
	client    *sesv2.Client
	fromEmail string
	fromName  string
	enabled   bool
}

// NewInviteMailer creates a mailer using the given AWS configuration.
// An empty fromEmail disables sending.
func NewInviteMailer(cfg aws.Config, fromEmail, fromName string) *InviteMailer {
	if fromEmail == "" {
		log.Println("Invite mailer disabled: SES_FROM_EMAIL not configured")
		return &InviteMailer{enabled: false}
	}

	log.Printf("Invite mailer enabled: from=%s, region=%s", fromEmail, cfg.Region)
	return &InviteMailer{
		client:    sesv2.NewFromConfig(cfg),
		fromEmail: fromEmail,
		fromName:  fromName,
		enabled:   true,
	}
}

// IsEnabled returns whether the mailer will actually send
func (m *InviteMailer) IsEnabled() bool {
	return m.enabled
}

// SendInviteEmail sends a family invite code to a prospective member
func (m *InviteMailer) SendInviteEmail(ctx context.Context, toEmail, toName, familyName, inviteCode string) error {
	if !m.enabled {
		log.Printf("Skipping email send (mailer disabled): invite to %s", toEmail)
		return nil
	}

	subject := fmt.Sprintf("You're invited to join %s on FamBoard", familyName)
	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
		.container { max-width: 600px; margin: 0 auto; padding: 20px; }
		.header { background-color: #4ECDC4; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
		.content { background-color: #f9f9f9; padding: 30px; border-radius: 0 0 5px 5px; }
		.code { font-size: 28px; font-weight: bold; letter-spacing: 4px; text-align: center; padding: 15px; background-color: white; border-radius: 5px; }
		.footer { text-align: center; margin-top: 20px; font-size: 12px; color: #666; }
	</style>
</head>
<body>
	<div class="container">
		<div class="header">
			<h1>Join %s</h1>
		</div>
		<div class="content">
			<p>Hi %s,</p>
			<p>You've been invited to join the %s family board. Enter this invite code when setting up the app:</p>
			<p class="code">%s</p>
		</div>
		<div class="footer">
			<p>This is an automated email from FamBoard. Please do not reply.</p>
		</div>
	</div>
</body>
</html>
`, familyName, toName, familyName, inviteCode)

	textBody := fmt.Sprintf(`Hi %s,

You've been invited to join the %s family board.

Enter this invite code when setting up the app:

    %s

---
This is an automated email from FamBoard. Please do not reply.
`, toName, familyName, inviteCode)

	return m.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

// sendEmail sends an email using Amazon SES
func (m *InviteMailer) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := m.fromEmail
	if m.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", m.fromName, m.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data: aws.String(subject),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data: aws.String(htmlBody),
					},
					Text: &types.Content{
						Data: aws.String(textBody),
					},
				},
			},
		},
	}

	if _, err := m.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	log.Printf("Email sent: to=%s, subject=%s", toEmail, subject)
	return nil
}
