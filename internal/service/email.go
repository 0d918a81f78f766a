package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

// EmailService sends claim-submitted notifications to the claims inbox.
// All sends are best-effort; callers log failures and move on.
type EmailService struct {
	client      *resend.Client
	fromEmail   string
	notifyEmail string
	isDev       bool
	appName     string
}

func NewEmailService(apiKey, fromEmail, notifyEmail, appName string, isDev bool) *EmailService {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &EmailService{
		client:      client,
		fromEmail:   fromEmail,
		notifyEmail: notifyEmail,
		isDev:       isDev,
		appName:     appName,
	}
}

func (s *EmailService) SendClaimSubmitted(claimID, policyNumber string, photos int) error {
	subject := fmt.Sprintf("[%s] New claim %s", s.appName, claimID)
	body := fmt.Sprintf("Claim %s was submitted for policy %s with %d photo(s).", claimID, policyNumber, photos)

	if s.isDev {
		slog.Info("email sent (dev mode)", "type", "claim_submitted", "claim_id", claimID, "subject", subject)
		return nil
	}

	if s.client == nil || s.notifyEmail == "" {
		return fmt.Errorf("email service not configured (missing RESEND_API_KEY or NOTIFY_EMAIL)")
	}

	params := &resend.SendEmailRequest{
		From:    s.fromEmail,
		To:      []string{s.notifyEmail},
		Subject: subject,
		Text:    body,
	}

	_, err := s.client.Emails.SendWithContext(context.Background(), params)
	if err == nil {
		slog.Info("email sent", "type", "claim_submitted", "claim_id", claimID)
	}
	return err
}
