package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

// ResendEndpoint is the Resend transactional email API. Overridable so tests
// can point it at a local server.
var ResendEndpoint = "https://api.resend.com/emails"

type resendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
	HTML    string   `json:"html,omitempty"`
}

type TripInviteEmail struct {
	To        string
	Token     string
	TripName  string
	InvitedBy string
}

// SendTripInviteEmail delivers the invite link to the prospective
// collaborator. Invite creation is synchronous with delivery: the caller
// rolls the invite back if this returns an error.
func SendTripInviteEmail(payload TripInviteEmail) error {
	apiKey := os.Getenv("RESEND_API_KEY")
	fromEmail := os.Getenv("INVITE_FROM_EMAIL")

	if apiKey == "" || fromEmail == "" {
		return fmt.Errorf("missing RESEND_API_KEY or INVITE_FROM_EMAIL, unable to send collaboration invite email")
	}

	appURL := os.Getenv("APP_URL")

	if appURL == "" {
		appURL = "http://localhost:3000"
	}

	inviteLink := fmt.Sprintf("%s/invites/%s", appURL, payload.Token)

	email := resendEmailRequest{
		From:    fromEmail,
		To:      []string{payload.To},
		Subject: fmt.Sprintf("%s invited you to collaborate on %s", payload.InvitedBy, payload.TripName),
		Text: fmt.Sprintf(
			"Hi,\n\n%s invited you to collaborate on %q in TripEasy.\nClick the link below to accept:\n%s\n\nIf you don't have an account yet, you'll be asked to register first.\n\nHappy travels!",
			payload.InvitedBy, payload.TripName, inviteLink,
		),
		HTML: fmt.Sprintf(
			`<p>%s invited you to collaborate on <strong>%s</strong>.</p><p><a href="%s" target="_blank" rel="noopener noreferrer">Accept the invite</a></p><p>If you don't have an account yet, you'll be asked to register first.</p>`,
			payload.InvitedBy, payload.TripName, inviteLink,
		),
	}

	body, err := json.Marshal(email)

	if err != nil {
		return fmt.Errorf("failed to marshal invite email: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, ResendEndpoint, bytes.NewBuffer(body))

	if err != nil {
		return fmt.Errorf("failed to create email request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)

	if err != nil {
		return fmt.Errorf("failed to send invite email: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("email provider returned status %d", resp.StatusCode)
	}

	return nil
}
