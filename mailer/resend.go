// Package mailer delivers moderation review emails through the Resend API.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"sigil/domain/entities"
	"sigil/domain/interfaces"
)

const resendEndpoint = "https://api.resend.com/emails"

// ResendMailer sends moderation review requests to the admin address.
type ResendMailer struct {
	apiKey      string
	from        string
	adminEmail  string
	baseURL     string
	adminSecret string
	httpClient  *http.Client
}

// NewResendMailer creates a mailer. baseURL and adminSecret build the
// approve/deny links embedded in the email.
func NewResendMailer(apiKey, from, adminEmail, baseURL, adminSecret string) *ResendMailer {
	return &ResendMailer{
		apiKey:      apiKey,
		from:        from,
		adminEmail:  adminEmail,
		baseURL:     baseURL,
		adminSecret: adminSecret,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
}

type resendPayload struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// SendModerationReview emails the admin a review request with approve and
// deny links for a pending billboard claim.
func (m *ResendMailer) SendModerationReview(ctx context.Context, review interfaces.ModerationReview) error {
	date := entities.EpochDayStart(review.EpochDay).Format("Monday, January 2, 2006")
	sol := float64(review.IncentiveLamports) / 1e9

	approveURL := fmt.Sprintf("%s/api/admin/review?day=%d&action=approve&secret=%s",
		m.baseURL, review.EpochDay, url.QueryEscape(m.adminSecret))
	denyURL := fmt.Sprintf("%s/api/admin/review?day=%d&action=deny&secret=%s",
		m.baseURL, review.EpochDay, url.QueryEscape(m.adminSecret))

	wallet := review.ClaimerWallet
	if len(wallet) > 14 {
		wallet = wallet[:8] + "..." + wallet[len(wallet)-6:]
	}

	var body bytes.Buffer
	fmt.Fprintf(&body, `<div style="font-family:system-ui,sans-serif;max-width:500px;margin:0 auto;padding:20px">`)
	fmt.Fprintf(&body, `<h2>Sigil billboard claim</h2><p>%s (epoch %d)</p>`, date, review.EpochDay)
	fmt.Fprintf(&body, `<p>Wallet: <code>%s</code><br>Incentive: %.2f SOL</p>`, wallet, sol)
	if review.FarcasterUsername != "" {
		fmt.Fprintf(&body, `<p>Farcaster: %s</p>`, review.FarcasterUsername)
	}
	if review.LinkURL != "" {
		fmt.Fprintf(&body, `<p>Link: <a href="%s">%s</a></p>`, review.LinkURL, review.LinkURL)
	}
	if review.ImageURL != "" {
		fmt.Fprintf(&body, `<div><img src="%s" alt="Billboard" style="max-width:100%%"></div>`, review.ImageURL)
	} else {
		fmt.Fprintf(&body, `<p><em>No image uploaded</em></p>`)
	}
	fmt.Fprintf(&body, `<p><a href="%s">Approve</a> &middot; <a href="%s">Deny &amp; refund</a></p>`, approveURL, denyURL)
	fmt.Fprintf(&body, `<p style="font-size:11px">Platform fee is non-refundable. Deny refunds the incentive only.</p></div>`)

	payload, err := json.Marshal(resendPayload{
		From:    m.from,
		To:      m.adminEmail,
		Subject: fmt.Sprintf("Billboard review: %s - %.2f SOL", date, sol),
		HTML:    body.String(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, resendEndpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send moderation email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("moderation email rejected with status %d", resp.StatusCode)
	}

	return nil
}
