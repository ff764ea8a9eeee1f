package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const blueskyBaseURL = "https://bsky.social/xrpc"

// BlueskyClient posts announcements to a Bluesky account. Each post
// creates a fresh session; announcement volume is a handful per day.
type BlueskyClient struct {
	handle     string
	password   string
	httpClient *http.Client
}

// NewBlueskyClient creates a client using an app password.
func NewBlueskyClient(handle, appPassword string) *BlueskyClient {
	return &BlueskyClient{
		handle:     handle,
		password:   appPassword,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Name implements Platform.
func (c *BlueskyClient) Name() string { return "bluesky" }

// Post creates an app.bsky.feed.post record. Links ride in the text body.
func (c *BlueskyClient) Post(ctx context.Context, text string, links []string) error {
	accessJWT, did, err := c.createSession(ctx)
	if err != nil {
		return err
	}

	for _, link := range links {
		text += "\n" + link
	}

	record := map[string]any{
		"repo":       did,
		"collection": "app.bsky.feed.post",
		"record": map[string]any{
			"$type":     "app.bsky.feed.post",
			"text":      text,
			"createdAt": time.Now().UTC().Format(time.RFC3339),
		},
	}

	body, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal post record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, blueskyBaseURL+"/com.atproto.repo.createRecord", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create post request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessJWT)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("bluesky post failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("bluesky rejected post with status %d", resp.StatusCode)
	}

	return nil
}

func (c *BlueskyClient) createSession(ctx context.Context) (accessJWT, did string, err error) {
	body, err := json.Marshal(map[string]string{
		"identifier": c.handle,
		"password":   c.password,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal session request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, blueskyBaseURL+"/com.atproto.server.createSession", bytes.NewReader(body))
	if err != nil {
		return "", "", fmt.Errorf("failed to create session request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("bluesky session failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", "", fmt.Errorf("bluesky session rejected with status %d", resp.StatusCode)
	}

	var session struct {
		AccessJWT string `json:"accessJwt"`
		DID       string `json:"did"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return "", "", fmt.Errorf("failed to decode session: %w", err)
	}

	return session.AccessJWT, session.DID, nil
}
