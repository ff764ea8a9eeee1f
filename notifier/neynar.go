package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"sigil/domain/entities"
)

const neynarBaseURL = "https://api.neynar.com/v2/farcaster"

// NeynarClient talks to the Neynar API for Farcaster casting and profile
// resolution.
type NeynarClient struct {
	apiKey     string
	signerUUID string
	httpClient *http.Client
}

// NewNeynarClient creates a client. signerUUID authorizes casting; leave
// it empty for resolve-only use.
func NewNeynarClient(apiKey, signerUUID string) *NeynarClient {
	return &NeynarClient{
		apiKey:     apiKey,
		signerUUID: signerUUID,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Name implements Platform.
func (c *NeynarClient) Name() string { return "farcaster" }

// Post publishes a cast with optional link embeds.
func (c *NeynarClient) Post(ctx context.Context, text string, links []string) error {
	type embed struct {
		URL string `json:"url"`
	}
	payload := struct {
		SignerUUID string  `json:"signer_uuid"`
		Text       string  `json:"text"`
		Embeds     []embed `json:"embeds,omitempty"`
	}{SignerUUID: c.signerUUID, Text: text}

	// Casts accept at most two embeds
	for _, link := range links {
		if len(payload.Embeds) == 2 {
			break
		}
		payload.Embeds = append(payload.Embeds, embed{URL: link})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal cast: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, neynarBaseURL+"/cast", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create cast request: %w", err)
	}
	req.Header.Set("api_key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("cast failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("cast rejected with status %d", resp.StatusCode)
	}

	return nil
}

// Resolve looks a username up and returns its profile, or nil when no
// match exists.
func (c *NeynarClient) Resolve(ctx context.Context, username string) (*entities.SocialProfile, error) {
	username = strings.TrimPrefix(username, "@")

	endpoint := fmt.Sprintf("%s/user/search?q=%s&limit=1", neynarBaseURL, url.QueryEscape(username))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("api_key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("profile search failed: %w", err)
	}
	defer resp.Body.Close()

	var result struct {
		Result struct {
			Users []struct {
				Username string `json:"username"`
				PfpURL   string `json:"pfp_url"`
				FID      int64  `json:"fid"`
			} `json:"users"`
		} `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode profile search: %w", err)
	}

	if len(result.Result.Users) == 0 {
		return nil, nil
	}

	user := result.Result.Users[0]
	return &entities.SocialProfile{
		Username: user.Username,
		PfpURL:   user.PfpURL,
		FID:      user.FID,
	}, nil
}
