package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// TelegramClient posts announcements to a Telegram channel via the bot API.
type TelegramClient struct {
	botToken   string
	channelID  string
	httpClient *http.Client
}

// NewTelegramClient creates a client for the given bot and channel.
func NewTelegramClient(botToken, channelID string) *TelegramClient {
	return &TelegramClient{
		botToken:   botToken,
		channelID:  channelID,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Name implements Platform.
func (c *TelegramClient) Name() string { return "telegram" }

// Post sends one message to the channel. Links are appended as plain text;
// Telegram unfurls the first one.
func (c *TelegramClient) Post(ctx context.Context, text string, links []string) error {
	for _, link := range links {
		text += "\n" + link
	}

	payload, err := json.Marshal(map[string]any{
		"chat_id": c.channelID,
		"text":    text,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal telegram message: %w", err)
	}

	endpoint := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", c.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram post failed: %w", err)
	}
	defer resp.Body.Close()

	var result struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode telegram response: %w", err)
	}
	if !result.OK {
		return fmt.Errorf("telegram rejected message: %s", result.Description)
	}

	return nil
}
