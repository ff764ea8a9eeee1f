package notifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// DiscordClient posts announcements to a Discord channel.
type DiscordClient struct {
	session   *discordgo.Session
	channelID string
}

// NewDiscordClient creates a client. The session is REST-only; no gateway
// connection is opened for announcement posting.
func NewDiscordClient(botToken, channelID string) (*DiscordClient, error) {
	session, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}

	return &DiscordClient{
		session:   session,
		channelID: channelID,
	}, nil
}

// Name implements Platform.
func (c *DiscordClient) Name() string { return "discord" }

// Post sends one message to the announcement channel.
func (c *DiscordClient) Post(ctx context.Context, text string, links []string) error {
	if len(links) > 0 {
		text += "\n" + strings.Join(links, "\n")
	}

	_, err := c.session.ChannelMessageSend(c.channelID, text, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("discord post failed: %w", err)
	}

	return nil
}
