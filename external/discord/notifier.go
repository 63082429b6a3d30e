package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/foxseedlab/meetnotes/internal/notifier"
)

// maxMessageRunes is Discord's message content limit.
const maxMessageRunes = 2000

// Notifier posts plain messages to a single text channel over the REST API.
// No gateway connection is opened.
type Notifier struct {
	session   *discordgo.Session
	channelID string
}

var _ notifier.Notifier = (*Notifier)(nil)

func NewNotifier(token, channelID string) (*Notifier, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	return &Notifier{session: s, channelID: channelID}, nil
}

func (n *Notifier) Notify(ctx context.Context, content string) error {
	if _, err := n.session.ChannelMessageSend(n.channelID, clip(content), discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("discord message to %s: %w", n.channelID, err)
	}
	return nil
}

func clip(content string) string {
	r := []rune(content)
	if len(r) <= maxMessageRunes {
		return content
	}
	return string(r[:maxMessageRunes-1]) + "…"
}
