// Package notify publishes answers to chat channels.
package notify

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"

	"github.com/tinkerloft/promptshape/internal/model"
)

// SlackNotifier posts answers to a Slack channel.
type SlackNotifier struct {
	client  *slack.Client
	channel string
}

// NewSlackNotifier creates a notifier for channel using a bot token.
func NewSlackNotifier(token, channel string, opts ...slack.Option) *SlackNotifier {
	return &SlackNotifier{
		client:  slack.New(token, opts...),
		channel: channel,
	}
}

// Channel returns the channel answers are posted to.
func (n *SlackNotifier) Channel() string {
	return n.channel
}

// PostAnswer posts the question, strategy and answer as one message.
func (n *SlackNotifier) PostAnswer(ctx context.Context, question string, strategy model.Strategy, answer string) error {
	_, _, err := n.client.PostMessageContext(ctx, n.channel,
		slack.MsgOptionText(FormatAnswer(question, strategy, answer), false))
	if err != nil {
		return fmt.Errorf("posting answer to slack channel %s: %w", n.channel, err)
	}
	return nil
}

// FormatAnswer renders an answer as Slack mrkdwn.
func FormatAnswer(question string, strategy model.Strategy, answer string) string {
	return fmt.Sprintf("*Q:* %s\n*Technique:* %s\n\n%s", question, strategy.Label(), answer)
}
