// Package slack escalates overdue debt alerts to a Slack channel.
package slack

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"

	"github.com/minseokoh/debtwatch/internal/domain/entity"
)

// Notifier posts overdue debt alerts to a configured channel. Implements
// the intake use case's Notifier contract.
type Notifier struct {
	client    *slack.Client
	channelID string
}

// NewNotifier creates a Slack escalation notifier.
func NewNotifier(botToken, channelID string) *Notifier {
	return &Notifier{
		client:    slack.New(botToken),
		channelID: channelID,
	}
}

// Name identifies this notifier in logs and metrics.
func (n *Notifier) Name() string {
	return "slack"
}

// Notify posts the alert to the escalation channel.
func (n *Notifier) Notify(ctx context.Context, alert *entity.Alert) error {
	summary := fmt.Sprintf(":rotating_light: Overdue %s debt: *%s* — %.2f, due %s (%d days late)",
		alert.Category,
		alert.EntityName,
		alert.Amount,
		alert.DueDate.Format("2006-01-02"),
		-alert.DaysUntilDue,
	)

	blocks := []slack.Block{
		slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, summary, false, false),
			nil, nil,
		),
	}
	if alert.Description != "" {
		blocks = append(blocks, slack.NewContextBlock("",
			slack.NewTextBlockObject(slack.MarkdownType, alert.Description, false, false),
		))
	}

	_, _, err := n.client.PostMessageContext(ctx, n.channelID,
		slack.MsgOptionText(summary, false),
		slack.MsgOptionBlocks(blocks...),
	)
	if err != nil {
		return fmt.Errorf("posting to slack channel %s: %w", n.channelID, err)
	}

	return nil
}
