package notify

import (
	"context"

	"github.com/darkking4096/Agente-IA/pkg/domain/interfaces"
	"github.com/darkking4096/Agente-IA/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
	"golang.org/x/sync/errgroup"
)

// WhatsAppNotifier forwards admin summaries to a WhatsApp number through
// the same messenger used for caller replies.
type WhatsAppNotifier struct {
	messenger interfaces.Messenger
	admin     types.Phone
}

var _ interfaces.Notifier = &WhatsAppNotifier{}

// NewWhatsApp creates a notifier targeting the admin WhatsApp number
func NewWhatsApp(messenger interfaces.Messenger, admin types.Phone) (*WhatsAppNotifier, error) {
	if messenger == nil {
		return nil, goerr.New("messenger is required")
	}
	if err := admin.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid admin phone")
	}
	return &WhatsAppNotifier{messenger: messenger, admin: admin}, nil
}

func (n *WhatsAppNotifier) Notify(ctx context.Context, summary string) error {
	if err := n.messenger.SendText(ctx, n.admin, summary); err != nil {
		return goerr.Wrap(err, "failed to notify admin via WhatsApp")
	}
	return nil
}

// SlackNotifier posts admin summaries to a Slack channel
type SlackNotifier struct {
	api     *slack.Client
	channel string
}

var _ interfaces.Notifier = &SlackNotifier{}

// NewSlack creates a notifier targeting the given Slack channel
func NewSlack(token, channel string) (*SlackNotifier, error) {
	if token == "" || channel == "" {
		return nil, goerr.New("Slack bot token and channel are required")
	}
	return &SlackNotifier{
		api:     slack.New(token),
		channel: channel,
	}, nil
}

func (n *SlackNotifier) Notify(ctx context.Context, summary string) error {
	_, _, err := n.api.PostMessageContext(ctx, n.channel,
		slack.MsgOptionText(summary, false),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post Slack notification", goerr.V("channel", n.channel))
	}
	return nil
}

// Multi fans a summary out to every notifier in parallel. All of them
// are attempted; the first error is reported.
type Multi []interfaces.Notifier

var _ interfaces.Notifier = Multi{}

func (m Multi) Notify(ctx context.Context, summary string) error {
	var eg errgroup.Group
	for _, n := range m {
		eg.Go(func() error {
			return n.Notify(ctx, summary)
		})
	}
	return eg.Wait()
}
