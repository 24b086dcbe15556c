package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/darkking4096/Agente-IA/pkg/domain/interfaces"
	"github.com/darkking4096/Agente-IA/pkg/service/notify"
)

// Slack holds CLI flags for Slack booking notifications
type Slack struct {
	botToken string
	channel  string
}

// Flags returns CLI flags for Slack configuration
func (s *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack Bot OAuth token for booking notifications",
			Sources:     cli.EnvVars("FERNANDA_SLACK_BOT_TOKEN"),
			Destination: &s.botToken,
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel for booking notifications",
			Sources:     cli.EnvVars("FERNANDA_SLACK_CHANNEL"),
			Destination: &s.channel,
		},
	}
}

// LogAttrs returns log attributes for the Slack configuration
func (s *Slack) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.Bool("token_set", s.botToken != ""),
		slog.String("channel", s.channel),
	}
}

// Configure builds the Slack notifier. Returns nil when no token is set.
func (s *Slack) Configure() (interfaces.Notifier, error) {
	if s.botToken == "" {
		return nil, nil
	}
	if s.channel == "" {
		return nil, goerr.New("slack-channel is required when slack-bot-token is set")
	}

	notifier, err := notify.NewSlack(s.botToken, s.channel)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Slack notifier")
	}
	return notifier, nil
}
