package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/darkking4096/Agente-IA/pkg/domain/interfaces"
	"github.com/darkking4096/Agente-IA/pkg/domain/types"
	"github.com/darkking4096/Agente-IA/pkg/service/whatsapp"
)

// WhatsApp holds CLI flags for the Evolution API message channel
type WhatsApp struct {
	baseURL     string
	apiKey      string
	instance    string
	devMode     bool
	adminNumber string
}

// Flags returns CLI flags for WhatsApp configuration
func (w *WhatsApp) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "evolution-url",
			Usage:       "Evolution API base URL",
			Sources:     cli.EnvVars("FERNANDA_EVOLUTION_URL"),
			Destination: &w.baseURL,
		},
		&cli.StringFlag{
			Name:        "evolution-api-key",
			Usage:       "Evolution API key",
			Sources:     cli.EnvVars("FERNANDA_EVOLUTION_API_KEY"),
			Destination: &w.apiKey,
		},
		&cli.StringFlag{
			Name:        "evolution-instance",
			Usage:       "Evolution API instance name",
			Value:       "fernanda",
			Sources:     cli.EnvVars("FERNANDA_EVOLUTION_INSTANCE"),
			Destination: &w.instance,
		},
		&cli.BoolFlag{
			Name:        "whatsapp-dev-mode",
			Usage:       "Log outbound messages instead of delivering them",
			Sources:     cli.EnvVars("FERNANDA_WHATSAPP_DEV_MODE"),
			Destination: &w.devMode,
		},
		&cli.StringFlag{
			Name:        "admin-number",
			Usage:       "Staff WhatsApp number for booking notifications",
			Sources:     cli.EnvVars("FERNANDA_ADMIN_NUMBER"),
			Destination: &w.adminNumber,
		},
	}
}

// LogAttrs returns log attributes for the WhatsApp configuration
func (w *WhatsApp) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("base_url", w.baseURL),
		slog.String("instance", w.instance),
		slog.Bool("dev_mode", w.devMode),
		slog.Bool("api_key_set", w.apiKey != ""),
	}
}

// AdminNumber returns the staff notification number, empty when unset
func (w *WhatsApp) AdminNumber() types.Phone {
	return types.NormalizePhone(w.adminNumber)
}

// Configure builds the outbound message channel. Returns nil when no
// base URL is configured and dev mode is off; replies are then only
// returned in the webhook response.
func (w *WhatsApp) Configure() (interfaces.Messenger, error) {
	if w.baseURL == "" && !w.devMode {
		return nil, nil
	}

	opts := []whatsapp.Option{whatsapp.WithDevMode(w.devMode)}
	client, err := whatsapp.New(w.baseURL, w.apiKey, w.instance, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create WhatsApp client")
	}
	return client, nil
}
