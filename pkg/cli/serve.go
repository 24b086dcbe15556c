package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/darkking4096/Agente-IA/pkg/cli/config"
	httpctrl "github.com/darkking4096/Agente-IA/pkg/controller/http"
	"github.com/darkking4096/Agente-IA/pkg/domain/interfaces"
	"github.com/darkking4096/Agente-IA/pkg/service/llm"
	"github.com/darkking4096/Agente-IA/pkg/service/notify"
	"github.com/darkking4096/Agente-IA/pkg/service/worker"
	"github.com/darkking4096/Agente-IA/pkg/session"
	"github.com/darkking4096/Agente-IA/pkg/usecase"
	"github.com/darkking4096/Agente-IA/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var addr string
	var reapInterval time.Duration
	var idleWindow time.Duration
	var repoCfg config.Repository
	var geminiCfg config.Gemini
	var clinicCfg config.Clinic
	var whatsCfg config.WhatsApp
	var slackCfg config.Slack

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("FERNANDA_ADDR"),
			Destination: &addr,
		},
		&cli.DurationFlag{
			Name:        "reap-interval",
			Usage:       "How often idle sessions are scanned",
			Value:       worker.DefaultReapInterval,
			Sources:     cli.EnvVars("FERNANDA_REAP_INTERVAL"),
			Destination: &reapInterval,
		},
		&cli.DurationFlag{
			Name:        "idle-window",
			Usage:       "Inactivity window before a live session is evicted",
			Value:       worker.DefaultIdleWindow,
			Sources:     cli.EnvVars("FERNANDA_IDLE_WINDOW"),
			Destination: &idleWindow,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, clinicCfg.Flags()...)
	flags = append(flags, whatsCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			clinic, persona, err := clinicCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load clinic configuration")
			}
			logging.Default().Info("Clinic profile loaded",
				"clinic", clinic.Name,
				"services", len(clinic.Services))

			prompts, err := usecase.NewPromptBuilder(persona, clinic)
			if err != nil {
				return goerr.Wrap(err, "failed to build prompt template")
			}

			var generator interfaces.Generator
			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure Gemini")
			}
			if llmClient != nil {
				generator, err = llm.New(llmClient)
				if err != nil {
					return goerr.Wrap(err, "failed to create LLM client")
				}
				logging.Default().Info("Gemini reply generation enabled")
			} else {
				generator = llm.NewDisabled()
				logging.Default().Warn("Gemini not configured, replies fall back to default text")
			}

			messenger, err := whatsCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure WhatsApp channel")
			}

			var notifiers notify.Multi
			if messenger != nil && whatsCfg.AdminNumber() != "" {
				n, err := notify.NewWhatsApp(messenger, whatsCfg.AdminNumber())
				if err != nil {
					return goerr.Wrap(err, "failed to create WhatsApp notifier")
				}
				notifiers = append(notifiers, n)
			}
			slackNotifier, err := slackCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure Slack notifier")
			}
			if slackNotifier != nil {
				notifiers = append(notifiers, slackNotifier)
				logging.Default().Info("Slack booking notifications enabled")
			}

			store := session.New()

			ucOpts := []usecase.Option{}
			if len(notifiers) > 0 {
				ucOpts = append(ucOpts, usecase.WithNotifier(notifiers))
			}
			uc := usecase.New(repo, store, generator, prompts, clinic, ucOpts...)

			reaper := worker.NewSessionReaper(store,
				worker.WithInterval(reapInterval),
				worker.WithIdleWindow(idleWindow),
			)
			reaper.Start(ctx)

			httpOpts := []httpctrl.Options{}
			if messenger != nil {
				httpOpts = append(httpOpts, httpctrl.WithMessenger(messenger))
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc, httpOpts...),
				ReadHeaderTimeout: 30 * time.Second,
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				reaper.Stop()
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				reaper.Stop()

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}
				logging.Default().Info("Server stopped")
			}

			return nil
		},
	}
}
