package usecase

import (
	"github.com/darkking4096/Agente-IA/pkg/domain/interfaces"
	"github.com/darkking4096/Agente-IA/pkg/domain/model"
	"github.com/darkking4096/Agente-IA/pkg/session"
)

const (
	// DefaultHistoryLimit is how many past turns are loaded per turn.
	DefaultHistoryLimit = 10

	// DefaultFallbackReply is sent when reply generation fails. The turn
	// still runs to completion with it.
	DefaultFallbackReply = "Entendi! Me conta um pouco mais para eu poder ajudar você da melhor forma."

	// issueCaptureLimit caps how much of the first message is kept as the
	// presenting issue.
	issueCaptureLimit = 200
)

// UseCases is the conversational engine. It owns the turn pipeline and
// is safe for concurrent use; turns for the same phone number are
// serialized by the session store.
type UseCases struct {
	repo          interfaces.Repository
	store         *session.Store
	generator     interfaces.Generator
	notifier      interfaces.Notifier
	prompts       *PromptBuilder
	clinic        *model.Clinic
	historyLimit  int
	fallbackReply string
}

type Option func(*UseCases)

// WithNotifier sets the staff notifier called after a completed booking.
// Without it, completions are only logged.
func WithNotifier(n interfaces.Notifier) Option {
	return func(u *UseCases) {
		u.notifier = n
	}
}

// WithHistoryLimit overrides how many past turns are loaded from the
// repository for prompt context.
func WithHistoryLimit(limit int) Option {
	return func(u *UseCases) {
		u.historyLimit = limit
	}
}

// WithFallbackReply overrides the reply used when generation fails
func WithFallbackReply(reply string) Option {
	return func(u *UseCases) {
		u.fallbackReply = reply
	}
}

func New(repo interfaces.Repository, store *session.Store, generator interfaces.Generator, prompts *PromptBuilder, clinic *model.Clinic, options ...Option) *UseCases {
	uc := &UseCases{
		repo:          repo,
		store:         store,
		generator:     generator,
		prompts:       prompts,
		clinic:        clinic,
		historyLimit:  DefaultHistoryLimit,
		fallbackReply: DefaultFallbackReply,
	}
	for _, opt := range options {
		opt(uc)
	}
	return uc
}

// Store exposes the session store for the idle reaper and status endpoint
func (u *UseCases) Store() *session.Store {
	return u.store
}

// Repository exposes persistence for the read-only HTTP endpoints
func (u *UseCases) Repository() interfaces.Repository {
	return u.repo
}
