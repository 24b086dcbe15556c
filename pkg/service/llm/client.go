package llm

import (
	"context"
	"strings"

	"github.com/darkking4096/Agente-IA/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
)

const (
	// DefaultMaxSentences bounds the reply length: the receptionist answers
	// in at most three sentences regardless of what the model produces.
	DefaultMaxSentences = 3
)

// Client adapts a gollem LLM client to the engine's Generator interface.
// Each Generate call uses a fresh session: the prompt assembler already
// carries all conversational context, so no session history is wanted.
type Client struct {
	llm          gollem.LLMClient
	maxSentences int
}

var _ interfaces.Generator = &Client{}

// Option is a functional option for Client configuration
type Option func(*Client)

// WithMaxSentences overrides the reply sentence cap
func WithMaxSentences(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxSentences = n
		}
	}
}

// New creates a Generator backed by the given gollem client
func New(llmClient gollem.LLMClient, opts ...Option) (*Client, error) {
	if llmClient == nil {
		return nil, goerr.New("LLM client is required")
	}

	c := &Client{
		llm:          llmClient,
		maxSentences: DefaultMaxSentences,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Generate produces a bounded reply for the assembled prompt
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	session, err := c.llm.NewSession(ctx)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create LLM session")
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(prompt))
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate reply")
	}
	if resp == nil || len(resp.Texts) == 0 {
		return "", goerr.New("LLM returned empty response")
	}

	text := strings.TrimSpace(strings.Join(resp.Texts, "\n"))
	return CapSentences(text, c.maxSentences), nil
}

// CapSentences truncates the text to at most n sentences. Sentence breaks
// follow the original reply contract: ". " separators with the final period
// restored on truncation.
func CapSentences(text string, n int) string {
	if n <= 0 {
		return text
	}
	sentences := strings.Split(text, ". ")
	if len(sentences) <= n {
		return text
	}
	return strings.Join(sentences[:n], ". ") + "."
}
