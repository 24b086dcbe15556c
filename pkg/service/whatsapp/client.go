package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/darkking4096/Agente-IA/pkg/domain/interfaces"
	"github.com/darkking4096/Agente-IA/pkg/domain/types"
	"github.com/darkking4096/Agente-IA/pkg/utils/logging"
	"github.com/darkking4096/Agente-IA/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
)

// DefaultTimeout is the HTTP timeout for one send attempt
const DefaultTimeout = 15 * time.Second

// Client sends text messages through an Evolution API instance.
// In dev mode it logs outbound messages instead of delivering them.
type Client struct {
	baseURL    string
	apiKey     string
	instance   string
	devMode    bool
	httpClient *http.Client
}

var _ interfaces.Messenger = &Client{}

// Option is a functional option for Client configuration
type Option func(*Client)

// WithDevMode makes the client log outbound messages instead of sending
func WithDevMode(enabled bool) Option {
	return func(c *Client) {
		c.devMode = enabled
	}
}

// WithHTTPClient overrides the HTTP client (used by tests)
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates an Evolution API client. Base URL and instance may only
// be omitted in dev mode, where nothing is sent.
func New(baseURL, apiKey, instance string, opts ...Option) (*Client, error) {
	c := &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		instance:   instance,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	if !c.devMode && (c.baseURL == "" || c.instance == "") {
		return nil, goerr.New("Evolution API base URL and instance are required")
	}
	return c, nil
}

type sendTextRequest struct {
	Number string `json:"number"`
	Text   string `json:"text"`
}

// SendText delivers one text message to the phone number
func (c *Client) SendText(ctx context.Context, phone types.Phone, text string) error {
	if c.devMode {
		logging.From(ctx).Info("dev mode, outbound message suppressed",
			"phone", phone.Masked(),
			"length", len(text),
		)
		return nil
	}

	body, err := json.Marshal(sendTextRequest{
		Number: string(phone),
		Text:   text,
	})
	if err != nil {
		return goerr.Wrap(err, "failed to marshal sendText payload")
	}

	url := fmt.Sprintf("%s/message/sendText/%s", c.baseURL, c.instance)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return goerr.Wrap(err, "failed to build sendText request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "failed to call Evolution API", goerr.V("phone", phone.Masked()))
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return goerr.New("Evolution API rejected message",
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(respBody)),
			goerr.V("phone", phone.Masked()),
		)
	}

	logging.From(ctx).Debug("outbound message sent",
		"phone", phone.Masked(),
		"status", resp.StatusCode,
	)
	return nil
}
