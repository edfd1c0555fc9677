package backend

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

const loginPath = "/auth/login"

// Config customises the backend client.
type Config struct {
	// BaseURL is the backend root; the "/api" prefix is appended here.
	BaseURL string
	Timeout time.Duration
}

// Client is the single shared HTTP adapter for the training-center backend.
// Every domain service in this package issues its calls through it.
type Client struct {
	http   *resty.Client
	logger zerolog.Logger
}

type tokenKey struct{}

// WithToken returns a context that makes the client attach the given bearer
// token to any request issued with it.
func WithToken(ctx context.Context, token string) context.Context {
	if strings.TrimSpace(token) == "" {
		return ctx
	}
	return context.WithValue(ctx, tokenKey{}, token)
}

// New builds the shared client with the outbound and inbound interception
// contracts wired in.
func New(cfg Config, logger zerolog.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/") + "/api").
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")

	// Outbound: attach the session's bearer token when one is bound to the
	// request context; otherwise the request goes out unmodified.
	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if token, ok := req.Context().Value(tokenKey{}).(string); ok {
			req.SetAuthToken(token)
		}
		return nil
	})

	// Inbound: a 401 anywhere but the login operation means the stored
	// credential is no longer valid. The login call is exempt so the login
	// page can show an inline error instead of bouncing through a redirect.
	httpClient.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		if resp.StatusCode() == 401 && !strings.HasSuffix(resp.Request.URL, loginPath) {
			return ErrSessionExpired
		}
		return nil
	})

	return &Client{
		http:   httpClient,
		logger: logger.With().Str("component", "backend_client").Logger(),
	}
}

// check normalizes the outcome of a call into at most one typed error.
// Preference order for the message: body "error" field, then the per-call
// fallback; a transport failure with no response maps to the fixed
// connectivity message.
func (c *Client) check(resp *resty.Response, err error, fallback string) error {
	if err != nil {
		if errors.Is(err, ErrSessionExpired) {
			return ErrSessionExpired
		}
		c.logger.Error().Err(err).Msg("backend unreachable")
		return &Error{Kind: KindConnectivity, Message: MsgCannotReachServer}
	}

	if resp.IsError() {
		message := bodyErrorMessage(resp.Body())
		if message == "" {
			message = fallback
		}
		return &Error{Kind: kindForStatus(resp.StatusCode()), Message: message}
	}

	return nil
}

func bodyErrorMessage(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return strings.TrimSpace(payload.Error)
}
