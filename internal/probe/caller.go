package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"
)

// Result is the raw outcome of an authenticated call.
type Result struct {
	StatusCode int
	Body       []byte
}

// AuthenticatedCaller issues a GET carrying a bearer token.
type AuthenticatedCaller struct {
	client Doer
	logger zerolog.Logger
}

func NewAuthenticatedCaller(client Doer, logger zerolog.Logger) *AuthenticatedCaller {
	return &AuthenticatedCaller{
		client: client,
		logger: logger.With().Str("component", "caller").Logger(),
	}
}

// Call sends GET target with "Authorization: Bearer <token>". A non-nil payload
// is JSON-encoded into the request body even though the method is GET; the
// upstream API has always been called that way.
func (c *AuthenticatedCaller) Call(ctx context.Context, target, token string, payload any) (*Result, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal payload: %w", err)
		}
		body = bytes.NewReader(data)
		c.logger.Warn().Str("url", target).Msg("Sending JSON body on GET request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set(headerContentType, mimeApplicationJSON)
	req.Header.Set(headerAuthorization, "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &RequestError{Method: http.MethodGet, URL: target, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{Method: http.MethodGet, URL: target, Err: fmt.Errorf("read response: %w", err)}
	}

	c.logger.Debug().Str("url", target).Int("status", resp.StatusCode).Int("size", len(data)).Msg("Authenticated call finished")
	return &Result{StatusCode: resp.StatusCode, Body: data}, nil
}
