package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"authors-probe/internal/dto"

	"github.com/rs/zerolog"
)

const (
	headerContentType   = "Content-Type"
	headerAuthorization = "Authorization"
	mimeApplicationJSON = "application/json"
)

// Doer sends a single HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Authenticator exchanges credentials for a bearer token.
type Authenticator struct {
	client   Doer
	loginURL string
	logger   zerolog.Logger
}

func NewAuthenticator(client Doer, loginURL string, logger zerolog.Logger) *Authenticator {
	return &Authenticator{
		client:   client,
		loginURL: loginURL,
		logger:   logger.With().Str("component", "authenticator").Logger(),
	}
}

// Login posts creds as JSON and returns the token field of a 200 response.
// The token is treated as opaque.
func (a *Authenticator) Login(ctx context.Context, creds dto.LoginRequest) (string, error) {
	data, err := json.Marshal(creds)
	if err != nil {
		return "", fmt.Errorf("marshal credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.loginURL, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("create login request: %w", err)
	}
	req.Header.Set(headerContentType, mimeApplicationJSON)

	a.logger.Debug().Str("url", a.loginURL).Str("username", creds.Username).Msg("Sending login request")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", &RequestError{Method: http.MethodPost, URL: a.loginURL, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &RequestError{Method: http.MethodPost, URL: a.loginURL, Err: fmt.Errorf("read login response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		a.logger.Warn().Int("status", resp.StatusCode).Msg("Login rejected")
		return "", &LoginError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var out dto.LoginResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", &LoginError{StatusCode: resp.StatusCode, Body: string(body), Err: fmt.Errorf("%w: %v", ErrMissingToken, err)}
	}
	if out.Token == "" {
		return "", &LoginError{StatusCode: resp.StatusCode, Body: string(body), Err: ErrMissingToken}
	}

	a.logger.Debug().Int("token_len", len(out.Token)).Msg("Login succeeded")
	return out.Token, nil
}
