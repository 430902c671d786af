package probe

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"authors-probe/internal/dto"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type doerFunc func(*http.Request) (*http.Response, error)

func (f doerFunc) Do(req *http.Request) (*http.Response, error) { return f(req) }

type failingBody struct{}

func (failingBody) Read([]byte) (int, error) { return 0, errors.New("reset") }
func (failingBody) Close() error             { return nil }

func TestAuthenticatorLogin(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var got dto.LoginRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/api/login/", r.URL.Path)
			require.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.Empty(t, r.Header.Get("Authorization"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.Write([]byte(`{"token":"abc"}`))
		}))
		defer srv.Close()

		a := NewAuthenticator(srv.Client(), srv.URL+"/api/login/", zerolog.Nop())
		token, err := a.Login(context.Background(), dto.LoginRequest{Username: "useris", Password: "labas"})
		require.NoError(t, err)
		require.Equal(t, "abc", token)
		require.Equal(t, dto.LoginRequest{Username: "useris", Password: "labas"}, got)
	})

	t.Run("rejected", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"Invalid credentials"}`))
		}))
		defer srv.Close()

		a := NewAuthenticator(srv.Client(), srv.URL, zerolog.Nop())
		_, err := a.Login(context.Background(), dto.LoginRequest{Username: "u", Password: "p"})
		var loginErr *LoginError
		require.ErrorAs(t, err, &loginErr)
		require.Equal(t, http.StatusUnauthorized, loginErr.StatusCode)
		require.Contains(t, err.Error(), "HTTP 401")
		require.Contains(t, err.Error(), "Invalid credentials")
	})

	t.Run("missing token", func(t *testing.T) {
		for _, body := range []string{`{}`, `{"token":""}`, `<html>`} {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			}))
			a := NewAuthenticator(srv.Client(), srv.URL, zerolog.Nop())
			_, err := a.Login(context.Background(), dto.LoginRequest{})
			srv.Close()
			require.ErrorIs(t, err, ErrMissingToken, "body %q", body)
		}
	})

	t.Run("transport error", func(t *testing.T) {
		a := NewAuthenticator(doerFunc(func(*http.Request) (*http.Response, error) {
			return nil, errors.New("dial tcp 127.0.0.1:8000: connect: connection refused")
		}), "http://127.0.0.1:8000/api/login/", zerolog.Nop())
		_, err := a.Login(context.Background(), dto.LoginRequest{})
		var reqErr *RequestError
		require.ErrorAs(t, err, &reqErr)
		require.Equal(t, http.MethodPost, reqErr.Method)
		require.Contains(t, err.Error(), "connection refused")
	})

	t.Run("body read error", func(t *testing.T) {
		a := NewAuthenticator(doerFunc(func(*http.Request) (*http.Response, error) {
			return &http.Response{StatusCode: http.StatusOK, Body: failingBody{}}, nil
		}), "http://x/api/login/", zerolog.Nop())
		_, err := a.Login(context.Background(), dto.LoginRequest{})
		var reqErr *RequestError
		require.ErrorAs(t, err, &reqErr)
	})

	t.Run("bad url", func(t *testing.T) {
		a := NewAuthenticator(http.DefaultClient, "http://bad host/", zerolog.Nop())
		_, err := a.Login(context.Background(), dto.LoginRequest{})
		require.Error(t, err)
		require.True(t, strings.HasPrefix(err.Error(), "create login request"))
	})
}

func TestLoginErrorMessage(t *testing.T) {
	err := &LoginError{StatusCode: 200, Err: ErrMissingToken}
	require.Equal(t, "login failed: login response has no token", err.Error())
	require.ErrorIs(t, err, ErrMissingToken)
}
