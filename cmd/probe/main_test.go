package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"authors-probe/internal/config"
	"authors-probe/internal/logging"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var origStartServer = startServer

func restoreGlobals() {
	newConfig = config.NewConfig
	newLogger = logging.NewLogger
	startServer = origStartServer
	stdout = os.Stdout
	stderr = os.Stderr
	exitFunc = os.Exit
}

func testConfig() *config.Config {
	return &config.Config{
		LogLevel:       "error",
		BaseURL:        "http://127.0.0.1:8000",
		LoginPath:      "/api/login/",
		TargetPath:     "/api/authors",
		Username:       "useris",
		Password:       "labas",
		Page:           1,
		Search:         "80",
		PayloadName:    "John",
		PayloadSurname: "810",
		SendGetBody:    true,
		Delay:          time.Second,
		MockPort:       8000,
		JWTSecret:      "secret",
		MockUsername:   "useris",
		MockPassword:   "labas",
	}
}

func setArgs(t *testing.T, args ...string) {
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = args
}

// startMockAPI runs the mockapi command against an httptest listener.
func startMockAPI(t *testing.T) *httptest.Server {
	t.Helper()
	var e *echo.Echo
	startServer = func(_ context.Context, srv *echo.Echo, addr string) error {
		e = srv
		require.Equal(t, ":8000", addr)
		return nil
	}
	require.NoError(t, runMockAPI(context.Background(), testConfig(), zerolog.Nop()))
	require.NotNil(t, e)
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv
}

func TestRunAgainstMockAPI(t *testing.T) {
	t.Cleanup(restoreGlobals)
	srv := startMockAPI(t)
	newConfig = func() (*config.Config, error) { return testConfig(), nil }

	var out, errOut bytes.Buffer
	cmd := rootCmd(&out, &errOut)
	cmd.SetArgs([]string{"--base-url", srv.URL, "--delay", "0s"})
	require.NoError(t, cmd.Execute())

	lines := bytes.Split(bytes.TrimRight(out.Bytes(), "\n"), []byte("\n"))
	// echo terminates JSON bodies with a newline, so the raw body is followed
	// by an empty line
	require.Len(t, lines, 5)
	require.NotEmpty(t, lines[0])
	require.Empty(t, lines[1])
	require.JSONEq(t, `{"status":"Success","results":0,"authors":[]}`, string(lines[2]))
	require.Empty(t, lines[3])
	require.Equal(t, "Response JSON: {'status': 'Success', 'results': 0, 'authors': []}", string(lines[4]))
}

func TestRunWrongPassword(t *testing.T) {
	t.Cleanup(restoreGlobals)
	srv := startMockAPI(t)
	newConfig = func() (*config.Config, error) { return testConfig(), nil }

	var out bytes.Buffer
	cmd := rootCmd(&out, &bytes.Buffer{})
	cmd.SetArgs([]string{"--base-url", srv.URL, "-p", "wrong"})
	err := cmd.Execute()
	var reported *reportedError
	require.ErrorAs(t, err, &reported)
	require.Contains(t, out.String(), "Error: login failed: HTTP 401")
}

func TestRunRequestError(t *testing.T) {
	t.Cleanup(restoreGlobals)
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	newConfig = func() (*config.Config, error) { return testConfig(), nil }

	var out bytes.Buffer
	stdout = &out
	stderr = &bytes.Buffer{}
	exitCode := 0
	exitFunc = func(code int) { exitCode = code }

	setArgs(t, appName, "--base-url", srv.URL)
	main()
	require.Equal(t, 1, exitCode)
	require.Contains(t, out.String(), "Request error:")
}

func TestRunNonJSONSuccessBody(t *testing.T) {
	t.Cleanup(restoreGlobals)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.Write([]byte(`{"token":"xyz"}`))
			return
		}
		w.Write([]byte(`<html>oops</html>`))
	}))
	defer srv.Close()
	newConfig = func() (*config.Config, error) { return testConfig(), nil }

	var out bytes.Buffer
	cmd := rootCmd(&out, &bytes.Buffer{})
	cmd.SetArgs([]string{"--base-url", srv.URL, "--delay", "0s"})
	var reported *reportedError
	require.ErrorAs(t, cmd.Execute(), &reported)
	require.Equal(t, "xyz\n\n<html>oops</html>\nRequest error: response body is not valid JSON\n", out.String())
}

func TestMainConfigError(t *testing.T) {
	t.Cleanup(restoreGlobals)
	newConfig = func() (*config.Config, error) { return nil, errors.New("bad env") }
	var errOut bytes.Buffer
	stderr = &errOut
	stdout = &bytes.Buffer{}
	exitCode := 0
	exitFunc = func(code int) { exitCode = code }

	setArgs(t, appName)
	main()
	require.Equal(t, 1, exitCode)
	require.Contains(t, errOut.String(), "Error: load config: bad env")
}

func TestInvalidFlagValue(t *testing.T) {
	t.Cleanup(restoreGlobals)
	newConfig = func() (*config.Config, error) { return testConfig(), nil }
	cmd := rootCmd(&bytes.Buffer{}, &bytes.Buffer{})
	cmd.SetArgs([]string{"--page", "0"})
	require.ErrorContains(t, cmd.Execute(), "invalid config")
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := rootCmd(&out, &bytes.Buffer{})
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	require.Equal(t, "probe version 0.1.0\n", out.String())
}

func TestMockAPICommand(t *testing.T) {
	t.Cleanup(restoreGlobals)
	newConfig = func() (*config.Config, error) { return testConfig(), nil }

	var gotAddr string
	startServer = func(_ context.Context, _ *echo.Echo, addr string) error {
		gotAddr = addr
		return nil
	}
	cmd := rootCmd(&bytes.Buffer{}, &bytes.Buffer{})
	cmd.SetArgs([]string{"mockapi", "--port", "9001"})
	require.NoError(t, cmd.Execute())
	require.Equal(t, ":9001", gotAddr)

	startServer = func(context.Context, *echo.Echo, string) error { return errors.New("listen") }
	cmd = rootCmd(&bytes.Buffer{}, &bytes.Buffer{})
	cmd.SetArgs([]string{"mockapi"})
	require.EqualError(t, cmd.Execute(), "listen")
}

func TestMockAPISwaggerDoc(t *testing.T) {
	t.Cleanup(restoreGlobals)
	srv := startMockAPI(t)

	resp, err := http.Get(srv.URL + "/swagger/doc.json")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var doc struct {
		Host     string                    `json:"host"`
		BasePath string                    `json:"basePath"`
		Paths    map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	require.Equal(t, "localhost:8000", doc.Host)
	require.Equal(t, "/api", doc.BasePath)
	require.Contains(t, doc.Paths, "/login")
	require.Contains(t, doc.Paths["/authors"], "get")
	require.Contains(t, doc.Paths["/authors/{id}"], "patch")
}

func TestRunMockAPIEmptySecret(t *testing.T) {
	cfg := testConfig()
	cfg.JWTSecret = ""
	require.Error(t, runMockAPI(context.Background(), cfg, zerolog.Nop()))
}

func TestCustomValidator(t *testing.T) {
	e := newEcho(zerolog.Nop())
	type s struct {
		Name string `validate:"required"`
	}
	require.NoError(t, e.Validator.Validate(&s{Name: "ok"}))
	require.Error(t, e.Validator.Validate(&s{}))
}
