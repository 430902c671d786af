package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"authors-probe/internal/config"
	"authors-probe/internal/probe"

	"github.com/rs/zerolog"
)

var newHTTPClient = func(cfg *config.Config) probe.Doer {
	return &http.Client{Timeout: cfg.HTTPTimeout}
}

// runProbe is the single error boundary around the login/call flow.
func runProbe(ctx context.Context, cfg *config.Config, out io.Writer, logger zerolog.Logger) error {
	logger.Debug().
		Str("login_url", cfg.LoginURL()).
		Str("target_url", cfg.TargetURL()).
		Dur("delay", cfg.Delay).
		Bool("get_body", cfg.SendGetBody).
		Msg("Starting probe")

	err := probe.NewFlow(cfg, newHTTPClient(cfg), logger).Run(ctx, out)
	if err == nil {
		return nil
	}

	var reqErr *probe.RequestError
	if errors.As(err, &reqErr) {
		fmt.Fprintln(out, "Request error:", err)
		logger.Error().Err(err).Str("method", reqErr.Method).Str("url", reqErr.URL).Msg("Request failed")
	} else {
		fmt.Fprintln(out, "Error:", err)
		logger.Error().Err(err).Msg("Probe failed")
	}
	return &reportedError{err: err}
}
