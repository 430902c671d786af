package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"authors-probe/internal/config"
	"authors-probe/internal/logging"

	"github.com/spf13/cobra"
)

var (
	newConfig = config.NewConfig
	newLogger = logging.NewLogger
)

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func rootCmd(out, errOut io.Writer) *cobra.Command {
	var (
		baseURL   string
		username  string
		password  string
		page      int
		search    string
		delay     time.Duration
		logLevel  string
		noGetBody bool
	)

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Log in to a JWT-protected API and make one authenticated call",
		Long: `probe posts credentials to the login endpoint, reads the bearer token
from the JSON response, waits for the configured delay and then sends one
authenticated GET to the target endpoint.

The token and the raw response body are printed; a 200 response is also
printed as parsed JSON, any other status as its numeric code.

Settings come from the environment (PROBE_*, see .env); flags override them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := newConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			flags := cmd.Flags()
			if flags.Changed("base-url") {
				cfg.BaseURL = baseURL
			}
			if flags.Changed("username") {
				cfg.Username = username
			}
			if flags.Changed("password") {
				cfg.Password = password
			}
			if flags.Changed("page") {
				cfg.Page = page
			}
			if flags.Changed("search") {
				cfg.Search = search
			}
			if flags.Changed("delay") {
				cfg.Delay = delay
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if noGetBody {
				cfg.SendGetBody = false
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, flush := newLogger(cfg, errOut)
			defer flush()

			ctx, cancel := signalContext()
			defer cancel()

			return runProbe(ctx, cfg, out, logger)
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "", "API root URL (PROBE_BASE_URL)")
	cmd.Flags().StringVarP(&username, "username", "u", "", "Login username (PROBE_USERNAME)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Login password (PROBE_PASSWORD)")
	cmd.Flags().IntVar(&page, "page", 1, "page query parameter (PROBE_PAGE)")
	cmd.Flags().StringVar(&search, "search", "", "search query parameter (PROBE_SEARCH)")
	cmd.Flags().DurationVar(&delay, "delay", time.Second, "Pause between login and the authenticated call (PROBE_DELAY)")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.Flags().BoolVar(&noGetBody, "no-get-body", false, "Do not send a JSON body with the authenticated GET")

	cmd.AddCommand(mockAPICmd(errOut))
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(out, "%s version %s\n", appName, Version)
		},
	})

	return cmd
}
