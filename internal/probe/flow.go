package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"authors-probe/internal/config"
	"authors-probe/internal/dto"

	"github.com/rs/zerolog"
)

// sleep waits d or until ctx is done.
var sleep = func(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Flow logs in, pauses, then performs one authenticated call.
type Flow struct {
	auth    *Authenticator
	caller  *AuthenticatedCaller
	creds   dto.LoginRequest
	target  string
	payload any
	delay   time.Duration
	logger  zerolog.Logger
}

// NewFlow builds a Flow from cfg. The pause between the two requests is
// cfg.Delay; it is unconditional and never used as a backoff.
func NewFlow(cfg *config.Config, client Doer, logger zerolog.Logger) *Flow {
	var payload any
	if cfg.SendGetBody {
		payload = dto.AuthorRequest{Name: cfg.PayloadName, Surname: cfg.PayloadSurname}
	}
	return &Flow{
		auth:    NewAuthenticator(client, cfg.LoginURL(), logger),
		caller:  NewAuthenticatedCaller(client, logger),
		creds:   dto.LoginRequest{Username: cfg.Username, Password: cfg.Password},
		target:  cfg.TargetURL(),
		payload: payload,
		delay:   cfg.Delay,
		logger:  logger.With().Str("component", "flow").Logger(),
	}
}

// Run performs the exchange and writes the token, the raw response body and
// either the rendered JSON or the status code to out.
func (f *Flow) Run(ctx context.Context, out io.Writer) error {
	token, err := f.auth.Login(ctx, f.creds)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s\n\n", token)

	f.logger.Debug().Dur("delay", f.delay).Msg("Pausing before authenticated call")
	if err := sleep(ctx, f.delay); err != nil {
		return &RequestError{Method: http.MethodGet, URL: f.target, Err: err}
	}

	res, err := f.caller.Call(ctx, f.target, token, f.payload)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, string(res.Body))

	if res.StatusCode != http.StatusOK {
		fmt.Fprintln(out, res.StatusCode)
		return nil
	}

	rendered, err := Render(res.Body)
	if err != nil {
		// an undecodable 200 is reported like a transport failure
		return &RequestError{Method: http.MethodGet, URL: f.target, Err: err}
	}
	fmt.Fprintln(out, "Response JSON:", rendered)
	return nil
}
