// Command probe logs in to a JWT-protected API, waits, then issues one
// authenticated request and prints the result. The mockapi subcommand serves
// a local in-memory stand-in of that API.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	Version = "0.1.0"
	appName = "probe"
)

var (
	stdout   io.Writer = os.Stdout
	stderr   io.Writer = os.Stderr
	exitFunc           = os.Exit
)

// reportedError marks an error that was already printed at the error boundary.
type reportedError struct{ err error }

func (r *reportedError) Error() string { return r.err.Error() }
func (r *reportedError) Unwrap() error { return r.err }

func main() {
	if err := rootCmd(stdout, stderr).Execute(); err != nil {
		var reported *reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintln(stderr, "Error:", err)
		}
		exitFunc(1)
	}
}
