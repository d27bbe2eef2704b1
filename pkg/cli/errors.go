package cli

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/travigo/sbb/pkg/sbbapi"
	"github.com/urfave/cli/v2"
	"golang.org/x/exp/slices"
)

const (
	ExitOK        = 0
	ExitError     = 1
	ExitNoResults = 2
	ExitTimeout   = 3
)

// Statuses that usually mean the embedded secret or pinned certificate no
// longer match what the server expects
var staleCredentialStatuses = []int{http.StatusUnauthorized, http.StatusForbidden}

var rateLimitStatuses = []int{http.StatusTooManyRequests}

var errNoResults = errors.New("no connections found")

func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var timeoutError *sbbapi.TimeoutError
	if errors.As(err, &timeoutError) {
		return ExitTimeout
	}

	if errors.Is(err, errNoResults) {
		return ExitNoResults
	}

	return ExitError
}

// Hint returns a short suggestion for the user, or "" when there is nothing
// useful to add to the error itself.
func Hint(err error) string {
	var (
		networkError *sbbapi.NetworkError
		timeoutError *sbbapi.TimeoutError
		httpError    *sbbapi.HTTPError
	)

	switch {
	case errors.As(err, &timeoutError):
		return "the server did not answer in time, try again or raise --timeout"
	case errors.As(err, &networkError):
		return "check your network connection and try again"
	case errors.As(err, &httpError) && slices.Contains(staleCredentialStatuses, httpError.StatusCode):
		return "the request was rejected, the signing secret or pinned certificate is probably out of date"
	case errors.As(err, &httpError) && slices.Contains(rateLimitStatuses, httpError.StatusCode):
		return "too many requests, wait a while before searching again"
	}

	return ""
}

// exitError turns err into an urfave exit error carrying the matching exit
// code and hint.
func exitError(err error) error {
	if err == nil {
		return nil
	}

	code := ExitCode(err)
	if code == ExitNoResults {
		return cli.Exit("", code)
	}

	message := fmt.Sprintf("error: %s", err)
	if hint := Hint(err); hint != "" {
		message += "\nhint: " + hint
	}

	return cli.Exit(message, code)
}
