package pfr

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrTransientFetch marks failures worth retrying: transport errors, timeouts and
	// 408/429/5xx answers.
	ErrTransientFetch = errors.New("transient fetch failure")
	ErrForeignURL     = errors.New("url is not on the configured site")
	ErrExtraction     = errors.New("page extraction failed")
)

// FetchError is returned once a page could not be fetched.
type FetchError struct {
	URL        string
	Attempts   int
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetch %s: status %d after %d attempt(s): %v", e.URL, e.StatusCode, e.Attempts, e.Err)
	}
	return fmt.Sprintf("fetch %s after %d attempt(s): %v", e.URL, e.Attempts, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// extractionErrorf builds an error marked with ErrExtraction.
func extractionErrorf(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrExtraction)
}

func wrapExtraction(err error, format string, args ...any) error {
	return errors.Mark(errors.Wrapf(err, format, args...), ErrExtraction)
}
