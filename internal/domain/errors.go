package domain

import (
	"errors"
	"fmt"
)

// ErrNoPortfolioFound is the terminal outcome of a selection run in which no
// window produced a feasible, positive-return portfolio. It is a valid result,
// not a failure: callers must present it as "no suitable portfolio" and must
// never confuse it with the typed error kinds below.
var ErrNoPortfolioFound = errors.New("no suitable portfolio found")

// InvalidInputError reports malformed or out-of-range caller input: a bad risk
// tolerance string, an unknown survey value, an undersized candidate pool.
// Always fatal to the current request and never worth retrying.
type InvalidInputError struct {
	Msg string
}

func (e InvalidInputError) Error() string {
	return e.Msg
}

// NewInvalidInput builds an InvalidInputError with a formatted message.
func NewInvalidInput(format string, args ...interface{}) InvalidInputError {
	return InvalidInputError{Msg: fmt.Sprintf(format, args...)}
}

// EnrichmentError reports a failed ESG/sector lookup during enrichment.
// Enrichment is all-or-nothing: one failed lookup discards all partial
// results, and the underlying collaborator carries no idempotence guarantee,
// so blind retries are unsafe.
type EnrichmentError struct {
	Ticker string
	Err    error
}

func (e EnrichmentError) Error() string {
	if e.Ticker == "" {
		return fmt.Sprintf("enrichment failed: %v", e.Err)
	}
	return fmt.Sprintf("enrichment failed for %s: %v", e.Ticker, e.Err)
}

func (e EnrichmentError) Unwrap() error {
	return e.Err
}

// SelectionError reports an analytics collaborator failure that survived
// per-window retries. The selection run aborts as a whole: skipping the
// failed window and moving on would silently bias the result.
type SelectionError struct {
	Window int
	Err    error
}

func (e SelectionError) Error() string {
	return fmt.Sprintf("portfolio selection failed at window %d: %v", e.Window, e.Err)
}

func (e SelectionError) Unwrap() error {
	return e.Err
}
