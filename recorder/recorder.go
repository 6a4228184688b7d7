// Package recorder persists simulation runs for external analysis and
// reporting.
package recorder

import "github.com/etnz/bondladder"

// Recorder persists a completed simulation run: its configuration, the
// valuation time series, and the full position and ledger histories.
type Recorder interface {
	// SaveRun stores a run and returns the identifier it was stored under.
	SaveRun(cfg bondladder.Config, res *bondladder.Result) (runID string, err error)
	Close() error
}

// NoopRecorder is a no-op implementation used when no database is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) SaveRun(bondladder.Config, *bondladder.Result) (string, error) {
	return "", nil
}
func (n *NoopRecorder) Close() error { return nil }
