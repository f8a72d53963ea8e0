// Package sweep removes audio artifacts that have outlived the retention
// period.
package sweep

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"codeberg.org/snonux/gospeltts/internal/store"
)

// DefaultMaxAgeDays is the retention period used by the web form.
const DefaultMaxAgeDays = 7

// Report summarizes one sweep.
type Report struct {
	Scanned int
	Deleted []string
	Failed  []string
}

// Sweeper deletes artifacts older than a cutoff. It is the only component
// that deletes artifacts.
type Sweeper struct {
	store  *store.Store
	logger zerolog.Logger
	now    func() time.Time
}

// New creates a sweeper over st.
func New(st *store.Store, logger zerolog.Logger) *Sweeper {
	return &Sweeper{
		store:  st,
		logger: logger.With().Str("component", "sweep").Logger(),
		now:    time.Now,
	}
}

// Sweep deletes every artifact last modified before now minus maxAgeDays.
// A failed delete is logged and the sweep continues; all delete failures are
// returned joined after the pass completes.
func (s *Sweeper) Sweep(maxAgeDays int) (Report, error) {
	var report Report
	if maxAgeDays < 0 {
		return report, fmt.Errorf("max age must not be negative: %d", maxAgeDays)
	}

	artifacts, err := s.store.List()
	if err != nil {
		return report, err
	}
	report.Scanned = len(artifacts)

	cutoff := s.now().Add(-time.Duration(maxAgeDays) * 24 * time.Hour)

	var errs []error
	for _, a := range artifacts {
		if !a.CreatedAt.Before(cutoff) {
			continue
		}
		if err := s.store.Delete(a.Name); err != nil {
			// Already gone is the outcome we wanted.
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			s.logger.Warn().Err(err).Str("path", a.Path).Msg("failed to delete expired artifact")
			report.Failed = append(report.Failed, a.Name)
			errs = append(errs, err)
			continue
		}
		s.logger.Info().Str("path", a.Path).Time("modified", a.CreatedAt).Msg("Deleted")
		report.Deleted = append(report.Deleted, a.Name)
	}

	return report, errors.Join(errs...)
}
