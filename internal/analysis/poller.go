// Package analysis retrieves the backend's AI feedback for a submitted
// programming answer. Generation is asynchronous, so the poller asks at a
// fixed interval until the analysis is ready or the context ends.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/practica-app/practica/internal/domain"
)

// DefaultInterval is how often the backend is polled.
const DefaultInterval = 2 * time.Second

// Fetcher is the slice of the API client the poller needs.
type Fetcher interface {
	Analysis(ctx context.Context, submissionID string) (*domain.Analysis, error)
}

// Poller waits for submission analyses.
type Poller struct {
	fetcher  Fetcher
	interval time.Duration
}

// NewPoller creates a poller with the given interval; zero means
// DefaultInterval.
func NewPoller(fetcher Fetcher, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{fetcher: fetcher, interval: interval}
}

// Wait blocks until the analysis for the submission is ready, the backend
// reports it unknown, or the context is done. Pending responses keep the
// loop going; any other fetch error is surfaced immediately.
func (p *Poller) Wait(ctx context.Context, submissionID string) (*domain.Analysis, error) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		analysis, err := p.fetcher.Analysis(ctx, submissionID)
		if err == nil {
			return analysis, nil
		}
		if !errors.Is(err, domain.ErrAnalysisPending) {
			return nil, fmt.Errorf("fetch analysis: %w", err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
