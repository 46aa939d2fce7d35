package analysis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/practica-app/practica/internal/domain"
)

// scriptedFetcher returns one canned response per call, in order.
type scriptedFetcher struct {
	calls     int
	responses []func() (*domain.Analysis, error)
}

func (s *scriptedFetcher) Analysis(ctx context.Context, submissionID string) (*domain.Analysis, error) {
	i := s.calls
	s.calls++
	if i >= len(s.responses) {
		i = len(s.responses) - 1
	}
	return s.responses[i]()
}

func pending() (*domain.Analysis, error) {
	return nil, domain.ErrAnalysisPending
}

func ready() (*domain.Analysis, error) {
	return &domain.Analysis{Ready: true, ContentHTML: "<p>feedback</p>"}, nil
}

func TestPoller_WaitImmediatelyReady(t *testing.T) {
	fetcher := &scriptedFetcher{responses: []func() (*domain.Analysis, error){ready}}
	p := NewPoller(fetcher, time.Millisecond)

	analysis, err := p.Wait(context.Background(), "sub-1")
	if err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if analysis.ContentHTML != "<p>feedback</p>" {
		t.Errorf("ContentHTML = %q", analysis.ContentHTML)
	}
	if fetcher.calls != 1 {
		t.Errorf("fetcher called %d times, want 1", fetcher.calls)
	}
}

func TestPoller_WaitPollsThroughPending(t *testing.T) {
	fetcher := &scriptedFetcher{responses: []func() (*domain.Analysis, error){pending, pending, ready}}
	p := NewPoller(fetcher, time.Millisecond)

	analysis, err := p.Wait(context.Background(), "sub-1")
	if err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if !analysis.Ready {
		t.Error("analysis should be ready")
	}
	if fetcher.calls != 3 {
		t.Errorf("fetcher called %d times, want 3", fetcher.calls)
	}
}

func TestPoller_WaitSurfacesHardErrors(t *testing.T) {
	fetcher := &scriptedFetcher{responses: []func() (*domain.Analysis, error){
		func() (*domain.Analysis, error) { return nil, domain.ErrAnalysisNotFound },
	}}
	p := NewPoller(fetcher, time.Millisecond)

	_, err := p.Wait(context.Background(), "sub-1")
	if !errors.Is(err, domain.ErrAnalysisNotFound) {
		t.Errorf("Wait() error = %v, want ErrAnalysisNotFound", err)
	}
}

func TestPoller_WaitCancellation(t *testing.T) {
	fetcher := &scriptedFetcher{responses: []func() (*domain.Analysis, error){pending}}
	p := NewPoller(fetcher, 50*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Wait(ctx, "sub-1")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Wait() error = %v, want context.Canceled", err)
	}
}

func TestNewPoller_DefaultInterval(t *testing.T) {
	p := NewPoller(&scriptedFetcher{}, 0)
	if p.interval != DefaultInterval {
		t.Errorf("interval = %v, want %v", p.interval, DefaultInterval)
	}
}
