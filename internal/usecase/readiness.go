package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/doubley612/bloodhound-automation/internal/domain"
)

// markerProbe is the part of ports.Browser the waiter needs.
type markerProbe interface {
	Present(ctx context.Context, loc domain.Locator) (bool, error)
}

// ReadinessWaiter polls UI markers until they are stably present.
type ReadinessWaiter struct {
	probe        markerProbe
	uploadMarker domain.Locator
	loginMarker  domain.Locator
	requiredHits int
	maxAttempts  int
	defaultEvery time.Duration
	sleep        SleepFunc
	log          *slog.Logger
}

type ReadinessOption func(*ReadinessWaiter)

func WithReadinessSleep(fn SleepFunc) ReadinessOption {
	return func(w *ReadinessWaiter) {
		if fn != nil {
			w.sleep = fn
		}
	}
}

func WithReadinessLogger(l *slog.Logger) ReadinessOption {
	return func(w *ReadinessWaiter) {
		if l != nil {
			w.log = l
		}
	}
}

func NewReadinessWaiter(probe markerProbe, ui domain.UIConfig, timing domain.TimingConfig, opts ...ReadinessOption) *ReadinessWaiter {
	w := &ReadinessWaiter{
		probe:        probe,
		uploadMarker: ui.UploadMarker,
		loginMarker:  ui.LoginMarker,
		requiredHits: timing.RequiredHits,
		maxAttempts:  timing.MaxAttempts,
		defaultEvery: timing.PollInterval,
		sleep:        sleepCtx,
		log:          discardLogger(),
	}
	if w.requiredHits < 1 {
		w.requiredHits = 3
	}
	if w.defaultEvery <= 0 {
		w.defaultEvery = 10 * time.Second
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WaitUploadReady returns once the upload marker has been seen on requiredHits
// consecutive samples. It sleeps interval after every sample, the last one included.
func (w *ReadinessWaiter) WaitUploadReady(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = w.defaultEvery
	}
	deb := domain.NewDebouncer(w.requiredHits)

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		hit, err := w.sample(ctx, "readiness.upload", w.uploadMarker)
		if err != nil {
			return err
		}
		ready := deb.Observe(hit)
		w.log.Debug("readiness.sample",
			"marker", w.uploadMarker.String(),
			"hit", hit,
			"streak", deb.Streak(),
			"attempt", attempt,
		)

		if err := w.sleep(ctx, interval); err != nil {
			return err
		}
		if ready {
			return nil
		}
		if w.exhausted(attempt) {
			return w.timeout("readiness.upload", attempt)
		}
	}
}

// WaitLogin waits for the login form to settle. It returns true as soon as the upload
// marker shows up on any sample (the session is already authenticated), and false once
// the login marker has been seen on requiredHits consecutive samples.
func (w *ReadinessWaiter) WaitLogin(ctx context.Context, interval time.Duration) (bool, error) {
	if interval <= 0 {
		interval = w.defaultEvery
	}
	deb := domain.NewDebouncer(w.requiredHits)

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		loginHit, err := w.sample(ctx, "readiness.login", w.loginMarker)
		if err != nil {
			return false, err
		}
		ready := deb.Observe(loginHit)

		uploadHit, err := w.sample(ctx, "readiness.login", w.uploadMarker)
		if err != nil {
			return false, err
		}
		w.log.Debug("readiness.sample",
			"marker", w.loginMarker.String(),
			"hit", loginHit,
			"streak", deb.Streak(),
			"upload_marker", uploadHit,
			"attempt", attempt,
		)
		if uploadHit {
			return true, nil
		}

		if err := w.sleep(ctx, interval); err != nil {
			return false, err
		}
		if ready {
			return false, nil
		}
		if w.exhausted(attempt) {
			return false, w.timeout("readiness.login", attempt)
		}
	}
}

func (w *ReadinessWaiter) sample(ctx context.Context, op string, loc domain.Locator) (bool, error) {
	hit, err := w.probe.Present(ctx, loc)
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		return false, &domain.OpError{
			Op:   op,
			Kind: domain.KindBrowser,
			Err:  fmt.Errorf("probe %s: %w", loc, err),
		}
	}
	return hit, nil
}

func (w *ReadinessWaiter) exhausted(attempt int) bool {
	return w.maxAttempts > 0 && attempt >= w.maxAttempts
}

func (w *ReadinessWaiter) timeout(op string, attempts int) error {
	return &domain.OpError{
		Op:   op,
		Kind: domain.KindTimeout,
		Err:  fmt.Errorf("marker not stable after %d samples: %w", attempts, domain.ErrTimeout),
	}
}
