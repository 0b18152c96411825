package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/doubley612/bloodhound-automation/internal/domain"
	"github.com/doubley612/bloodhound-automation/internal/ports"
)

// NoProcessesFoundMessage is logged when no stale process had to be killed.
const NoProcessesFoundMessage = "No processes found."

// SessionBootstrapper owns the single browser session of a houndup process.
// Start fails with KindSessionActive while a previous session is still open.
type SessionBootstrapper struct {
	cfg      domain.Config
	killer   ports.ProcessKiller
	launcher ports.BrowserLauncher
	lock     ports.InstanceLock
	user     string
	sleep    SleepFunc
	log      *slog.Logger

	mu     sync.Mutex
	active ports.Browser
	locked bool
}

type BootstrapOption func(*SessionBootstrapper)

// WithInstanceLock adds a cross-process guard acquired on Start.
func WithInstanceLock(l ports.InstanceLock) BootstrapOption {
	return func(b *SessionBootstrapper) { b.lock = l }
}

func WithCurrentUser(user string) BootstrapOption {
	return func(b *SessionBootstrapper) { b.user = user }
}

func WithBootstrapSleep(fn SleepFunc) BootstrapOption {
	return func(b *SessionBootstrapper) {
		if fn != nil {
			b.sleep = fn
		}
	}
}

func WithBootstrapLogger(l *slog.Logger) BootstrapOption {
	return func(b *SessionBootstrapper) {
		if l != nil {
			b.log = l
		}
	}
}

func NewSessionBootstrapper(cfg domain.Config, killer ports.ProcessKiller, launcher ports.BrowserLauncher, opts ...BootstrapOption) *SessionBootstrapper {
	b := &SessionBootstrapper{
		cfg:      cfg,
		killer:   killer,
		launcher: launcher,
		sleep:    sleepCtx,
		log:      discardLogger(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Start kills stale processes, launches the browser and waits for the UI to settle.
func (b *SessionBootstrapper) Start(ctx context.Context) (ports.Browser, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.active != nil {
		return nil, &domain.OpError{
			Op:   "session.start",
			Kind: domain.KindSessionActive,
			Err:  domain.ErrSessionActive,
		}
	}

	if err := b.acquireLock(); err != nil {
		return nil, err
	}

	br, err := b.start(ctx)
	if err != nil {
		b.releaseLock()
		return nil, err
	}
	b.active = br
	return br, nil
}

func (b *SessionBootstrapper) start(ctx context.Context) (ports.Browser, error) {
	if strings.TrimSpace(b.cfg.Browser.RemoteURL) == "" {
		if err := b.killStale(ctx); err != nil {
			return nil, err
		}
	}

	br, err := b.launcher.Launch(ctx, b.cfg.Browser, b.cfg.Binaries.App)
	if err != nil {
		return nil, err
	}

	b.log.Info("session.waiting_for_ui", "settle", b.cfg.Timing.SettleDelay.String())
	if err := b.sleep(ctx, b.cfg.Timing.SettleDelay); err != nil {
		_ = br.Close()
		return nil, err
	}
	return br, nil
}

// Close quits the active browser and releases the guard. It is safe to call twice.
func (b *SessionBootstrapper) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.active == nil {
		return nil
	}
	err := b.active.Close()
	b.active = nil
	b.releaseLock()
	return err
}

func (b *SessionBootstrapper) killStale(ctx context.Context) error {
	b.log.Info("session.kill_check", "user", b.user)

	found := false
	for _, image := range ProcessNames(b.cfg.Binaries) {
		killed, out, err := b.killer.Kill(ctx, image, b.user)
		if err != nil {
			return &domain.OpError{
				Op:   "session.kill",
				Kind: domain.KindProcess,
				Path: image,
				Err:  err,
			}
		}
		if killed {
			found = true
			b.log.Info("session.killed", "image", image, "output", out)
		}
	}
	if !found {
		b.log.Info(NoProcessesFoundMessage)
	}
	return nil
}

func (b *SessionBootstrapper) acquireLock() error {
	if b.lock == nil {
		return nil
	}
	ok, err := b.lock.TryLock()
	if err != nil {
		return &domain.OpError{
			Op:   "session.lock",
			Kind: domain.KindExecution,
			Err:  err,
		}
	}
	if !ok {
		return &domain.OpError{
			Op:   "session.lock",
			Kind: domain.KindSessionActive,
			Err:  fmt.Errorf("another houndup process is running: %w", domain.ErrSessionActive),
		}
	}
	b.locked = true
	return nil
}

func (b *SessionBootstrapper) releaseLock() {
	if b.lock == nil || !b.locked {
		return
	}
	if err := b.lock.Unlock(); err != nil {
		b.log.Warn("session.unlock_failed", "err", err)
	}
	b.locked = false
}

// ProcessNames returns the image names of the controlled binaries. Paths may use
// either separator since configs are often written on Windows.
func ProcessNames(bin domain.BinariesConfig) []string {
	var out []string
	for _, p := range []string{bin.App, bin.Driver} {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if i := strings.LastIndexAny(p, `/\`); i >= 0 {
			p = p[i+1:]
		}
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
