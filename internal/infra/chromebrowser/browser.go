// Package chromebrowser drives the BloodHound UI over the Chrome DevTools Protocol.
package chromebrowser

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/target"
	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"

	"github.com/doubley612/bloodhound-automation/internal/domain"
	"github.com/doubley612/bloodhound-automation/internal/ports"
)

const targetTypePage = "page"

// Launcher starts the controlled application (or attaches to a remote endpoint).
type Launcher struct {
	log    *slog.Logger
	lookup func(string) (string, bool)
}

type Option func(*Launcher)

func WithLogger(l *slog.Logger) Option {
	return func(la *Launcher) {
		if l != nil {
			la.log = l
		}
	}
}

func NewLauncher(opts ...Option) *Launcher {
	l := &Launcher{log: slog.Default(), lookup: os.LookupEnv}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var _ ports.BrowserLauncher = (*Launcher)(nil)

// Launch returns a Browser bound to the application's page target. The session
// outlives ctx; only Close ends it.
func (l *Launcher) Launch(ctx context.Context, cfg domain.BrowserConfig, appBinary string) (ports.Browser, error) {
	base := context.WithoutCancel(ctx)

	var (
		allocCtx    context.Context
		allocCancel context.CancelFunc
		remote      = strings.TrimSpace(cfg.RemoteURL) != ""
	)
	if remote {
		l.log.Info("browser.attach", "url", cfg.RemoteURL)
		allocCtx, allocCancel = chromedp.NewRemoteAllocator(base, cfg.RemoteURL)
	} else {
		flags := launchFlags(cfg, l.lookup)
		opts := []chromedp.ExecAllocatorOption{chromedp.ExecPath(appBinary)}
		for _, f := range flags {
			opts = append(opts, chromedp.Flag(f.Name, f.Value))
		}
		l.log.Info("browser.launch", "binary", appBinary, "flags", len(flags), "headless", cfg.Headless)
		allocCtx, allocCancel = chromedp.NewExecAllocator(base, opts...)
	}

	browserCtx, browserCancel := chromedp.NewContext(allocCtx,
		chromedp.WithErrorf(func(format string, args ...any) {
			l.log.Debug("chromedp.error", "detail", fmt.Sprintf(format, args...))
		}),
	)
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, &domain.OpError{
			Op:   "chromebrowser.launch",
			Kind: domain.KindBrowser,
			Path: appBinary,
			Err:  err,
		}
	}

	b := &Browser{
		remote:        remote,
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
		pageCtx:       browserCtx,
		log:           l.log,
	}

	if err := b.attachAppPage(); err != nil {
		_ = b.Close()
		return nil, &domain.OpError{Op: "chromebrowser.attach", Kind: domain.KindBrowser, Err: err}
	}

	if u := strings.TrimSpace(cfg.URL); u != "" {
		if err := chromedp.Run(b.pageCtx, chromedp.Navigate(u)); err != nil {
			_ = b.Close()
			return nil, &domain.OpError{Op: "chromebrowser.navigate", Kind: domain.KindBrowser, Path: u, Err: err}
		}
	}
	return b, nil
}

// Browser is a live DevTools session on one page target.
type Browser struct {
	remote        bool
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
	pageCtx       context.Context
	pageCancel    context.CancelFunc
	log           *slog.Logger

	closeOnce sync.Once
	closeErr  error
}

var _ ports.Browser = (*Browser)(nil)

// attachAppPage switches to the application's own window when it is not the
// tab chromedp opened for us.
func (b *Browser) attachAppPage() error {
	var targets []*target.Info
	if err := chromedp.Run(b.browserCtx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			targets, err = target.GetTargets().Do(ctx)
			return err
		}),
	); err != nil {
		return fmt.Errorf("get targets: %w", err)
	}

	own := chromedp.FromContext(b.browserCtx).Target.TargetID
	for _, t := range targets {
		if t.Type != targetTypePage || t.TargetID == own || t.URL == "about:blank" {
			continue
		}
		ctx, cancel := chromedp.NewContext(b.browserCtx, chromedp.WithTargetID(t.TargetID))
		if err := chromedp.Run(ctx); err != nil {
			cancel()
			return fmt.Errorf("attach %s: %w", t.TargetID, err)
		}
		b.pageCtx, b.pageCancel = ctx, cancel
		b.log.Debug("browser.page_attached", "target", string(t.TargetID), "url", t.URL)
		return nil
	}
	return nil
}

// op runs actions on the page, aborting when the caller's ctx is done.
func (b *Browser) op(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithCancel(b.pageCtx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	err := chromedp.Run(runCtx, actions...)
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// Present reports whether at least one element matches loc, without waiting.
func (b *Browser) Present(ctx context.Context, loc domain.Locator) (bool, error) {
	sel, kind, err := selectorFor(loc)
	if err != nil {
		return false, err
	}
	var nodes []*cdp.Node
	if err := b.op(ctx, chromedp.Nodes(sel, &nodes, kind.all(), chromedp.AtLeast(0))); err != nil {
		return false, err
	}
	return len(nodes) > 0, nil
}

func (b *Browser) SendKeys(ctx context.Context, loc domain.Locator, keys string, submit bool) error {
	sel, kind, err := selectorFor(loc)
	if err != nil {
		return err
	}
	if submit {
		keys += kb.Enter
	}
	return b.op(ctx, chromedp.SendKeys(sel, keys, kind.one()))
}

// UploadFile sets path on a file input; hidden inputs are accepted.
func (b *Browser) UploadFile(ctx context.Context, loc domain.Locator, path string) error {
	sel, kind, err := selectorFor(loc)
	if err != nil {
		return err
	}
	return b.op(ctx, chromedp.SetUploadFiles(sel, []string{path}, kind.one(), chromedp.NodeReady))
}

func (b *Browser) RunScript(ctx context.Context, script string) error {
	return b.op(ctx, chromedp.Evaluate(script, nil))
}

// Close quits a launched application or detaches from a remote one. Safe to call twice.
func (b *Browser) Close() error {
	b.closeOnce.Do(func() {
		if b.pageCancel != nil {
			b.pageCancel()
		}
		if !b.remote {
			// closes the browser process gracefully before the allocator kills it
			b.closeErr = chromedp.Cancel(b.browserCtx)
		}
		b.browserCancel()
		b.allocCancel()
		b.log.Info("browser.closed", "remote", b.remote)
	})
	return b.closeErr
}
