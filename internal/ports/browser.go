package ports

import (
	"context"

	"github.com/doubley612/bloodhound-automation/internal/domain"
)

// ScriptRunner runs a script against the active page.
type ScriptRunner interface {
	RunScript(ctx context.Context, script string) error
}

// Browser is the capability set houndup needs from a driven browser session.
// Present must report a missing element as (false, nil); only driver failures are errors.
type Browser interface {
	ScriptRunner

	Present(ctx context.Context, loc domain.Locator) (bool, error)
	SendKeys(ctx context.Context, loc domain.Locator, keys string, submit bool) error
	UploadFile(ctx context.Context, loc domain.Locator, path string) error
	Close() error
}

// BrowserLauncher starts (or attaches to) a browser session.
type BrowserLauncher interface {
	Launch(ctx context.Context, cfg domain.BrowserConfig, appBinary string) (Browser, error)
}
