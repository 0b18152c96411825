package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/doubley612/bloodhound-automation/internal/domain"
	"github.com/doubley612/bloodhound-automation/internal/infra/archivefs"
	"github.com/doubley612/bloodhound-automation/internal/infra/chromebrowser"
	"github.com/doubley612/bloodhound-automation/internal/infra/config"
	"github.com/doubley612/bloodhound-automation/internal/infra/domaintrust"
	"github.com/doubley612/bloodhound-automation/internal/infra/instancelock"
	"github.com/doubley612/bloodhound-automation/internal/infra/logger"
	"github.com/doubley612/bloodhound-automation/internal/infra/reportstore"
	"github.com/doubley612/bloodhound-automation/internal/infra/taskkill"
	"github.com/doubley612/bloodhound-automation/internal/infra/workspacefinder"
	"github.com/doubley612/bloodhound-automation/internal/ports"
	"github.com/doubley612/bloodhound-automation/internal/usecase"
)

type workspaceCtx struct {
	root string
	cfg  domain.Config
	log  *slog.Logger

	archives ports.ArchiveLocator
	domains  ports.DomainEnumerator
	store    *reportstore.JSONStore

	closeLog func() error
}

// loadWorkspace reads the configuration and wires the adapters. console receives
// human-readable log lines; pass nil when the terminal belongs to the TUI.
func loadWorkspace(opts *globalOptions, console io.Writer) (*workspaceCtx, error) {
	root, path, err := resolveConfigPath(opts.config)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	cleanup, err := logger.Setup(logger.Config{
		Root:    root,
		Dir:     cfg.Paths.LogsDir,
		Debug:   opts.debug,
		Console: console,
	})
	if err != nil {
		// Logging is best effort; the run itself can proceed.
		fmt.Fprintf(os.Stderr, "houndup: logging disabled: %v\n", err)
	}
	log := logger.L()

	return &workspaceCtx{
		root:     root,
		cfg:      cfg,
		log:      log,
		archives: archivefs.NewLocator(cfg.ResultsDir, archivefs.WithLogger(log)),
		domains:  domaintrust.NewEnumerator(cfg.Domains, domaintrust.WithLogger(log)),
		store:    reportstore.NewJSONStore(root, cfg, reportstore.WithIndex(true)),
		closeLog: cleanup,
	}, nil
}

func (ws *workspaceCtx) Close() {
	if ws.closeLog != nil {
		_ = ws.closeLog()
	}
}

func (ws *workspaceCtx) newSession() *usecase.SessionBootstrapper {
	return usecase.NewSessionBootstrapper(
		ws.cfg,
		taskkill.NewKiller(),
		chromebrowser.NewLauncher(chromebrowser.WithLogger(ws.log)),
		usecase.WithInstanceLock(instancelock.ForRoot(ws.root)),
		usecase.WithCurrentUser(taskkill.CurrentUser()),
		usecase.WithBootstrapLogger(ws.log),
	)
}

// resolveConfigPath returns the workspace root and the houndup.yaml inside it.
// An explicit --config may name the file or the directory holding it.
func resolveConfigPath(configFlag string) (root string, path string, err error) {
	c := strings.TrimSpace(configFlag)
	if c != "" {
		abs, err := filepath.Abs(c)
		if err != nil {
			return "", "", fmt.Errorf("invalid config path: %w", err)
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs, filepath.Join(abs, config.FileName), nil
		}
		return filepath.Dir(abs), abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", "", fmt.Errorf("get working directory: %w", err)
	}

	root, err = workspacefinder.NewFinder().FindRoot(wd)
	if err != nil {
		return "", "", err
	}
	return root, filepath.Join(root, config.FileName), nil
}
