package tui

import (
	"context"
	"log/slog"

	"github.com/doubley612/bloodhound-automation/internal/domain"
	"github.com/doubley612/bloodhound-automation/internal/ports"
)

// RunFunc executes one upload run, publishing progress to sink.
type RunFunc func(ctx context.Context, sink ports.ProgressSink) (domain.UploadReport, string, error)

type Deps struct {
	Run           RunFunc
	WorkspaceRoot string

	Logger *slog.Logger
	Debug  bool
}
