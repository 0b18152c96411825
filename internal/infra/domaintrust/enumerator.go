// Package domaintrust enumerates the domains of the current forest with an external command.
package domaintrust

import (
	"context"
	"log/slog"
	"strings"

	"github.com/doubley612/bloodhound-automation/internal/domain"
	"github.com/doubley612/bloodhound-automation/internal/infra/procexec"
	"github.com/doubley612/bloodhound-automation/internal/ports"
)

type Enumerator struct {
	cfg domain.DomainsConfig
	run procexec.Runner
	log *slog.Logger
}

type Option func(*Enumerator)

func WithRunner(r procexec.Runner) Option {
	return func(e *Enumerator) {
		if r != nil {
			e.run = r
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Enumerator) {
		if l != nil {
			e.log = l
		}
	}
}

func NewEnumerator(cfg domain.DomainsConfig, opts ...Option) *Enumerator {
	e := &Enumerator{cfg: cfg, run: procexec.Exec, log: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var _ ports.DomainEnumerator = (*Enumerator)(nil)

// Domains runs the configured command. ok is false when the command cannot run,
// exits non-zero, or yields no domain; the caller decides how to fall back.
func (e *Enumerator) Domains(ctx context.Context) ([]string, bool) {
	if len(e.cfg.Command) == 0 || strings.TrimSpace(e.cfg.Command[0]) == "" {
		e.log.Debug("domains.no_command")
		return nil, false
	}

	cmd := strings.Join(e.cfg.Command, " ")
	res, err := e.run(ctx, e.cfg.Command[0], e.cfg.Command[1:]...)
	if err != nil {
		e.log.Debug("domains.command_failed", "command", cmd, "err", err)
		return nil, false
	}
	if res.ExitCode != 0 {
		e.log.Debug("domains.command_failed", "command", cmd, "exit_code", res.ExitCode)
		return nil, false
	}

	var names []string
	switch e.cfg.Format {
	case domain.DomainsFormatJSON:
		names, err = ParseJSON(res.Output, e.cfg.JSONPath)
		if err != nil {
			e.log.Debug("domains.parse_failed", "command", cmd, "err", err)
			return nil, false
		}
	default:
		names = ParseNLTest(string(res.Output))
	}

	names = domain.NormalizeDomains(names)
	if len(names) == 0 {
		e.log.Debug("domains.empty", "command", cmd)
		return nil, false
	}
	e.log.Debug("domains.enumerated", "command", cmd, "count", len(names))
	return names, true
}
