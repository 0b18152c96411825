package usecase

import (
	"context"
	"log/slog"

	"github.com/doubley612/bloodhound-automation/internal/domain"
	"github.com/doubley612/bloodhound-automation/internal/ports"
)

// resolveDomains asks the enumerator for the forest's domains and falls back to the
// configured defaults when it fails. The fallback is logged once at error level.
func resolveDomains(ctx context.Context, enum ports.DomainEnumerator, defaults []string, log *slog.Logger) ([]string, domain.DomainSource) {
	if enum != nil {
		if ds, ok := enum.Domains(ctx); ok {
			return domain.NormalizeDomains(ds), domain.SourceEnumerated
		}
	}

	fallback := domain.NormalizeDomains(defaults)
	log.Error("domains.enumeration_failed",
		"reason", "domain trust query failed, using default domains",
		"defaults", fallback,
	)
	return fallback, domain.SourceDefault
}
