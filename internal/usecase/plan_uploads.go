package usecase

import (
	"context"
	"log/slog"

	"github.com/doubley612/bloodhound-automation/internal/domain"
	"github.com/doubley612/bloodhound-automation/internal/ports"
)

// PlanUploads computes which archive every domain would upload, without a browser.
type PlanUploads struct {
	archives ports.ArchiveLocator
	domains  ports.DomainEnumerator
	defaults []string
	log      *slog.Logger
}

func NewPlanUploads(cfg domain.Config, archives ports.ArchiveLocator, domains ports.DomainEnumerator, log *slog.Logger) *PlanUploads {
	if log == nil {
		log = discardLogger()
	}
	return &PlanUploads{
		archives: archives,
		domains:  domains,
		defaults: cfg.Domains.Default,
		log:      log,
	}
}

func (uc *PlanUploads) Execute(ctx context.Context) (domain.UploadPlan, error) {
	names, source := resolveDomains(ctx, uc.domains, uc.defaults, uc.log)

	plan := domain.UploadPlan{
		DomainSource: source,
		Entries:      make([]domain.PlanEntry, 0, len(names)),
	}
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return plan, err
		}
		a, found := uc.archives.LatestArchive(name)
		plan.Entries = append(plan.Entries, domain.PlanEntry{Domain: name, Archive: a, Found: found})
	}
	return plan, nil
}
