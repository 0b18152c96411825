package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/doubley612/bloodhound-automation/internal/domain"
	"github.com/doubley612/bloodhound-automation/internal/ports"
)

// CompletionMessage is logged once every domain has been processed.
const CompletionMessage = "All uploads finished, closing BloodHound UI."

// SessionStarter is satisfied by *SessionBootstrapper.
type SessionStarter interface {
	Start(ctx context.Context) (ports.Browser, error)
	Close() error
}

// UploadData drives one full upload run: session, login, domains, uploads, teardown.
type UploadData struct {
	session  SessionStarter
	archives ports.ArchiveLocator
	domains  ports.DomainEnumerator
	cfg      domain.Config

	store    ports.ReportStore
	progress ports.ProgressSink
	sleep    SleepFunc
	now      func() time.Time
	newID    func() string
	log      *slog.Logger
}

type UploadOption func(*UploadData)

// WithReportStore persists the report at the end of a successful run.
func WithReportStore(s ports.ReportStore) UploadOption {
	return func(uc *UploadData) { uc.store = s }
}

func WithProgress(p ports.ProgressSink) UploadOption {
	return func(uc *UploadData) { uc.progress = p }
}

func WithUploadSleep(fn SleepFunc) UploadOption {
	return func(uc *UploadData) {
		if fn != nil {
			uc.sleep = fn
		}
	}
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) UploadOption {
	return func(uc *UploadData) {
		if now != nil {
			uc.now = now
		}
	}
}

func WithRunID(fn func() string) UploadOption {
	return func(uc *UploadData) {
		if fn != nil {
			uc.newID = fn
		}
	}
}

func WithUploadLogger(l *slog.Logger) UploadOption {
	return func(uc *UploadData) {
		if l != nil {
			uc.log = l
		}
	}
}

func NewUploadData(cfg domain.Config, session SessionStarter, archives ports.ArchiveLocator, domains ports.DomainEnumerator, opts ...UploadOption) *UploadData {
	uc := &UploadData{
		session:  session,
		archives: archives,
		domains:  domains,
		cfg:      cfg,
		sleep:    sleepCtx,
		now:      time.Now,
		newID:    uuid.NewString,
		log:      discardLogger(),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute runs the workflow. The session is closed exactly once whatever happens;
// the returned report holds every domain processed before a failure.
func (uc *UploadData) Execute(ctx context.Context) (domain.UploadReport, string, error) {
	report := domain.UploadReport{
		RunID:     uc.newID(),
		StartedAt: uc.now(),
		Results:   []domain.DomainResult{},
	}
	log := uc.log.With("run_id", report.RunID)
	log.Info("upload.start", "results_dir", uc.cfg.ResultsDir)

	uc.publish(domain.UploadEvent{Kind: domain.EventSessionStarting})
	br, err := uc.session.Start(ctx)
	if err != nil {
		report.EndedAt = uc.now()
		return report, "", err
	}

	closed := false
	defer func() {
		if closed {
			return
		}
		if cerr := uc.session.Close(); cerr != nil {
			log.Warn("session.close_failed", "err", cerr)
		}
	}()
	uc.publish(domain.UploadEvent{Kind: domain.EventSessionReady})

	waiter := NewReadinessWaiter(br, uc.cfg.UI, uc.cfg.Timing,
		WithReadinessSleep(uc.sleep),
		WithReadinessLogger(log),
	)

	already, err := uc.login(ctx, br, waiter, log)
	if err != nil {
		report.EndedAt = uc.now()
		return report, "", err
	}
	report.AlreadyLoggedIn = already
	uc.publish(domain.UploadEvent{Kind: domain.EventLoggedIn})

	domains, source := resolveDomains(ctx, uc.domains, uc.cfg.Domains.Default, log)
	report.DomainSource = source
	uc.publish(domain.UploadEvent{Kind: domain.EventDomainsResolved, Total: len(domains), Message: string(source)})

	for i, name := range domains {
		uc.publish(domain.UploadEvent{Kind: domain.EventDomainStarted, Domain: name, Index: i, Total: len(domains)})

		res, err := uc.uploadDomain(ctx, br, waiter, name, log)
		if err != nil {
			report.EndedAt = uc.now()
			return report, "", err
		}
		report.Results = append(report.Results, res)

		r := res
		uc.publish(domain.UploadEvent{Kind: domain.EventDomainDone, Domain: name, Index: i, Total: len(domains), Result: &r})
	}

	log.Info(CompletionMessage, "uploaded", report.Uploaded(), "skipped", report.Skipped())

	closed = true
	if err := uc.session.Close(); err != nil {
		report.EndedAt = uc.now()
		return report, "", &domain.OpError{
			Op:   "upload.close",
			Kind: domain.KindBrowser,
			Err:  err,
		}
	}
	if err := uc.sleep(ctx, uc.cfg.Timing.Cooldown); err != nil {
		report.EndedAt = uc.now()
		return report, "", err
	}
	report.EndedAt = uc.now()

	var id string
	if uc.store != nil {
		id, err = uc.store.SaveReport(report)
		if err != nil {
			return report, "", err
		}
		log.Info("report.saved", "id", id)
	}

	uc.publish(domain.UploadEvent{Kind: domain.EventFinished, Total: len(domains), Message: CompletionMessage})
	return report, id, nil
}

func (uc *UploadData) login(ctx context.Context, br ports.Browser, waiter *ReadinessWaiter, log *slog.Logger) (bool, error) {
	already, err := waiter.WaitLogin(ctx, uc.cfg.Timing.PollInterval)
	if err != nil {
		return false, err
	}
	if already {
		log.Info("login.skipped", "reason", "already logged in")
		return true, nil
	}

	creds := uc.cfg.Credentials
	if err := br.SendKeys(ctx, uc.cfg.UI.UsernameField, creds.User, false); err != nil {
		return false, browserErr("login.user", err)
	}
	if err := br.SendKeys(ctx, uc.cfg.UI.PasswordField, creds.Password, true); err != nil {
		return false, browserErr("login.password", err)
	}
	log.Info("login.submitted", "user", creds.User)
	return false, nil
}

func (uc *UploadData) uploadDomain(ctx context.Context, br ports.Browser, waiter *ReadinessWaiter, name string, log *slog.Logger) (domain.DomainResult, error) {
	start := uc.now()
	res := domain.DomainResult{Domain: name}

	if err := ctx.Err(); err != nil {
		return res, err
	}
	if err := waiter.WaitUploadReady(ctx, uc.cfg.Timing.PollInterval); err != nil {
		return res, err
	}
	log.Info("domain.upload", "domain", name)

	archive, found := uc.archives.LatestArchive(name)
	if !found {
		log.Info("domain.skipped", "domain", name, "reason", "zip file could not be found")
		res.Status = domain.StatusSkipped
		res.Reason = "no matching archive"
		res.DurationMS = uc.now().Sub(start).Milliseconds()
		return res, nil
	}

	if err := br.UploadFile(ctx, uc.cfg.UI.UploadField, archive.Path); err != nil {
		return res, browserErr("domain.upload_file", err)
	}
	log.Info("domain.upload.submitted", "domain", name, "archive", archive.Path)

	if err := waiter.WaitUploadReady(ctx, uc.cfg.Timing.IngestInterval); err != nil {
		return res, err
	}
	if err := br.RunScript(ctx, domain.ClearInputScript(uc.cfg.UI.UploadFieldQuery)); err != nil {
		return res, browserErr("domain.clear_input", err)
	}
	log.Info("domain.upload.finished", "domain", name, "archive", archive.Path)

	res.Status = domain.StatusUploaded
	res.Archive = archive.Path
	res.DurationMS = uc.now().Sub(start).Milliseconds()
	return res, nil
}

func (uc *UploadData) publish(ev domain.UploadEvent) {
	if uc.progress != nil {
		uc.progress.Publish(ev)
	}
}

func browserErr(op string, err error) error {
	return &domain.OpError{Op: op, Kind: domain.KindBrowser, Err: err}
}
