package archivefs

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/djherbis/times"

	"github.com/doubley612/bloodhound-automation/internal/domain"
	"github.com/doubley612/bloodhound-automation/internal/ports"
)

// Locator finds collection archives in a results directory.
type Locator struct {
	dir    string
	log    *slog.Logger
	timeOf func(os.FileInfo) time.Time
}

type Option func(*Locator)

func WithLogger(l *slog.Logger) Option {
	return func(loc *Locator) {
		if l != nil {
			loc.log = l
		}
	}
}

// WithTimeSource overrides how an archive's creation time is read.
func WithTimeSource(fn func(os.FileInfo) time.Time) Option {
	return func(loc *Locator) {
		if fn != nil {
			loc.timeOf = fn
		}
	}
}

func NewLocator(dir string, opts ...Option) *Locator {
	loc := &Locator{
		dir:    dir,
		log:    slog.Default(),
		timeOf: CreationTime,
	}
	for _, opt := range opts {
		opt(loc)
	}
	return loc
}

var _ ports.ArchiveLocator = (*Locator)(nil)

// LatestArchive never fails: an unreadable directory is logged and reported as not found.
func (l *Locator) LatestArchive(domainName string) (domain.Archive, bool) {
	archives, err := l.List()
	if err != nil {
		l.log.Warn("archivefs.list_failed", "dir", l.dir, "err", err)
		return domain.Archive{}, false
	}
	a, ok := domain.SelectLatestArchive(archives, domainName)
	if ok {
		l.log.Debug("archivefs.selected", "domain", domainName, "archive", a.Name, "created_at", a.CreatedAt)
	}
	return a, ok
}

// List returns every *.zip file directly inside the results directory.
func (l *Locator) List() ([]domain.Archive, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "archivefs.list",
			Kind: domain.KindNotFound,
			Path: l.dir,
			Err:  err,
		}
	}

	out := make([]domain.Archive, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), domain.ArchiveExt) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			// removed between ReadDir and Info
			continue
		}
		out = append(out, domain.Archive{
			Path:      filepath.Join(l.dir, e.Name()),
			Name:      e.Name(),
			CreatedAt: l.timeOf(info),
		})
	}
	return out, nil
}

// CreationTime prefers the birth time, then the inode change time, then the modification time.
func CreationTime(info os.FileInfo) time.Time {
	ts := times.Get(info)
	switch {
	case ts.HasBirthTime():
		return ts.BirthTime()
	case ts.HasChangeTime():
		return ts.ChangeTime()
	default:
		return ts.ModTime()
	}
}
