package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/doubley612/bloodhound-automation/internal/domain"
	"github.com/doubley612/bloodhound-automation/internal/ports"
)

// --- browser ---

type sentKeys struct {
	loc    domain.Locator
	keys   string
	submit bool
}

// fakeBrowser answers Present from a per-locator sequence; the last value repeats.
type fakeBrowser struct {
	present    map[domain.Locator][]bool
	calls      map[domain.Locator]int
	presentErr error
	uploadErr  error

	uploads []string
	keys    []sentKeys
	scripts []string
	closes  int
}

func newFakeBrowser() *fakeBrowser {
	return &fakeBrowser{
		present: map[domain.Locator][]bool{},
		calls:   map[domain.Locator]int{},
	}
}

func (f *fakeBrowser) Present(_ context.Context, loc domain.Locator) (bool, error) {
	if f.presentErr != nil {
		return false, f.presentErr
	}
	i := f.calls[loc]
	f.calls[loc]++

	seq := f.present[loc]
	if len(seq) == 0 {
		return false, nil
	}
	if i >= len(seq) {
		return seq[len(seq)-1], nil
	}
	return seq[i], nil
}

func (f *fakeBrowser) SendKeys(_ context.Context, loc domain.Locator, keys string, submit bool) error {
	f.keys = append(f.keys, sentKeys{loc: loc, keys: keys, submit: submit})
	return nil
}

func (f *fakeBrowser) UploadFile(_ context.Context, _ domain.Locator, path string) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.uploads = append(f.uploads, path)
	return nil
}

func (f *fakeBrowser) RunScript(_ context.Context, script string) error {
	f.scripts = append(f.scripts, script)
	return nil
}

func (f *fakeBrowser) Close() error {
	f.closes++
	return nil
}

type fakeLauncher struct {
	browser *fakeBrowser
	err     error
	calls   int
	lastCfg domain.BrowserConfig
	lastApp string
}

func (l *fakeLauncher) Launch(_ context.Context, cfg domain.BrowserConfig, app string) (ports.Browser, error) {
	l.calls++
	l.lastCfg = cfg
	l.lastApp = app
	if l.err != nil {
		return nil, l.err
	}
	return l.browser, nil
}

// --- processes ---

type killResult struct {
	killed bool
	output string
	err    error
}

type killCall struct {
	image string
	user  string
}

type fakeKiller struct {
	results map[string]killResult
	calls   []killCall
}

func (k *fakeKiller) Kill(_ context.Context, image, user string) (bool, string, error) {
	k.calls = append(k.calls, killCall{image: image, user: user})
	r := k.results[image]
	return r.killed, r.output, r.err
}

type fakeLock struct {
	busy     bool
	err      error
	locks    int
	unlocks  int
	heldByUs bool
}

func (l *fakeLock) TryLock() (bool, error) {
	if l.err != nil {
		return false, l.err
	}
	if l.busy || l.heldByUs {
		return false, nil
	}
	l.locks++
	l.heldByUs = true
	return true, nil
}

func (l *fakeLock) Unlock() error {
	l.unlocks++
	l.heldByUs = false
	return nil
}

// --- archives / domains / store ---

type fakeLocator struct {
	archives map[string]domain.Archive
	asked    []string
}

func (f *fakeLocator) LatestArchive(name string) (domain.Archive, bool) {
	f.asked = append(f.asked, name)
	a, ok := f.archives[name]
	return a, ok
}

type fakeEnumerator struct {
	domains []string
	ok      bool
	calls   int
}

func (f *fakeEnumerator) Domains(_ context.Context) ([]string, bool) {
	f.calls++
	return f.domains, f.ok
}

type fakeStore struct {
	saved bool
	last  domain.UploadReport
	err   error
}

func (s *fakeStore) SaveReport(r domain.UploadReport) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.saved = true
	s.last = r
	return "report-123", nil
}

type fakeSink struct {
	events []domain.UploadEvent
}

func (s *fakeSink) Publish(ev domain.UploadEvent) { s.events = append(s.events, ev) }

// --- pacing ---

type sleepRecorder struct {
	calls []time.Duration
}

func (s *sleepRecorder) sleep(ctx context.Context, d time.Duration) error {
	s.calls = append(s.calls, d)
	return ctx.Err()
}

// --- logging ---

// recordHandler captures slog records so tests can assert on emitted log lines.
type recordHandler struct {
	mu      *sync.Mutex
	records *[]slog.Record
}

func newRecorder() (*slog.Logger, *recordHandler) {
	h := &recordHandler{mu: &sync.Mutex{}, records: &[]slog.Record{}}
	return slog.New(h), h
}

func (h *recordHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	*h.records = append(*h.records, r.Clone())
	return nil
}

func (h *recordHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordHandler) WithGroup(string) slog.Handler      { return h }

func (h *recordHandler) count(level slog.Level, msg string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, r := range *h.records {
		if r.Level == level && (msg == "" || r.Message == msg) {
			n++
		}
	}
	return n
}

func (h *recordHandler) hasAttr(msg, key, value string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, r := range *h.records {
		if r.Message != msg {
			continue
		}
		found := false
		r.Attrs(func(a slog.Attr) bool {
			if a.Key == key && a.Value.String() == value {
				found = true
				return false
			}
			return true
		})
		if found {
			return true
		}
	}
	return false
}

// testConfig returns defaults with short, distinguishable timings.
func testConfig() domain.Config {
	cfg := domain.DefaultConfig()
	cfg.Binaries.App = `C:\BloodHound\BloodHound.exe`
	cfg.Binaries.Driver = `C:\tools\chromedriver.exe`
	cfg.Credentials = domain.Credentials{User: "neo4j", Password: "s3cret"}
	cfg.ResultsDir = "/results"
	cfg.Timing.SettleDelay = 7 * time.Second
	cfg.Timing.PollInterval = 10 * time.Second
	cfg.Timing.IngestInterval = 60 * time.Second
	cfg.Timing.Cooldown = 5 * time.Second
	cfg.Timing.MaxAttempts = 50
	return cfg
}

// compile-time checks
var _ ports.Browser = (*fakeBrowser)(nil)
var _ ports.BrowserLauncher = (*fakeLauncher)(nil)
var _ ports.ProcessKiller = (*fakeKiller)(nil)
var _ ports.InstanceLock = (*fakeLock)(nil)
var _ ports.ArchiveLocator = (*fakeLocator)(nil)
var _ ports.DomainEnumerator = (*fakeEnumerator)(nil)
var _ ports.ReportStore = (*fakeStore)(nil)
var _ ports.ProgressSink = (*fakeSink)(nil)
