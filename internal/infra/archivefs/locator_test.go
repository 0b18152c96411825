package archivefs

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/doubley612/bloodhound-automation/internal/domain"
)

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("PK"), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func fixedTimes(byName map[string]time.Time) func(os.FileInfo) time.Time {
	return func(fi os.FileInfo) time.Time { return byName[fi.Name()] }
}

func TestLatestArchive_NewestAcrossCase(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"a_CORP.zip", "b_corp.zip", "c_lab.zip", "notes.txt"} {
		touch(t, dir, n)
	}
	if err := os.Mkdir(filepath.Join(dir, "d_corp.zip"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	loc := NewLocator(dir, WithTimeSource(fixedTimes(map[string]time.Time{
		"a_CORP.zip": base,
		"b_corp.zip": base.Add(time.Hour),
		"c_lab.zip":  base.Add(2 * time.Hour),
	})))

	got, ok := loc.LatestArchive("corp")
	if !ok {
		t.Fatal("expected an archive")
	}
	if got.Name != "b_corp.zip" || got.Path != filepath.Join(dir, "b_corp.zip") {
		t.Fatalf("unexpected archive: %+v", got)
	}
	if !got.CreatedAt.Equal(base.Add(time.Hour)) {
		t.Fatalf("unexpected created_at: %v", got.CreatedAt)
	}
}

func TestLatestArchive_NoMatch(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "x_lab.zip")

	if _, ok := NewLocator(dir).LatestArchive("corp"); ok {
		t.Fatal("expected no archive")
	}
}

func TestLatestArchive_MissingDirIsNotFound(t *testing.T) {
	var warned bool
	log := slog.New(slog.NewTextHandler(writerFunc(func(p []byte) (int, error) {
		warned = true
		return len(p), nil
	}), nil))

	loc := NewLocator(filepath.Join(t.TempDir(), "missing"), WithLogger(log))
	if _, ok := loc.LatestArchive("corp"); ok {
		t.Fatal("expected not found")
	}
	if !warned {
		t.Fatal("expected a warning log")
	}
}

func TestList_Error(t *testing.T) {
	_, err := NewLocator(filepath.Join(t.TempDir(), "missing")).List()
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected KindNotFound, got %v", err)
	}
}

func TestCreationTime_RealFile(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "x_corp.zip")
	info, err := os.Stat(filepath.Join(dir, "x_corp.zip"))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if CreationTime(info).IsZero() {
		t.Fatal("expected a non-zero creation time")
	}
}

type writerFunc func([]byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }
