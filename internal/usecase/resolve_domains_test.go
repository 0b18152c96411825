package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/doubley612/bloodhound-automation/internal/domain"
)

func TestResolveDomains_FallbackLogsOneErrorRecord(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	got, source := resolveDomains(context.Background(), &fakeEnumerator{ok: false}, []string{"corp", "CORP", "lab"}, log)
	if source != domain.SourceDefault {
		t.Fatalf("expected default source, got %q", source)
	}
	if len(got) != 2 || got[0] != "corp" || got[1] != "lab" {
		t.Fatalf("unexpected domains: %v", got)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected exactly one record, got %d:\n%s", len(lines), buf.String())
	}
	if strings.Count(lines[0], `"msg":`) != 1 {
		t.Fatalf("record carries more than one msg key: %s", lines[0])
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("invalid JSON record %q: %v", lines[0], err)
	}
	if rec["msg"] != "domains.enumeration_failed" || rec["level"] != "ERROR" {
		t.Fatalf("unexpected record: %v", rec)
	}
	if rec["reason"] == nil {
		t.Fatalf("expected reason attribute: %v", rec)
	}
}

func TestResolveDomains_EnumeratedIsSilent(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	got, source := resolveDomains(context.Background(), &fakeEnumerator{domains: []string{"alpha", " beta "}, ok: true}, []string{"corp"}, log)
	if source != domain.SourceEnumerated || len(got) != 2 || got[1] != "beta" {
		t.Fatalf("unexpected result %v %q", got, source)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no log output, got %s", buf.String())
	}
}
