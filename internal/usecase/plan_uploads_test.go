package usecase

import (
	"context"
	"testing"

	"github.com/doubley612/bloodhound-automation/internal/domain"
)

func TestPlanUploads_ResolvesEachDomain(t *testing.T) {
	cfg := testConfig()
	locator := &fakeLocator{archives: map[string]domain.Archive{
		"corp": {Path: "/results/b_corp.zip", Name: "b_corp.zip"},
	}}
	enum := &fakeEnumerator{domains: []string{"corp", "dev"}, ok: true}

	plan, err := NewPlanUploads(cfg, locator, enum, nil).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.DomainSource != domain.SourceEnumerated {
		t.Fatalf("expected enumerated source, got %s", plan.DomainSource)
	}
	if len(plan.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(plan.Entries))
	}
	if !plan.Entries[0].Found || plan.Entries[0].Archive.Name != "b_corp.zip" {
		t.Fatalf("unexpected corp entry: %+v", plan.Entries[0])
	}
	if plan.Entries[1].Found {
		t.Fatalf("dev should have no archive: %+v", plan.Entries[1])
	}
}

func TestPlanUploads_FallsBackToDefaults(t *testing.T) {
	cfg := testConfig()
	cfg.Domains.Default = []string{"LAB"}
	enum := &fakeEnumerator{ok: false}

	plan, err := NewPlanUploads(cfg, &fakeLocator{}, enum, nil).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.DomainSource != domain.SourceDefault || len(plan.Entries) != 1 || plan.Entries[0].Domain != "LAB" {
		t.Fatalf("unexpected plan: %+v", plan)
	}
}

func TestPlanUploads_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	enum := &fakeEnumerator{domains: []string{"corp"}, ok: true}

	if _, err := NewPlanUploads(testConfig(), &fakeLocator{}, enum, nil).Execute(ctx); err == nil {
		t.Fatal("expected context error")
	}
}
