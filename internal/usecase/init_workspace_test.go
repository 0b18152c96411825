package usecase

import (
	"testing"

	"github.com/doubley612/bloodhound-automation/internal/domain"
	"github.com/doubley612/bloodhound-automation/internal/ports"
)

type fakeInitializer struct {
	root  string
	force bool
	calls int
}

var _ ports.WorkspaceInitializer = (*fakeInitializer)(nil)

func (f *fakeInitializer) Init(root string, force bool) error {
	f.root = root
	f.force = force
	f.calls++
	return nil
}

func TestInitWorkspace_PassesThrough(t *testing.T) {
	fi := &fakeInitializer{}
	if err := NewInitWorkspace(fi).Execute("/tmp/ws", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fi.calls != 1 || fi.root != "/tmp/ws" || !fi.force {
		t.Fatalf("unexpected call: %+v", fi)
	}
}

func TestInitWorkspace_EmptyRoot(t *testing.T) {
	fi := &fakeInitializer{}
	err := NewInitWorkspace(fi).Execute("  ", false)
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid config, got %v", err)
	}
	if fi.calls != 0 {
		t.Fatal("initializer must not run")
	}
}
