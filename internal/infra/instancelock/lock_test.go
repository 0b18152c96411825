package instancelock

import (
	"path/filepath"
	"testing"
)

func TestLock_SecondHolderIsRejected(t *testing.T) {
	root := t.TempDir()

	first := ForRoot(root)
	ok, err := first.TryLock()
	if err != nil || !ok {
		t.Fatalf("first TryLock = (%v, %v)", ok, err)
	}
	if first.Path() != filepath.Join(root, ".houndup", FileName) {
		t.Fatalf("unexpected path: %s", first.Path())
	}

	second := ForRoot(root)
	ok, err = second.TryLock()
	if err != nil {
		t.Fatalf("second TryLock error: %v", err)
	}
	if ok {
		t.Fatal("expected second lock to be rejected while the first is held")
	}

	if err := first.Unlock(); err != nil {
		t.Fatalf("Unlock: %v", err)
	}

	ok, err = second.TryLock()
	if err != nil || !ok {
		t.Fatalf("TryLock after release = (%v, %v)", ok, err)
	}
	_ = second.Unlock()
}
