package usecase

import (
	"errors"
	"strings"

	"github.com/doubley612/bloodhound-automation/internal/domain"
	"github.com/doubley612/bloodhound-automation/internal/ports"
)

// InitWorkspace writes a starter houndup.yaml into a directory.
type InitWorkspace struct {
	initializer ports.WorkspaceInitializer
}

func NewInitWorkspace(initializer ports.WorkspaceInitializer) *InitWorkspace {
	return &InitWorkspace{initializer: initializer}
}

// Execute keeps existing files unless force is set.
func (uc *InitWorkspace) Execute(root string, force bool) error {
	if strings.TrimSpace(root) == "" {
		return &domain.OpError{
			Op:   "init.workspace",
			Kind: domain.KindInvalidConfig,
			Err:  errors.New("target directory is empty"),
		}
	}
	return uc.initializer.Init(root, force)
}
