package ports

// WorkspaceLocator finds the directory holding houndup.yaml starting from an arbitrary directory.
type WorkspaceLocator interface {
	FindRoot(startDir string) (string, error)
}

// WorkspaceInitializer writes a starter configuration.
type WorkspaceInitializer interface {
	Init(root string, force bool) error
}
