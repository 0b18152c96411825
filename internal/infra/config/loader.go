package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/doubley612/bloodhound-automation/internal/domain"
	"gopkg.in/yaml.v3"
)

const (
	// FileName is the workspace config file.
	FileName = "houndup.yaml"
	// LocalFileName is an optional, git-ignored overlay next to FileName (credentials).
	LocalFileName = "houndup.local.yaml"
)

type loadOptions struct {
	lookupEnv func(string) (string, bool)
}

type Option func(*loadOptions)

// WithLookupEnv replaces os.LookupEnv when resolving credentials.password_env.
func WithLookupEnv(fn func(string) (string, bool)) Option {
	return func(o *loadOptions) {
		if fn != nil {
			o.lookupEnv = fn
		}
	}
}

// LoadFromRoot loads <root>/houndup.yaml.
func LoadFromRoot(root string, opts ...Option) (domain.Config, error) {
	return Load(filepath.Join(root, FileName), opts...)
}

// Load reads path, overlays houndup.local.yaml from the same directory when present
// and maps the result on top of domain.DefaultConfig.
func Load(path string, opts ...Option) (domain.Config, error) {
	o := loadOptions{lookupEnv: os.LookupEnv}
	for _, opt := range opts {
		opt(&o)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return domain.DefaultConfig(), &domain.OpError{
			Op:   "config.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var dto YAMLConfig
	if err := yaml.Unmarshal(b, &dto); err != nil {
		return domain.DefaultConfig(), &domain.OpError{
			Op:   "config.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	localPath := filepath.Join(filepath.Dir(path), LocalFileName)
	if err := overlayOptional(localPath, &dto); err != nil {
		return domain.DefaultConfig(), err
	}

	return MapConfig(path, dto, o.lookupEnv)
}

// overlayOptional decodes an optional file into dto; keys it sets win.
func overlayOptional(path string, dto *YAMLConfig) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return &domain.OpError{
			Op:   "config.overlay",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}
	if err := yaml.Unmarshal(b, dto); err != nil {
		return &domain.OpError{
			Op:   "config.overlay",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}
	return nil
}
