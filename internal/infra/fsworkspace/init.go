package fsworkspace

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/doubley612/bloodhound-automation/internal/app/template"
	"github.com/doubley612/bloodhound-automation/internal/domain"
	"github.com/doubley612/bloodhound-automation/internal/ports"
)

//go:embed templates
var templatesFS embed.FS

type Initializer struct {
	vars map[string]string
}

type Option func(*Initializer)

// WithVar overrides a template placeholder value.
func WithVar(key, value string) Option {
	return func(i *Initializer) { i.vars[key] = value }
}

func NewInitializer(opts ...Option) *Initializer {
	i := &Initializer{vars: DefaultVars(runtime.GOOS)}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

var _ ports.WorkspaceInitializer = (*Initializer)(nil)

// DefaultVars returns the placeholder values used for a fresh workspace.
func DefaultVars(goos string) map[string]string {
	vars := map[string]string{
		"RESULTS_DIR":   "results",
		"APP_BINARY":    "/opt/BloodHound/BloodHound",
		"USER_DATA_DIR": "$HOME/.config/bloodhound",
	}
	if goos == "windows" {
		vars["APP_BINARY"] = `C:\BloodHound\BloodHound.exe`
		vars["USER_DATA_DIR"] = `%APPDATA%\BloodHound`
	}
	return vars
}

func (i *Initializer) Init(root string, force bool) error {
	root = filepath.Clean(root)

	dirs := []string{
		filepath.Join(root, i.vars["RESULTS_DIR"]),
		filepath.Join(root, "reports"),
		filepath.Join(root, ".houndup", "logs"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return initErr(d, err)
		}
	}

	if err := ensureGitignore(root); err != nil {
		return initErr(filepath.Join(root, ".gitignore"), err)
	}

	return fs.WalkDir(templatesFS, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel := strings.TrimPrefix(p, "templates/")
		dst := filepath.Join(root, rel)

		if !force {
			if _, statErr := os.Stat(dst); statErr == nil {
				return nil
			}
		}

		b, err := fs.ReadFile(templatesFS, p)
		if err != nil {
			return err
		}
		out, err := template.RenderString(string(b), i.vars)
		if err != nil {
			return err
		}

		mode := fs.FileMode(0o644)
		if strings.Contains(rel, ".local.") {
			mode = 0o600
		}

		if err := os.WriteFile(dst, []byte(out), mode); err != nil {
			return initErr(dst, err)
		}
		return nil
	})
}

func initErr(path string, err error) error {
	return &domain.OpError{
		Op:   "fsworkspace.init",
		Kind: domain.KindExecution,
		Path: path,
		Err:  err,
	}
}

func ensureGitignore(root string) error {
	const header = "# houndup"
	entries := []string{
		"reports/",
		".houndup/",
		"houndup.local.yaml",
	}

	path := filepath.Join(root, ".gitignore")
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			lines := append([]string{header}, entries...)
			lines = append(lines, "")
			return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644)
		}
		return err
	}

	existing := string(b)
	present := map[string]bool{}
	for _, line := range strings.Split(existing, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			present[trimmed] = true
		}
	}

	var missing []string
	for _, e := range entries {
		if !present[e] {
			missing = append(missing, e)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	var out strings.Builder
	out.WriteString(existing)
	if existing != "" && !strings.HasSuffix(existing, "\n") {
		out.WriteByte('\n')
	}
	out.WriteByte('\n')
	if !present[header] {
		out.WriteString(header + "\n")
	}
	for _, e := range missing {
		out.WriteString(e + "\n")
	}

	return os.WriteFile(path, []byte(out.String()), 0o644)
}
