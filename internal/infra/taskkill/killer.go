// Package taskkill terminates stale application processes owned by the current user.
package taskkill

import (
	"context"
	"fmt"
	"os"
	"os/user"
	"runtime"
	"strings"

	"github.com/doubley612/bloodhound-automation/internal/domain"
	"github.com/doubley612/bloodhound-automation/internal/infra/procexec"
	"github.com/doubley612/bloodhound-automation/internal/ports"
)

// NoTasksText is what taskkill prints when the filter matches nothing.
const NoTasksText = "INFO: No tasks running with the specified criteria."

type Killer struct {
	goos string
	run  procexec.Runner
}

type Option func(*Killer)

// WithGOOS selects the command flavour; defaults to runtime.GOOS.
func WithGOOS(goos string) Option {
	return func(k *Killer) { k.goos = goos }
}

func WithRunner(r procexec.Runner) Option {
	return func(k *Killer) {
		if r != nil {
			k.run = r
		}
	}
}

func NewKiller(opts ...Option) *Killer {
	k := &Killer{goos: runtime.GOOS, run: procexec.Exec}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

var _ ports.ProcessKiller = (*Killer)(nil)

// Kill force-terminates every process named image owned by user.
// killed is false when nothing matched; output is the tool's trimmed output.
func (k *Killer) Kill(ctx context.Context, image, user string) (bool, string, error) {
	if strings.TrimSpace(image) == "" {
		return false, "", &domain.OpError{
			Op:   "taskkill.kill",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("empty image name: %w", domain.ErrInvalidConfig),
		}
	}
	if k.goos == "windows" {
		return k.taskkill(ctx, image, user)
	}
	return k.pkill(ctx, image, user)
}

func (k *Killer) taskkill(ctx context.Context, image, user string) (bool, string, error) {
	res, err := k.run(ctx, "taskkill", "/f", "/im", image, "/fi", "USERNAME eq "+user)
	if err != nil {
		return false, "", processErr(image, err)
	}
	out := trimLineEndings(string(res.Output))
	if res.ExitCode != 0 {
		return false, out, processErr(image, fmt.Errorf("taskkill exited with %d: %s", res.ExitCode, out))
	}
	if out == NoTasksText {
		return false, out, nil
	}
	return true, out, nil
}

func (k *Killer) pkill(ctx context.Context, image, user string) (bool, string, error) {
	res, err := k.run(ctx, "pkill", pkillArgs(k.goos, image, user)...)
	if err != nil {
		return false, "", processErr(image, err)
	}
	out := trimLineEndings(string(res.Output))
	switch {
	case res.ExitCode == 0:
		return true, out, nil
	case res.ExitCode == 1 && out == "":
		return false, "", nil
	default:
		return false, out, processErr(image, fmt.Errorf("pkill exited with %d: %s", res.ExitCode, out))
	}
}

// pkillArgs adds -e (echo killed processes) only where procps pkill is expected;
// BSD and macOS pkill reject it.
func pkillArgs(goos, image, user string) []string {
	args := []string{"-KILL", "-u", user, "-x", image}
	if goos == "linux" {
		args = append([]string{"-e"}, args...)
	}
	return args
}

func processErr(image string, err error) error {
	return &domain.OpError{
		Op:   "taskkill.run",
		Kind: domain.KindProcess,
		Path: image,
		Err:  fmt.Errorf("%w: %w", domain.ErrExecution, err),
	}
}

func trimLineEndings(s string) string {
	return strings.TrimRight(s, "\r\n")
}

// CurrentUser returns the login name without a Windows domain prefix.
func CurrentUser() string {
	name := ""
	if u, err := user.Current(); err == nil {
		name = u.Username
	}
	if name == "" {
		name = os.Getenv("USERNAME")
	}
	if name == "" {
		name = os.Getenv("USER")
	}
	return stripDomain(name)
}

func stripDomain(name string) string {
	if i := strings.LastIndex(name, `\`); i >= 0 {
		return name[i+1:]
	}
	return name
}
