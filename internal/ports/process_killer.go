package ports

import "context"

// ProcessKiller force-kills every process with the given image name owned by user.
// killed reports whether the tool matched anything; output is its textual result.
type ProcessKiller interface {
	Kill(ctx context.Context, image, user string) (killed bool, output string, err error)
}
