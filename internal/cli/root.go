package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/doubley612/bloodhound-automation/internal/domain"
	"github.com/doubley612/bloodhound-automation/internal/ui/tui"
)

type globalOptions struct {
	debug  bool
	config string
}

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "houndup:", errorLine(err))
		os.Exit(1)
	}
}

// errorLine keeps classified errors short and shows anything else verbatim.
func errorLine(err error) string {
	var oe *domain.OpError
	if errors.As(err, &oe) || errors.Is(err, context.Canceled) {
		return tui.UserMessage(err)
	}
	return err.Error()
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:           "houndup",
		Short:         "houndup uploads SharpHound archives into BloodHound",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable verbose logging to .houndup/logs/houndup.log")
	cmd.PersistentFlags().StringVar(&opts.config, "config", "", "path to houndup.yaml (autodetected if omitted)")

	cmd.AddCommand(
		uploadCmd(opts),
		planCmd(opts),
		domainsCmd(opts),
		initCmd(),
		versionCmd(),
	)
	return cmd
}
