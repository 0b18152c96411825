package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/doubley612/bloodhound-automation/internal/domain"
)

func domainsCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "domains",
		Short: "List the domains an upload would iterate over",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := loadWorkspace(opts, os.Stderr)
			if err != nil {
				return err
			}
			defer ws.Close()

			source := domain.SourceEnumerated
			names, ok := ws.domains.Domains(cmd.Context())
			if !ok {
				source = domain.SourceDefault
				names = domain.NormalizeDomains(ws.cfg.Domains.Default)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Source: %s\n\n", source)
			if len(names) == 0 {
				fmt.Fprintln(w, "(no domains)")
				return nil
			}
			for _, n := range names {
				fmt.Fprintf(w, "- %s\n", n)
			}
			return nil
		},
	}
}
