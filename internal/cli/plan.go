package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/doubley612/bloodhound-automation/internal/domain"
	"github.com/doubley612/bloodhound-automation/internal/usecase"
)

func planCmd(opts *globalOptions) *cobra.Command {
	var format string

	c := &cobra.Command{
		Use:   "plan",
		Short: "Show which archive every domain would upload (no browser)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}

			ws, err := loadWorkspace(opts, os.Stderr)
			if err != nil {
				return err
			}
			defer ws.Close()

			plan, err := usecase.NewPlanUploads(ws.cfg, ws.archives, ws.domains, ws.log).Execute(cmd.Context())
			if err != nil {
				return err
			}
			return printPlan(cmd.OutOrStdout(), plan, format)
		},
	}

	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return c
}

type planEntryJSON struct {
	Domain  string `json:"domain"`
	Archive string `json:"archive,omitempty"`
	Created string `json:"created,omitempty"`
	Skip    bool   `json:"skip"`
}

func printPlan(w io.Writer, plan domain.UploadPlan, format string) error {
	if format == "json" {
		entries := make([]planEntryJSON, 0, len(plan.Entries))
		for _, e := range plan.Entries {
			pe := planEntryJSON{Domain: e.Domain, Skip: !e.Found}
			if e.Found {
				pe.Archive = e.Archive.Path
				pe.Created = e.Archive.CreatedAt.UTC().Format(time.RFC3339)
			}
			entries = append(entries, pe)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"domain_source": plan.DomainSource,
			"entries":       entries,
		})
	}

	fmt.Fprintf(w, "Domains: %s\n\n", plan.DomainSource)
	if len(plan.Entries) == 0 {
		fmt.Fprintln(w, "(no domains)")
		return nil
	}
	for _, e := range plan.Entries {
		if !e.Found {
			fmt.Fprintf(w, "- %s  skip (no archive)\n", e.Domain)
			continue
		}
		fmt.Fprintf(w, "- %s  %s\n", e.Domain, e.Archive.Path)
	}
	return nil
}
