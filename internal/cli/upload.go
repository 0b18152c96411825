package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/doubley612/bloodhound-automation/internal/domain"
	"github.com/doubley612/bloodhound-automation/internal/ports"
	"github.com/doubley612/bloodhound-automation/internal/ui/tui"
	"github.com/doubley612/bloodhound-automation/internal/usecase"
)

func uploadCmd(opts *globalOptions) *cobra.Command {
	var useTUI bool
	var noReport bool
	var format string

	c := &cobra.Command{
		Use:   "upload",
		Short: "Upload the newest archive of every domain into BloodHound",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}

			var console io.Writer = os.Stderr
			if useTUI {
				console = nil
			}
			ws, err := loadWorkspace(opts, console)
			if err != nil {
				return err
			}
			defer ws.Close()

			run := func(ctx context.Context, sink ports.ProgressSink) (domain.UploadReport, string, error) {
				uopts := []usecase.UploadOption{usecase.WithUploadLogger(ws.log)}
				if !noReport {
					uopts = append(uopts, usecase.WithReportStore(ws.store))
				}
				if sink != nil {
					uopts = append(uopts, usecase.WithProgress(sink))
				}
				uc := usecase.NewUploadData(ws.cfg, ws.newSession(), ws.archives, ws.domains, uopts...)
				return uc.Execute(ctx)
			}

			var (
				report   domain.UploadReport
				reportID string
			)
			if useTUI {
				report, reportID, err = tui.Run(tui.Deps{
					Run:           run,
					WorkspaceRoot: ws.root,
					Logger:        ws.log,
					Debug:         opts.debug,
				})
			} else {
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()
				report, reportID, err = run(ctx, nil)
			}
			if err != nil {
				if !report.StartedAt.IsZero() {
					_ = printReport(cmd.OutOrStdout(), report, reportID, format)
				}
				return err
			}

			return printReport(cmd.OutOrStdout(), report, reportID, format)
		},
	}

	c.Flags().BoolVar(&useTUI, "tui", false, "Show live progress in a terminal UI")
	c.Flags().BoolVar(&noReport, "no-report", false, "Do not save the upload report under reports/")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return c
}

func checkFormat(format string) error {
	switch format {
	case "pretty", "json", "":
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

func printReport(w io.Writer, report domain.UploadReport, reportID string, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		payload := map[string]any{
			"report_id": reportID,
			"report":    report,
		}
		return enc.Encode(payload)
	case "pretty", "":
		printPrettyReport(w, report, reportID)
		return nil
	default:
		return checkFormat(format)
	}
}

func printPrettyReport(w io.Writer, report domain.UploadReport, reportID string) {
	total := report.EndedAt.Sub(report.StartedAt)
	if report.StartedAt.IsZero() || report.EndedAt.IsZero() {
		total = 0
	}

	fmt.Fprintf(w, "Run:       %s\n", report.RunID)
	fmt.Fprintf(w, "Domains:   %s\n", report.DomainSource)
	fmt.Fprintf(w, "Logged in: %s\n", loginState(report.AlreadyLoggedIn))
	fmt.Fprintf(w, "Started:   %s\n", report.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "Duration:  %s\n", total.Round(time.Second))
	if reportID != "" {
		fmt.Fprintf(w, "Report:    %s\n", reportID)
	}
	fmt.Fprintln(w)

	for _, r := range report.Results {
		switch r.Status {
		case domain.StatusUploaded:
			fmt.Fprintf(w, "- [UPLOADED] %s  %s (%dms)\n", r.Domain, r.Archive, r.DurationMS)
		default:
			fmt.Fprintf(w, "- [SKIPPED]  %s  %s\n", r.Domain, r.Reason)
		}
	}

	fmt.Fprintf(w, "\n%d uploaded, %d skipped\n", report.Uploaded(), report.Skipped())
}

func loginState(already bool) string {
	if already {
		return "existing session"
	}
	return "credentials"
}
