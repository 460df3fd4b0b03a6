package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scriptorium/scriptorium/internal/adapters/outbound/report"
	"github.com/scriptorium/scriptorium/internal/domain"
)

func newReportCmd() *cobra.Command {
	var (
		format   string
		output   string
		logLevel string
	)

	cmd := &cobra.Command{
		Use:   "report [path]",
		Short: "Write an audit report to a file",
		Long:  "Audit the project and write a Markdown or HTML report grouping the issues by category, with the proposed correction plan.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			var renderer domain.ReportRenderer
			switch format {
			case "markdown", "md":
				renderer = report.NewMarkdown()
			case "html":
				renderer = report.NewHTML()
			default:
				return fmt.Errorf("unknown format %q (valid: markdown, html)", format)
			}

			svc, logger, err := newService(path, logLevel)
			if err != nil {
				return err
			}
			defer logger.Sync()

			issues, err := svc.Validate()
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			file, err := svc.GenerateReport(issues, renderer, output)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", file)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "markdown", "Report format (markdown, html)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: structure-report-<timestamp>)")
	cmd.Flags().StringVar(&logLevel, "log-level", "warn", "Console log level (debug, info, warn, error)")

	return cmd
}
