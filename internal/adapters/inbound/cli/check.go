package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/scriptorium/scriptorium/internal/adapters/outbound/tui"
	"github.com/scriptorium/scriptorium/internal/domain"
)

func newCheckCmd() *cobra.Command {
	var (
		jsonOutput bool
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   "check [path]",
		Short: "Audit the project structure",
		Long:  "Validate the project's directory tree, templates, front-matter and internal links against the configured schema. Exits non-zero when error-level issues are found.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
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

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(issues); err != nil {
					return err
				}
			} else {
				projectName := filepath.Base(svc.ProjectPath())
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderIssues(projectName, issues))
			}

			errors, _, _ := domain.CountLevels(issues)
			if errors > 0 {
				return fmt.Errorf("%d error-level issues found", errors)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().StringVar(&logLevel, "log-level", "warn", "Console log level (debug, info, warn, error)")

	return cmd
}
