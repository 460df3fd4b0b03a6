package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/scriptorium/scriptorium/internal/adapters/outbound/tui"
	"github.com/scriptorium/scriptorium/internal/application"
	"github.com/scriptorium/scriptorium/internal/domain"
)

func newFixCmd() *cobra.Command {
	var (
		yes      bool
		noBackup bool
		dryRun   bool
		logLevel string
	)

	cmd := &cobra.Command{
		Use:   "fix [path]",
		Short: "Repair structure issues step by step",
		Long:  "Audit the project, group issues into an ordered correction plan, and apply the steps you approve. A backup of the project is made before anything is changed.",
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

			plan := svc.PlanFix(issues)
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderPlan(plan))
			if len(plan) == 0 {
				return nil
			}

			approvals, err := approveSteps(plan, yes)
			if err != nil {
				return err
			}
			if len(approvals) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No steps approved, nothing to do.")
				return nil
			}

			opts := domain.FixOptions{
				DryRun: dryRun,
				Backup: !noBackup,
			}

			result, err := svc.ExecuteFix(plan, approvals, opts)
			if errors.Is(err, application.ErrBackupFailed) {
				proceed, askErr := confirm("The backup could not be created. Continue without a backup?")
				if askErr != nil {
					return askErr
				}
				if !proceed {
					fmt.Fprint(cmd.OutOrStdout(), tui.RenderFixResult(result))
					return nil
				}
				opts.ProceedWithoutBackup = true
				result, err = svc.ExecuteFix(plan, approvals, opts)
			}
			if err != nil {
				return fmt.Errorf("fix failed: %w", err)
			}

			fmt.Fprint(cmd.OutOrStdout(), tui.RenderFixResult(result))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Approve every step without prompting")
	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "Skip the pre-fix backup")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be done without changing anything")
	cmd.Flags().StringVar(&logLevel, "log-level", "warn", "Console log level (debug, info, warn, error)")

	return cmd
}

// approveSteps asks for per-step approval, or approves everything when
// yes is set.
func approveSteps(plan []domain.CorrectionStep, yes bool) (domain.ExecutionPlan, error) {
	if yes {
		return domain.ApproveAll(plan), nil
	}

	approvals := make(domain.ExecutionPlan, len(plan))
	for i, step := range plan {
		ok, err := confirm(fmt.Sprintf("Step %d: %s (%d issues). Apply?", i+1, step.Title, step.Count))
		if err != nil {
			return nil, err
		}
		approvals[i+1] = ok
	}
	return approvals, nil
}

func confirm(title string) (bool, error) {
	var ok bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Affirmative("Yes").
			Negative("No").
			Value(&ok),
	))
	if err := form.Run(); err != nil {
		return false, err
	}
	return ok, nil
}
