package application

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/scriptorium/scriptorium/internal/domain"
)

// ErrBackupFailed is returned by ExecuteFix when the pre-fix backup could
// not be created and the caller did not opt into proceeding without one.
var ErrBackupFailed = errors.New("backup failed")

// StructureService orchestrates the full audit lifecycle for one project:
// validation, fix planning, transactional fix execution, and reporting.
type StructureService struct {
	projectPath string
	validator   *ValidateService
	fixer       *FixService
	backup      domain.BackupMaker
	git         domain.GitInfo
	history     domain.AuditHistory
	logger      *zap.Logger
}

// NewStructureService creates a StructureService rooted at projectPath.
// The path must exist and be a directory.
func NewStructureService(
	projectPath string,
	validator *ValidateService,
	fixer *FixService,
	backup domain.BackupMaker,
	git domain.GitInfo,
	history domain.AuditHistory,
	logger *zap.Logger,
) (*StructureService, error) {
	info, err := os.Stat(projectPath)
	if err != nil {
		return nil, fmt.Errorf("project path %s: %w", projectPath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project path %s is not a directory", projectPath)
	}
	abs, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, fmt.Errorf("resolving project path: %w", err)
	}
	return &StructureService{
		projectPath: abs,
		validator:   validator,
		fixer:       fixer,
		backup:      backup,
		git:         git,
		history:     history,
		logger:      logger,
	}, nil
}

// ProjectPath returns the absolute project root the service operates on.
func (s *StructureService) ProjectPath() string {
	return s.projectPath
}

// Validate runs a full audit and records an entry in the audit history.
// History write failures are logged, never fatal.
func (s *StructureService) Validate() ([]domain.Issue, error) {
	issues, err := s.validator.Validate(s.projectPath)
	if err != nil {
		return nil, err
	}

	entry := domain.AuditEntry{
		Timestamp: time.Now().Format(time.RFC3339),
		Total:     len(issues),
	}
	entry.Errors, entry.Warnings, entry.Infos = domain.CountLevels(issues)
	if s.git.IsGitRepo(s.projectPath) {
		if hash, err := s.git.CommitHash(s.projectPath); err == nil {
			entry.CommitHash = hash
		}
	}
	if err := s.history.Save(s.projectPath, entry); err != nil {
		s.logger.Warn("saving audit history", zap.Error(err))
	}
	return issues, nil
}

// PlanFix groups issues and synthesizes the ordered correction plan.
func (s *StructureService) PlanFix(issues []domain.Issue) []domain.CorrectionStep {
	return domain.BuildPlan(issues)
}

// ExecuteFix applies the approved steps of a correction plan. Unless
// disabled, a backup of the project is made first; if the backup fails and
// opts.ProceedWithoutBackup is false, ErrBackupFailed is returned together
// with a cancelled result so the caller can ask and retry. After execution
// the project is re-validated to measure what remains.
func (s *StructureService) ExecuteFix(plan []domain.CorrectionStep, approvals domain.ExecutionPlan, opts domain.FixOptions) (domain.FixResult, error) {
	var result domain.FixResult

	if opts.Backup && !opts.DryRun {
		backupPath, err := s.backup.Backup(s.projectPath)
		if err != nil {
			if !opts.ProceedWithoutBackup {
				s.logger.Error("creating backup", zap.Error(err))
				result.Cancelled = true
				return result, ErrBackupFailed
			}
			s.logger.Warn("proceeding without backup", zap.Error(err))
		} else {
			s.logger.Info("backup created", zap.String("path", backupPath))
		}
	}

	for i, step := range plan {
		if !approvals[i+1] {
			continue
		}
		s.logger.Info("executing step",
			zap.Int("step", i+1),
			zap.String("title", step.Title),
			zap.Int("issues", step.Count))
		if opts.DryRun {
			continue
		}
		s.fixer.ExecuteStep(s.projectPath, step, &result)
	}

	if !opts.DryRun {
		remaining, err := s.validator.Validate(s.projectPath)
		if err != nil {
			s.logger.Warn("re-validating after fix", zap.Error(err))
		} else {
			result.Remaining = len(remaining)
		}
	}
	result.Tally()
	return result, nil
}

// GenerateReport renders issues through the given renderer and writes the
// result to outputFile. An empty outputFile defaults to
// structure-report-<timestamp> with the renderer's extension, in the
// current directory.
func (s *StructureService) GenerateReport(issues []domain.Issue, renderer domain.ReportRenderer, outputFile string) (string, error) {
	now := time.Now()
	if outputFile == "" {
		outputFile = fmt.Sprintf("structure-report-%s%s", now.Format("20060102-150405"), renderer.Extension())
	}
	content := renderer.Render(s.projectPath, issues, now)
	if err := os.WriteFile(outputFile, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	s.logger.Info("report written", zap.String("file", outputFile))
	return outputFile, nil
}
