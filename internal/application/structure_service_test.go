package application_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/scriptorium/scriptorium/internal/application"
	"github.com/scriptorium/scriptorium/internal/domain"
)

type stubBackup struct {
	err   error
	calls int
}

func (b *stubBackup) Backup(string) (string, error) {
	b.calls++
	return "project_backup", b.err
}

type stubGit struct{ hash string }

func (g stubGit) IsGitRepo(string) bool { return g.hash != "" }

func (g stubGit) CommitHash(string) (string, error) { return g.hash, nil }

type memHistory struct{ entries []domain.AuditEntry }

func (h *memHistory) Save(_ string, entry domain.AuditEntry) error {
	h.entries = append(h.entries, entry)
	return nil
}

func (h *memHistory) Load(string) ([]domain.AuditEntry, error) { return h.entries, nil }

type stubRenderer struct{ ext string }

func (r stubRenderer) Render(projectPath string, issues []domain.Issue, _ time.Time) string {
	return projectPath
}

func (r stubRenderer) Extension() string { return r.ext }

func newStructureService(t *testing.T, root string, backup domain.BackupMaker, history domain.AuditHistory) *application.StructureService {
	t.Helper()
	svc, err := application.NewStructureService(
		root, newValidator(), newFixer(), backup, stubGit{hash: "abc1234"}, history, zap.NewNop())
	require.NoError(t, err)
	return svc
}

func TestNewStructureService_PathValidation(t *testing.T) {
	_, err := application.NewStructureService(
		filepath.Join(t.TempDir(), "absent"), newValidator(), newFixer(),
		&stubBackup{}, stubGit{}, &memHistory{}, zap.NewNop())
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "file.md")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	_, err = application.NewStructureService(
		file, newValidator(), newFixer(), &stubBackup{}, stubGit{}, &memHistory{}, zap.NewNop())
	assert.ErrorContains(t, err, "not a directory")
}

func TestValidate_RecordsHistoryEntry(t *testing.T) {
	root := t.TempDir()
	writeValidProject(t, root)
	require.NoError(t, os.Remove(filepath.Join(root, "index.md")))

	history := &memHistory{}
	svc := newStructureService(t, root, &stubBackup{}, history)

	issues, err := svc.Validate()
	require.NoError(t, err)
	require.NotEmpty(t, issues)

	require.Len(t, history.entries, 1)
	entry := history.entries[0]
	assert.Equal(t, len(issues), entry.Total)
	assert.Equal(t, "abc1234", entry.CommitHash)
	assert.Equal(t, 1, entry.Errors)
	_, err = time.Parse(time.RFC3339, entry.Timestamp)
	assert.NoError(t, err)
}

func TestExecuteFix_EndToEnd(t *testing.T) {
	root := t.TempDir()
	writeValidProject(t, root)
	require.NoError(t, os.Remove(filepath.Join(root, "index.md")))
	require.NoError(t, os.Remove(filepath.Join(root, "templates", "chapitre.md")))

	svc := newStructureService(t, root, &stubBackup{}, &memHistory{})
	issues, err := svc.Validate()
	require.NoError(t, err)
	require.NotEmpty(t, issues)

	plan := svc.PlanFix(issues)
	require.NotEmpty(t, plan)

	result, err := svc.ExecuteFix(plan, domain.ApproveAll(plan), domain.FixOptions{})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, result.FilesCreated, 1)
	assert.Equal(t, 1, result.TemplatesFixed)
	assert.Zero(t, result.Remaining)
	assert.FileExists(t, filepath.Join(root, "index.md"))
	assert.FileExists(t, filepath.Join(root, "templates", "chapitre.md"))
}

func TestExecuteFix_BackupFailureCancels(t *testing.T) {
	root := t.TempDir()
	writeValidProject(t, root)
	require.NoError(t, os.Remove(filepath.Join(root, "index.md")))

	backup := &stubBackup{err: errors.New("disk full")}
	svc := newStructureService(t, root, backup, &memHistory{})
	issues, err := svc.Validate()
	require.NoError(t, err)
	plan := svc.PlanFix(issues)

	result, err := svc.ExecuteFix(plan, domain.ApproveAll(plan), domain.FixOptions{Backup: true})
	assert.ErrorIs(t, err, application.ErrBackupFailed)
	assert.True(t, result.Cancelled)
	assert.NoFileExists(t, filepath.Join(root, "index.md"))

	// The caller retries after an explicit go-ahead.
	result, err = svc.ExecuteFix(plan, domain.ApproveAll(plan), domain.FixOptions{
		Backup:               true,
		ProceedWithoutBackup: true,
	})
	require.NoError(t, err)
	assert.False(t, result.Cancelled)
	assert.FileExists(t, filepath.Join(root, "index.md"))
	assert.Equal(t, 2, backup.calls)
}

func TestExecuteFix_DryRunTouchesNothing(t *testing.T) {
	root := t.TempDir()
	writeValidProject(t, root)
	require.NoError(t, os.Remove(filepath.Join(root, "index.md")))

	backup := &stubBackup{}
	svc := newStructureService(t, root, backup, &memHistory{})
	issues, err := svc.Validate()
	require.NoError(t, err)
	plan := svc.PlanFix(issues)

	result, err := svc.ExecuteFix(plan, domain.ApproveAll(plan), domain.FixOptions{
		DryRun: true,
		Backup: true,
	})
	require.NoError(t, err)

	assert.Zero(t, result.Total)
	assert.Zero(t, backup.calls, "dry run must not back up")
	assert.NoFileExists(t, filepath.Join(root, "index.md"))
}

func TestExecuteFix_SkipsUnapprovedSteps(t *testing.T) {
	root := t.TempDir()
	writeValidProject(t, root)
	require.NoError(t, os.Remove(filepath.Join(root, "index.md")))

	svc := newStructureService(t, root, &stubBackup{}, &memHistory{})
	issues, err := svc.Validate()
	require.NoError(t, err)
	plan := svc.PlanFix(issues)

	result, err := svc.ExecuteFix(plan, domain.ExecutionPlan{}, domain.FixOptions{})
	require.NoError(t, err)
	assert.Zero(t, result.Total)
	assert.NoFileExists(t, filepath.Join(root, "index.md"))
}

func TestGenerateReport_DefaultFilename(t *testing.T) {
	root := t.TempDir()
	writeValidProject(t, root)
	svc := newStructureService(t, root, &stubBackup{}, &memHistory{})

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	name, err := svc.GenerateReport(nil, stubRenderer{ext: ".md"}, "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "structure-report-"))
	assert.True(t, strings.HasSuffix(name, ".md"))

	content, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Equal(t, svc.ProjectPath(), string(content))
}

func TestGenerateReport_ExplicitFile(t *testing.T) {
	root := t.TempDir()
	writeValidProject(t, root)
	svc := newStructureService(t, root, &stubBackup{}, &memHistory{})

	out := filepath.Join(t.TempDir(), "audit.html")
	name, err := svc.GenerateReport(nil, stubRenderer{ext: ".html"}, out)
	require.NoError(t, err)
	assert.Equal(t, out, name)
	assert.FileExists(t, out)
}
