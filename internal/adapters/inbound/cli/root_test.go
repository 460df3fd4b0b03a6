package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scriptorium/scriptorium/internal/adapters/inbound/cli"
	"github.com/scriptorium/scriptorium/internal/adapters/outbound/config"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, root, relPath, content string) {
	t.Helper()
	abs := filepath.Join(root, filepath.FromSlash(relPath))
	require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0755))
	require.NoError(t, os.WriteFile(abs, []byte(content), 0644))
}

// minimalConfig shrinks the expected structure so fixtures stay small.
const minimalConfig = `
structure:
  index.md:
    type: file
    required: true
  templates:
    type: dir
    required: true
templates:
  scene.md:
    required: false
`

func writeMinimalProject(t *testing.T, root string) {
	writeFile(t, root, config.FileName, minimalConfig)
	writeFile(t, root, "index.md", "# Projet\n")
	writeFile(t, root, "templates/scene.md", "# Scène\n")
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "scriptorium dev (none)\n", out)
}

func TestCheckCommand_CleanProject(t *testing.T) {
	root := t.TempDir()
	writeMinimalProject(t, root)

	out, err := runCommand(t, "check", root)
	require.NoError(t, err)
	assert.Contains(t, out, "structure valid")
}

func TestCheckCommand_ErrorsExitNonZero(t *testing.T) {
	root := t.TempDir()
	writeMinimalProject(t, root)
	require.NoError(t, os.Remove(filepath.Join(root, "index.md")))

	out, err := runCommand(t, "check", "--json", root)
	require.Error(t, err)
	assert.ErrorContains(t, err, "1 error-level issues found")
	assert.Contains(t, out, `"missing_required"`)
	assert.Contains(t, out, `"index.md"`)
}

func TestCheckCommand_MissingPath(t *testing.T) {
	_, err := runCommand(t, "check", filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

func TestInitCommand(t *testing.T) {
	root := t.TempDir()

	out, err := runCommand(t, "init", root)
	require.NoError(t, err)
	assert.Contains(t, out, "Created "+config.FileName)
	assert.FileExists(t, filepath.Join(root, config.FileName))

	_, err = runCommand(t, "init", root)
	assert.ErrorContains(t, err, "already exists")

	_, err = runCommand(t, "init", "--force", root)
	assert.NoError(t, err)
}

func TestInitCommand_OutputLoads(t *testing.T) {
	root := t.TempDir()
	_, err := runCommand(t, "init", root)
	require.NoError(t, err)

	// The generated skeleton is all comments and must load as defaults.
	cfg, err := config.New().Load(root)
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.EffectiveStructure())
}

func TestFixCommand_DryRun(t *testing.T) {
	root := t.TempDir()
	writeMinimalProject(t, root)
	require.NoError(t, os.Remove(filepath.Join(root, "index.md")))

	out, err := runCommand(t, "fix", "--yes", "--dry-run", root)
	require.NoError(t, err)
	assert.Contains(t, out, "Correction Plan")
	assert.NoFileExists(t, filepath.Join(root, "index.md"))
}

func TestFixCommand_AppliesPlan(t *testing.T) {
	root := t.TempDir()
	writeMinimalProject(t, root)
	require.NoError(t, os.Remove(filepath.Join(root, "index.md")))

	out, err := runCommand(t, "fix", "--yes", "--no-backup", root)
	require.NoError(t, err)
	assert.Contains(t, out, "All issues resolved.")
	assert.FileExists(t, filepath.Join(root, "index.md"))
}

func TestFixCommand_NothingToFix(t *testing.T) {
	root := t.TempDir()
	writeMinimalProject(t, root)

	out, err := runCommand(t, "fix", "--yes", "--no-backup", root)
	require.NoError(t, err)
	assert.Contains(t, out, "Nothing to fix.")
}

func TestReportCommand(t *testing.T) {
	root := t.TempDir()
	writeMinimalProject(t, root)
	require.NoError(t, os.Remove(filepath.Join(root, "index.md")))

	outFile := filepath.Join(t.TempDir(), "rapport.md")
	out, err := runCommand(t, "report", "--output", outFile, root)
	require.NoError(t, err)
	assert.Contains(t, out, "Report written to "+outFile)

	content, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# Rapport de structure du projet")
}

func TestReportCommand_HTML(t *testing.T) {
	root := t.TempDir()
	writeMinimalProject(t, root)

	outFile := filepath.Join(t.TempDir(), "rapport.html")
	_, err := runCommand(t, "report", "--format", "html", "--output", outFile, root)
	require.NoError(t, err)

	content, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "<!DOCTYPE html>")
}

func TestReportCommand_UnknownFormat(t *testing.T) {
	root := t.TempDir()
	writeMinimalProject(t, root)

	_, err := runCommand(t, "report", "--format", "pdf", root)
	assert.Error(t, err)
}

func TestHistoryCommand_Empty(t *testing.T) {
	root := t.TempDir()
	writeMinimalProject(t, root)

	out, err := runCommand(t, "history", root)
	require.NoError(t, err)
	assert.Contains(t, out, "No audit history found.")
}

func TestHistoryCommand_AfterCheck(t *testing.T) {
	root := t.TempDir()
	writeMinimalProject(t, root)

	_, err := runCommand(t, "check", root)
	require.NoError(t, err)

	out, err := runCommand(t, "history", "--json", root)
	require.NoError(t, err)
	assert.Contains(t, out, `"timestamp"`)
	assert.Contains(t, out, `"total": 0`)
}
