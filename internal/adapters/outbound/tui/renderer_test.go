package tui_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scriptorium/scriptorium/internal/adapters/outbound/tui"
	"github.com/scriptorium/scriptorium/internal/domain"
)

func TestRenderIssues(t *testing.T) {
	issues := []domain.Issue{
		{Level: domain.LevelError, Type: domain.IssueMissingRequired, Path: "index.md", Message: "Fichier requis manquant: index.md"},
		{Level: domain.LevelWarning, Type: domain.IssueBrokenLink, Path: "chapitres/01.md", Message: "Lien brisé vers docs/plan.md"},
	}

	out := tui.RenderIssues("roman", issues)
	assert.Contains(t, out, "scriptorium")
	assert.Contains(t, out, "Structure Audit · roman")
	assert.Contains(t, out, "1 errors")
	assert.Contains(t, out, "index.md")
	assert.Contains(t, out, "Lien brisé vers docs/plan.md")
}

func TestRenderIssues_Clean(t *testing.T) {
	out := tui.RenderIssues("roman", nil)
	assert.Contains(t, out, "structure valid")
	assert.Contains(t, out, "No issues found.")
}

func TestRenderPlan(t *testing.T) {
	plan := []domain.CorrectionStep{{
		Kind:        domain.StepStructure,
		Title:       "Créer les éléments manquants",
		Description: "Crée les répertoires et fichiers requis.",
		Count:       5,
		Items: []domain.Issue{
			{Level: domain.LevelError, Path: "index.md"},
			{Level: domain.LevelError, Path: "chapitres"},
			{Level: domain.LevelError, Path: "structure/plan-general.md"},
			{Level: domain.LevelError, Path: "media"},
			{Level: domain.LevelError, Path: "ressources"},
		},
	}}

	out := tui.RenderPlan(plan)
	assert.Contains(t, out, "Correction Plan")
	assert.Contains(t, out, "Créer les éléments manquants")
	assert.Contains(t, out, "(5 issues)")
	assert.Contains(t, out, "… and 2 more")
	assert.NotContains(t, out, "media", "only three sample items are shown")
}

func TestRenderPlan_Empty(t *testing.T) {
	assert.Contains(t, tui.RenderPlan(nil), "Nothing to fix.")
}

func TestRenderFixResult(t *testing.T) {
	out := tui.RenderFixResult(domain.FixResult{
		DirsCreated:  2,
		FilesCreated: 3,
		Total:        5,
		Remaining:    1,
	})
	assert.Contains(t, out, "directories created")
	assert.Contains(t, out, "files created")
	assert.Contains(t, out, "1 issues remain.")
	assert.NotContains(t, out, "templates created")
}

func TestRenderFixResult_Resolved(t *testing.T) {
	out := tui.RenderFixResult(domain.FixResult{FilesCreated: 1, Total: 1})
	assert.Contains(t, out, "All issues resolved.")
}

func TestRenderFixResult_Cancelled(t *testing.T) {
	out := tui.RenderFixResult(domain.FixResult{Cancelled: true})
	assert.Contains(t, out, "Fix cancelled.")
	assert.NotContains(t, out, "Fix Summary")
}

func TestRenderHistory(t *testing.T) {
	entries := []domain.AuditEntry{
		{Timestamp: "2026-08-27T10:00:00Z", CommitHash: "abcdef1234567890", Errors: 3, Warnings: 2, Total: 5},
		{Timestamp: "2026-08-28T10:00:00Z", Warnings: 1, Total: 1},
	}

	out := tui.RenderHistory(entries)
	assert.Contains(t, out, "Audit History")
	assert.Contains(t, out, "2026-08-27")
	assert.Contains(t, out, "abcdef1")
	assert.Contains(t, out, "3 errors")
	assert.Contains(t, out, "clean")
	assert.Contains(t, out, "↓4")
}

func TestRenderHistory_Empty(t *testing.T) {
	assert.Contains(t, tui.RenderHistory(nil), "No audit history found.")
}
