// Package report renders audit results into standalone documents.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/scriptorium/scriptorium/internal/domain"
)

// Markdown implements domain.ReportRenderer producing a Markdown document.
type Markdown struct{}

func NewMarkdown() *Markdown { return &Markdown{} }

func (m *Markdown) Extension() string { return ".md" }

func (m *Markdown) Render(projectPath string, issues []domain.Issue, generatedAt time.Time) string {
	var b strings.Builder

	errors, warnings, infos := domain.CountLevels(issues)

	b.WriteString("# Rapport de structure du projet\n\n")
	fmt.Fprintf(&b, "- **Projet**: `%s`\n", projectPath)
	fmt.Fprintf(&b, "- **Généré le**: %s\n", generatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "- **Problèmes**: %d (%d erreurs, %d avertissements, %d informations)\n\n",
		len(issues), errors, warnings, infos)

	if len(issues) == 0 {
		b.WriteString("✅ Aucun problème détecté. La structure du projet est conforme.\n")
		return b.String()
	}

	b.WriteString("## Problèmes par catégorie\n\n")
	for _, group := range groupByType(issues) {
		fmt.Fprintf(&b, "### %s (%d)\n\n", typeLabel(group.Type), len(group.Issues))
		for _, issue := range group.Issues {
			fmt.Fprintf(&b, "- %s `%s` : %s\n", levelBadge(issue.Level), issue.Path, issue.Message)
		}
		b.WriteString("\n")
	}

	plan := domain.BuildPlan(issues)
	if len(plan) > 0 {
		b.WriteString("## Plan de correction proposé\n\n")
		for i, step := range plan {
			fmt.Fprintf(&b, "%d. **%s** (%d problèmes)\n", i+1, step.Title, step.Count)
			for _, item := range sampleItems(step, 5) {
				fmt.Fprintf(&b, "   - `%s`\n", item.Path)
			}
			if extra := step.Count - len(sampleItems(step, 5)); extra > 0 {
				fmt.Fprintf(&b, "   - … et %d autres\n", extra)
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("## Recommandations\n\n")
	for _, r := range recommendations(issues) {
		fmt.Fprintf(&b, "- %s\n", r)
	}

	return b.String()
}

type typedGroup struct {
	Type   string
	Issues []domain.Issue
}

// groupByType buckets issues by type, ordered by descending severity of
// the bucket's worst issue, then by type name for determinism.
func groupByType(issues []domain.Issue) []typedGroup {
	byType := make(map[string][]domain.Issue)
	for _, issue := range issues {
		byType[issue.Type] = append(byType[issue.Type], issue)
	}

	groups := make([]typedGroup, 0, len(byType))
	for t, list := range byType {
		groups = append(groups, typedGroup{Type: t, Issues: list})
	}
	sort.Slice(groups, func(i, j int) bool {
		li, lj := worstLevel(groups[i].Issues), worstLevel(groups[j].Issues)
		if li != lj {
			return li < lj
		}
		return groups[i].Type < groups[j].Type
	})
	return groups
}

func worstLevel(issues []domain.Issue) int {
	worst := 2
	for _, issue := range issues {
		switch issue.Level {
		case domain.LevelError:
			return 0
		case domain.LevelWarning:
			worst = min(worst, 1)
		}
	}
	return worst
}

func sampleItems(step domain.CorrectionStep, n int) []domain.Issue {
	if len(step.Items) > n {
		return step.Items[:n]
	}
	return step.Items
}

func levelBadge(level string) string {
	switch level {
	case domain.LevelError:
		return "🔴"
	case domain.LevelWarning:
		return "🟡"
	default:
		return "🔵"
	}
}

var typeLabels = map[string]string{
	domain.IssueMissingRequired:     "Éléments requis manquants",
	domain.IssueMissingOptional:     "Éléments optionnels manquants",
	domain.IssueTypeMismatch:        "Conflits de type fichier/répertoire",
	domain.IssueMissingTemplatesDir: "Répertoire de templates manquant",
	domain.IssueMissingTemplate:     "Templates manquants",
	domain.IssueBrokenLink:          "Liens brisés",
	domain.IssueMissingFrontmatter:  "Front-matter absent",
	domain.IssueFrontmatterParse:    "Front-matter invalide",
	domain.IssueMissingRequiredFld:  "Champs requis manquants",
	domain.IssueMissingRecommended:  "Champs recommandés manquants",
	domain.IssueInvalidTags:         "Tags non reconnus",
}

func typeLabel(t string) string {
	if label, ok := typeLabels[t]; ok {
		return label
	}
	return t
}

// recommendations derives next-step advice from the issue mix.
func recommendations(issues []domain.Issue) []string {
	seen := make(map[string]bool)
	for _, issue := range issues {
		seen[issue.Type] = true
	}

	var recs []string
	if seen[domain.IssueMissingRequired] || seen[domain.IssueMissingTemplatesDir] || seen[domain.IssueMissingTemplate] {
		recs = append(recs, "Exécutez `scriptorium fix` pour créer les éléments manquants.")
	}
	if seen[domain.IssueBrokenLink] {
		recs = append(recs, "Vérifiez les liens brisés ; `scriptorium fix` peut réécrire les préfixes obsolètes.")
	}
	if seen[domain.IssueMissingRequiredFld] || seen[domain.IssueFrontmatterParse] || seen[domain.IssueInvalidTags] {
		recs = append(recs, "Corrigez manuellement les front-matter signalés : champs et tags ne sont jamais modifiés automatiquement.")
	}
	if len(recs) == 0 {
		recs = append(recs, "Relancez `scriptorium check` après vos prochaines modifications.")
	}
	return recs
}
