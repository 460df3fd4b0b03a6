package report

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/scriptorium/scriptorium/internal/domain"
)

// HTML implements domain.ReportRenderer producing a self-contained HTML
// page with collapsible plan steps.
type HTML struct{}

func NewHTML() *HTML { return &HTML{} }

func (h *HTML) Extension() string { return ".html" }

func (h *HTML) Render(projectPath string, issues []domain.Issue, generatedAt time.Time) string {
	var b strings.Builder

	errors, warnings, infos := domain.CountLevels(issues)

	b.WriteString(`<!DOCTYPE html>
<html lang="fr">
<head>
<meta charset="utf-8">
<title>Rapport de structure</title>
<style>
body { font-family: -apple-system, "Segoe UI", sans-serif; max-width: 60rem; margin: 2rem auto; padding: 0 1rem; color: #1f2937; }
h1 { border-bottom: 2px solid #d97706; padding-bottom: .3rem; }
.meta { color: #6b7280; }
.badge { display: inline-block; padding: .1rem .5rem; border-radius: .5rem; font-size: .8rem; color: #fff; }
.badge.error { background: #ef4444; }
.badge.warning { background: #f59e0b; }
.badge.info { background: #8b949e; }
code { background: #f3f4f6; padding: .1rem .3rem; border-radius: .25rem; }
details { margin: .5rem 0; border: 1px solid #e5e7eb; border-radius: .5rem; padding: .5rem 1rem; }
summary { cursor: pointer; font-weight: 600; }
ul { margin: .3rem 0; }
.ok { color: #22c55e; font-weight: 600; }
</style>
</head>
<body>
`)

	b.WriteString("<h1>Rapport de structure du projet</h1>\n")
	fmt.Fprintf(&b, "<p class=\"meta\">Projet : <code>%s</code><br>Généré le %s</p>\n",
		html.EscapeString(projectPath), generatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "<p>%d problèmes : <span class=\"badge error\">%d erreurs</span> <span class=\"badge warning\">%d avertissements</span> <span class=\"badge info\">%d informations</span></p>\n",
		len(issues), errors, warnings, infos)

	if len(issues) == 0 {
		b.WriteString("<p class=\"ok\">Aucun problème détecté. La structure du projet est conforme.</p>\n</body>\n</html>\n")
		return b.String()
	}

	b.WriteString("<h2>Problèmes par catégorie</h2>\n")
	for _, group := range groupByType(issues) {
		fmt.Fprintf(&b, "<details open><summary>%s (%d)</summary>\n<ul>\n",
			html.EscapeString(typeLabel(group.Type)), len(group.Issues))
		for _, issue := range group.Issues {
			fmt.Fprintf(&b, "<li><span class=\"badge %s\">%s</span> <code>%s</code> %s</li>\n",
				issue.Level, issue.Level,
				html.EscapeString(issue.Path), html.EscapeString(issue.Message))
		}
		b.WriteString("</ul>\n</details>\n")
	}

	plan := domain.BuildPlan(issues)
	if len(plan) > 0 {
		b.WriteString("<h2>Plan de correction proposé</h2>\n")
		for i, step := range plan {
			fmt.Fprintf(&b, "<details><summary>%d. %s (%d problèmes)</summary>\n<ul>\n",
				i+1, html.EscapeString(step.Title), step.Count)
			for _, item := range sampleItems(step, 5) {
				fmt.Fprintf(&b, "<li><code>%s</code></li>\n", html.EscapeString(item.Path))
			}
			if extra := step.Count - len(sampleItems(step, 5)); extra > 0 {
				fmt.Fprintf(&b, "<li>… et %d autres</li>\n", extra)
			}
			b.WriteString("</ul>\n</details>\n")
		}
	}

	b.WriteString("<h2>Recommandations</h2>\n<ul>\n")
	for _, r := range recommendations(issues) {
		fmt.Fprintf(&b, "<li>%s</li>\n", html.EscapeString(r))
	}
	b.WriteString("</ul>\n</body>\n</html>\n")

	return b.String()
}
