package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/scriptorium/scriptorium/internal/domain"
)

// ── Claude-inspired warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	info    = lipgloss.Color("#8B949E") // soft blue-gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	infoTagStyle  = lipgloss.NewStyle().Foreground(info)
	fileStyle     = lipgloss.NewStyle().Foreground(dim)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	stepStyle     = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderIssues formats a full audit result for terminal output. Issues
// arrive already prioritized.
func RenderIssues(projectName string, issues []domain.Issue) string {
	var b strings.Builder

	title := headerStyle.Render("scriptorium")
	subtitle := dimStyle.Render("Structure Audit · " + projectName)

	errors, warnings, infos := domain.CountLevels(issues)
	var verdict string
	if errors > 0 {
		verdict = failStyle.Bold(true).Render(fmt.Sprintf("%d errors", errors))
	} else {
		verdict = passStyle.Bold(true).Render("structure valid")
	}

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + verdict))
	b.WriteString("\n\n")

	if len(issues) == 0 {
		b.WriteString("  " + passStyle.Render("No issues found.") + "\n")
		return b.String()
	}

	b.WriteString("  ")
	b.WriteString(titleStyle.Render("Issues"))
	b.WriteString("  ")
	if errors > 0 {
		b.WriteString(errorTagStyle.Render(fmt.Sprintf("%d errors", errors)))
		b.WriteString("  ")
	}
	if warnings > 0 {
		b.WriteString(warnTagStyle.Render(fmt.Sprintf("%d warnings", warnings)))
		b.WriteString("  ")
	}
	if infos > 0 {
		b.WriteString(infoTagStyle.Render(fmt.Sprintf("%d info", infos)))
	}
	b.WriteString("\n\n")

	for _, issue := range issues {
		renderIssue(&b, issue)
	}

	b.WriteString("\n")
	return b.String()
}

func renderIssue(b *strings.Builder, issue domain.Issue) {
	tag := levelTag(issue.Level)
	if issue.Path != "" {
		fmt.Fprintf(b, "    %s %s\n", tag, fileStyle.Render(issue.Path))
		fmt.Fprintf(b, "         %s\n", dimStyle.Render(issue.Message))
	} else {
		fmt.Fprintf(b, "    %s %s\n", tag, dimStyle.Render(issue.Message))
	}
}

func levelTag(level string) string {
	switch level {
	case domain.LevelError:
		return errorTagStyle.Render("error")
	case domain.LevelWarning:
		return warnTagStyle.Render("warn ")
	default:
		return infoTagStyle.Render("info ")
	}
}

// RenderPlan formats a correction plan as a numbered step list with a few
// sample items per step.
func RenderPlan(plan []domain.CorrectionStep) string {
	if len(plan) == 0 {
		return "  " + passStyle.Render("Nothing to fix.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Correction Plan") + "\n")
	b.WriteString("  " + separatorLine + "\n\n")

	for i, step := range plan {
		fmt.Fprintf(&b, "  %s %s %s\n",
			stepStyle.Render(fmt.Sprintf("%d.", i+1)),
			stepStyle.Render(step.Title),
			dimStyle.Render(fmt.Sprintf("(%d issues)", step.Count)))
		if step.Description != "" {
			fmt.Fprintf(&b, "     %s\n", faintStyle.Render(step.Description))
		}

		samples := step.Items
		if len(samples) > 3 {
			samples = samples[:3]
		}
		for _, item := range samples {
			fmt.Fprintf(&b, "       %s %s\n", levelTag(item.Level), fileStyle.Render(item.Path))
		}
		if extra := step.Count - len(samples); extra > 0 {
			fmt.Fprintf(&b, "       %s\n", faintStyle.Render(fmt.Sprintf("… and %d more", extra)))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// RenderFixResult summarizes what a fix pass changed.
func RenderFixResult(result domain.FixResult) string {
	var b strings.Builder
	b.WriteString("\n")

	if result.Cancelled {
		b.WriteString("  " + warnStyle.Render("Fix cancelled.") + "\n")
		return b.String()
	}

	b.WriteString("  " + titleStyle.Render("Fix Summary") + "\n")
	b.WriteString("  " + separatorLine + "\n\n")

	line := func(label string, n int) {
		if n > 0 {
			fmt.Fprintf(&b, "    %s %s\n",
				passStyle.Render(fmt.Sprintf("%3d", n)),
				dimStyle.Render(label))
		}
	}
	line("directories created", result.DirsCreated)
	line("files created", result.FilesCreated)
	line("templates created", result.TemplatesFixed)
	line("documents with links repaired", result.LinksFixed)
	line("front-matter blocks added", result.FrontmatterFixed)

	if result.Total == 0 {
		b.WriteString("    " + dimStyle.Render("nothing changed") + "\n")
	}

	b.WriteString("\n")
	if result.Remaining > 0 {
		fmt.Fprintf(&b, "  %s\n", warnStyle.Render(fmt.Sprintf("%d issues remain.", result.Remaining)))
	} else {
		b.WriteString("  " + passStyle.Render("All issues resolved.") + "\n")
	}
	return b.String()
}

// RenderHistory formats audit history for terminal output.
func RenderHistory(entries []domain.AuditEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No audit history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Audit History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for i, e := range entries {
		hash := e.CommitHash
		if len(hash) > 7 {
			hash = hash[:7]
		}
		if hash == "" {
			hash = "·······"
		}

		date := e.Timestamp
		if len(date) > 10 {
			date = date[:10]
		}

		var counts string
		if e.Errors > 0 {
			counts = failStyle.Render(fmt.Sprintf("%d errors", e.Errors))
		} else {
			counts = passStyle.Render("clean")
		}

		line := fmt.Sprintf("  %s  %s  %s  %s",
			dimStyle.Render(date),
			faintStyle.Render(hash),
			counts,
			dimStyle.Render(fmt.Sprintf("%d warnings, %d total", e.Warnings, e.Total)),
		)

		if i > 0 {
			diff := e.Total - entries[i-1].Total
			if diff < 0 {
				line += "  " + passStyle.Render(fmt.Sprintf("↓%d", -diff))
			} else if diff > 0 {
				line += "  " + failStyle.Render(fmt.Sprintf("↑%d", diff))
			}
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}
