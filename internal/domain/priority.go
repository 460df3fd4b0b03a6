package domain

import (
	"sort"
	"strings"
)

// priorityWeights orders issue types by how much they block everything
// else. Unknown types fall back to defaultWeight.
var priorityWeights = map[string]int{
	IssueMissingRequired:     100,
	IssueMissingTemplatesDir: 95,
	IssueMissingTemplate:     90,
	IssueTypeMismatch:        80,
	IssueFrontmatterParse:    70,
	IssueMissingRequiredFld:  60,
	IssueBrokenLink:          50,
	IssueInvalidTags:         40,
	IssueMissingRecommended:  30,
	IssueMissingOptional:     20,
}

const defaultWeight = 10

// Path bonuses: structural and template breakage blocks everything else.
const (
	coreSchemaBonus = 20
	templatesBonus  = 15
	indexBonus      = 10
)

// PriorityScore computes the sort key for one issue.
func PriorityScore(issue Issue) int {
	base, ok := priorityWeights[issue.Type]
	if !ok {
		base = defaultWeight
	}

	multiplier := 1
	if issue.Level == LevelError {
		multiplier = 2
	}

	bonus := 0
	switch {
	case strings.Contains(issue.Path, "structure/") || strings.HasPrefix(issue.Path, "structure"):
		bonus = coreSchemaBonus
	case strings.Contains(issue.Path, TemplatesDir+"/") || issue.Path == TemplatesDir:
		bonus = templatesBonus
	case strings.Contains(issue.Path, "index.md"):
		bonus = indexBonus
	}

	return base*multiplier + bonus
}

// Prioritize returns issues sorted by descending priority score. The sort
// is stable so prior grouping order breaks ties.
func Prioritize(issues []Issue) []Issue {
	sorted := make([]Issue, len(issues))
	copy(sorted, issues)
	sort.SliceStable(sorted, func(i, j int) bool {
		return PriorityScore(sorted[i]) > PriorityScore(sorted[j])
	})
	return sorted
}
