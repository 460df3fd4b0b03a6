package domain

import (
	"fmt"
	"sort"
)

// StepKind tells the executor how to handle an approved step.
type StepKind string

const (
	StepStructure   StepKind = "structure"
	StepTemplates   StepKind = "templates"
	StepFrontmatter StepKind = "frontmatter"
	StepLinks       StepKind = "links"
	StepOther       StepKind = "other"
)

// CorrectionStep is one user-approvable unit of repair covering a cluster
// of similar issues. Items holds every issue in the cluster; renderers
// bound how many they show.
type CorrectionStep struct {
	Kind        StepKind `json:"kind"`
	Key         string   `json:"key,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Count       int      `json:"count"`
	Items       []Issue  `json:"items"`
}

// ExecutionPlan maps 1-based step indexes to approval. Built fresh per fix
// invocation, discarded after execution.
type ExecutionPlan map[int]bool

// ApproveAll returns an execution plan accepting every step.
func ApproveAll(plan []CorrectionStep) ExecutionPlan {
	approvals := make(ExecutionPlan, len(plan))
	for i := range plan {
		approvals[i+1] = true
	}
	return approvals
}

// BuildPlan converts grouped issues into an ordered correction plan:
// structure first, then templates, then front matter per category, then
// broken links per prefix cluster, then the rest. Map-backed buckets are
// emitted in sorted key order so plans are deterministic.
func BuildPlan(issues []Issue) []CorrectionStep {
	groups := GroupByPattern(issues)
	var plan []CorrectionStep

	if len(groups.MissingDirs) > 0 || len(groups.MissingFiles) > 0 {
		items := append(append([]Issue{}, groups.MissingDirs...), groups.MissingFiles...)
		plan = append(plan, CorrectionStep{
			Kind:        StepStructure,
			Title:       "Create missing structural directories and files",
			Description: "These entries are required by the project's base structure.",
			Count:       len(items),
			Items:       items,
		})
	}

	if len(groups.Templates) > 0 {
		plan = append(plan, CorrectionStep{
			Kind:        StepTemplates,
			Title:       "Add missing templates",
			Description: "Templates keep new documents consistent across the project.",
			Count:       len(groups.Templates),
			Items:       groups.Templates,
		})
	}

	for _, category := range sortedKeys(groups.Frontmatter) {
		items := groups.Frontmatter[category]
		plan = append(plan, CorrectionStep{
			Kind:        StepFrontmatter,
			Key:         category,
			Title:       fmt.Sprintf("Fix front-matter issues in %s documents", category),
			Description: "Front-matter metadata drives navigation and cross-referencing.",
			Count:       len(items),
			Items:       items,
		})
	}

	for _, prefix := range sortedKeys(groups.BrokenLinks) {
		items := groups.BrokenLinks[prefix]
		plan = append(plan, CorrectionStep{
			Kind:        StepLinks,
			Key:         prefix,
			Title:       fmt.Sprintf("Repair broken links under '%s/'", prefix),
			Description: "These broken links share a common prefix and can be treated together.",
			Count:       len(items),
			Items:       items,
		})
	}

	if len(groups.Other) > 0 {
		plan = append(plan, CorrectionStep{
			Kind:        StepOther,
			Title:       "Review remaining issues",
			Description: "Miscellaneous issues that need individual attention.",
			Count:       len(groups.Other),
			Items:       groups.Other,
		})
	}

	return plan
}

func sortedKeys(m map[string][]Issue) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
