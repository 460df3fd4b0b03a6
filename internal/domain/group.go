package domain

import "strings"

// OtherKey collects broken links with no path separator and front-matter
// issues outside any known document category.
const OtherKey = "other"

// GroupedIssues partitions a validation result into actionable buckets so
// the plan builder can propose one remediation per cluster of similar
// problems instead of one per issue.
type GroupedIssues struct {
	MissingDirs  []Issue
	MissingFiles []Issue
	// BrokenLinks is keyed by the first path segment of the unresolved
	// reference.
	BrokenLinks map[string][]Issue
	// Frontmatter is keyed by a coarse document category inferred from the
	// document path.
	Frontmatter map[string][]Issue
	Templates   []Issue
	Other       []Issue
}

// frontmatterCategories maps a path substring to a document category.
// Checked in order; first hit wins.
var frontmatterCategories = []string{"personnages", "chapitres", "review"}

func frontmatterCategory(docPath string) string {
	for _, category := range frontmatterCategories {
		if strings.Contains(docPath, category) {
			return category
		}
	}
	return OtherKey
}

func isFrontmatterIssue(issueType string) bool {
	switch issueType {
	case IssueMissingFrontmatter, IssueFrontmatterParse,
		IssueMissingRequiredFld, IssueMissingRecommended, IssueInvalidTags:
		return true
	}
	return false
}

// GroupByPattern partitions issues into the fixed bucket shape. Markdown
// paths under missing_required are files, anything else a directory.
func GroupByPattern(issues []Issue) GroupedIssues {
	groups := GroupedIssues{
		BrokenLinks: make(map[string][]Issue),
		Frontmatter: make(map[string][]Issue),
	}

	for _, issue := range issues {
		switch {
		case issue.Type == IssueMissingRequired && !strings.HasSuffix(issue.Path, ".md"):
			groups.MissingDirs = append(groups.MissingDirs, issue)

		case issue.Type == IssueMissingRequired:
			groups.MissingFiles = append(groups.MissingFiles, issue)

		case issue.Type == IssueBrokenLink:
			key := OtherKey
			if prefix, _, found := strings.Cut(issue.Target, "/"); found {
				key = prefix
			}
			groups.BrokenLinks[key] = append(groups.BrokenLinks[key], issue)

		case isFrontmatterIssue(issue.Type):
			category := frontmatterCategory(issue.Path)
			groups.Frontmatter[category] = append(groups.Frontmatter[category], issue)

		case issue.Type == IssueMissingTemplate || issue.Type == IssueMissingTemplatesDir:
			groups.Templates = append(groups.Templates, issue)

		default:
			groups.Other = append(groups.Other, issue)
		}
	}

	return groups
}
