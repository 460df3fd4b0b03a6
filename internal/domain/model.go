package domain

// Issue represents a single problem detected during validation.
type Issue struct {
	Level   string `json:"level"            yaml:"level"`
	Type    string `json:"type"             yaml:"type"`
	Path    string `json:"path"             yaml:"path"`
	Message string `json:"message"          yaml:"message"`
	// Target holds the unresolved reference for broken_link issues so that
	// downstream consumers never have to parse it back out of Message.
	Target string `json:"target,omitempty" yaml:"target,omitempty"`
}

const (
	LevelError   = "error"
	LevelWarning = "warning"
	LevelInfo    = "info"
)

// Issue type codes. These are the wire contract between the engine and the
// CLI/report renderers.
const (
	IssueMissingRequired     = "missing_required"
	IssueMissingOptional     = "missing_optional"
	IssueTypeMismatch        = "type_mismatch"
	IssueMissingTemplatesDir = "missing_templates_dir"
	IssueMissingTemplate     = "missing_template"
	IssueMissingFrontmatter  = "missing_frontmatter"
	IssueFrontmatterParse    = "frontmatter_parsing_error"
	IssueMissingRequiredFld  = "missing_required_field"
	IssueMissingRecommended  = "missing_recommended_field"
	IssueInvalidTags         = "invalid_tags"
	IssueBrokenLink          = "broken_link"
)

// CountLevels tallies issues per severity level.
func CountLevels(issues []Issue) (errors, warnings, infos int) {
	for _, issue := range issues {
		switch issue.Level {
		case LevelError:
			errors++
		case LevelWarning:
			warnings++
		default:
			infos++
		}
	}
	return
}

// FixResult summarizes the mutations applied by a fix pass.
type FixResult struct {
	DirsCreated      int  `json:"dirs_created"`
	FilesCreated     int  `json:"files_created"`
	TemplatesFixed   int  `json:"templates_fixed"`
	LinksFixed       int  `json:"links_fixed"`
	FrontmatterFixed int  `json:"frontmatter_fixed"`
	Total            int  `json:"total"`
	Remaining        int  `json:"remaining"`
	Cancelled        bool `json:"cancelled,omitempty"`
}

// Tally recomputes Total from the per-category counters.
func (r *FixResult) Tally() {
	r.Total = r.DirsCreated + r.FilesCreated + r.TemplatesFixed +
		r.LinksFixed + r.FrontmatterFixed
}

// FixOptions controls a fix pass.
type FixOptions struct {
	DryRun bool `json:"dry_run"`
	Backup bool `json:"backup"`
	// ProceedWithoutBackup acknowledges a failed backup attempt. The CLI
	// sets it after asking the user; the engine never prompts.
	ProceedWithoutBackup bool `json:"proceed_without_backup"`
}
