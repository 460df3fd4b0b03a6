package domain

import "time"

// VaultScanner enumerates the Markdown documents of a project directory.
type VaultScanner interface {
	Scan(projectPath string, excludePaths ...string) (*ScanResult, error)
}

// ScanResult holds the outcome of scanning a project directory. Paths are
// project-root-relative and slash-separated.
type ScanResult struct {
	RootPath      string   `json:"root_path"`
	MarkdownFiles []string `json:"markdown_files"`
	RootDirs      []string `json:"root_dirs"`
}

// ConfigLoader reads the project configuration.
type ConfigLoader interface {
	Load(projectPath string) (ProjectConfig, error)
}

// BackupMaker copies the project tree aside before a fix pass mutates it.
type BackupMaker interface {
	Backup(projectPath string) (string, error)
}

// GitInfo reports version-control metadata for report stamping.
type GitInfo interface {
	IsGitRepo(projectPath string) bool
	CommitHash(projectPath string) (string, error)
}

// AuditEntry is one recorded validation run.
type AuditEntry struct {
	Timestamp  string `json:"timestamp"`
	CommitHash string `json:"commit_hash,omitempty"`
	Errors     int    `json:"errors"`
	Warnings   int    `json:"warnings"`
	Infos      int    `json:"infos"`
	Total      int    `json:"total"`
}

// AuditHistory persists validation runs across invocations.
type AuditHistory interface {
	Save(projectPath string, entry AuditEntry) error
	Load(projectPath string) ([]AuditEntry, error)
}

// ReportRenderer turns a validation result into one output document.
// Renderings are deterministic in (issues, projectPath, generatedAt).
type ReportRenderer interface {
	Render(projectPath string, issues []Issue, generatedAt time.Time) string
	Extension() string
}
