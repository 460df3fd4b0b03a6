package application

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"go.uber.org/zap"

	"github.com/scriptorium/scriptorium/internal/domain"
)

// ValidateService runs the four validation passes against a project tree
// and returns a prioritized issue list. It never mutates the project.
type ValidateService struct {
	scanner      domain.VaultScanner
	configLoader domain.ConfigLoader
	logger       *zap.Logger
}

// NewValidateService creates a ValidateService with all required dependencies.
func NewValidateService(scanner domain.VaultScanner, configLoader domain.ConfigLoader, logger *zap.Logger) *ValidateService {
	return &ValidateService{scanner: scanner, configLoader: configLoader, logger: logger}
}

// Validate runs structure, template, front-matter and link validation and
// returns the issues sorted by descending priority. Issues are recomputed
// on every call; nothing is cached across invocations.
func (s *ValidateService) Validate(projectPath string) ([]domain.Issue, error) {
	cfg, err := s.configLoader.Load(projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	scan, err := s.scanner.Scan(projectPath, cfg.ExcludePaths...)
	if err != nil {
		return nil, fmt.Errorf("scanning project: %w", err)
	}

	var issues []domain.Issue
	issues = append(issues, s.ValidateStructure(projectPath, cfg.EffectiveStructure(), "")...)
	issues = append(issues, s.ValidateTemplates(projectPath, cfg.EffectiveTemplates())...)
	issues = append(issues, s.ValidateFrontmatter(scan, cfg.EffectiveFrontmatterRules())...)
	issues = append(issues, s.CheckBrokenLinks(scan)...)

	issues = domain.Prioritize(issues)

	errors, warnings, _ := domain.CountLevels(issues)
	s.logger.Info("validation finished",
		zap.String("project", projectPath),
		zap.Int("errors", errors),
		zap.Int("warnings", warnings),
		zap.Int("total", len(issues)))

	return issues, nil
}

// ValidateStructure recursively compares a schema level against the
// filesystem. relPath is the slash path of the level being checked, ""
// at the root. Traversal stops below a node whose kind mismatches, and
// only descends into directories that exist with the right kind.
func (s *ValidateService) ValidateStructure(projectPath string, schema domain.Schema, relPath string) []domain.Issue {
	var issues []domain.Issue

	for _, name := range sortedNodeNames(schema) {
		node := schema[name]
		current := name
		if relPath != "" {
			current = relPath + "/" + name
		}

		info, err := os.Stat(filepath.Join(projectPath, filepath.FromSlash(current)))
		if err != nil {
			if node.Required {
				issues = append(issues, domain.Issue{
					Level:   domain.LevelError,
					Type:    domain.IssueMissingRequired,
					Path:    current,
					Message: fmt.Sprintf("required entry missing: %s", current),
				})
			} else {
				issues = append(issues, domain.Issue{
					Level:   domain.LevelWarning,
					Type:    domain.IssueMissingOptional,
					Path:    current,
					Message: fmt.Sprintf("recommended entry missing: %s", current),
				})
			}
			continue
		}

		actual := domain.KindFile
		if info.IsDir() {
			actual = domain.KindDir
		}
		if actual != node.Kind {
			issues = append(issues, domain.Issue{
				Level:   domain.LevelError,
				Type:    domain.IssueTypeMismatch,
				Path:    current,
				Message: fmt.Sprintf("wrong kind for %s: expected %s, found %s", current, node.Kind, actual),
			})
			continue
		}

		if info.IsDir() && len(node.Children) > 0 {
			issues = append(issues, s.ValidateStructure(projectPath, node.Children, current)...)
		}
	}

	return issues
}

// ValidateTemplates checks the expected template set. A missing templates
// directory short-circuits with a single error; per-template checks only
// run when the directory exists.
func (s *ValidateService) ValidateTemplates(projectPath string, expected map[string]domain.TemplateSpec) []domain.Issue {
	templatesDir := filepath.Join(projectPath, domain.TemplatesDir)
	info, err := os.Stat(templatesDir)
	if err != nil || !info.IsDir() {
		return []domain.Issue{{
			Level:   domain.LevelError,
			Type:    domain.IssueMissingTemplatesDir,
			Path:    domain.TemplatesDir,
			Message: "templates directory is missing",
		}}
	}

	names := make([]string, 0, len(expected))
	for name := range expected {
		names = append(names, name)
	}
	sort.Strings(names)

	var issues []domain.Issue
	for _, name := range names {
		if _, err := os.Stat(filepath.Join(templatesDir, name)); err == nil {
			continue
		}
		level := domain.LevelWarning
		if expected[name].Required {
			level = domain.LevelError
		}
		issues = append(issues, domain.Issue{
			Level:   level,
			Type:    domain.IssueMissingTemplate,
			Path:    domain.TemplatesDir + "/" + name,
			Message: fmt.Sprintf("template %s is missing", name),
		})
	}
	return issues
}

// ValidateFrontmatter checks every scanned document against the matching
// front-matter rules. YAML failures become issues, never errors.
func (s *ValidateService) ValidateFrontmatter(scan *domain.ScanResult, rules map[string]domain.FrontmatterRule) []domain.Issue {
	compiled := compileRules(rules, s.logger)

	var issues []domain.Issue
	for _, relPath := range scan.MarkdownFiles {
		var matching []domain.FrontmatterRule
		for _, rule := range compiled {
			if rule.pattern.MatchString(relPath) {
				matching = append(matching, rule.rule)
			}
		}
		if len(matching) == 0 {
			continue
		}

		content, err := os.ReadFile(filepath.Join(scan.RootPath, filepath.FromSlash(relPath)))
		if err != nil {
			s.logger.Warn("skipping unreadable document", zap.String("path", relPath), zap.Error(err))
			continue
		}

		doc, err := domain.ParseDocument(string(content))
		if err != nil {
			issues = append(issues, domain.Issue{
				Level:   domain.LevelError,
				Type:    domain.IssueFrontmatterParse,
				Path:    relPath,
				Message: fmt.Sprintf("front matter of %s does not parse: %v", relPath, err),
			})
			continue
		}

		if doc.FrontMatter == nil {
			issues = append(issues, domain.Issue{
				Level:   domain.LevelWarning,
				Type:    domain.IssueMissingFrontmatter,
				Path:    relPath,
				Message: fmt.Sprintf("front matter missing in %s", relPath),
			})
			continue
		}

		for _, rule := range matching {
			issues = append(issues, checkRule(relPath, doc.FrontMatter, rule)...)
		}
	}
	return issues
}

func checkRule(relPath string, fm map[string]any, rule domain.FrontmatterRule) []domain.Issue {
	var issues []domain.Issue

	for _, field := range rule.RequiredFields {
		if _, ok := fm[field]; !ok {
			issues = append(issues, domain.Issue{
				Level:   domain.LevelError,
				Type:    domain.IssueMissingRequiredFld,
				Path:    relPath,
				Message: fmt.Sprintf("required field missing in %s: %s", relPath, field),
			})
		}
	}

	for _, field := range rule.RecommendedFields {
		if _, ok := fm[field]; !ok {
			issues = append(issues, domain.Issue{
				Level:   domain.LevelWarning,
				Type:    domain.IssueMissingRecommended,
				Path:    relPath,
				Message: fmt.Sprintf("recommended field missing in %s: %s", relPath, field),
			})
		}
	}

	if raw, ok := fm["tags"]; ok && len(rule.ValidTags) > 0 {
		tags := domain.NormalizeTags(raw)
		valid := make(map[string]bool, len(rule.ValidTags))
		for _, tag := range rule.ValidTags {
			valid[tag] = true
		}
		found := false
		for _, tag := range tags {
			if valid[tag] {
				found = true
				break
			}
		}
		if !found {
			issues = append(issues, domain.Issue{
				Level:   domain.LevelWarning,
				Type:    domain.IssueInvalidTags,
				Path:    relPath,
				Message: fmt.Sprintf("no valid tag found in %s (expected one of: %v)", relPath, rule.ValidTags),
			})
		}
	}

	return issues
}

// CheckBrokenLinks resolves every internal reference of every document
// against the set of existing Markdown paths, with and without extension.
func (s *ValidateService) CheckBrokenLinks(scan *domain.ScanResult) []domain.Issue {
	existing := make(map[string]bool, len(scan.MarkdownFiles)*2)
	for _, relPath := range scan.MarkdownFiles {
		existing[relPath] = true
		if len(relPath) > 3 {
			existing[relPath[:len(relPath)-3]] = true
		}
	}

	var issues []domain.Issue
	for _, relPath := range scan.MarkdownFiles {
		content, err := os.ReadFile(filepath.Join(scan.RootPath, filepath.FromSlash(relPath)))
		if err != nil {
			s.logger.Warn("skipping unreadable document", zap.String("path", relPath), zap.Error(err))
			continue
		}

		for _, ref := range domain.ExtractReferences(string(content)) {
			resolved := domain.ResolveReference(relPath, ref)
			if resolved == "" || existing[resolved] || existing[resolved+".md"] {
				continue
			}
			issues = append(issues, domain.Issue{
				Level:   domain.LevelWarning,
				Type:    domain.IssueBrokenLink,
				Path:    relPath,
				Message: fmt.Sprintf("broken link in %s: '%s'", relPath, resolved),
				Target:  resolved,
			})
		}
	}
	return issues
}

type compiledRule struct {
	pattern *regexp.Regexp
	rule    domain.FrontmatterRule
}

// compileRules compiles rule patterns in sorted order. Invalid patterns are
// rejected at config load; a failure here is logged and skipped.
func compileRules(rules map[string]domain.FrontmatterRule, logger *zap.Logger) []compiledRule {
	patterns := make([]string, 0, len(rules))
	for pattern := range rules {
		patterns = append(patterns, pattern)
	}
	sort.Strings(patterns)

	compiled := make([]compiledRule, 0, len(rules))
	for _, pattern := range patterns {
		// Patterns are anchored at the start of the relative path.
		re, err := regexp.Compile(`\A(?:` + pattern + `)`)
		if err != nil {
			logger.Warn("skipping invalid frontmatter pattern", zap.String("pattern", pattern), zap.Error(err))
			continue
		}
		compiled = append(compiled, compiledRule{pattern: re, rule: rules[pattern]})
	}
	return compiled
}

func sortedNodeNames(schema domain.Schema) []string {
	names := make([]string, 0, len(schema))
	for name := range schema {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
