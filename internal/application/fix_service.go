package application

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/camelcase"
	"go.uber.org/zap"

	"github.com/scriptorium/scriptorium/internal/domain"
)

// FixService applies approved correction steps to the project tree. Every
// mutation is idempotent: entries that already exist by execution time are
// left alone, and a file is rewritten only when its content actually
// changes. Filesystem errors on one file never abort the rest of a step.
type FixService struct {
	scanner domain.VaultScanner
	logger  *zap.Logger
}

// NewFixService creates a FixService.
func NewFixService(scanner domain.VaultScanner, logger *zap.Logger) *FixService {
	return &FixService{scanner: scanner, logger: logger}
}

// ExecuteStep dispatches one approved step and accumulates its mutations
// into result.
func (s *FixService) ExecuteStep(projectPath string, step domain.CorrectionStep, result *domain.FixResult) {
	switch step.Kind {
	case domain.StepStructure:
		s.fixStructure(projectPath, step.Items, result)
	case domain.StepTemplates:
		s.fixTemplates(projectPath, step.Items, result)
	case domain.StepFrontmatter:
		s.fixFrontmatter(projectPath, step.Items, result)
	case domain.StepLinks:
		s.fixLinks(projectPath, step.Items, result)
	default:
		s.logger.Info("step requires manual intervention", zap.String("title", step.Title))
	}
	result.Tally()
}

func (s *FixService) fixStructure(projectPath string, items []domain.Issue, result *domain.FixResult) {
	for _, issue := range items {
		if issue.Type != domain.IssueMissingRequired {
			continue
		}
		target := filepath.Join(projectPath, filepath.FromSlash(issue.Path))

		if strings.HasSuffix(issue.Path, ".md") {
			if created := s.createMissingFile(target, issue.Path); created {
				result.FilesCreated++
			}
			continue
		}

		if _, err := os.Stat(target); err == nil {
			continue
		}
		if err := os.MkdirAll(target, 0755); err != nil {
			s.logger.Error("creating directory", zap.String("path", issue.Path), zap.Error(err))
			continue
		}
		s.logger.Info("directory created", zap.String("path", issue.Path))
		result.DirsCreated++
	}
}

// createMissingFile writes a new document from the built-in file template
// table. Existing files are never overwritten.
func (s *FixService) createMissingFile(absPath, relPath string) bool {
	if _, err := os.Stat(absPath); err == nil {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		s.logger.Error("creating parent directory", zap.String("path", relPath), zap.Error(err))
		return false
	}

	body, ok := fileTemplates[filepath.Base(relPath)]
	if !ok {
		body = fileTemplates["default.md"]
	}

	replacer := strings.NewReplacer(
		"{title}", titleFromFilename(relPath),
		"{directory}", filepath.Base(filepath.Dir(relPath)),
		"{date}", time.Now().Format("2006-01-02"),
	)

	if err := os.WriteFile(absPath, []byte(replacer.Replace(body)), 0644); err != nil {
		s.logger.Error("writing file", zap.String("path", relPath), zap.Error(err))
		return false
	}
	s.logger.Info("file created", zap.String("path", relPath))
	return true
}

// titleFromFilename derives a human title from a file name: extension
// stripped, dashes and underscores to spaces, camelCase split into words,
// title-cased.
func titleFromFilename(relPath string) string {
	base := strings.TrimSuffix(filepath.Base(relPath), filepath.Ext(relPath))
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)

	var words []string
	for _, chunk := range strings.Fields(base) {
		words = append(words, camelcase.Split(chunk)...)
	}
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

func (s *FixService) fixTemplates(projectPath string, items []domain.Issue, result *domain.FixResult) {
	templatesDir := filepath.Join(projectPath, domain.TemplatesDir)
	for _, issue := range items {
		if issue.Type == domain.IssueMissingTemplatesDir {
			if err := os.MkdirAll(templatesDir, 0755); err != nil {
				s.logger.Error("creating templates directory", zap.Error(err))
			}
			continue
		}
		if issue.Type != domain.IssueMissingTemplate {
			continue
		}

		name := filepath.Base(issue.Path)
		body, ok := templateBodies[name]
		if !ok {
			s.logger.Info("no built-in body for template", zap.String("template", name))
			continue
		}

		target := filepath.Join(templatesDir, name)
		if _, err := os.Stat(target); err == nil {
			continue
		}
		if err := os.MkdirAll(templatesDir, 0755); err != nil {
			s.logger.Error("creating templates directory", zap.Error(err))
			continue
		}
		if err := os.WriteFile(target, []byte(substituteTemplateVars(body)), 0644); err != nil {
			s.logger.Error("writing template", zap.String("template", name), zap.Error(err))
			continue
		}
		s.logger.Info("template created", zap.String("template", name))
		result.TemplatesFixed++
	}
}

// substituteTemplateVars fills {{var}} placeholders with generated
// defaults: a timestamp-derived id, the current date, and neutral text.
func substituteTemplateVars(body string) string {
	now := time.Now()
	return strings.NewReplacer(
		"{{nom}}", "Nouveau Personnage",
		"{{citation}}", "Citation caractéristique",
		"{{titre}}", "Nouveau Titre",
		"{{id}}", now.Format("20060102150405")[:8],
		"{{type}}", "livre",
		"{{date}}", now.Format("2006-01-02"),
	).Replace(body)
}

// fixFrontmatter synthesizes an empty front-matter block for documents
// missing one, preserving the body byte for byte. Field-level issues
// (missing fields, invalid tags, parse errors) need manual attention and
// are only logged.
func (s *FixService) fixFrontmatter(projectPath string, items []domain.Issue, result *domain.FixResult) {
	for _, issue := range items {
		if issue.Type != domain.IssueMissingFrontmatter {
			s.logger.Info("front-matter issue requires manual intervention",
				zap.String("path", issue.Path), zap.String("type", issue.Type))
			continue
		}

		absPath := filepath.Join(projectPath, filepath.FromSlash(issue.Path))
		content, err := os.ReadFile(absPath)
		if err != nil {
			s.logger.Error("reading document", zap.String("path", issue.Path), zap.Error(err))
			continue
		}

		doc, err := domain.ParseDocument(string(content))
		if err != nil || doc.FrontMatter != nil {
			// Parse failure or block present: nothing to synthesize.
			continue
		}

		doc.FrontMatter = map[string]any{}
		if err := os.WriteFile(absPath, []byte(doc.Render()), 0644); err != nil {
			s.logger.Error("writing document", zap.String("path", issue.Path), zap.Error(err))
			continue
		}
		s.logger.Info("front-matter block added", zap.String("path", issue.Path))
		result.FrontmatterFixed++
	}
}

// fixLinks repairs one broken-link cluster. A prefix rewrite is proposed
// when the cluster is large enough to suggest a systemic rename; links the
// rewrite does not resolve fall back to a similarity search over files
// sharing the broken reference's base name. A document is rewritten only
// when its content actually changed.
func (s *FixService) fixLinks(projectPath string, items []domain.Issue, result *domain.FixResult) {
	scan, err := s.scanner.Scan(projectPath)
	if err != nil {
		s.logger.Error("scanning project for link repair", zap.Error(err))
		return
	}

	prefixCounts := domain.CountLinkPrefixes(items)
	suggestions := domain.SuggestPrefixReplacements(prefixCounts, scan.RootDirs)

	// Clusters big enough for a systemic rewrite but without a plausible
	// name match: look at where the targets' files actually live.
	byPrefix := make(map[string][]string)
	for _, issue := range items {
		if prefix, _, found := strings.Cut(issue.Target, "/"); found {
			byPrefix[prefix] = append(byPrefix[prefix], issue.Target)
		}
	}
	for prefix, count := range prefixCounts {
		if count < domain.PrefixClusterThreshold {
			continue
		}
		if _, ok := suggestions[prefix]; ok {
			continue
		}
		if dir := domain.SuggestPrefixFromLocations(byPrefix[prefix], scan.MarkdownFiles); dir != "" {
			suggestions[prefix] = dir
		}
	}

	byDoc := make(map[string][]domain.Issue)
	var docs []string
	for _, issue := range items {
		if issue.Type != domain.IssueBrokenLink {
			continue
		}
		if _, seen := byDoc[issue.Path]; !seen {
			docs = append(docs, issue.Path)
		}
		byDoc[issue.Path] = append(byDoc[issue.Path], issue)
	}

	for _, docPath := range docs {
		absPath := filepath.Join(projectPath, filepath.FromSlash(docPath))
		content, err := os.ReadFile(absPath)
		if err != nil {
			s.logger.Error("reading document", zap.String("path", docPath), zap.Error(err))
			continue
		}

		updated := string(content)
		for prefix, replacement := range suggestions {
			updated = domain.ReplacePrefixInLinks(updated, prefix, replacement)
		}

		// Targets the prefix pass did not resolve fall back to a
		// similarity search; rewritten targets no longer appear in the
		// text, so the replacement is a no-op for them.
		for _, issue := range byDoc[docPath] {
			if candidates := domain.RankSimilarFiles(scan.MarkdownFiles, issue.Target); len(candidates) > 0 {
				best := strings.TrimSuffix(candidates[0].Path, ".md")
				updated = domain.ReplaceLinkInContent(updated, issue.Target, best)
			}
		}

		if updated == string(content) {
			continue
		}
		if err := os.WriteFile(absPath, []byte(updated), 0644); err != nil {
			s.logger.Error("writing document", zap.String("path", docPath), zap.Error(err))
			continue
		}
		s.logger.Info("links rewritten", zap.String("path", docPath))
		result.LinksFixed++
	}
}

// fileTemplates maps known file names to built-in document bodies used
// when a required file must be created. Unknown names use default.md.
var fileTemplates = map[string]string{
	"index.md": `# {title}

## Vue d'ensemble

Ce document sert d'index pour {directory}.

## Contenu

<!-- Liste des contenus principaux de cette section -->

## Navigation rapide

<!-- Liens vers les documents principaux -->
`,
	"default.md": `# {title}

*Document créé automatiquement le {date}*

## Contenu à définir

Ce document a été créé automatiquement pour corriger la structure du projet.
Veuillez le compléter avec le contenu approprié.
`,
}

// templateBodies holds the built-in bodies materialized into templates/.
// Templates without a body here are reported but not auto-created.
var templateBodies = map[string]string{
	"personnage-avance.md": `---
nom: {{nom}}
citation: {{citation}}
naissance: {{date}}
tags: personnage
---

# {{nom}}

*"{{citation}}"*

## Caractéristiques
- **Âge**:
- **Apparence**:
- **Traits de caractère**:

## Contexte
- **Origine**:
- **Famille**:
- **Occupation**:

## Arc narratif
- **Motivation**:
- **Conflit**:
- **Évolution**:

## Apparitions
<!-- Les liens vers les chapitres où le personnage apparaît -->

## Notes
`,
	"chapitre.md": `---
titre: {{titre}}
statut: brouillon
date_creation: {{date}}
tags: chapitre
---

# {{titre}}

## Synopsis
<!-- Brève description du chapitre -->

## Scènes
<!-- Liste des scènes ou sections -->

## Personnages présents
<!-- Personnages apparaissant dans ce chapitre -->

## Notes
<!-- Notes et idées pour ce chapitre -->
`,
	"reference.md": `---
id: {{id}}
type: {{type}}
titre: {{titre}}
date: {{date}}
tags: reference
---

# {{titre}}

## Entrée
- **Type**: {{type}}
- **Créateur(s)**:
- **Date**:
- **Source**:

## Description concise
<!-- Description en 1-3 phrases -->

## Pertinence pour le projet
<!-- En quoi cette référence est importante -->

## Éléments clés à retenir
-
-

## Connexions internes
<!-- Liens vers d'autres éléments du projet -->
-

## Notes additionnelles
`,
	"todo.md": `---
id: TODO-{{id}}
titre: {{titre}}
statut: À faire
priorite: 3
date_creation: {{date}}
date_debut: {{date}}
date_fin:
tags: tâche
---

# {{titre}} [TODO-{{id}}]

**Statut**: À faire
**Priorité**: 3/5
**Période**: {{date}} →

## Description

## Sous-tâches

- [ ]
- [ ]

## Intervenants assignés

- [[]]

## Ressources nécessaires

-

## Notes
`,
}
