package application_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/scriptorium/scriptorium/internal/adapters/outbound/config"
	"github.com/scriptorium/scriptorium/internal/adapters/outbound/scanner"
	"github.com/scriptorium/scriptorium/internal/application"
	"github.com/scriptorium/scriptorium/internal/domain"
)

func newValidator() *application.ValidateService {
	return application.NewValidateService(scanner.New(), config.New(), zap.NewNop())
}

func writeFile(t *testing.T, root, relPath, content string) {
	t.Helper()
	abs := filepath.Join(root, filepath.FromSlash(relPath))
	require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0755))
	require.NoError(t, os.WriteFile(abs, []byte(content), 0644))
}

// characterSheet is a front matter block satisfying the default character
// rules in full.
const characterSheet = `---
nom: Ombre
tags: personnage
citation: une ombre parmi les ombres
expertise: dissimulation
---
# Ombre
`

// writeValidProject materializes the full default structure, templates
// included, so a fresh audit reports nothing.
func writeValidProject(t *testing.T, root string) {
	t.Helper()
	var materialize func(schema domain.Schema, prefix string)
	materialize = func(schema domain.Schema, prefix string) {
		for name, node := range schema {
			rel := name
			if prefix != "" {
				rel = prefix + "/" + name
			}
			if node.Kind == domain.KindDir {
				require.NoError(t, os.MkdirAll(filepath.Join(root, filepath.FromSlash(rel)), 0755))
				materialize(node.Children, rel)
				continue
			}
			content := "# " + name + "\n"
			if prefix == "personnages" {
				content = characterSheet
			}
			writeFile(t, root, rel, content)
		}
	}
	materialize(domain.DefaultStructure(), "")

	for name := range domain.DefaultTemplates() {
		writeFile(t, root, domain.TemplatesDir+"/"+name, "# template\n")
	}
}

func TestValidate_CleanProject(t *testing.T) {
	root := t.TempDir()
	writeValidProject(t, root)

	issues, err := newValidator().Validate(root)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestValidate_MissingRequiredIsError(t *testing.T) {
	root := t.TempDir()
	writeValidProject(t, root)
	require.NoError(t, os.Remove(filepath.Join(root, "index.md")))

	issues, err := newValidator().Validate(root)
	require.NoError(t, err)

	require.Len(t, issues, 1)
	assert.Equal(t, domain.LevelError, issues[0].Level)
	assert.Equal(t, domain.IssueMissingRequired, issues[0].Type)
	assert.Equal(t, "index.md", issues[0].Path)
}

func TestValidate_MissingOptionalIsWarning(t *testing.T) {
	root := t.TempDir()
	writeValidProject(t, root)
	require.NoError(t, os.RemoveAll(filepath.Join(root, "concepts")))

	issues, err := newValidator().Validate(root)
	require.NoError(t, err)

	require.Len(t, issues, 1)
	assert.Equal(t, domain.LevelWarning, issues[0].Level)
	assert.Equal(t, domain.IssueMissingOptional, issues[0].Type)
}

func TestValidate_TypeMismatchStopsDescent(t *testing.T) {
	root := t.TempDir()
	writeValidProject(t, root)
	require.NoError(t, os.RemoveAll(filepath.Join(root, "structure")))
	writeFile(t, root, "structure", "not a directory")

	issues, err := newValidator().Validate(root)
	require.NoError(t, err)

	var types []string
	for _, issue := range issues {
		types = append(types, issue.Type)
	}
	assert.Contains(t, types, domain.IssueTypeMismatch)
	// Children of the mismatched node are not reported separately.
	assert.NotContains(t, types, domain.IssueMissingRequired)
}

func TestValidate_MissingTemplatesDirIsSingleIssue(t *testing.T) {
	root := t.TempDir()
	writeValidProject(t, root)
	require.NoError(t, os.RemoveAll(filepath.Join(root, domain.TemplatesDir)))

	issues, err := newValidator().Validate(root)
	require.NoError(t, err)

	dirIssues := 0
	templateIssues := 0
	for _, issue := range issues {
		switch issue.Type {
		case domain.IssueMissingTemplatesDir:
			dirIssues++
		case domain.IssueMissingTemplate:
			templateIssues++
		}
	}
	assert.Equal(t, 1, dirIssues)
	assert.Zero(t, templateIssues, "per-template checks must not run without the directory")
}

func TestValidate_RequiredTemplateMissingIsError(t *testing.T) {
	root := t.TempDir()
	writeValidProject(t, root)
	require.NoError(t, os.Remove(filepath.Join(root, domain.TemplatesDir, "chapitre.md")))

	issues, err := newValidator().Validate(root)
	require.NoError(t, err)

	require.Len(t, issues, 1)
	assert.Equal(t, domain.LevelError, issues[0].Level)
	assert.Equal(t, domain.IssueMissingTemplate, issues[0].Type)
	assert.Equal(t, "templates/chapitre.md", issues[0].Path)
}

func TestValidate_CharacterWithoutNomIsError(t *testing.T) {
	root := t.TempDir()
	writeValidProject(t, root)
	writeFile(t, root, "personnages/sans-nom.md", "---\ntags: personnage\ncitation: x\nexpertise: y\n---\n# ?\n")

	issues, err := newValidator().Validate(root)
	require.NoError(t, err)

	require.Len(t, issues, 1)
	assert.Equal(t, domain.LevelError, issues[0].Level)
	assert.Equal(t, domain.IssueMissingRequiredFld, issues[0].Type)
	assert.Equal(t, "personnages/sans-nom.md", issues[0].Path)
}

func TestValidate_CharacterWithoutTagsWarnsOnly(t *testing.T) {
	root := t.TempDir()
	writeValidProject(t, root)
	writeFile(t, root, "personnages/tagless.md", "---\nnom: Tagless\ncitation: x\nexpertise: y\n---\n# Tagless\n")

	issues, err := newValidator().Validate(root)
	require.NoError(t, err)

	require.Len(t, issues, 1)
	assert.Equal(t, domain.LevelWarning, issues[0].Level)
	assert.Equal(t, domain.IssueMissingRecommended, issues[0].Type)
}

func TestValidate_UnknownTagWarns(t *testing.T) {
	root := t.TempDir()
	writeValidProject(t, root)
	writeFile(t, root, "personnages/weird.md", "---\nnom: Weird\ntags: licorne\ncitation: x\nexpertise: y\n---\n# Weird\n")

	issues, err := newValidator().Validate(root)
	require.NoError(t, err)

	require.Len(t, issues, 1)
	assert.Equal(t, domain.IssueInvalidTags, issues[0].Type)
	assert.Equal(t, domain.LevelWarning, issues[0].Level)
}

func TestValidate_MissingFrontmatterVersusEmptyBlock(t *testing.T) {
	root := t.TempDir()
	writeValidProject(t, root)
	writeFile(t, root, "personnages/bare.md", "# Bare\n")
	writeFile(t, root, "personnages/empty.md", "---\n---\n# Empty\n")

	issues, err := newValidator().Validate(root)
	require.NoError(t, err)

	byPath := make(map[string][]string)
	for _, issue := range issues {
		byPath[issue.Path] = append(byPath[issue.Path], issue.Type)
	}

	assert.Equal(t, []string{domain.IssueMissingFrontmatter}, byPath["personnages/bare.md"])
	// An empty block is present front matter with fields missing.
	assert.Contains(t, byPath["personnages/empty.md"], domain.IssueMissingRequiredFld)
	assert.NotContains(t, byPath["personnages/empty.md"], domain.IssueMissingFrontmatter)
}

func TestValidate_BadYAMLIsParsingError(t *testing.T) {
	root := t.TempDir()
	writeValidProject(t, root)
	writeFile(t, root, "personnages/broken.md", "---\nnom: [unclosed\n---\n# Broken\n")

	issues, err := newValidator().Validate(root)
	require.NoError(t, err)

	require.Len(t, issues, 1)
	assert.Equal(t, domain.IssueFrontmatterParse, issues[0].Type)
	assert.Equal(t, domain.LevelError, issues[0].Level)
}

func TestValidate_BrokenLinkCarriesTarget(t *testing.T) {
	root := t.TempDir()
	writeValidProject(t, root)
	writeFile(t, root, "chapitres/01.md", "See [next](02.md) and [site](https://example.com).\n")

	issues, err := newValidator().Validate(root)
	require.NoError(t, err)

	require.Len(t, issues, 1)
	assert.Equal(t, domain.IssueBrokenLink, issues[0].Type)
	assert.Equal(t, "chapitres/01.md", issues[0].Path)
	assert.Equal(t, "chapitres/02.md", issues[0].Target)
}

func TestValidate_LinksResolveWithOrWithoutExtension(t *testing.T) {
	root := t.TempDir()
	writeValidProject(t, root)
	writeFile(t, root, "chapitres/01.md", "# One\n")
	writeFile(t, root, "chapitres/02.md", "Back to [[01]] and [one](01.md).\n")

	issues, err := newValidator().Validate(root)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestValidate_ExcludedPathsAreSkipped(t *testing.T) {
	root := t.TempDir()
	writeValidProject(t, root)
	writeFile(t, root, "archives/old.md", "[dead](nowhere.md)\n")
	writeFile(t, root, ".scriptorium.yaml", "exclude_paths:\n  - archives\n")

	issues, err := newValidator().Validate(root)
	require.NoError(t, err)
	assert.Empty(t, issues)
}
