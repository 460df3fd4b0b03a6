package domain

// SchemaNode describes one expected entry in the project tree. A node of
// kind file never has children.
type SchemaNode struct {
	Kind     string                `yaml:"type"               json:"type"`
	Required bool                  `yaml:"required"           json:"required"`
	Children map[string]SchemaNode `yaml:"children,omitempty" json:"children,omitempty"`
}

const (
	KindFile = "file"
	KindDir  = "dir"
)

// Schema is the declarative expected structure of a project root.
type Schema map[string]SchemaNode

// TemplateSpec describes one expected template in the templates directory.
type TemplateSpec struct {
	Required bool `yaml:"required" json:"required"`
}

// FrontmatterRule constrains the front matter of documents whose relative
// path matches the associated pattern. All matching rules apply cumulatively.
type FrontmatterRule struct {
	RequiredFields    []string `yaml:"required_fields"    json:"required_fields"`
	RecommendedFields []string `yaml:"recommended_fields" json:"recommended_fields"`
	ValidTags         []string `yaml:"valid_tags"         json:"valid_tags"`
}

// TemplatesDir is the directory holding document templates, relative to the
// project root.
const TemplatesDir = "templates"

// ExportDir is generated output and is excluded from every validation pass.
const ExportDir = "export"

// DefaultStructure returns the expected tree of a writing project.
func DefaultStructure() Schema {
	return Schema{
		"index.md":  {Kind: KindFile, Required: true},
		"README.md": {Kind: KindFile, Required: true},
		"chapitres": {Kind: KindDir, Required: true},
		"structure": {Kind: KindDir, Required: true, Children: map[string]SchemaNode{
			"plan-general.md":   {Kind: KindFile, Required: true},
			"arcs-narratifs.md": {Kind: KindFile},
			"chronologie.md":    {Kind: KindFile},
			"personnages.md":    {Kind: KindFile, Required: true},
			"univers.md":        {Kind: KindFile, Required: true},
		}},
		"personnages": {Kind: KindDir, Required: true, Children: map[string]SchemaNode{
			"index.md":       {Kind: KindFile, Required: true},
			"entites":        {Kind: KindDir},
			"manifestations": {Kind: KindDir},
			"mortels":        {Kind: KindDir},
			"secondaires":    {Kind: KindDir},
		}},
		"lieux": {Kind: KindDir, Children: map[string]SchemaNode{
			"reels":   {Kind: KindDir},
			"fictifs": {Kind: KindDir},
		}},
		"concepts": {Kind: KindDir},
		"references": {Kind: KindDir, Required: true, Children: map[string]SchemaNode{
			"index.md": {Kind: KindFile, Required: true},
		}},
		"styles": {Kind: KindDir, Children: map[string]SchemaNode{
			"index.md":  {Kind: KindFile},
			"registres": {Kind: KindDir},
		}},
		"ressources":      {Kind: KindDir, Required: true},
		"claude-sessions": {Kind: KindDir, Required: true},
		"templates":       {Kind: KindDir, Required: true},
		"export":          {Kind: KindDir, Required: true},
		"automation": {Kind: KindDir, Required: true, Children: map[string]SchemaNode{
			"scripts": {Kind: KindDir, Required: true, Children: map[string]SchemaNode{
				"python": {Kind: KindDir, Required: true},
				"bash":   {Kind: KindDir},
				"js":     {Kind: KindDir},
			}},
			"config":    {Kind: KindDir, Required: true},
			"templates": {Kind: KindDir, Required: true},
			"hooks":     {Kind: KindDir},
			"docs":      {Kind: KindDir, Required: true},
		}},
		"review": {Kind: KindDir, Required: true, Children: map[string]SchemaNode{
			"pending":            {Kind: KindDir, Required: true},
			"in_progress":        {Kind: KindDir, Required: true},
			"completed":          {Kind: KindDir, Required: true},
			"claude_suggestions": {Kind: KindDir, Required: true},
			"templates":          {Kind: KindDir},
		}},
		"media": {Kind: KindDir, Required: true},
	}
}

// DefaultTemplates returns the expected template set.
func DefaultTemplates() map[string]TemplateSpec {
	return map[string]TemplateSpec{
		"personnage-avance.md": {Required: true},
		"chapitre.md":          {Required: true},
		"scene.md":             {Required: false},
		"reference.md":         {Required: true},
		"todo.md":              {Required: true},
		"gantt.md":             {Required: false},
		"intervenant.md":       {Required: true},
	}
}

// DefaultFrontmatterRules returns the front-matter rules keyed by path
// pattern. Tags on character sheets are recommended, not required, so a
// document without them warns but never errors.
func DefaultFrontmatterRules() map[string]FrontmatterRule {
	return map[string]FrontmatterRule{
		`personnages/.*`: {
			RequiredFields:    []string{"nom"},
			RecommendedFields: []string{"tags", "citation", "expertise"},
			ValidTags:         []string{"personnage", "entite", "mortel", "manifestation", "secondaire"},
		},
		`review/.*todo.*\.md`: {
			RequiredFields:    []string{"id", "titre", "statut", "priorite", "date_creation"},
			RecommendedFields: []string{"date_debut", "date_fin", "tags"},
			ValidTags:         []string{"tâche"},
		},
	}
}
