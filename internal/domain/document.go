package domain

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is a Markdown file split into YAML front matter and body.
// FrontMatter is nil when the file has no leading --- block.
type Document struct {
	FrontMatter map[string]any
	Body        string
}

// FrontmatterDelimiter opens and closes the YAML block at the top of a
// document.
const FrontmatterDelimiter = "---"

// ParseDocument splits content into front matter and body. A document
// without a leading --- block yields a nil FrontMatter and the untouched
// content as body. An empty block between delimiters yields an empty,
// non-nil mapping. A YAML error inside the block is returned as an error;
// callers convert it into a frontmatter_parsing_error issue.
func ParseDocument(content string) (Document, error) {
	lines := strings.SplitAfter(content, "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], "\r\n") != FrontmatterDelimiter {
		return Document{Body: content}, nil
	}

	var block strings.Builder
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], "\r\n") != FrontmatterDelimiter {
			block.WriteString(lines[i])
			continue
		}

		fm := map[string]any{}
		if err := yaml.Unmarshal([]byte(block.String()), &fm); err != nil {
			return Document{Body: content}, fmt.Errorf("parsing front matter: %w", err)
		}
		if fm == nil {
			fm = map[string]any{}
		}
		return Document{FrontMatter: fm, Body: strings.Join(lines[i+1:], "")}, nil
	}

	// Unterminated block: treat the whole file as body.
	return Document{Body: content}, nil
}

// Render reassembles the document. A non-nil but empty FrontMatter renders
// as an empty delimiter pair, preserving the body byte for byte.
func (d Document) Render() string {
	if d.FrontMatter == nil {
		return d.Body
	}

	var b strings.Builder
	b.WriteString(FrontmatterDelimiter)
	b.WriteString("\n")
	if len(d.FrontMatter) > 0 {
		out, err := yaml.Marshal(d.FrontMatter)
		if err == nil {
			b.Write(out)
		}
	}
	b.WriteString(FrontmatterDelimiter)
	b.WriteString("\n")
	b.WriteString(d.Body)
	return b.String()
}

// NormalizeTags converts a front-matter tags value to a flat list. A string
// value is split on commas; a sequence keeps its elements. Anything else
// yields nil.
func NormalizeTags(value any) []string {
	switch v := value.(type) {
	case string:
		var tags []string
		for _, tag := range strings.Split(v, ",") {
			if trimmed := strings.TrimSpace(tag); trimmed != "" {
				tags = append(tags, trimmed)
			}
		}
		return tags
	case []any:
		var tags []string
		for _, item := range v {
			if s, ok := item.(string); ok {
				tags = append(tags, strings.TrimSpace(s))
			}
		}
		return tags
	case []string:
		return v
	default:
		return nil
	}
}
