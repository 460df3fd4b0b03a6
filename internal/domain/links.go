package domain

import (
	"path"
	"regexp"
	"strings"
)

var (
	// [[target]] or [[target|label]]
	wikiLinkPattern = regexp.MustCompile(`\[\[([^\]|]+)(?:\|[^\]]*)?\]\]`)
	// [label](target)
	markdownLinkPattern = regexp.MustCompile(`\[[^\]]*\]\(([^)]+)\)`)
)

// ExtractReferences returns every internal reference target found in
// content, in document order: wiki-style bracketed references first, then
// parenthesized Markdown references. External references and pure anchors
// are filtered out; anchors on internal references are kept for the caller
// to strip during resolution.
func ExtractReferences(content string) []string {
	var refs []string
	for _, m := range wikiLinkPattern.FindAllStringSubmatch(content, -1) {
		refs = append(refs, m[1])
	}
	for _, m := range markdownLinkPattern.FindAllStringSubmatch(content, -1) {
		refs = append(refs, m[1])
	}

	internal := refs[:0]
	for _, ref := range refs {
		if !IsExternalReference(ref) {
			internal = append(internal, ref)
		}
	}
	return internal
}

// IsExternalReference reports whether ref points outside the project:
// scheme-prefixed URLs and pure anchors.
func IsExternalReference(ref string) bool {
	return strings.HasPrefix(ref, "http://") ||
		strings.HasPrefix(ref, "https://") ||
		strings.HasPrefix(ref, "#")
}

// ResolveReference turns a raw reference into a project-root-relative slash
// path. The anchor part is dropped. A reference starting with a path
// separator is root-relative; anything else resolves against the directory
// of the containing document, collapsing .. segments. Returns "" for
// references that reduce to nothing (pure anchors already filtered).
func ResolveReference(docPath, ref string) string {
	ref, _, _ = strings.Cut(ref, "#")
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}

	if strings.HasPrefix(ref, "/") {
		return path.Clean(strings.TrimLeft(ref, "/"))
	}
	return path.Clean(path.Join(path.Dir(docPath), ref))
}

// ReplacePrefixInLinks rewrites oldPrefix/ to newPrefix/ inside every wiki
// and Markdown link of content. Text outside link targets is untouched.
func ReplacePrefixInLinks(content, oldPrefix, newPrefix string) string {
	mdPattern := regexp.MustCompile(`(\[[^\]]*\]\()` + regexp.QuoteMeta(oldPrefix) + `(/[^)]*\))`)
	content = mdPattern.ReplaceAllString(content, "${1}"+newPrefix+"${2}")

	wikiPattern := regexp.MustCompile(`(\[\[)` + regexp.QuoteMeta(oldPrefix) + `(/[^\]|]*(?:\|[^\]]*)?\]\])`)
	content = wikiPattern.ReplaceAllString(content, "${1}"+newPrefix+"${2}")

	return content
}

// ReplaceLinkInContent rewrites one specific reference target, in both link
// syntaxes, with or without a trailing Markdown extension.
func ReplaceLinkInContent(content, oldLink, newLink string) string {
	mdPattern := regexp.MustCompile(`\[([^\]]*)\]\(` + regexp.QuoteMeta(oldLink) + `(?:\.md)?\)`)
	content = mdPattern.ReplaceAllString(content, `[$1](`+newLink+`)`)

	wikiPattern := regexp.MustCompile(`\[\[` + regexp.QuoteMeta(oldLink) + `(\|[^\]]+)?\]\]`)
	content = wikiPattern.ReplaceAllString(content, `[[`+newLink+`$1]]`)

	return content
}
