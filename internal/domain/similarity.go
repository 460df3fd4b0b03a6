package domain

import (
	"path"
	"sort"
	"strings"
)

// Tunable repair policy. These are heuristics, not contracts.
const (
	// PrefixClusterThreshold is the number of broken links sharing a
	// leading segment before a systemic rename is suspected.
	PrefixClusterThreshold = 5
	// PrefixMatchThreshold is the minimum positional similarity between a
	// broken prefix and an existing top-level directory.
	PrefixMatchThreshold = 0.5
	// SameNameBaseScore is awarded to any candidate sharing the broken
	// reference's base file name.
	SameNameBaseScore = 0.8
	// SharedSegmentBonus is added per path segment the candidate shares
	// with the broken reference.
	SharedSegmentBonus = 0.1
)

// PositionalSimilarity scores two names by the fraction of positions where
// their characters agree, over the longer length.
func PositionalSimilarity(a, b string) float64 {
	if a == "" && b == "" {
		return 0
	}
	matches := 0
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] == b[i] {
			matches++
		}
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	return float64(matches) / float64(longest)
}

// CountLinkPrefixes tallies the leading path segment of every broken-link
// target. Targets with no separator are skipped; they have no prefix to
// rewrite.
func CountLinkPrefixes(issues []Issue) map[string]int {
	counts := make(map[string]int)
	for _, issue := range issues {
		if issue.Type != IssueBrokenLink || issue.Target == "" {
			continue
		}
		prefix, _, found := strings.Cut(issue.Target, "/")
		if found {
			counts[prefix]++
		}
	}
	return counts
}

// SuggestPrefixReplacements proposes an existing top-level directory for
// each broken prefix that occurs often enough to suggest a rename.
func SuggestPrefixReplacements(prefixCounts map[string]int, rootDirs []string) map[string]string {
	suggestions := make(map[string]string)
	for prefix, count := range prefixCounts {
		if count < PrefixClusterThreshold {
			continue
		}

		bestMatch := ""
		bestScore := 0.0
		for _, dir := range rootDirs {
			score := PositionalSimilarity(prefix, dir)
			if score > PrefixMatchThreshold && score > bestScore {
				bestMatch = dir
				bestScore = score
			}
		}
		if bestMatch != "" {
			suggestions[prefix] = bestMatch
		}
	}
	return suggestions
}

// SuggestPrefixFromLocations proposes a replacement for a broken prefix by
// looking at where the targets' base names actually live. Returns "" unless
// a single top-level directory hosts a majority of the best candidates.
// Covers renames the name heuristic cannot see, like docs/ to structure/.
func SuggestPrefixFromLocations(targets []string, files []string) string {
	tally := make(map[string]int)
	for _, target := range targets {
		ranked := RankSimilarFiles(files, target)
		if len(ranked) == 0 {
			continue
		}
		if top, _, found := strings.Cut(ranked[0].Path, "/"); found {
			tally[top]++
		}
	}

	best, bestCount := "", 0
	for dir, count := range tally {
		if count > bestCount || (count == bestCount && dir < best) {
			best, bestCount = dir, count
		}
	}
	if bestCount*2 <= len(targets) {
		return ""
	}
	return best
}

// SimilarFile is a repair candidate for a broken reference.
type SimilarFile struct {
	Path  string
	Score float64
}

// RankSimilarFiles scans the known file set for entries sharing the broken
// reference's base name and ranks them: base score for the name match plus
// a bonus per shared path segment. Ties break on path order so results are
// deterministic.
func RankSimilarFiles(files []string, brokenRef string) []SimilarFile {
	filename := path.Base(brokenRef)
	if !strings.Contains(filename, ".") {
		filename += ".md"
	}

	refSegments := make(map[string]bool)
	for _, seg := range strings.Split(brokenRef, "/") {
		refSegments[seg] = true
	}

	var candidates []SimilarFile
	for _, file := range files {
		if path.Base(file) != filename {
			continue
		}
		score := SameNameBaseScore
		for _, seg := range strings.Split(file, "/") {
			if refSegments[seg] {
				score += SharedSegmentBonus
			}
		}
		candidates = append(candidates, SimilarFile{Path: file, Score: score})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Path < candidates[j].Path
	})
	return candidates
}
