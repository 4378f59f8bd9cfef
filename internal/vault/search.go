package vault

import (
	"fmt"
	"sort"
	"strings"
)

// TitleMatch is a filename-search hit.
type TitleMatch struct {
	NoteInfo
	// MatchPos is the byte offset of the query within the lowercased
	// note name. Results sort by it so prefix matches rank first.
	MatchPos int `json:"match_pos"`
}

// Match is one matching line inside a note.
type Match struct {
	Line    int    `json:"line"`
	Context string `json:"context"`
}

// SearchResult groups all matches found in one note.
type SearchResult struct {
	Name    string  `json:"name"`
	Path    string  `json:"path"`
	Matches []Match `json:"matches"`
}

// SearchTitles finds notes whose filename contains query
// (case-insensitive), ordered by match position then path.
func (v *Vault) SearchTitles(query string, limit int) ([]TitleMatch, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: empty query", ErrInvalidInput)
	}
	q := strings.ToLower(query)

	notes, err := v.List("", true, 0)
	if err != nil {
		return nil, err
	}
	var matches []TitleMatch
	for _, n := range notes {
		if pos := strings.Index(strings.ToLower(n.Name), q); pos >= 0 {
			matches = append(matches, TitleMatch{NoteInfo: n, MatchPos: pos})
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].MatchPos != matches[j].MatchPos {
			return matches[i].MatchPos < matches[j].MatchPos
		}
		return matches[i].Path < matches[j].Path
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// SearchText scans note bodies line by line for a case-insensitive
// substring match. Every matching line is reported with its 1-based line
// number (counted within the body, after any frontmatter block) and
// contextLines of surrounding text. Notes are visited in
// listing order; cost is linear in total vault size. A limit <= 0 means
// no limit on the number of matching notes.
func (v *Vault) SearchText(query string, contextLines, limit int) ([]SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: empty query", ErrInvalidInput)
	}
	if contextLines < 0 {
		return nil, fmt.Errorf("%w: negative context_lines", ErrInvalidInput)
	}
	q := strings.ToLower(query)

	notes, err := v.List("", true, 0)
	if err != nil {
		return nil, err
	}
	var results []SearchResult
	for _, n := range notes {
		note, err := v.Get(n.Path)
		if err != nil {
			continue
		}
		body := ParseNote(note.Content).Body
		matches := scanLines(body, q, contextLines)
		if len(matches) == 0 {
			continue
		}
		results = append(results, SearchResult{Name: n.Name, Path: n.Path, Matches: matches})
		if limit > 0 && len(results) >= limit {
			break
		}
	}
	return results, nil
}

// scanLines finds every line containing the lowercased query and attaches
// the surrounding context window.
func scanLines(body, loweredQuery string, contextLines int) []Match {
	lines := strings.Split(body, "\n")
	var matches []Match
	for i, line := range lines {
		if !strings.Contains(strings.ToLower(line), loweredQuery) {
			continue
		}
		start := i - contextLines
		if start < 0 {
			start = 0
		}
		end := i + contextLines + 1
		if end > len(lines) {
			end = len(lines)
		}
		matches = append(matches, Match{
			Line:    i + 1,
			Context: strings.Join(lines[start:end], "\n"),
		})
	}
	return matches
}
