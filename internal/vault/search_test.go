package vault

import (
	"errors"
	"testing"
)

func TestSearchTitles(t *testing.T) {
	v := newTestVault(t, map[string]string{
		"meeting-notes.md":         "x",
		"projects/meeting.md":      "x",
		"archive/old-meetings.md":  "x",
		"unrelated.md":             "x",
		"projects/kickoff-plan.md": "x",
	})

	t.Run("prefix matches rank first", func(t *testing.T) {
		matches, err := v.SearchTitles("meeting", 0)
		if err != nil {
			t.Fatalf("SearchTitles: %v", err)
		}
		if len(matches) != 3 {
			t.Fatalf("got %d matches, want 3", len(matches))
		}
		// Position 0 matches sort before the mid-name match in
		// old-meetings; the tie between them breaks by path.
		if matches[0].Name != "meeting-notes" || matches[1].Name != "meeting" {
			t.Errorf("order = %q, %q", matches[0].Name, matches[1].Name)
		}
		if matches[2].Name != "old-meetings" {
			t.Errorf("last = %q", matches[2].Name)
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		matches, err := v.SearchTitles("MEETING", 0)
		if err != nil {
			t.Fatalf("SearchTitles: %v", err)
		}
		if len(matches) != 3 {
			t.Errorf("got %d matches, want 3", len(matches))
		}
	})

	t.Run("limit", func(t *testing.T) {
		matches, err := v.SearchTitles("meeting", 1)
		if err != nil {
			t.Fatalf("SearchTitles: %v", err)
		}
		if len(matches) != 1 {
			t.Errorf("got %d matches, want 1", len(matches))
		}
	})

	t.Run("empty query", func(t *testing.T) {
		if _, err := v.SearchTitles("  ", 0); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("error = %v, want ErrInvalidInput", err)
		}
	})

	t.Run("no matches", func(t *testing.T) {
		matches, err := v.SearchTitles("zzz", 0)
		if err != nil {
			t.Fatalf("SearchTitles: %v", err)
		}
		if len(matches) != 0 {
			t.Errorf("got %v, want none", matches)
		}
	})
}

func TestSearchText(t *testing.T) {
	v := newTestVault(t, map[string]string{
		"recipe.md": "# Pasta\n\nBoil water.\nAdd the pasta.\nStir gently.\nDrain and serve.\n",
		"other.md":  "Nothing relevant here.\n",
		"meta.md":   "---\ntags:\n  - pasta\n---\n\nNo mention in the body.\n",
	})

	t.Run("reports line and context", func(t *testing.T) {
		results, err := v.SearchText("pasta", 2, 0)
		if err != nil {
			t.Fatalf("SearchText: %v", err)
		}
		if len(results) != 1 {
			t.Fatalf("got %d notes, want 1 (frontmatter must not match)", len(results))
		}
		r := results[0]
		if r.Path != "recipe.md" {
			t.Errorf("Path = %q", r.Path)
		}
		if len(r.Matches) != 2 {
			t.Fatalf("got %d matches, want 2", len(r.Matches))
		}
		if r.Matches[0].Line != 1 {
			t.Errorf("first match line = %d, want 1", r.Matches[0].Line)
		}
		if r.Matches[1].Line != 4 {
			t.Errorf("second match line = %d, want 4", r.Matches[1].Line)
		}
		// Line 4 with 2 lines of context covers lines 2-6.
		want := "\nBoil water.\nAdd the pasta.\nStir gently.\nDrain and serve."
		if r.Matches[1].Context != want {
			t.Errorf("context = %q, want %q", r.Matches[1].Context, want)
		}
	})

	t.Run("exact line always matches itself", func(t *testing.T) {
		results, err := v.SearchText("Stir gently.", 0, 0)
		if err != nil {
			t.Fatalf("SearchText: %v", err)
		}
		if len(results) != 1 || len(results[0].Matches) != 1 {
			t.Fatalf("results = %v", results)
		}
		if results[0].Matches[0].Context != "Stir gently." {
			t.Errorf("context = %q", results[0].Matches[0].Context)
		}
	})

	t.Run("line numbers are body relative", func(t *testing.T) {
		v := newTestVault(t, map[string]string{
			"fm.md": "---\ncreated: 2024-01-01\ntags: []\n---\n\nfindme on the first body line\n",
		})
		results, err := v.SearchText("findme", 0, 0)
		if err != nil {
			t.Fatalf("SearchText: %v", err)
		}
		if len(results) != 1 || len(results[0].Matches) != 1 {
			t.Fatalf("results = %v", results)
		}
		// The frontmatter block does not count toward line numbers.
		if got := results[0].Matches[0].Line; got > 2 {
			t.Errorf("line = %d, want a body-relative number", got)
		}
	})

	t.Run("limit caps matching notes", func(t *testing.T) {
		results, err := v.SearchText("e", 0, 1)
		if err != nil {
			t.Fatalf("SearchText: %v", err)
		}
		if len(results) != 1 {
			t.Errorf("got %d notes, want 1", len(results))
		}
	})

	t.Run("negative context rejected", func(t *testing.T) {
		if _, err := v.SearchText("pasta", -1, 0); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("error = %v, want ErrInvalidInput", err)
		}
	})

	t.Run("empty query rejected", func(t *testing.T) {
		if _, err := v.SearchText("", 2, 0); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("error = %v, want ErrInvalidInput", err)
		}
	})
}
