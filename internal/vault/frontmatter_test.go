package vault

import (
	"strings"
	"testing"
)

func TestParseNote(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantMeta bool
		wantBody string
	}{
		{
			name:     "no frontmatter",
			content:  "# Title\n\nBody text.\n",
			wantMeta: false,
			wantBody: "# Title\n\nBody text.\n",
		},
		{
			name:     "empty content",
			content:  "",
			wantMeta: false,
			wantBody: "",
		},
		{
			name:     "valid frontmatter",
			content:  "---\ncreated: 2024-03-01\ntags:\n  - go\n---\n\nBody.\n",
			wantMeta: true,
			wantBody: "Body.\n",
		},
		{
			name:     "unterminated fence treated as body",
			content:  "---\ncreated: 2024-03-01\nno closing fence",
			wantMeta: false,
			wantBody: "---\ncreated: 2024-03-01\nno closing fence",
		},
		{
			name:     "malformed yaml treated as body",
			content:  "---\n: : :\n---\nBody.\n",
			wantMeta: false,
			wantBody: "---\n: : :\n---\nBody.\n",
		},
		{
			name:     "horizontal rule later is not frontmatter",
			content:  "Intro\n\n---\n\nMore.\n",
			wantMeta: false,
			wantBody: "Intro\n\n---\n\nMore.\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed := ParseNote(tt.content)
			if parsed.HasMeta != tt.wantMeta {
				t.Errorf("HasMeta = %v, want %v", parsed.HasMeta, tt.wantMeta)
			}
			if strings.TrimLeft(parsed.Body, "\n") != strings.TrimLeft(tt.wantBody, "\n") {
				t.Errorf("Body = %q, want %q", parsed.Body, tt.wantBody)
			}
		})
	}
}

func TestParseNoteFields(t *testing.T) {
	content := "---\ncreated: 2024-03-01\nmodified: 2024-04-01\ntags:\n  - go\n  - mcp\nauthor: sam\n---\n\nBody.\n"
	parsed := ParseNote(content)
	if !parsed.HasMeta {
		t.Fatal("HasMeta = false")
	}
	if parsed.Meta.Created != "2024-03-01" || parsed.Meta.Modified != "2024-04-01" {
		t.Errorf("dates = %q / %q", parsed.Meta.Created, parsed.Meta.Modified)
	}
	if len(parsed.Meta.Tags) != 2 || parsed.Meta.Tags[0] != "go" {
		t.Errorf("Tags = %v", parsed.Meta.Tags)
	}
	if parsed.Meta.Extra["author"] != "sam" {
		t.Errorf("Extra = %v, unknown key dropped", parsed.Meta.Extra)
	}
}

func TestRenderNote(t *testing.T) {
	meta := Meta{Created: "2024-03-01", Modified: "2024-04-01", Tags: []string{"go"}}
	out := RenderNote(meta, "Body.\n")

	if !strings.HasPrefix(out, "---\n") {
		t.Errorf("output does not start with fence: %q", out)
	}
	parsed := ParseNote(out)
	if !parsed.HasMeta {
		t.Fatalf("rendered note does not parse back: %q", out)
	}
	if parsed.Meta.Created != meta.Created || parsed.Meta.Modified != meta.Modified {
		t.Errorf("round-trip dates = %q / %q", parsed.Meta.Created, parsed.Meta.Modified)
	}
	if strings.TrimSpace(parsed.Body) != "Body." {
		t.Errorf("round-trip body = %q", parsed.Body)
	}
}

func TestRenderNoteEmptyTags(t *testing.T) {
	out := RenderNote(Meta{Created: "2024-03-01"}, "x")
	if !strings.Contains(out, "tags: []") {
		t.Errorf("nil tags should render as an empty list:\n%s", out)
	}
}

func TestMergeFrontmatter(t *testing.T) {
	t.Run("plain update keeps disk meta", func(t *testing.T) {
		existing := "---\ncreated: 2022-01-01\ntags:\n  - keep\n---\n\nOld.\n"
		out := mergeFrontmatter(existing, "New body.")
		parsed := ParseNote(out)
		if parsed.Meta.Created != "2022-01-01" {
			t.Errorf("created = %q", parsed.Meta.Created)
		}
		if parsed.Meta.Modified != today() {
			t.Errorf("modified = %q, want restamp to today", parsed.Meta.Modified)
		}
		if len(parsed.Meta.Tags) != 1 || parsed.Meta.Tags[0] != "keep" {
			t.Errorf("tags = %v", parsed.Meta.Tags)
		}
	})

	t.Run("bare to bare gets fresh dates", func(t *testing.T) {
		out := mergeFrontmatter("just text", "new text")
		parsed := ParseNote(out)
		if parsed.Meta.Created != today() || parsed.Meta.Modified != today() {
			t.Errorf("dates = %q / %q, want today", parsed.Meta.Created, parsed.Meta.Modified)
		}
	})

	t.Run("caller cannot override modified", func(t *testing.T) {
		existing := "---\ncreated: 2022-01-01\n---\n\nOld.\n"
		incoming := "---\nmodified: 1999-01-01\n---\n\nNew.\n"
		parsed := ParseNote(mergeFrontmatter(existing, incoming))
		if parsed.Meta.Modified != today() {
			t.Errorf("modified = %q, caller value must be restamped", parsed.Meta.Modified)
		}
	})
}
