package vault

import (
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

const fence = "---"

// Meta holds the frontmatter fields this adapter manages. Keys it does
// not know about round-trip through Extra unmodified.
type Meta struct {
	Created  string         `yaml:"created,omitempty"`
	Modified string         `yaml:"modified,omitempty"`
	Tags     []string       `yaml:"tags"`
	Extra    map[string]any `yaml:",inline"`
}

// ParsedNote is the result of splitting a note into frontmatter and body.
type ParsedNote struct {
	Meta    Meta
	HasMeta bool
	Body    string
}

// ParseNote splits a note's raw text into frontmatter and body. A missing
// or malformed frontmatter block is not an error: hand-edited notes are
// always valid input, and the whole text becomes the body.
func ParseNote(content string) ParsedNote {
	if !strings.HasPrefix(content, fence) {
		return ParsedNote{Body: content}
	}
	var meta Meta
	body, err := frontmatter.Parse(strings.NewReader(content), &meta)
	if err != nil {
		return ParsedNote{Body: content}
	}
	return ParsedNote{Meta: meta, HasMeta: true, Body: string(body)}
}

// RenderNote prepends a fenced frontmatter block to body. If the metadata
// cannot be marshalled (non-serializable Extra values), the body is
// returned unadorned rather than producing a corrupt header.
func RenderNote(meta Meta, body string) string {
	if meta.Tags == nil {
		meta.Tags = []string{}
	}
	data, err := yaml.Marshal(&meta)
	if err != nil {
		return body
	}
	var b strings.Builder
	b.WriteString(fence)
	b.WriteString("\n")
	b.Write(data)
	b.WriteString(fence)
	b.WriteString("\n\n")
	b.WriteString(strings.TrimLeft(body, "\n"))
	return b.String()
}

// today returns the current date in the format stored in created/modified.
func today() string {
	return time.Now().Format("2006-01-02")
}
