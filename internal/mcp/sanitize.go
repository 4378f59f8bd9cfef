package mcp

import (
	"context"

	"github.com/mdombrov-33/go-promptguard/detector"

	"github.com/sgx-labs/vaultmcp/internal/vault"
)

// promptGuard screens vault content before it is handed back to the model.
// Initialized once at import time with all pattern-matching and statistical
// detectors enabled, no LLM judge, so every call stays sub-millisecond.
var promptGuard = detector.New(
	detector.WithThreshold(0.6), // stricter than the default 0.7: this is vault content, not user input
	detector.WithAllDetectors(),
	detector.WithMaxInputLength(4096),
)

// detectInjection runs the go-promptguard multi-detector against text.
// Returns true if an injection attempt is detected (i.e. the input is NOT safe).
func detectInjection(text string) bool {
	if len(text) == 0 {
		return false
	}
	result := promptGuard.Detect(context.Background(), text)
	return !result.Safe
}

type screenedNote struct {
	*vault.Note
	// InjectionWarning flags note content that looks like a prompt
	// injection attempt. The content is still returned; the flag lets
	// the model treat it as untrusted data rather than instructions.
	InjectionWarning bool `json:"injection_warning,omitempty"`
}

type screenedResult struct {
	vault.SearchResult
	InjectionWarning bool `json:"injection_warning,omitempty"`
}

func screenNote(note *vault.Note) screenedNote {
	return screenedNote{Note: note, InjectionWarning: detectInjection(note.Content)}
}

func screenResults(results []vault.SearchResult) []screenedResult {
	screened := make([]screenedResult, 0, len(results))
	for _, r := range results {
		flag := false
		for _, m := range r.Matches {
			if detectInjection(m.Context) {
				flag = true
				break
			}
		}
		screened = append(screened, screenedResult{SearchResult: r, InjectionWarning: flag})
	}
	return screened
}
