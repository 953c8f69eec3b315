package curation

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"
)

const maxLogSnippetRunes = 1024

// Suggestion is one validated grouping from the model.
type Suggestion struct {
	Title            string
	ThemeDescription string
	ArtworkIDs       []string
}

type rawSuggestion struct {
	Title            *string   `json:"title"`
	ThemeDescription *string   `json:"themeDescription"`
	ArtworkIDs       *[]string `json:"artworkIds"`
}

// ParseSuggestions decodes the model output. Anything that is not a JSON
// array of complete suggestions is ErrInvalidResponse.
func ParseSuggestions(text string) ([]Suggestion, error) {
	body := stripCodeFence(text)
	if body == "" {
		return nil, fmt.Errorf("%w: empty body", ErrInvalidResponse)
	}

	var raw []rawSuggestion
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: not an array", ErrInvalidResponse)
	}

	out := make([]Suggestion, 0, len(raw))
	for i, r := range raw {
		switch {
		case r.Title == nil || strings.TrimSpace(*r.Title) == "":
			return nil, fmt.Errorf("%w: item %d has no title", ErrInvalidResponse, i)
		case r.ThemeDescription == nil:
			return nil, fmt.Errorf("%w: item %d has no themeDescription", ErrInvalidResponse, i)
		case r.ArtworkIDs == nil:
			return nil, fmt.Errorf("%w: item %d has no artworkIds", ErrInvalidResponse, i)
		}
		ids := *r.ArtworkIDs
		if ids == nil {
			ids = []string{}
		}
		out = append(out, Suggestion{
			Title:            strings.TrimSpace(*r.Title),
			ThemeDescription: strings.TrimSpace(*r.ThemeDescription),
			ArtworkIDs:       ids,
		})
	}
	return out, nil
}

func stripCodeFence(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func logExchange(log *slog.Logger, phase, content string) {
	trimmed := strings.TrimSpace(content)
	runes := utf8.RuneCountInString(trimmed)
	snippet := trimmed
	if runes > maxLogSnippetRunes {
		snippet = string([]rune(trimmed)[:maxLogSnippetRunes]) + "…(truncated)"
	}
	log.Debug("curation exchange", "phase", phase, "runes", runes, "content", snippet)
}
