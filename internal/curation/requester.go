// Package curation asks the generative model to group artworks into
// thematic exhibitions and turns the answer into draft exhibitions.
package curation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"artpulse-app/internal/domain/works"

	"google.golang.org/genai"
)

var (
	ErrAPIKeyMissing   = errors.New("curation: api key is not configured")
	ErrRemoteFailure   = errors.New("curation: remote generation failed")
	ErrInvalidResponse = errors.New("curation: invalid model response")
)

// ExhibitionCount is how many groupings the model is asked for.
const ExhibitionCount = 3

type Generator interface {
	GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error)
}

type Requester struct {
	gen   Generator
	now   func() time.Time
	newID func() string
	log   *slog.Logger
}

// NewRequester returns a requester; a nil gen means no credential is
// configured and every call fails with ErrAPIKeyMissing.
func NewRequester(gen Generator, logger *slog.Logger) *Requester {
	if logger == nil {
		logger = slog.Default()
	}
	return &Requester{gen: gen, now: time.Now, newID: works.NewID, log: logger}
}

func (r *Requester) Configured() bool {
	return r.gen != nil
}

// CurateExhibitions returns draft exhibitions suggested for artworks. An
// empty, error-free result means the model suggested nothing.
func (r *Requester) CurateExhibitions(ctx context.Context, artworks []works.Artwork) ([]works.Exhibition, error) {
	if r.gen == nil {
		r.log.Error("curation requested without an api key")
		return nil, ErrAPIKeyMissing
	}

	summaries := make([]works.Summary, 0, len(artworks))
	for _, a := range artworks {
		summaries = append(summaries, a.Summary())
	}

	prompt, err := BuildPrompt(summaries)
	if err != nil {
		return nil, err
	}
	logExchange(r.log, "prompt", prompt)

	text, err := r.gen.GenerateJSON(ctx, prompt, ExhibitionSchema())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRemoteFailure, err)
	}
	logExchange(r.log, "response", text)

	parsed, err := ParseSuggestions(text)
	if err != nil {
		r.log.Warn("failed to parse curation response", "error", err)
		return nil, err
	}

	curatedAt := works.Millis(r.now())
	out := make([]works.Exhibition, 0, len(parsed))
	for _, s := range parsed {
		out = append(out, works.Exhibition{
			ID:               r.newID(),
			Title:            s.Title,
			ThemeDescription: s.ThemeDescription,
			ArtworkIDs:       s.ArtworkIDs,
			Status:           works.StatusDraft,
			CuratedAt:        curatedAt,
		})
	}
	return out, nil
}

func BuildPrompt(summaries []works.Summary) (string, error) {
	data, err := json.Marshal(summaries)
	if err != nil {
		return "", fmt.Errorf("encode artworks: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Act as an expert art gallery curator. Analyze the following collection of artworks and group them into %d distinct thematic exhibitions.\n", ExhibitionCount)
	b.WriteString("For each exhibition, provide:\n")
	b.WriteString("1. A catchy, professional exhibition title.\n")
	b.WriteString("2. A deep, poetic theme description (2-3 sentences).\n")
	b.WriteString("3. A list of the ids of the artworks that fit this theme.\n\n")
	b.WriteString("Artworks: ")
	b.Write(data)
	return b.String(), nil
}

// ExhibitionSchema is the output schema the model must follow.
func ExhibitionSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"title":            {Type: genai.TypeString},
				"themeDescription": {Type: genai.TypeString},
				"artworkIds": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
			},
			Required: []string{"title", "themeDescription", "artworkIds"},
		},
	}
}
