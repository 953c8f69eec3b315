package works

import "slices"

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// Exhibition groups artworks under a theme. ArtworkIDs are weak references:
// ids that no longer resolve are skipped when rendering.
type Exhibition struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	ThemeDescription string   `json:"themeDescription"`
	ArtworkIDs       []string `json:"artworkIds"`
	Status           Status   `json:"status"`
	CuratedAt        int64    `json:"curatedAt"`
}

func (e Exhibition) IsDraft() bool     { return e.Status == StatusDraft }
func (e Exhibition) IsPublished() bool { return e.Status == StatusPublished }

// Published returns a copy of e with status published.
func (e Exhibition) Published() Exhibition {
	out := e
	out.ArtworkIDs = slices.Clone(e.ArtworkIDs)
	out.Status = StatusPublished
	return out
}

func FilterByStatus(list []Exhibition, status Status) []Exhibition {
	out := make([]Exhibition, 0, len(list))
	for _, e := range list {
		if e.Status == status {
			out = append(out, e)
		}
	}
	return out
}

func FindExhibition(list []Exhibition, id string) (Exhibition, bool) {
	for _, e := range list {
		if e.ID == id {
			return e, true
		}
	}
	return Exhibition{}, false
}
