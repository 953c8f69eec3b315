package works

import "time"

// Artwork is immutable once stored. CreatedAt is epoch milliseconds.
type Artwork struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Artist      string `json:"artist" yaml:"artist"`
	Description string `json:"description" yaml:"description"`
	ImageURL    string `json:"imageUrl" yaml:"imageUrl"`
	CreatedAt   int64  `json:"createdAt" yaml:"-"`
}

// Summary is the projection sent to the curation model.
type Summary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (a Artwork) Summary() Summary {
	return Summary{ID: a.ID, Title: a.Title, Description: a.Description}
}

func Millis(t time.Time) int64 {
	return t.UnixMilli()
}
