package gallery

import "errors"

var (
	ErrInvalidArtwork     = errors.New("invalid artwork")
	ErrNotEnoughArtworks  = errors.New("not enough artworks to curate")
	ErrCurationBusy       = errors.New("curation already in progress")
	ErrEmptySuggestions   = errors.New("no exhibitions suggested")
	ErrExhibitionNotFound = errors.New("exhibition not found")
)
