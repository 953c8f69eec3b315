package works

import (
	"fmt"

	"github.com/google/uuid"
)

func NewID() string {
	return uuid.NewString()
}

// PlaceholderImageURL points at a random picsum image for artworks
// submitted without a picture.
func PlaceholderImageURL() string {
	return fmt.Sprintf("https://picsum.photos/seed/%s/800/600", uuid.NewString()[:8])
}
