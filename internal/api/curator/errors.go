package curator

import (
	"errors"
	"net/http"

	"artpulse-app/internal/curation"
	"artpulse-app/internal/gallery"
	"artpulse-app/internal/infra/storage"
)

const (
	msgNotEnoughArtworks = "At least 3 artworks are required."
	msgCurationFailed    = "Curation failed. Ensure your Gemini API Key is set."
	msgEmptySuggestions  = "AI returned empty suggestions."
	msgBusy              = "Curation already in progress."
	msgConflict          = "Exhibitions changed since they were loaded. Reload and retry."
	msgNotFound          = "Exhibition not found"
)

type failure struct {
	status  int
	code    string
	message string
}

// classify maps a dashboard action error to what the client sees. Both
// response-shape failures and empty results share one message; the code
// tells them apart.
func classify(err error) failure {
	switch {
	case errors.Is(err, gallery.ErrNotEnoughArtworks):
		return failure{http.StatusBadRequest, "not_enough_artworks", msgNotEnoughArtworks}
	case errors.Is(err, gallery.ErrCurationBusy):
		return failure{http.StatusConflict, "busy", msgBusy}
	case errors.Is(err, curation.ErrAPIKeyMissing):
		return failure{http.StatusServiceUnavailable, "missing_api_key", msgCurationFailed}
	case errors.Is(err, curation.ErrRemoteFailure):
		return failure{http.StatusBadGateway, "remote_failure", msgCurationFailed}
	case errors.Is(err, curation.ErrInvalidResponse):
		return failure{http.StatusUnprocessableEntity, "invalid_response", msgEmptySuggestions}
	case errors.Is(err, gallery.ErrEmptySuggestions):
		return failure{http.StatusUnprocessableEntity, "empty_result", msgEmptySuggestions}
	case errors.Is(err, storage.ErrConflict):
		return failure{http.StatusConflict, "conflict", msgConflict}
	case errors.Is(err, gallery.ErrExhibitionNotFound):
		return failure{http.StatusNotFound, "not_found", msgNotFound}
	default:
		return failure{http.StatusInternalServerError, "internal", msgCurationFailed}
	}
}
