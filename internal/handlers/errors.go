package handlers

import (
	"errors"
	"net/http"

	"github.com/lostfound/moderation/internal/moderation"
	"github.com/lostfound/moderation/internal/store"
)

// writeModerationError maps service errors onto HTTP responses.
func writeModerationError(w http.ResponseWriter, err error, kind string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, kind+" not found")
	case errors.Is(err, moderation.ErrInvalidTransition):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, moderation.ErrUnknownStatus), errors.Is(err, moderation.ErrUnknownAction):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "failed to update "+kind)
	}
}
