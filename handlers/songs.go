package handlers

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"trackdrop/services"
)

// SongsHandler handles the song listing endpoint
type SongsHandler struct {
	library services.Library
}

// NewSongsHandler creates a new songs handler
func NewSongsHandler(library services.Library) *SongsHandler {
	return &SongsHandler{
		library: library,
	}
}

// List returns the full song library as a JSON array, newest first. Ordering
// is whatever was last persisted; there is no pagination or filtering.
func (h *SongsHandler) List(c *gin.Context) {
	songs, err := h.library.List()
	if err != nil {
		log.Error("failed to read song library", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to read song library",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, songs)
}
