package handlers

import (
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"trackdrop/services"
	"trackdrop/types"
	"trackdrop/websocket"
)

// sniffLen is how many leading bytes are read for content-type detection.
const sniffLen = 261

// UploadHandler handles the track upload endpoint
type UploadHandler struct {
	library        services.Library
	hub            websocket.Hub
	maxUploadBytes int64
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(library services.Library, hub websocket.Hub, maxUploadBytes int64) *UploadHandler {
	return &UploadHandler{
		library:        library,
		hub:            hub,
		maxUploadBytes: maxUploadBytes,
	}
}

// Upload accepts a multipart request with a required "track" file field and
// optional "title"/"artist" text fields, stores the file under a sanitized
// timestamped name, and prepends a record to the song library.
func (h *UploadHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("track")
	if err != nil {
		uploadError(c, "track file field is required")
		return
	}
	defer file.Close()

	// All validation happens before any side effect.
	if header.Size > h.maxUploadBytes {
		uploadError(c, "file exceeds the upload size limit")
		return
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		uploadError(c, err.Error())
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		uploadError(c, err.Error())
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if !services.IsAllowedAudio(mimeType, header.Filename) {
		uploadError(c, "only audio files are allowed")
		return
	}

	if detected := services.SniffContentType(head[:n]); detected != "" && detected != mimeType {
		log.Debug("declared content type differs from sniffed bytes",
			"file", header.Filename, "declared", mimeType, "detected", detected)
	}

	req := types.UploadRequest{
		Title:        c.PostForm("title"),
		Artist:       c.PostForm("artist"),
		OriginalName: header.Filename,
		MimeType:     mimeType,
		Size:         header.Size,
	}
	if req.Title == "" {
		req.Title = header.Filename
	}
	if req.Artist == "" {
		req.Artist = "Unknown"
	}

	now := time.Now()
	storedName := services.StoredName(now.UnixMilli(), header.Filename)
	storedPath := h.library.StoredPath(storedName)

	out, err := os.Create(storedPath)
	if err != nil {
		uploadError(c, err.Error())
		return
	}
	if _, err := io.Copy(out, file); err != nil {
		out.Close()
		os.Remove(storedPath)
		uploadError(c, err.Error())
		return
	}
	if err := out.Close(); err != nil {
		os.Remove(storedPath)
		uploadError(c, err.Error())
		return
	}

	song := &types.Song{
		ID:           now.UnixMilli(),
		Title:        req.Title,
		Artist:       req.Artist,
		Album:        services.ProbeAlbum(storedPath),
		Filename:     storedName,
		OriginalName: req.OriginalName,
		MimeType:     req.MimeType,
		Size:         req.Size,
		UploadedAt:   now,
	}

	if err := h.library.Add(song); err != nil {
		// The stored file stays behind as an orphan, matching the documented
		// persistence model: the metadata file is the sole source of truth.
		uploadError(c, err.Error())
		return
	}

	log.Info("track uploaded", "title", song.Title, "artist", song.Artist, "file", storedName, "size", song.Size)

	if h.hub != nil {
		h.hub.BroadcastAdded(song)
	}

	c.JSON(http.StatusOK, types.UploadResponse{OK: true, Entry: song})
}

// uploadError reports an upload failure. Validation and I/O failures share
// the same 500 envelope.
func uploadError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, types.UploadResponse{OK: false, Error: message})
}
