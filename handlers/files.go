package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"trackdrop/services"
)

// FilesHandler serves previously uploaded files
type FilesHandler struct {
	library services.Library
}

// NewFilesHandler creates a new files handler
func NewFilesHandler(library services.Library) *FilesHandler {
	return &FilesHandler{
		library: library,
	}
}

// ServeUpload streams a stored upload verbatim. The path parameter maps
// directly to a same-named file in the uploads directory; range requests are
// handled by the serving layer.
func (h *FilesHandler) ServeUpload(c *gin.Context) {
	filename := c.Param("filename")

	// Stored names are sanitized at upload time; anything else is not ours.
	if filename != filepath.Base(filename) || filename != services.SanitizeFilename(filename) {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "path traversal not allowed",
		})
		return
	}

	fullPath := h.library.StoredPath(filename)

	// Security: Ensure resolved path is within the uploads directory
	absUploadsDir, err := filepath.Abs(h.library.UploadsDir())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "server configuration error",
		})
		return
	}
	absRequestPath, err := filepath.Abs(fullPath)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid file path",
		})
		return
	}
	if !strings.HasPrefix(absRequestPath, absUploadsDir+string(os.PathSeparator)) {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "path traversal not allowed",
		})
		return
	}

	fileInfo, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "file not found",
				"path":  filename,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "file access error",
			"details": err.Error(),
		})
		return
	}
	if fileInfo.IsDir() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "path is a directory, not a file",
		})
		return
	}

	file, err := os.Open(fullPath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to open file",
			"details": err.Error(),
		})
		return
	}
	defer file.Close()

	c.Header("Content-Type", services.ContentTypeFor(filename))
	c.Header("Accept-Ranges", "bytes")

	http.ServeContent(c.Writer, c.Request, filename, fileInfo.ModTime(), file)
}
