package services

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/dhowden/tag"
)

// ProbeAlbum reads the album name from a stored file's embedded tags. Files
// without parseable tags are common, so failures only log a warning and
// return an empty string.
func ProbeAlbum(path string) string {
	file, err := os.Open(path)
	if err != nil {
		log.Warn("could not open stored file for tag probe", "file", path, "err", err)
		return ""
	}
	defer file.Close()

	meta, err := tag.ReadFrom(file)
	if err != nil {
		log.Debug("no readable tags in upload", "file", path, "err", err)
		return ""
	}

	return meta.Album()
}
