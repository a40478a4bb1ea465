package services

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/h2non/filetype"
)

// allowedMimeTypes is the fixed allow-list of client-declared content types.
var allowedMimeTypes = map[string]bool{
	"audio/mpeg":  true,
	"audio/mp3":   true,
	"audio/ogg":   true,
	"audio/wav":   true,
	"audio/x-wav": true,
	"audio/mpeg3": true,
}

// allowedExtensions is the fixed allow-list of filename extensions.
var allowedExtensions = map[string]bool{
	".mp3": true,
	".ogg": true,
	".wav": true,
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9.\-_]`)

// IsAllowedAudio reports whether an upload passes the audio checks: the
// declared MIME type matches the allow-list or the filename carries an
// allowed extension.
func IsAllowedAudio(mimeType, filename string) bool {
	if allowedMimeTypes[strings.ToLower(mimeType)] {
		return true
	}
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// SniffContentType detects a content type from a file's leading bytes,
// returning an empty string when nothing matches. Detection never gates
// acceptance; it is logged so operators can spot mislabeled uploads.
func SniffContentType(head []byte) string {
	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown {
		return ""
	}
	return kind.MIME.Value
}

// SanitizeFilename replaces every character outside [A-Za-z0-9.-_] with an
// underscore, neutralizing path separators and shell metacharacters.
func SanitizeFilename(name string) string {
	return unsafeChars.ReplaceAllString(name, "_")
}

// StoredName derives the on-disk name for an upload: the unix-millisecond
// timestamp prefix keeps names unique across uploads of the same file.
func StoredName(unixMillis int64, originalName string) string {
	return fmt.Sprintf("%d-%s", unixMillis, SanitizeFilename(originalName))
}

// ContentTypeFor infers the content type served for a stored file from its
// extension.
func ContentTypeFor(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".mp3":
		return "audio/mpeg"
	case ".ogg":
		return "audio/ogg"
	case ".wav":
		return "audio/wav"
	default:
		return "application/octet-stream"
	}
}
