package types

import "time"

// Song represents one uploaded track as persisted in the metadata file.
type Song struct {
	ID           int64     `json:"id"`              // unix-millisecond timestamp at upload time
	Title        string    `json:"title"`           // user-supplied, defaults to the original filename
	Artist       string    `json:"artist"`          // user-supplied, defaults to "Unknown"
	Album        string    `json:"album,omitempty"` // read from embedded tags when present
	Filename     string    `json:"filename"`        // stored name: <unixtime-ms>-<sanitized original>
	OriginalName string    `json:"originalname"`    // filename as reported by the uploading client
	MimeType     string    `json:"mimetype"`        // content type as declared by the client
	Size         int64     `json:"size"`            // bytes
	UploadedAt   time.Time `json:"uploadedAt"`
}

// UploadRequest carries the validated fields of a multipart upload before any
// side effect occurs.
type UploadRequest struct {
	Title        string
	Artist       string
	OriginalName string
	MimeType     string
	Size         int64
}
