package types

// UploadResponse is the envelope returned by the upload endpoint.
type UploadResponse struct {
	OK    bool   `json:"ok"`
	Entry *Song  `json:"entry,omitempty"`
	Error string `json:"error,omitempty"`
}
