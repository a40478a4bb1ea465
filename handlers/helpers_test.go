package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"trackdrop/services"
	"trackdrop/types"
	"trackdrop/websocket"
)

// testMaxUploadBytes keeps oversize-rejection tests cheap.
const testMaxUploadBytes = 1 << 20

// TestHelper provides utilities for testing the trackdrop server
type TestHelper struct {
	Server       *httptest.Server
	Library      services.Library
	UploadsDir   string
	MetadataFile string
}

// NewTestHelper creates a new test helper with a temporary test environment
func NewTestHelper(t *testing.T) *TestHelper {
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	uploadsDir := filepath.Join(dir, "uploads")
	metadataFile := filepath.Join(dir, "songs.json")

	library := services.NewLibrary(uploadsDir, metadataFile)
	require.NoError(t, library.Bootstrap())

	hub := websocket.NewHub()
	go hub.Run()

	uploadHandler := NewUploadHandler(library, hub, testMaxUploadBytes)
	songsHandler := NewSongsHandler(library)
	filesHandler := NewFilesHandler(library)
	eventsHandler := NewEventsHandler(hub)
	healthHandler := NewHealthHandler()

	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/health", healthHandler.HealthCheck)
	router.POST("/upload", uploadHandler.Upload)
	router.GET("/songs", songsHandler.List)
	router.GET("/uploads/:filename", filesHandler.ServeUpload)
	router.GET("/ws", eventsHandler.HandleWebSocketConnection)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &TestHelper{
		Server:       server,
		Library:      library,
		UploadsDir:   uploadsDir,
		MetadataFile: metadataFile,
	}
}

// UploadTrack posts a multipart upload with the given file and form fields
func (h *TestHelper) UploadTrack(t *testing.T, filename, contentType string, content []byte, fields map[string]string) (*http.Response, types.UploadResponse) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	// CreateFormFile hardcodes application/octet-stream, so build the part
	// header manually to control the declared content type.
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="track"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)

	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())

	req, err := http.NewRequest("POST", h.Server.URL+"/upload", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	defer resp.Body.Close()

	var uploadResp types.UploadResponse
	require.NoError(t, json.Unmarshal(body, &uploadResp))

	return resp, uploadResp
}

// GetSongs fetches and decodes the song listing
func (h *TestHelper) GetSongs(t *testing.T) (*http.Response, []types.Song) {
	resp, err := http.Get(h.Server.URL + "/songs")
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	defer resp.Body.Close()

	var songs []types.Song
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.Unmarshal(body, &songs))
	}

	return resp, songs
}

// GetUpload fetches a stored file's bytes
func (h *TestHelper) GetUpload(t *testing.T, filename string) (*http.Response, []byte) {
	resp, err := http.Get(h.Server.URL + "/uploads/" + filename)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	defer resp.Body.Close()

	return resp, body
}

// minimalMP3 returns enough of an MP3 header for content sniffing
func minimalMP3() []byte {
	return append([]byte("ID3\x03\x00\x00\x00\x00\x00\x00"), bytes.Repeat([]byte{0x00}, 64)...)
}

// minimalWAV returns enough of a WAV header for content sniffing
func minimalWAV() []byte {
	return append([]byte("RIFF\x24\x00\x00\x00WAVEfmt "), bytes.Repeat([]byte{0x00}, 32)...)
}

// mp3WithAlbum builds an ID3v2.3 tag carrying a TALB (album) frame so the
// tag probe has something real to read.
func mp3WithAlbum(album string) []byte {
	frameBody := append([]byte{0x00}, []byte(album)...) // 0x00 = ISO-8859-1 encoding
	frame := []byte("TALB")
	frame = append(frame,
		byte(len(frameBody)>>24), byte(len(frameBody)>>16), byte(len(frameBody)>>8), byte(len(frameBody)))
	frame = append(frame, 0x00, 0x00) // frame flags
	frame = append(frame, frameBody...)

	// Tag header: the size field is syncsafe (7 bits per byte).
	size := len(frame)
	tag := []byte{'I', 'D', '3', 0x03, 0x00, 0x00,
		byte(size >> 21 & 0x7F), byte(size >> 14 & 0x7F), byte(size >> 7 & 0x7F), byte(size & 0x7F)}
	tag = append(tag, frame...)

	return append(tag, bytes.Repeat([]byte{0x00}, 64)...)
}
