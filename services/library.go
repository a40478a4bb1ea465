package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"trackdrop/types"
)

// Library manages the uploads directory and the JSON metadata file.
type Library interface {
	Bootstrap() error
	Add(song *types.Song) error
	List() ([]types.Song, error)
	UploadsDir() string
	StoredPath(filename string) string
}

// library persists the song list as a single JSON array, newest first. All
// read-modify-write cycles on the metadata file are serialized behind mu so
// concurrent uploads cannot drop each other's records.
type library struct {
	uploadsDir   string
	metadataFile string
	mu           sync.RWMutex
}

// NewLibrary creates a new library rooted at the given uploads directory and
// metadata file path.
func NewLibrary(uploadsDir, metadataFile string) Library {
	return &library{
		uploadsDir:   uploadsDir,
		metadataFile: metadataFile,
	}
}

// Bootstrap ensures the uploads directory and the metadata file exist before
// the service accepts traffic. Safe to run against an already-initialized
// directory; an existing metadata file is never touched.
func (l *library) Bootstrap() error {
	if err := os.MkdirAll(l.uploadsDir, 0755); err != nil {
		return fmt.Errorf("failed to create uploads directory: %w", err)
	}

	if _, err := os.Stat(l.metadataFile); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat metadata file: %w", err)
		}
		if err := os.WriteFile(l.metadataFile, []byte("[]\n"), 0644); err != nil {
			return fmt.Errorf("failed to initialize metadata file: %w", err)
		}
	}

	return nil
}

// Add prepends a song record to the metadata file and writes the full list
// back as formatted JSON.
func (l *library) Add(song *types.Song) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	songs, err := l.read()
	if err != nil {
		return err
	}

	songs = append([]types.Song{*song}, songs...)

	data, err := json.MarshalIndent(songs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}

	if err := os.WriteFile(l.metadataFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write metadata file: %w", err)
	}

	return nil
}

// List returns all song records in persisted order (newest first).
func (l *library) List() ([]types.Song, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.read()
}

// UploadsDir returns the directory holding the raw uploaded binaries.
func (l *library) UploadsDir() string {
	return l.uploadsDir
}

// StoredPath returns the on-disk path for a stored filename.
func (l *library) StoredPath(filename string) string {
	return filepath.Join(l.uploadsDir, filename)
}

// read loads and parses the metadata file. Callers hold mu.
func (l *library) read() ([]types.Song, error) {
	data, err := os.ReadFile(l.metadataFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata file: %w", err)
	}

	songs := []types.Song{}
	if err := json.Unmarshal(data, &songs); err != nil {
		return nil, fmt.Errorf("failed to parse metadata file: %w", err)
	}

	return songs, nil
}
