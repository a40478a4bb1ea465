// Package web holds the embedded client UI.
package web

import "embed"

//go:embed index.html
var FS embed.FS

// Index returns the client page bytes.
func Index() ([]byte, error) {
	return FS.ReadFile("index.html")
}
