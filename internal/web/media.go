package web

import (
	"fmt"
	"strings"
)

// MediaResolver maps stored media IDs to URLs below a static base path.
// Uploaded files are stored as "<base>/<id>" by the upload helper, so the
// mapping is purely structural.
type MediaResolver struct {
	base string
}

// NewMediaResolver creates a resolver rooted at the given base URL path.
func NewMediaResolver(base string) *MediaResolver {
	return &MediaResolver{base: strings.TrimRight(base, "/")}
}

// URL returns the URL of the media item, or an empty string for ID zero.
func (m *MediaResolver) URL(id int) string {
	if id <= 0 {
		return ""
	}

	return fmt.Sprintf("%s/%d", m.base, id)
}
