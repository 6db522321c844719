// Package library manages the persistent collection of markdown documents
// and their bookmarks.
package library

import (
	"time"

	"github.com/google/uuid"
)

// Bookmark is a saved pointer to one section of a document.
type Bookmark struct {
	ID           string    `json:"id"`
	SectionIndex int       `json:"sectionIndex"`
	Title        string    `json:"title"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Document is one ingested markdown file plus its reader metadata.
// Content is immutable after ingestion; LastOpened is refreshed on reads,
// subject to the library's write throttle.
type Document struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Content    string     `json:"content"`
	LastOpened time.Time  `json:"lastOpened"`
	Bookmarks  []Bookmark `json:"bookmarks"`
}

// NewID returns a fresh identifier for documents and bookmarks.
func NewID() string {
	return uuid.NewString()
}
