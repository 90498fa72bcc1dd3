package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// UntitledNote is shown for notes with neither a title nor content
const UntitledNote = "Untitled"

// Attachment references a stored file embedded in a note
type Attachment struct {
	Filename    string `json:"filename" cbor:"1,keyasint"`
	Size        int64  `json:"size" cbor:"2,keyasint"`
	Checksum    string `json:"checksum" cbor:"3,keyasint"`
	ContentType string `json:"content_type" cbor:"4,keyasint"`
}

// Note is a free-form document. Markup holds the editable source; Content
// is its plain-text projection used for search and previews. Notes with an
// empty Markup are plain text and Content is authoritative.
type Note struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Content     string       `json:"content"`
	Markup      string       `json:"markup"`
	Attachments []Attachment `json:"attachments,omitempty"`
	IsPinned    bool         `json:"is_pinned"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// NewNote creates an empty note with a fresh identity
func NewNote(title string) Note {
	now := time.Now()
	return Note{
		ID:        uuid.New().String(),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DisplayTitle returns the title, or the first content line when untitled
func (n *Note) DisplayTitle() string {
	if n.Title != "" {
		return n.Title
	}
	first, _, _ := strings.Cut(n.Content, "\n")
	first = strings.TrimSpace(first)
	if first == "" {
		return UntitledNote
	}
	return truncateRunes(first, 30)
}

// Preview returns the first 100 characters of the trimmed content
func (n *Note) Preview() string {
	return truncateRunes(strings.TrimSpace(n.Content), 100)
}

// SameText reports whether title, content and pin state match other
func (n *Note) SameText(other Note) bool {
	return n.Title == other.Title &&
		n.Content == other.Content &&
		n.IsPinned == other.IsPinned
}

func truncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
