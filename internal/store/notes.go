package store

import (
	"sort"
	"strings"

	"github.com/existflow/daybook/internal/logger"
	"github.com/existflow/daybook/internal/model"
	"github.com/existflow/daybook/internal/richtext"
)

func (s *Store) noteIndex(id string) int {
	for i := range s.notes {
		if s.notes[i].ID == id {
			return i
		}
	}
	return -1
}

// deriveContent derives the plain-text content from the markup
func deriveContent(n *model.Note) {
	if n.Markup != "" {
		n.Content = richtext.PlainText(n.Markup)
	}
}

// AddNote stores a new note
func (s *Store) AddNote(n model.Note) model.Note {
	s.mu.Lock()
	defer s.unlock()

	if s.noteIndex(n.ID) >= 0 {
		return n
	}
	deriveContent(&n)
	s.notes = append(s.notes, n)
	s.check("save note", s.gw.SaveNote(s.ctx, n))
	s.emit(EntityNote, OpCreate, n.ID)
	return n
}

// UpdateNote replaces the stored note with the same ID. UpdatedAt only
// moves when the title, plain-text content or pin state changed.
func (s *Store) UpdateNote(n model.Note) {
	s.mu.Lock()
	defer s.unlock()

	i := s.noteIndex(n.ID)
	if i < 0 {
		return
	}
	stored := s.notes[i]
	if n.Markup != stored.Markup {
		deriveContent(&n)
	}

	if stored.SameText(n) {
		n.UpdatedAt = stored.UpdatedAt
	} else {
		n.UpdatedAt = s.now()
	}
	s.notes[i] = n
	s.check("save note", s.gw.SaveNote(s.ctx, n))
	s.emit(EntityNote, OpUpdate, n.ID)
}

// ToggleNotePin flips the pin flag without touching UpdatedAt
func (s *Store) ToggleNotePin(n model.Note) {
	s.mu.Lock()
	defer s.unlock()

	i := s.noteIndex(n.ID)
	if i < 0 {
		return
	}
	s.notes[i].IsPinned = !s.notes[i].IsPinned
	s.check("save note", s.gw.SaveNote(s.ctx, s.notes[i]))
	s.emit(EntityNote, OpUpdate, n.ID)
}

// DeleteNote removes the note after deleting the files it references
func (s *Store) DeleteNote(n model.Note) {
	s.DeleteNoteByID(n.ID)
}

// DeleteNoteByID removes the note with id and its attachment files
func (s *Store) DeleteNoteByID(id string) {
	s.mu.Lock()
	defer s.unlock()

	i := s.noteIndex(id)
	if i < 0 {
		return
	}

	if files := richtext.ReferencedFiles(s.notes[i]); len(files) > 0 && s.files != nil {
		s.files.Delete(files...)
	}

	s.notes = append(s.notes[:i], s.notes[i+1:]...)
	delete(s.stableIndex, id)
	s.check("delete note", s.gw.DeleteNote(s.ctx, id))
	s.emit(EntityNote, OpDelete, id)
}

// CleanOrphanAttachments removes attachment files no note references and
// returns their names.
func (s *Store) CleanOrphanAttachments() ([]string, error) {
	s.mu.RLock()
	referenced := make(map[string]struct{})
	for _, n := range s.notes {
		for _, f := range richtext.ReferencedFiles(n) {
			referenced[f] = struct{}{}
		}
	}
	s.mu.RUnlock()

	if s.files == nil {
		return nil, nil
	}
	removed, err := s.files.CleanOrphans(referenced)
	if err != nil {
		return removed, err
	}
	if len(removed) > 0 {
		s.log.Info("Removed orphan attachments", logger.F("count", len(removed)))
	}
	return removed, nil
}

// naturalNotes orders notes pinned first, then most recently updated
func (s *Store) naturalNotes() []model.Note {
	out := make([]model.Note, len(s.notes))
	copy(out, s.notes)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsPinned != out[j].IsPinned {
			return out[i].IsPinned
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}

// SortedNotes returns notes pinned first, then by most recent update.
// While editingID names a note, that note keeps the position it had on the
// previous call so the list does not reorder under the editor. With an
// empty editingID every position is resynced to the natural order.
func (s *Store) SortedNotes(editingID string) []model.Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes := s.naturalNotes()

	cur := -1
	for i := range notes {
		if notes[i].ID == editingID {
			cur = i
			break
		}
	}
	want, tracked := s.stableIndex[editingID]

	if editingID != "" && cur >= 0 && tracked && want != cur {
		if want >= len(notes) {
			want = len(notes) - 1
		}
		edited := notes[cur]
		notes = append(notes[:cur], notes[cur+1:]...)
		notes = append(notes[:want], append([]model.Note{edited}, notes[want:]...)...)
	}

	clear(s.stableIndex)
	for i, n := range notes {
		s.stableIndex[n.ID] = i
	}
	return notes
}

// SearchNotes returns notes whose title or content contains query,
// ignoring case, in natural order.
func (s *Store) SearchNotes(query string) []model.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	notes := s.naturalNotes()
	if q == "" {
		return notes
	}

	var out []model.Note
	for _, n := range notes {
		if strings.Contains(strings.ToLower(n.Title), q) ||
			strings.Contains(strings.ToLower(n.Content), q) {
			out = append(out, n)
		}
	}
	return out
}
