// Package editor bridges the document content model to a host rich-text
// editing surface: it propagates external content replacement without
// clobbering in-progress edits, discards stale fetches after the open note
// has changed, and emits serialized content upward on every local edit.
package editor

import (
	"log/slog"

	"github.com/Archis03007/linked-notes-app/internal/content"
	"github.com/Archis03007/linked-notes-app/internal/models"
)

// ChangeFunc receives the serialized content after a local edit. Emission
// is unbuffered here; coalescing before persistence is the session's
// concern.
type ChangeFunc func(noteID, serialized string)

// Adapter keeps one editing surface in sync with the note it has open.
// All methods run on the session's event loop; the adapter itself holds no
// locks.
type Adapter struct {
	noteID   string
	noteType models.NoteType
	current  string
	onChange ChangeFunc
}

// New creates an adapter emitting local edits through onChange.
func New(onChange ChangeFunc) *Adapter {
	return &Adapter{onChange: onChange}
}

// Open switches the surface to the given note, replacing the editor
// content wholesale when the stored content differs from what the surface
// already shows.
func (a *Adapter) Open(n models.Note) {
	a.noteID = n.ID
	a.noteType = n.Type
	if a.current != n.Content {
		a.current = n.Content
	}
}

// Close detaches the surface from any note. Content arriving for the old
// note afterwards is discarded.
func (a *Adapter) Close() {
	a.noteID = ""
	a.noteType = ""
	a.current = ""
}

// NoteID returns the id of the open note, or empty when closed.
func (a *Adapter) NoteID() string { return a.noteID }

// Content returns the surface's current serialized content.
func (a *Adapter) Content() string { return a.current }

// ApplyFetched applies content that arrived asynchronously for noteID.
// A fetch that resolves after the user navigated to a different note is
// dropped instead of overwriting the new note's surface.
func (a *Adapter) ApplyFetched(noteID, serialized string) bool {
	if noteID != a.noteID {
		slog.Debug("editor: discarding stale fetch",
			slog.String("fetched", noteID),
			slog.String("open", a.noteID))
		return false
	}
	if a.current != serialized {
		a.current = serialized
	}
	return true
}

// Edit applies a local edit and emits the serialized content upward. Edits
// against a read-only surface (checklist notes) or a closed adapter are
// ignored.
func (a *Adapter) Edit(serialized string) {
	if a.noteID == "" || !content.Editable(a.noteType) {
		return
	}
	a.current = serialized
	if a.onChange != nil {
		a.onChange(a.noteID, serialized)
	}
}

// ReplaceChecklist applies a checklist mutation. Checklist notes bypass the
// rich-text editability gate; their content changes only through the item
// controls.
func (a *Adapter) ReplaceChecklist(items []models.ChecklistItem) {
	if a.noteID == "" || a.noteType != models.TypeChecklist {
		return
	}
	a.current = content.EncodeChecklist(items)
	if a.onChange != nil {
		a.onChange(a.noteID, a.current)
	}
}

// Placeholder returns the per-type hint, or empty the instant any content
// exists.
func (a *Adapter) Placeholder() string {
	if a.current != "" && a.current != "[]" {
		return ""
	}
	return content.Placeholder(a.noteType)
}

// Editable reports whether the rich-text surface accepts input.
func (a *Adapter) Editable() bool {
	return a.noteID != "" && content.Editable(a.noteType)
}
