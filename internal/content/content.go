// Package content models the single persisted content string of a note as
// a tagged union keyed by note type: rich markup for text and task notes,
// a JSON checklist array for checklist notes. Consumers must never inspect
// the content shape to guess the type; the type column decides.
package content

import (
	"encoding/json"
	"log/slog"

	"github.com/Archis03007/linked-notes-app/internal/models"
)

// taskSeed is the initial body of a newly created task note: one embedded
// checkbox control plus a placeholder description. It is a convenience for
// creation only; later edits may remove the checkbox freely.
const taskSeed = `<ul data-type="taskList"><li data-checked="false"><p>Describe your task here...</p></li></ul>`

// DecodeChecklist parses the stored content of a checklist note. Invalid
// JSON or a non-array value yields an empty list: a broken payload must
// degrade to an empty checklist, never to an error the editor has to
// handle.
func DecodeChecklist(raw string) []models.ChecklistItem {
	if raw == "" {
		return []models.ChecklistItem{}
	}
	var items []models.ChecklistItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		slog.Warn("content: checklist parse failed, treating as empty",
			slog.String("error", err.Error()))
		return []models.ChecklistItem{}
	}
	if items == nil {
		// "null" parses cleanly but is not an array.
		return []models.ChecklistItem{}
	}
	return items
}

// EncodeChecklist serializes the full item list back to the content string.
// Every change re-serializes the whole array; there is no patch format.
func EncodeChecklist(items []models.ChecklistItem) string {
	if items == nil {
		items = []models.ChecklistItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		// Marshal of a plain struct slice cannot fail in practice.
		slog.Error("content: checklist encode failed", slog.String("error", err.Error()))
		return "[]"
	}
	return string(data)
}

// InitialContent returns the seed content for a freshly created note of the
// given type.
func InitialContent(t models.NoteType) string {
	switch t {
	case models.TypeTask:
		return taskSeed
	case models.TypeChecklist:
		return EncodeChecklist(nil)
	default:
		return ""
	}
}

// Placeholder returns the per-type editor hint shown while a note body is
// empty. The hint disappears the instant any content exists.
func Placeholder(t models.NoteType) string {
	switch t {
	case models.TypeTask:
		return "Describe your task here..."
	case models.TypeChecklist:
		return "List item"
	default:
		return "Write your note here...   type [[...]] for backlinks."
	}
}

// Editable reports whether the rich-text surface accepts input for the
// given type. Checklist notes are driven entirely through their own item
// controls.
func Editable(t models.NoteType) bool {
	return t != models.TypeChecklist
}
