package session

import (
	"github.com/Archis03007/linked-notes-app/internal/apperr"
	"github.com/Archis03007/linked-notes-app/internal/checklist"
	"github.com/Archis03007/linked-notes-app/internal/content"
	"github.com/Archis03007/linked-notes-app/internal/models"
)

// ChecklistAppend adds a new empty row to a checklist note, unless the
// last row is still blank. Returns the updated items.
func (s *Session) ChecklistAppend(id string) ([]models.ChecklistItem, error) {
	return s.editChecklist(id, checklist.AppendItem)
}

// ChecklistToggle flips one row's done state.
func (s *Session) ChecklistToggle(id, itemID string) ([]models.ChecklistItem, error) {
	return s.editChecklist(id, func(items []models.ChecklistItem) []models.ChecklistItem {
		return checklist.ToggleChecked(items, itemID)
	})
}

// ChecklistSetText replaces one row's text.
func (s *Session) ChecklistSetText(id, itemID, text string) ([]models.ChecklistItem, error) {
	return s.editChecklist(id, func(items []models.ChecklistItem) []models.ChecklistItem {
		return checklist.SetItemText(items, itemID, text)
	})
}

// ChecklistDelete removes a row outright (the explicit delete action).
func (s *Session) ChecklistDelete(id, itemID string) ([]models.ChecklistItem, error) {
	return s.editChecklist(id, func(items []models.ChecklistItem) []models.ChecklistItem {
		return checklist.DeleteItem(items, itemID)
	})
}

// ChecklistBackspace implements the key-driven removal contract: deleting
// an empty row is allowed only while more than one row remains, so the
// list always keeps at least one editable line. Returns the index of the
// row that should receive focus, or -1 when nothing was removed.
func (s *Session) ChecklistBackspace(id, itemID string) (int, error) {
	focus := -1
	_, err := s.editChecklist(id, func(items []models.ChecklistItem) []models.ChecklistItem {
		if len(items) <= 1 {
			return items
		}
		for i, it := range items {
			if it.ID == itemID && it.Text == "" {
				focus = i - 1
				if focus < 0 {
					focus = 0
				}
				return checklist.DeleteItem(items, itemID)
			}
		}
		return items
	})
	return focus, err
}

// editChecklist decodes a checklist note's content, applies the transform,
// re-encodes, and arms the debounced persist. Non-checklist notes are
// refused.
func (s *Session) editChecklist(id string, transform func([]models.ChecklistItem) []models.ChecklistItem) ([]models.ChecklistItem, error) {
	s.mu.Lock()
	idx, ok := s.findIndex(id)
	if !ok {
		s.mu.Unlock()
		return nil, apperr.ErrNotFound
	}
	n := &s.notes[idx]
	if n.Type != models.TypeChecklist {
		s.mu.Unlock()
		return nil, apperr.ErrConflict
	}
	items := transform(content.DecodeChecklist(n.Content))
	n.Content = content.EncodeChecklist(items)
	s.dirty[id] = true
	s.mu.Unlock()

	s.deb.Schedule(id)
	return items, nil
}
