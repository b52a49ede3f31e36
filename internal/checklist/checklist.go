// Package checklist provides pure transforms over the ordered item list of
// a checklist-type note. No function here performs I/O or mutates its input;
// callers re-serialize the returned slice through the content package.
package checklist

import (
	"strings"

	"github.com/google/uuid"

	"github.com/Archis03007/linked-notes-app/internal/models"
)

// SetItemText returns items with the text of the item matching id replaced.
// An absent id leaves the list unchanged.
func SetItemText(items []models.ChecklistItem, id, text string) []models.ChecklistItem {
	out := make([]models.ChecklistItem, len(items))
	for i, item := range items {
		if item.ID == id {
			item.Text = text
		}
		out[i] = item
	}
	return out
}

// ToggleChecked returns items with the checked flag of the item matching id
// flipped. Applying it twice with the same id restores the original list.
func ToggleChecked(items []models.ChecklistItem, id string) []models.ChecklistItem {
	out := make([]models.ChecklistItem, len(items))
	for i, item := range items {
		if item.ID == id {
			item.Checked = !item.Checked
		}
		out[i] = item
	}
	return out
}

// AppendItem returns items with a fresh blank row appended. If the list is
// non-empty and the last item's text is empty or whitespace-only the list is
// returned unchanged, so repeated Enter presses cannot pile up blank rows.
func AppendItem(items []models.ChecklistItem) []models.ChecklistItem {
	if len(items) > 0 && strings.TrimSpace(items[len(items)-1].Text) == "" {
		return items
	}
	out := make([]models.ChecklistItem, len(items), len(items)+1)
	copy(out, items)
	return append(out, models.ChecklistItem{
		ID:      uuid.NewString(),
		Text:    "",
		Checked: false,
	})
}

// DeleteItem returns items without the item matching id. Callers handling
// backspace-on-empty must not call this when only one item remains; the
// store itself deletes whatever id it is given.
func DeleteItem(items []models.ChecklistItem, id string) []models.ChecklistItem {
	out := make([]models.ChecklistItem, 0, len(items))
	for _, item := range items {
		if item.ID == id {
			continue
		}
		out = append(out, item)
	}
	return out
}

// Partition splits items into (unchecked, checked) for rendering. Relative
// order within each group matches the original list; the checked group is
// shown under a completed-count label only when non-empty.
func Partition(items []models.ChecklistItem) (unchecked, checked []models.ChecklistItem) {
	for _, item := range items {
		if item.Checked {
			checked = append(checked, item)
		} else {
			unchecked = append(unchecked, item)
		}
	}
	return unchecked, checked
}
