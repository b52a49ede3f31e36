package checklist

import (
	"reflect"
	"testing"

	"github.com/Archis03007/linked-notes-app/internal/models"
)

func sampleItems() []models.ChecklistItem {
	return []models.ChecklistItem{
		{ID: "a", Text: "milk", Checked: false},
		{ID: "b", Text: "eggs", Checked: true},
		{ID: "c", Text: "bread", Checked: false},
	}
}

func TestSetItemText(t *testing.T) {
	items := sampleItems()
	out := SetItemText(items, "b", "eggs x12")
	if out[1].Text != "eggs x12" {
		t.Errorf("text = %q, want %q", out[1].Text, "eggs x12")
	}
	if items[1].Text != "eggs" {
		t.Error("input slice was mutated")
	}
}

func TestSetItemText_AbsentID(t *testing.T) {
	items := sampleItems()
	out := SetItemText(items, "nope", "x")
	if !reflect.DeepEqual(out, items) {
		t.Errorf("absent id should be a no-op, got %v", out)
	}
}

func TestToggleChecked_Involution(t *testing.T) {
	items := sampleItems()
	once := ToggleChecked(items, "a")
	if !once[0].Checked {
		t.Error("toggle did not flip item a")
	}
	// Exactly one item changed.
	for i := 1; i < len(items); i++ {
		if once[i] != items[i] {
			t.Errorf("item %d changed unexpectedly", i)
		}
	}
	twice := ToggleChecked(once, "a")
	if !reflect.DeepEqual(twice, items) {
		t.Errorf("double toggle should restore original, got %v", twice)
	}
}

func TestAppendItem(t *testing.T) {
	items := sampleItems()
	out := AppendItem(items)
	if len(out) != len(items)+1 {
		t.Fatalf("len = %d, want %d", len(out), len(items)+1)
	}
	last := out[len(out)-1]
	if last.ID == "" {
		t.Error("appended item has no id")
	}
	if last.Text != "" || last.Checked {
		t.Errorf("appended item = %+v, want blank unchecked", last)
	}
}

func TestAppendItem_BlankLastGuard(t *testing.T) {
	items := append(sampleItems(), models.ChecklistItem{ID: "d", Text: "   "})
	out := AppendItem(items)
	if len(out) != len(items) {
		t.Errorf("append with blank last item should be a no-op, len = %d", len(out))
	}
}

func TestAppendItem_EmptyList(t *testing.T) {
	out := AppendItem(nil)
	if len(out) != 1 {
		t.Fatalf("len = %d, want 1", len(out))
	}
}

func TestDeleteItem(t *testing.T) {
	items := sampleItems()
	out := DeleteItem(items, "b")
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	if out[0].ID != "a" || out[1].ID != "c" {
		t.Errorf("order not preserved: %v", out)
	}
}

func TestPartition(t *testing.T) {
	items := sampleItems()
	unchecked, checked := Partition(items)
	if len(unchecked)+len(checked) != len(items) {
		t.Fatalf("partition lost items: %d + %d != %d", len(unchecked), len(checked), len(items))
	}
	if unchecked[0].ID != "a" || unchecked[1].ID != "c" {
		t.Errorf("unchecked order: %v", unchecked)
	}
	if len(checked) != 1 || checked[0].ID != "b" {
		t.Errorf("checked = %v", checked)
	}
}

func TestPartition_Empty(t *testing.T) {
	unchecked, checked := Partition(nil)
	if len(unchecked) != 0 || len(checked) != 0 {
		t.Error("empty input should partition to empty groups")
	}
}
