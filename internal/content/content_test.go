package content

import (
	"strings"
	"testing"

	"github.com/Archis03007/linked-notes-app/internal/models"
)

func TestChecklistRoundTrip(t *testing.T) {
	items := []models.ChecklistItem{
		{ID: "1", Text: "first", Checked: false},
		{ID: "2", Text: "second", Checked: true},
	}
	raw := EncodeChecklist(items)
	got := DecodeChecklist(raw)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0] != items[0] || got[1] != items[1] {
		t.Errorf("round trip mismatch: %v", got)
	}
}

func TestDecodeChecklist_Malformed(t *testing.T) {
	for _, raw := range []string{"not json", "{}", "null", "", "42"} {
		got := DecodeChecklist(raw)
		if got == nil {
			t.Errorf("DecodeChecklist(%q) returned nil, want empty slice", raw)
		}
		if len(got) != 0 {
			t.Errorf("DecodeChecklist(%q) = %v, want empty", raw, got)
		}
	}
}

func TestEncodeChecklist_Nil(t *testing.T) {
	if got := EncodeChecklist(nil); got != "[]" {
		t.Errorf("EncodeChecklist(nil) = %q, want []", got)
	}
}

func TestInitialContent_TaskSeedsCheckbox(t *testing.T) {
	seed := InitialContent(models.TypeTask)
	if !strings.Contains(seed, `data-type="taskList"`) {
		t.Errorf("task seed missing checkbox control: %q", seed)
	}
	if !strings.Contains(seed, "Describe your task") {
		t.Errorf("task seed missing placeholder description: %q", seed)
	}
}

func TestInitialContent_TextAndChecklist(t *testing.T) {
	if got := InitialContent(models.TypeText); got != "" {
		t.Errorf("text seed = %q, want empty", got)
	}
	if got := InitialContent(models.TypeChecklist); got != "[]" {
		t.Errorf("checklist seed = %q, want []", got)
	}
}

func TestPlaceholder_PerType(t *testing.T) {
	text := Placeholder(models.TypeText)
	task := Placeholder(models.TypeTask)
	list := Placeholder(models.TypeChecklist)
	if text == task || task == list || text == list {
		t.Errorf("placeholders must differ per type: %q %q %q", text, task, list)
	}
	if !strings.Contains(text, "[[") {
		t.Errorf("text placeholder should hint at backlinks: %q", text)
	}
}

func TestEditable(t *testing.T) {
	if !Editable(models.TypeText) || !Editable(models.TypeTask) {
		t.Error("text and task notes must be editable")
	}
	if Editable(models.TypeChecklist) {
		t.Error("checklist notes must not use the rich-text surface")
	}
}
