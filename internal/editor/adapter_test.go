package editor

import (
	"testing"

	"github.com/Archis03007/linked-notes-app/internal/models"
)

type emitRec struct {
	noteID     string
	serialized string
}

func testAdapter() (*Adapter, *[]emitRec) {
	var emitted []emitRec
	a := New(func(noteID, serialized string) {
		emitted = append(emitted, emitRec{noteID, serialized})
	})
	return a, &emitted
}

func TestOpenReplacesContentWholesale(t *testing.T) {
	a, _ := testAdapter()
	a.Open(models.Note{ID: "a", Type: models.TypeText, Content: "<p>alpha</p>"})
	if got := a.Content(); got != "<p>alpha</p>" {
		t.Fatalf("content = %q", got)
	}
	a.Open(models.Note{ID: "b", Type: models.TypeText, Content: "<p>beta</p>"})
	if got := a.Content(); got != "<p>beta</p>" {
		t.Fatalf("content after switch = %q", got)
	}
}

func TestStaleFetchDiscarded(t *testing.T) {
	a, _ := testAdapter()
	a.Open(models.Note{ID: "a", Type: models.TypeText})
	// The user navigates before note a's content arrives.
	a.Open(models.Note{ID: "b", Type: models.TypeText, Content: "<p>beta</p>"})

	if a.ApplyFetched("a", "<p>alpha</p>") {
		t.Fatal("stale fetch applied")
	}
	if got := a.Content(); got != "<p>beta</p>" {
		t.Fatalf("surface shows %q after stale fetch", got)
	}
	if !a.ApplyFetched("b", "<p>beta v2</p>") {
		t.Fatal("current fetch rejected")
	}
	if got := a.Content(); got != "<p>beta v2</p>" {
		t.Fatalf("content = %q", got)
	}
}

func TestEditEmitsOnlyWhenEditable(t *testing.T) {
	a, emitted := testAdapter()

	a.Edit("<p>nowhere</p>")
	if len(*emitted) != 0 {
		t.Fatal("closed adapter emitted")
	}

	a.Open(models.Note{ID: "c", Type: models.TypeChecklist, Content: "[]"})
	a.Edit("<p>typed</p>")
	if len(*emitted) != 0 {
		t.Fatal("checklist surface accepted rich-text edit")
	}
	if a.Editable() {
		t.Fatal("checklist surface reports editable")
	}

	a.Open(models.Note{ID: "t", Type: models.TypeText})
	a.Edit("<p>typed</p>")
	if len(*emitted) != 1 {
		t.Fatalf("emissions = %d, want 1", len(*emitted))
	}
	if (*emitted)[0].noteID != "t" || (*emitted)[0].serialized != "<p>typed</p>" {
		t.Fatalf("emitted = %+v", (*emitted)[0])
	}
}

func TestReplaceChecklistEmits(t *testing.T) {
	a, emitted := testAdapter()
	a.Open(models.Note{ID: "c", Type: models.TypeChecklist, Content: "[]"})
	a.ReplaceChecklist([]models.ChecklistItem{{ID: "1", Text: "milk"}})
	if len(*emitted) != 1 {
		t.Fatalf("emissions = %d, want 1", len(*emitted))
	}
	if (*emitted)[0].noteID != "c" {
		t.Fatalf("emitted id = %q", (*emitted)[0].noteID)
	}

	a.Open(models.Note{ID: "t", Type: models.TypeText})
	a.ReplaceChecklist([]models.ChecklistItem{{ID: "2"}})
	if len(*emitted) != 1 {
		t.Fatal("text surface accepted checklist replacement")
	}
}

func TestPlaceholderClearsWithContent(t *testing.T) {
	a, _ := testAdapter()

	a.Open(models.Note{ID: "t", Type: models.TypeText})
	if a.Placeholder() == "" {
		t.Fatal("empty text note has no placeholder")
	}
	a.Edit("<p>x</p>")
	if got := a.Placeholder(); got != "" {
		t.Fatalf("placeholder with content = %q", got)
	}

	a.Open(models.Note{ID: "c", Type: models.TypeChecklist, Content: "[]"})
	if a.Placeholder() == "" {
		t.Fatal("empty checklist has no placeholder")
	}
}
