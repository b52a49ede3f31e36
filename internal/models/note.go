// Package models defines the domain types for the linked-notes service.
package models

import "time"

// NoteType selects the editing surface and content format of a note.
type NoteType string

// Known note types. The content column's structure is determined entirely
// by the type: text and task hold rich markup, checklist holds a JSON array
// of ChecklistItem.
const (
	TypeText      NoteType = "text"
	TypeTask      NoteType = "task"
	TypeChecklist NoteType = "checklist"
)

// Valid reports whether t is one of the known note types.
func (t NoteType) Valid() bool {
	switch t {
	case TypeText, TypeTask, TypeChecklist:
		return true
	}
	return false
}

// Note is a single note owned by a user. Title doubles as the display key
// for backlink resolution.
type Note struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Title     string    `json:"title"`
	Subtitle  string    `json:"subtitle"`
	Content   string    `json:"content"`
	Type      NoteType  `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ChecklistItem is one row of a checklist-type note. Ordering is
// significant: insertion order is display order within each checked group.
type ChecklistItem struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
}

// Tag is a user-scoped label with a color from a fixed palette.
type Tag struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// Profile holds the display identity of the current user.
type Profile struct {
	OwnerID     string    `json:"owner_id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DisplayLabel returns the greeting label: display name, else email,
// else "User".
func (p Profile) DisplayLabel() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	if p.Email != "" {
		return p.Email
	}
	return "User"
}

// Link is a directed edge from a note to a referenced title. The target is
// a title string, not a note id: backlinks stay valid syntax even when no
// matching note exists yet.
type Link struct {
	SourceID    string `json:"source_id"`
	TargetTitle string `json:"target_title"`
}

// TagColors is the fixed palette tags may use, mapped to hex values.
var TagColors = map[string]string{
	"red-500":    "#ef4444",
	"orange-500": "#f59e42",
	"yellow-500": "#eab308",
	"green-500":  "#22c55e",
	"teal-500":   "#14b8a6",
	"blue-500":   "#3b82f6",
	"indigo-500": "#6366f1",
	"purple-500": "#a21caf",
	"pink-500":   "#ec4899",
	"gray-500":   "#6b7280",
}

// ValidTagColor reports whether name is a member of the palette.
func ValidTagColor(name string) bool {
	_, ok := TagColors[name]
	return ok
}
