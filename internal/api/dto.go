package api

import (
	"github.com/Archis03007/linked-notes-app/internal/models"
	"github.com/Archis03007/linked-notes-app/internal/store"
)

// CreateNoteRequest is the request body for creating a note.
type CreateNoteRequest struct {
	Title    string   `json:"title" example:"Reading list" validate:"required"`
	Subtitle string   `json:"subtitle,omitempty" example:"books for spring"`
	Type     string   `json:"type" example:"text" validate:"required"`
	TagIDs   []string `json:"tag_ids,omitempty"`
}

// EditNoteRequest carries a partial note edit. Nil fields are untouched.
type EditNoteRequest struct {
	Title    *string `json:"title,omitempty"`
	Subtitle *string `json:"subtitle,omitempty"`
	Content  *string `json:"content,omitempty"`
}

// NoteListResponse wraps the collection listing.
type NoteListResponse struct {
	Notes []models.Note `json:"notes" validate:"required"`
	Total int           `json:"total" example:"12" validate:"required"`
}

// SuggestResponse wraps reference candidates for a typed query.
type SuggestResponse struct {
	Query      string        `json:"query" example:"alp"`
	Candidates []models.Note `json:"candidates" validate:"required"`
}

// ActivateLinkRequest asks the session to follow a backlink.
type ActivateLinkRequest struct {
	Text   string `json:"text" example:"Reading list" validate:"required"`
	Narrow bool   `json:"narrow,omitempty"`
}

// ChecklistItemRequest edits one checklist row.
type ChecklistItemRequest struct {
	Text *string `json:"text,omitempty"`
}

// ChecklistResponse returns the checklist rows after a mutation, split the
// way the UI renders them.
type ChecklistResponse struct {
	Items     []models.ChecklistItem `json:"items" validate:"required"`
	Unchecked []models.ChecklistItem `json:"unchecked"`
	Checked   []models.ChecklistItem `json:"checked"`
}

// TagRequest creates or updates a tag.
type TagRequest struct {
	Name  string `json:"name" example:"work" validate:"required"`
	Color string `json:"color" example:"blue-500" validate:"required"`
}

// NoteTagsRequest replaces a note's full tag set.
type NoteTagsRequest struct {
	TagIDs []string `json:"tag_ids" validate:"required"`
}

// ProfileRequest updates the display identity.
type ProfileRequest struct {
	DisplayName string `json:"display_name,omitempty" example:"Ada"`
	Email       string `json:"email,omitempty" example:"ada@example.com"`
}

// ProfileResponse returns the profile plus the computed greeting label.
type ProfileResponse struct {
	models.Profile
	Label string `json:"label" example:"Ada"`
}

// SearchResponse wraps full-text search hits.
type SearchResponse struct {
	Results []store.SearchResult `json:"results" validate:"required"`
}
