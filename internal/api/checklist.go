package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Archis03007/linked-notes-app/internal/apperr"
	"github.com/Archis03007/linked-notes-app/internal/checklist"
	"github.com/Archis03007/linked-notes-app/internal/models"
)

func itemID(r *http.Request) string {
	return chi.URLParam(r, "itemID")
}

func checklistError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
	case errors.Is(err, apperr.ErrConflict):
		writeJSON(w, http.StatusConflict, errorBody("not a checklist note"))
	default:
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}

func checklistBody(items []models.ChecklistItem) ChecklistResponse {
	unchecked, checked := checklist.Partition(items)
	return ChecklistResponse{Items: items, Unchecked: unchecked, Checked: checked}
}

// AppendChecklistItem handles POST /notes/{id}/checklist.
//
//	@Summary		Append an empty checklist row
//	@Tags			checklist
//	@Produce		json
//	@Param			id	path		string	true	"Note id"
//	@Success		200	{object}	ChecklistResponse
//	@Failure		409	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes/{id}/checklist [post]
func (h *Handler) AppendChecklistItem(w http.ResponseWriter, r *http.Request) {
	items, err := h.sess.ChecklistAppend(noteID(r))
	if err != nil {
		checklistError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, checklistBody(items))
}

// EditChecklistItem handles PATCH /notes/{id}/checklist/{itemID}.
//
//	@Summary		Replace one checklist row's text
//	@Tags			checklist
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Note id"
//	@Param			itemID	path		string					true	"Row id"
//	@Param			body	body		ChecklistItemRequest	true	"New text"
//	@Success		200		{object}	ChecklistResponse
//	@Security		BearerAuth
//	@Router			/notes/{id}/checklist/{itemID} [patch]
func (h *Handler) EditChecklistItem(w http.ResponseWriter, r *http.Request) {
	var req ChecklistItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Text == nil {
		writeJSON(w, http.StatusBadRequest, errorBody("text is required"))
		return
	}
	items, err := h.sess.ChecklistSetText(noteID(r), itemID(r), *req.Text)
	if err != nil {
		checklistError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, checklistBody(items))
}

// ToggleChecklistItem handles POST /notes/{id}/checklist/{itemID}/toggle.
//
//	@Summary		Flip one checklist row's done state
//	@Tags			checklist
//	@Produce		json
//	@Param			id		path		string	true	"Note id"
//	@Param			itemID	path		string	true	"Row id"
//	@Success		200		{object}	ChecklistResponse
//	@Security		BearerAuth
//	@Router			/notes/{id}/checklist/{itemID}/toggle [post]
func (h *Handler) ToggleChecklistItem(w http.ResponseWriter, r *http.Request) {
	items, err := h.sess.ChecklistToggle(noteID(r), itemID(r))
	if err != nil {
		checklistError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, checklistBody(items))
}

// DeleteChecklistItem handles DELETE /notes/{id}/checklist/{itemID}.
//
//	@Summary		Remove a checklist row
//	@Tags			checklist
//	@Produce		json
//	@Param			id		path		string	true	"Note id"
//	@Param			itemID	path		string	true	"Row id"
//	@Success		200		{object}	ChecklistResponse
//	@Security		BearerAuth
//	@Router			/notes/{id}/checklist/{itemID} [delete]
func (h *Handler) DeleteChecklistItem(w http.ResponseWriter, r *http.Request) {
	items, err := h.sess.ChecklistDelete(noteID(r), itemID(r))
	if err != nil {
		checklistError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, checklistBody(items))
}

// BackspaceChecklistItem handles POST /notes/{id}/checklist/{itemID}/backspace:
// the key-driven removal of an empty row, which keeps at least one row.
//
//	@Summary		Backspace on an empty checklist row
//	@Tags			checklist
//	@Produce		json
//	@Param			id		path		string	true	"Note id"
//	@Param			itemID	path		string	true	"Row id"
//	@Success		200		{object}	map[string]int
//	@Security		BearerAuth
//	@Router			/notes/{id}/checklist/{itemID}/backspace [post]
func (h *Handler) BackspaceChecklistItem(w http.ResponseWriter, r *http.Request) {
	focus, err := h.sess.ChecklistBackspace(noteID(r), itemID(r))
	if err != nil {
		checklistError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"focus": focus})
}
