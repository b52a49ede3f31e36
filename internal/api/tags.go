package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Archis03007/linked-notes-app/internal/apperr"
	"github.com/Archis03007/linked-notes-app/internal/models"
)

// ListTags handles GET /tags.
//
//	@Summary		List tags in creation order
//	@Tags			tags
//	@Produce		json
//	@Success		200	{array}	models.Tag
//	@Security		BearerAuth
//	@Router			/tags [get]
func (h *Handler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.svc.ListTags(r.Context(), h.authp.OwnerID())
	if err != nil {
		slog.Error("list tags failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, tags)
}

// CreateTag handles POST /tags.
//
//	@Summary		Create a tag with a palette color
//	@Tags			tags
//	@Accept			json
//	@Produce		json
//	@Param			body	body		TagRequest	true	"Tag to create"
//	@Success		201		{object}	models.Tag
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/tags [post]
func (h *Handler) CreateTag(w http.ResponseWriter, r *http.Request) {
	var req TagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("name is required"))
		return
	}
	if !models.ValidTagColor(req.Color) {
		writeJSON(w, http.StatusBadRequest, errorBody("color is not in the palette"))
		return
	}
	tag, err := h.svc.CreateTag(r.Context(), h.authp.OwnerID(), req.Name, req.Color)
	if err != nil {
		slog.Error("create tag failed", slog.String("name", req.Name), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusCreated, tag)
}

// UpdateTag handles PUT /tags/{id}.
//
//	@Summary		Rename or recolor a tag
//	@Tags			tags
//	@Accept			json
//	@Param			id		path	string		true	"Tag id"
//	@Param			body	body	TagRequest	true	"New name and color"
//	@Success		204		"Updated"
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/tags/{id} [put]
func (h *Handler) UpdateTag(w http.ResponseWriter, r *http.Request) {
	var req TagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if !models.ValidTagColor(req.Color) {
		writeJSON(w, http.StatusBadRequest, errorBody("color is not in the palette"))
		return
	}
	t := models.Tag{
		ID:      chi.URLParam(r, "id"),
		OwnerID: h.authp.OwnerID(),
		Name:    req.Name,
		Color:   req.Color,
	}
	if err := h.svc.UpdateTag(r.Context(), t); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
			return
		}
		slog.Error("update tag failed", slog.String("id", t.ID), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteTag handles DELETE /tags/{id}. Associations go with the tag;
// notes themselves are untouched.
//
//	@Summary		Delete a tag and its note associations
//	@Tags			tags
//	@Param			id	path	string	true	"Tag id"
//	@Success		204	"Deleted"
//	@Security		BearerAuth
//	@Router			/tags/{id} [delete]
func (h *Handler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.DeleteTag(r.Context(), id); err != nil {
		slog.Error("delete tag failed", slog.String("id", id), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// NoteTags handles GET /notes/{id}/tags.
//
//	@Summary		Tag ids associated with a note
//	@Tags			tags
//	@Produce		json
//	@Param			id	path		string	true	"Note id"
//	@Success		200	{object}	NoteTagsRequest
//	@Security		BearerAuth
//	@Router			/notes/{id}/tags [get]
func (h *Handler) NoteTags(w http.ResponseWriter, r *http.Request) {
	ids, err := h.svc.NoteTagIDs(r.Context(), noteID(r))
	if err != nil {
		slog.Error("note tags failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, NoteTagsRequest{TagIDs: ids})
}

// SetNoteTags handles PUT /notes/{id}/tags: the full replacement set,
// persisted after the coalescing window.
//
//	@Summary		Replace a note's tag set
//	@Tags			tags
//	@Accept			json
//	@Param			id		path	string			true	"Note id"
//	@Param			body	body	NoteTagsRequest	true	"Complete tag id set"
//	@Success		204		"Accepted"
//	@Security		BearerAuth
//	@Router			/notes/{id}/tags [put]
func (h *Handler) SetNoteTags(w http.ResponseWriter, r *http.Request) {
	var req NoteTagsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	h.sess.SetTags(noteID(r), req.TagIDs)
	w.WriteHeader(http.StatusNoContent)
}

// Profile handles GET /profile.
//
//	@Summary		Display identity for the greeting
//	@Tags			profile
//	@Produce		json
//	@Success		200	{object}	ProfileResponse
//	@Security		BearerAuth
//	@Router			/profile [get]
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Profile(r.Context(), h.authp.OwnerID())
	if err != nil {
		slog.Error("profile failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, ProfileResponse{Profile: p, Label: p.DisplayLabel()})
}

// SaveProfile handles PUT /profile.
//
//	@Summary		Update the display identity
//	@Tags			profile
//	@Accept			json
//	@Produce		json
//	@Param			body	body		ProfileRequest	true	"Display name and email"
//	@Success		200		{object}	ProfileResponse
//	@Security		BearerAuth
//	@Router			/profile [put]
func (h *Handler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	var req ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	p := models.Profile{
		OwnerID:     h.authp.OwnerID(),
		DisplayName: req.DisplayName,
		Email:       req.Email,
	}
	if err := h.svc.SaveProfile(r.Context(), p); err != nil {
		slog.Error("save profile failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, ProfileResponse{Profile: p, Label: p.DisplayLabel()})
}
