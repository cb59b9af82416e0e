package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Shivanand-hulikatti/sports-academy/internal/model"
)

// ListClasses handles GET /classes
// Returns approved classes, optionally filtered by ?instructorEmail=.
func (h *Handler) ListClasses(w http.ResponseWriter, r *http.Request) {
	classes, err := h.classes.ListApproved(r.Context(), r.URL.Query().Get("instructorEmail"))
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, classes)
}

// ListAllClasses handles GET /classes/all
func (h *Handler) ListAllClasses(w http.ResponseWriter, r *http.Request) {
	classes, err := h.classes.ListAll(r.Context())
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, classes)
}

// ListMyClasses handles GET /classes/mine
func (h *Handler) ListMyClasses(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFrom(r.Context())
	classes, err := h.classes.ListByInstructor(r.Context(), claims.Email)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, classes)
}

// GetClass handles GET /classes/{id}
func (h *Handler) GetClass(w http.ResponseWriter, r *http.Request) {
	c, err := h.classes.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err, "class not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// CreateClass handles POST /classes
// The class starts pending and is owned by the caller.
func (h *Handler) CreateClass(w http.ResponseWriter, r *http.Request) {
	var req model.ClassRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	claims, _ := ClaimsFrom(r.Context())
	c, err := h.classes.Create(r.Context(), claims.Email, req)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// UpdateClass handles PUT /classes/{id}
func (h *Handler) UpdateClass(w http.ResponseWriter, r *http.Request) {
	var req model.ClassRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	claims, _ := ClaimsFrom(r.Context())
	c, err := h.classes.Update(r.Context(), claims.Email, RoleFrom(r.Context()), chi.URLParam(r, "id"), req)
	if err != nil {
		h.fail(w, r, err, "class not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// SetClassStatus handles PATCH /classes/{id}/status
func (h *Handler) SetClassStatus(w http.ResponseWriter, r *http.Request) {
	var req model.ClassStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	c, err := h.classes.SetStatus(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.fail(w, r, err, "class not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}
