package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Shivanand-hulikatti/sports-academy/internal/model"
)

// pathEmail reads an email path parameter, undoing any percent-encoding.
func pathEmail(r *http.Request, name string) string {
	raw := chi.URLParam(r, name)
	if v, err := url.PathUnescape(raw); err == nil {
		raw = v
	}
	return strings.ToLower(strings.TrimSpace(raw))
}

// ListUsers handles GET /users
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// ListUsersByRole handles GET /users/{key} where key is a role name.
func (h *Handler) ListUsersByRole(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListByRole(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// UpsertUser handles PUT /users/{key} where key is an email.
// Creates the identity on first write; the role is never touched.
func (h *Handler) UpsertUser(w http.ResponseWriter, r *http.Request) {
	var req model.UpsertUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	u, err := h.users.Upsert(r.Context(), pathEmail(r, "key"), req)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// SetUserRole handles PATCH /users/{key}/role
func (h *Handler) SetUserRole(w http.ResponseWriter, r *http.Request) {
	var req model.SetRoleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	u, err := h.users.SetRole(r.Context(), pathEmail(r, "key"), req)
	if err != nil {
		h.fail(w, r, err, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// RoleProbe handles GET /users/admin/{email} and GET /users/instructor/{email}.
// A caller asking about anyone but themselves gets a plain negative answer.
func (h *Handler) RoleProbe(role model.Role) http.HandlerFunc {
	key := role.String()
	return func(w http.ResponseWriter, r *http.Request) {
		email := pathEmail(r, "email")
		claims, ok := ClaimsFrom(r.Context())
		if !ok || claims.Email != email {
			writeJSON(w, http.StatusOK, map[string]bool{key: false})
			return
		}

		got, err := h.roles.RoleOf(r.Context(), email)
		if err != nil {
			h.fail(w, r, err, "")
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{key: got == role})
	}
}
