package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Shivanand-hulikatti/sports-academy/internal/model"
)

// AddReservation handles POST /sports
func (h *Handler) AddReservation(w http.ResponseWriter, r *http.Request) {
	var req model.ReservationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	res, err := h.bookings.Add(r.Context(), req)
	if err != nil {
		h.fail(w, r, err, "class not found")
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// ListReservations handles GET /sports?studentEmail=
func (h *Handler) ListReservations(w http.ResponseWriter, r *http.Request) {
	res, err := h.bookings.ListFor(r.Context(), r.URL.Query().Get("studentEmail"))
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// GetReservation handles GET /sports/{id}
func (h *Handler) GetReservation(w http.ResponseWriter, r *http.Request) {
	res, err := h.bookings.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err, "reservation not found")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// RemoveReservation handles DELETE /sports/{id}
// Removing an absent reservation reports deletedCount 0.
func (h *Handler) RemoveReservation(w http.ResponseWriter, r *http.Request) {
	res, err := h.bookings.Remove(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, res)
}
