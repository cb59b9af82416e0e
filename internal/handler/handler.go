// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the service layer.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/Shivanand-hulikatti/sports-academy/internal/auth"
	"github.com/Shivanand-hulikatti/sports-academy/internal/model"
	"github.com/Shivanand-hulikatti/sports-academy/internal/repository"
	"github.com/Shivanand-hulikatti/sports-academy/internal/service"
)

// RoleChecker resolves the role of a verified subject.
type RoleChecker interface {
	RoleOf(ctx context.Context, email string) (model.Role, error)
}

// Deps are the collaborators the HTTP layer needs.
type Deps struct {
	Tokens     *auth.TokenService
	Roles      RoleChecker
	Users      *service.UserService
	Classes    *service.ClassService
	Bookings   *service.BookingService
	Settlement *service.SettlementService
	Slides     *service.SlideService
	Log        logrus.FieldLogger
}

// Handler holds all HTTP handlers for the academy API.
type Handler struct {
	tokens     *auth.TokenService
	roles      RoleChecker
	users      *service.UserService
	classes    *service.ClassService
	bookings   *service.BookingService
	settlement *service.SettlementService
	slides     *service.SlideService
	log        logrus.FieldLogger
}

// New constructs a Handler.
func New(d Deps) *Handler {
	return &Handler{
		tokens:     d.Tokens,
		roles:      d.Roles,
		users:      d.Users,
		classes:    d.Classes,
		bookings:   d.Bookings,
		settlement: d.Settlement,
		slides:     d.Slides,
		log:        d.Log,
	}
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: true, Message: msg})
}

func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20) // 1 MB limit
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// fail maps a service error onto a status code. notFound is the message used
// for repository.ErrNotFound.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: true, Message: verr.Message, Field: verr.Field})
	case errors.Is(err, auth.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, auth.ErrUnauthorized.Error())
	case errors.Is(err, auth.ErrForbidden), errors.Is(err, service.ErrNotOwner):
		writeError(w, http.StatusForbidden, auth.ErrForbidden.Error())
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, notFound)
	case errors.Is(err, service.ErrInvalidTransition):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, repository.ErrStaleStatus):
		writeError(w, http.StatusConflict, "class status changed concurrently, retry")
	case errors.Is(err, repository.ErrTransactionReused):
		writeError(w, http.StatusConflict, repository.ErrTransactionReused.Error())
	case errors.Is(err, service.ErrClassUnavailable):
		writeError(w, http.StatusConflict, service.ErrClassUnavailable.Error())
	case errors.Is(err, service.ErrUpstream):
		h.entry(r).WithError(err).Error("payment provider call failed")
		writeError(w, http.StatusBadGateway, service.ErrUpstream.Error())
	default:
		h.entry(r).WithError(err).Error("request failed")
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// ─── Misc ─────────────────────────────────────────────────────────────────────

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Banner handles GET /
func Banner(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Summer camp sports academies is running"))
}

// IssueToken handles POST /jwt
// Signs whatever identity claims the client supplies; an email is required.
func (h *Handler) IssueToken(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var claims map[string]any
	if err := json.NewDecoder(r.Body).Decode(&claims); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	token, err := h.tokens.Issue(claims)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// ListSlides handles GET /slider
func (h *Handler) ListSlides(w http.ResponseWriter, r *http.Request) {
	slides, err := h.slides.List(r.Context())
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, slides)
}
