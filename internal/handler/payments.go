package handler

import (
	"net/http"

	"github.com/Shivanand-hulikatti/sports-academy/internal/model"
)

// CreatePaymentIntent handles POST /create-payment-intent
func (h *Handler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req model.PaymentIntentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	secret, err := h.settlement.CreateChargeIntent(r.Context(), req)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"clientSecret": secret})
}

// Settle handles POST /payment
// Records the payment and retires the reservation it paid for.
func (h *Handler) Settle(w http.ResponseWriter, r *http.Request) {
	var req model.SettleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	res, err := h.settlement.Settle(r.Context(), req)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ListPayments handles GET /payment/{email}
func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.settlement.PaymentsFor(r.Context(), pathEmail(r, "email"))
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, payments)
}
