package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"storefront/internal/middleware"
	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// SubmitRequest is the payload for placing an order. The order is built from
// the session's server-side cart; the session comes from the X-Session-Id
// header.
type SubmitRequest struct {
	SessionID string `json:"sessionId,omitempty"`
}

// Submit handles POST /api/orders requests.
func (h *OrderHandler) Submit(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFrom(r.Context())
	if caller.UserID == "" {
		writeError(w, http.StatusUnauthorized, "authentication required", h.logger)
		return
	}

	sessionID := r.Header.Get("X-Session-Id")
	if sessionID == "" {
		// Fall back to the request body for clients that don't set the header.
		var req SubmitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			sessionID = req.SessionID
		}
	}
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "session ID is required", h.logger)
		return
	}

	order, err := h.service.Submit(r.Context(), caller.UserID, sessionID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

// ListMine handles GET /api/orders/mine requests.
func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFrom(r.Context())
	if caller.UserID == "" {
		writeError(w, http.StatusUnauthorized, "authentication required", h.logger)
		return
	}

	orders, err := h.service.ListMine(r.Context(), caller.UserID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if orders == nil {
		orders = []model.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

// ListAll handles GET /api/orders requests (admin only).
func (h *OrderHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFrom(r.Context())
	if !caller.IsAdmin {
		writeError(w, http.StatusForbidden, "admin privilege required", h.logger)
		return
	}

	orders, err := h.service.ListAll(r.Context())
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if orders == nil {
		orders = []model.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

// GetByID handles GET /api/orders/{id} requests.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFrom(r.Context())
	if caller.UserID == "" && !caller.IsAdmin {
		writeError(w, http.StatusUnauthorized, "authentication required", h.logger)
		return
	}

	orderID, ok := h.orderIDFromPath(w, r)
	if !ok {
		return
	}

	order, err := h.service.GetByID(r.Context(), orderID, caller.UserID, caller.IsAdmin)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// Pay handles PUT /api/orders/{id}/pay requests.
func (h *OrderHandler) Pay(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFrom(r.Context())
	if caller.UserID == "" {
		writeError(w, http.StatusUnauthorized, "authentication required", h.logger)
		return
	}

	orderID, ok := h.orderIDFromPath(w, r)
	if !ok {
		return
	}

	var req model.PaymentConfirmationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	order, err := h.service.MarkPaid(r.Context(), orderID, &req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// Deliver handles PUT /api/orders/{id}/deliver requests (admin only).
func (h *OrderHandler) Deliver(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFrom(r.Context())
	if !caller.IsAdmin {
		writeError(w, http.StatusForbidden, "admin privilege required", h.logger)
		return
	}

	orderID, ok := h.orderIDFromPath(w, r)
	if !ok {
		return
	}

	order, err := h.service.MarkDelivered(r.Context(), orderID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// orderIDFromPath extracts and parses the order ID segment from
// /api/orders/{id}[/action].
func (h *OrderHandler) orderIDFromPath(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/orders/")
	idStr := rest
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		idStr = rest[:i]
	}

	if idStr == "" {
		writeError(w, http.StatusBadRequest, "order ID is required", h.logger)
		return uuid.Nil, false
	}

	orderID, err := uuid.Parse(idStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order ID format", h.logger)
		return uuid.Nil, false
	}

	return orderID, true
}
