package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// CartHandler handles cart-related HTTP requests. Every mutation returns the
// full cart with freshly recomputed totals.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// sessionID extracts the session identifier. The cart is keyed by this value
// rather than a fixed constant, so each browsing session gets its own cart.
func (h *CartHandler) sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	sessionID := r.Header.Get("X-Session-Id")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "session ID is required", h.logger)
		return "", false
	}
	return sessionID, true
}

// Get handles GET /api/cart requests.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	cart, err := h.service.Get(r.Context(), sessionID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

// AddLine handles POST /api/cart/items requests.
func (h *CartHandler) AddLine(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var req model.AddLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "product ID is required", h.logger)
		return
	}

	cart, err := h.service.AddLine(r.Context(), sessionID, req.ProductID, req.Qty)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

// RemoveLine handles DELETE /api/cart/items/{productId} requests.
func (h *CartHandler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	productID := strings.TrimPrefix(r.URL.Path, "/api/cart/items/")
	if productID == "" {
		writeError(w, http.StatusBadRequest, "product ID is required", h.logger)
		return
	}

	cart, err := h.service.RemoveLine(r.Context(), sessionID, productID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

// SetShipping handles PUT /api/cart/shipping requests.
func (h *CartHandler) SetShipping(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var addr model.Address
	if err := json.NewDecoder(r.Body).Decode(&addr); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if addr.Address == "" || addr.City == "" || addr.PostalCode == "" || addr.Country == "" {
		writeError(w, http.StatusBadRequest, "all address fields are required", h.logger)
		return
	}

	cart, err := h.service.SetShippingAddress(r.Context(), sessionID, addr)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

// paymentRequest is the payload for selecting a payment method.
type paymentRequest struct {
	PaymentMethod string `json:"paymentMethod"`
}

// SetPayment handles PUT /api/cart/payment requests.
func (h *CartHandler) SetPayment(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	cart, err := h.service.SetPaymentMethod(r.Context(), sessionID, req.PaymentMethod)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

// Clear handles DELETE /api/cart requests.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	cart, err := h.service.Clear(r.Context(), sessionID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

// Reset handles POST /api/cart/reset requests.
func (h *CartHandler) Reset(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	cart, err := h.service.Reset(r.Context(), sessionID)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}
