package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCartService is a mock implementation of CartService.
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) Get(ctx context.Context, sessionID string) (*model.Cart, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cart), args.Error(1)
}

func (m *MockCartService) AddLine(ctx context.Context, sessionID, productID string, qty int) (*model.Cart, error) {
	args := m.Called(ctx, sessionID, productID, qty)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cart), args.Error(1)
}

func (m *MockCartService) RemoveLine(ctx context.Context, sessionID, productID string) (*model.Cart, error) {
	args := m.Called(ctx, sessionID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cart), args.Error(1)
}

func (m *MockCartService) SetShippingAddress(ctx context.Context, sessionID string, addr model.Address) (*model.Cart, error) {
	args := m.Called(ctx, sessionID, addr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cart), args.Error(1)
}

func (m *MockCartService) SetPaymentMethod(ctx context.Context, sessionID, method string) (*model.Cart, error) {
	args := m.Called(ctx, sessionID, method)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cart), args.Error(1)
}

func (m *MockCartService) Clear(ctx context.Context, sessionID string) (*model.Cart, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cart), args.Error(1)
}

func (m *MockCartService) Reset(ctx context.Context, sessionID string) (*model.Cart, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Cart), args.Error(1)
}

func pricedTestCart() *model.Cart {
	cart := model.NewCart("session-1")
	cart.Lines = []model.CartLine{
		{ProductID: "P001", Name: "Keyboard", Price: decimal.RequireFromString("50.00"), Qty: 2, CountInStock: 10},
	}
	cart.ItemsSubtotal = decimal.RequireFromString("100.00")
	cart.ShippingFee = decimal.RequireFromString("10.00")
	cart.TaxAmount = decimal.RequireFromString("15.00")
	cart.GrandTotal = decimal.RequireFromString("125.00")
	return cart
}

func TestCartHandler_Get(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name           string
		sessionHeader  string
		expectedStatus int
		expectService  bool
	}{
		{name: "Success", sessionHeader: "session-1", expectedStatus: http.StatusOK, expectService: true},
		{name: "Missing session ID", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockCartService)
			if tt.expectService {
				mockService.On("Get", mock.Anything, "session-1").Return(pricedTestCart(), nil)
			}

			handler := NewCartHandler(mockService, logger)

			req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
			if tt.sessionHeader != "" {
				req.Header.Set("X-Session-Id", tt.sessionHeader)
			}
			rr := httptest.NewRecorder()

			handler.Get(rr, req)
			assert.Equal(t, tt.expectedStatus, rr.Code)

			if tt.expectedStatus == http.StatusOK {
				var got model.Cart
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
				assert.True(t, got.GrandTotal.Equal(decimal.RequireFromString("125.00")))
			}

			mockService.AssertExpectations(t)
		})
	}
}

func TestCartHandler_AddLine(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name           string
		body           interface{}
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{
			name:           "Success",
			body:           model.AddLineRequest{ProductID: "P001", Qty: 2},
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "Invalid quantity",
			body:           model.AddLineRequest{ProductID: "P001", Qty: 2},
			mockError:      model.ErrInvalidQuantity,
			expectedStatus: http.StatusBadRequest,
			expectService:  true,
		},
		{
			name:           "Insufficient stock",
			body:           model.AddLineRequest{ProductID: "P001", Qty: 2},
			mockError:      model.ErrInsufficientStock,
			expectedStatus: http.StatusBadRequest,
			expectService:  true,
		},
		{
			name:           "Unknown product",
			body:           model.AddLineRequest{ProductID: "P001", Qty: 2},
			mockError:      model.ErrProductNotFound,
			expectedStatus: http.StatusNotFound,
			expectService:  true,
		},
		{
			name:           "Missing product ID",
			body:           model.AddLineRequest{Qty: 2},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Invalid JSON",
			body:           "not-json",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockCartService)
			if tt.expectService {
				var ret *model.Cart
				if tt.mockError == nil {
					ret = pricedTestCart()
				}
				mockService.On("AddLine", mock.Anything, "session-1", "P001", 2).Return(ret, tt.mockError)
			}

			handler := NewCartHandler(mockService, logger)

			var body bytes.Buffer
			if s, ok := tt.body.(string); ok {
				body.WriteString(s)
			} else {
				require.NoError(t, json.NewEncoder(&body).Encode(tt.body))
			}

			req := httptest.NewRequest(http.MethodPost, "/api/cart/items", &body)
			req.Header.Set("X-Session-Id", "session-1")
			rr := httptest.NewRecorder()

			handler.AddLine(rr, req)
			assert.Equal(t, tt.expectedStatus, rr.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestCartHandler_RemoveLine(t *testing.T) {
	logger := zerolog.Nop()

	mockService := new(MockCartService)
	empty := model.NewCart("session-1")
	empty.ShippingFee = decimal.RequireFromString("10.00")
	empty.GrandTotal = decimal.RequireFromString("10.00")
	mockService.On("RemoveLine", mock.Anything, "session-1", "P001").Return(empty, nil)

	handler := NewCartHandler(mockService, logger)

	req := httptest.NewRequest(http.MethodDelete, "/api/cart/items/P001", nil)
	req.Header.Set("X-Session-Id", "session-1")
	rr := httptest.NewRecorder()

	handler.RemoveLine(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	var got model.Cart
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Empty(t, got.Lines)
}

func TestCartHandler_SetShipping(t *testing.T) {
	logger := zerolog.Nop()

	fullAddr := model.Address{Address: "1 Main St", City: "Springfield", PostalCode: "12345", Country: "USA"}

	tests := []struct {
		name           string
		addr           model.Address
		expectedStatus int
		expectService  bool
	}{
		{name: "Success", addr: fullAddr, expectedStatus: http.StatusOK, expectService: true},
		{name: "Missing city", addr: model.Address{Address: "1 Main St", PostalCode: "12345", Country: "USA"}, expectedStatus: http.StatusBadRequest},
		{name: "Missing country", addr: model.Address{Address: "1 Main St", City: "Springfield", PostalCode: "12345"}, expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockCartService)
			if tt.expectService {
				withAddr := pricedTestCart()
				withAddr.ShippingAddress = &fullAddr
				mockService.On("SetShippingAddress", mock.Anything, "session-1", tt.addr).Return(withAddr, nil)
			}

			handler := NewCartHandler(mockService, logger)

			var body bytes.Buffer
			require.NoError(t, json.NewEncoder(&body).Encode(tt.addr))

			req := httptest.NewRequest(http.MethodPut, "/api/cart/shipping", &body)
			req.Header.Set("X-Session-Id", "session-1")
			rr := httptest.NewRecorder()

			handler.SetShipping(rr, req)
			assert.Equal(t, tt.expectedStatus, rr.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestCartHandler_SetPayment(t *testing.T) {
	logger := zerolog.Nop()

	mockService := new(MockCartService)
	cart := pricedTestCart()
	cart.PaymentMethod = "Stripe"
	mockService.On("SetPaymentMethod", mock.Anything, "session-1", "Stripe").Return(cart, nil)

	handler := NewCartHandler(mockService, logger)

	var body bytes.Buffer
	require.NoError(t, json.NewEncoder(&body).Encode(map[string]string{"paymentMethod": "Stripe"}))

	req := httptest.NewRequest(http.MethodPut, "/api/cart/payment", &body)
	req.Header.Set("X-Session-Id", "session-1")
	rr := httptest.NewRecorder()

	handler.SetPayment(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	var got model.Cart
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Equal(t, "Stripe", got.PaymentMethod)
}

func TestCartHandler_Clear(t *testing.T) {
	logger := zerolog.Nop()

	mockService := new(MockCartService)
	empty := model.NewCart("session-1")
	mockService.On("Clear", mock.Anything, "session-1").Return(empty, nil)

	handler := NewCartHandler(mockService, logger)

	req := httptest.NewRequest(http.MethodDelete, "/api/cart", nil)
	req.Header.Set("X-Session-Id", "session-1")
	rr := httptest.NewRecorder()

	handler.Clear(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	mockService.AssertExpectations(t)
}

func TestCartHandler_Reset(t *testing.T) {
	logger := zerolog.Nop()

	mockService := new(MockCartService)
	mockService.On("Reset", mock.Anything, "session-1").Return(model.NewCart("session-1"), nil)

	handler := NewCartHandler(mockService, logger)

	req := httptest.NewRequest(http.MethodPost, "/api/cart/reset", nil)
	req.Header.Set("X-Session-Id", "session-1")
	rr := httptest.NewRecorder()

	handler.Reset(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	mockService.AssertExpectations(t)
}
