package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON   = "INVALID_JSON"
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeConflict      = "CONFLICT"
	ErrCodeUnauthorised  = "UNAUTHORIZED"
	ErrCodeForbidden     = "FORBIDDEN"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// DomainError is a typed business-logic failure that the boundary layer
// translates into an HTTP response.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrEmptyOrder        = NewDomainError(ErrCodeValidation, "Order must contain at least one line")
	ErrMissingAddress    = NewDomainError(ErrCodeValidation, "Shipping address is required")
	ErrMissingPayment    = NewDomainError(ErrCodeValidation, "Payment method is required")
	ErrInvalidQuantity   = NewDomainError(ErrCodeValidation, "Quantity must be greater than zero")
	ErrInsufficientStock = NewDomainError(ErrCodeValidation, "Quantity exceeds stock on hand")
	ErrProductNotFound   = NewDomainError(ErrCodeNotFound, "One or more products not found")
	ErrOrderNotFound     = NewDomainError(ErrCodeNotFound, "Order not found")
	ErrAlreadyPaid       = NewDomainError(ErrCodeConflict, "Order is already marked as paid")
	ErrAlreadyDelivered  = NewDomainError(ErrCodeConflict, "Order is already marked as delivered")
	ErrForbidden         = NewDomainError(ErrCodeForbidden, "Caller does not own this order")
)
