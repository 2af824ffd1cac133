package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentity(t *testing.T) {
	tests := []struct {
		name     string
		userID   string
		role     string
		expected Caller
	}{
		{
			name:     "Regular user",
			userID:   "user-1",
			role:     "customer",
			expected: Caller{UserID: "user-1", IsAdmin: false},
		},
		{
			name:     "Admin user",
			userID:   "admin-1",
			role:     "admin",
			expected: Caller{UserID: "admin-1", IsAdmin: true},
		},
		{
			name:     "Anonymous request",
			expected: Caller{},
		},
		{
			name:     "Role without user ID",
			role:     "admin",
			expected: Caller{IsAdmin: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Caller
			testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = CallerFrom(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.userID != "" {
				req.Header.Set("X-User-Id", tt.userID)
			}
			if tt.role != "" {
				req.Header.Set("X-User-Role", tt.role)
			}
			w := httptest.NewRecorder()

			Identity(testHandler).ServeHTTP(w, req)

			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCallerFrom_MissingValue(t *testing.T) {
	caller := CallerFrom(context.Background())
	assert.Equal(t, Caller{}, caller)
}
