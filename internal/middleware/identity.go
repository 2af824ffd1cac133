package middleware

import (
	"context"
	"net/http"
)

// Caller is the request identity established by the upstream auth gateway.
// Authentication itself happens outside this service; the gateway forwards
// the verified identity in headers.
type Caller struct {
	UserID  string
	IsAdmin bool
}

type callerKey struct{}

// Identity extracts the caller identity from the X-User-Id and X-User-Role
// headers and stores it on the request context. Requests without a user ID
// pass through anonymously; handlers that need an identity reject them.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller := Caller{
			UserID:  r.Header.Get("X-User-Id"),
			IsAdmin: r.Header.Get("X-User-Role") == "admin",
		}

		ctx := context.WithValue(r.Context(), callerKey{}, caller)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CallerFrom returns the caller identity stored on the context.
func CallerFrom(ctx context.Context) Caller {
	caller, _ := ctx.Value(callerKey{}).(Caller)
	return caller
}
