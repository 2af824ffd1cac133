package router

import (
	"net/http"
	"strings"

	"storefront/internal/handler"
	"storefront/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	productHandler *handler.ProductHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Product handler function
	productRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		// Check if this is a request for a specific product ID
		if r.URL.Path != "/api/products" && r.URL.Path != "/api/products/" {
			productHandler.GetByID(w, r)
			return
		}
		productHandler.GetAll(w, r)
	}

	// Register product routes (both with and without trailing slash)
	mux.HandleFunc("/api/products", productRouteHandler)
	mux.HandleFunc("/api/products/", productRouteHandler)

	// Cart handler function
	cartRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimSuffix(r.URL.Path, "/")

		switch {
		case path == "/api/cart" && r.Method == http.MethodGet:
			cartHandler.Get(w, r)
		case path == "/api/cart" && r.Method == http.MethodDelete:
			cartHandler.Clear(w, r)
		case path == "/api/cart/items" && r.Method == http.MethodPost:
			cartHandler.AddLine(w, r)
		case strings.HasPrefix(path, "/api/cart/items/") && r.Method == http.MethodDelete:
			cartHandler.RemoveLine(w, r)
		case path == "/api/cart/shipping" && r.Method == http.MethodPut:
			cartHandler.SetShipping(w, r)
		case path == "/api/cart/payment" && r.Method == http.MethodPut:
			cartHandler.SetPayment(w, r)
		case path == "/api/cart/reset" && r.Method == http.MethodPost:
			cartHandler.Reset(w, r)
		default:
			http.Error(w, "not found", http.StatusNotFound)
		}
	}

	mux.HandleFunc("/api/cart", cartRouteHandler)
	mux.HandleFunc("/api/cart/", cartRouteHandler)

	// Order handler function
	orderRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimSuffix(r.URL.Path, "/")

		switch {
		case path == "/api/orders" && r.Method == http.MethodPost:
			orderHandler.Submit(w, r)
		case path == "/api/orders" && r.Method == http.MethodGet:
			orderHandler.ListAll(w, r)
		case path == "/api/orders/mine" && r.Method == http.MethodGet:
			orderHandler.ListMine(w, r)
		case strings.HasSuffix(path, "/pay") && r.Method == http.MethodPut:
			orderHandler.Pay(w, r)
		case strings.HasSuffix(path, "/deliver") && r.Method == http.MethodPut:
			orderHandler.Deliver(w, r)
		case strings.HasPrefix(path, "/api/orders/") && r.Method == http.MethodGet:
			orderHandler.GetByID(w, r)
		default:
			http.Error(w, "not found", http.StatusNotFound)
		}
	}

	mux.HandleFunc("/api/orders", orderRouteHandler)
	mux.HandleFunc("/api/orders/", orderRouteHandler)

	// Apply middleware in order: Recovery -> Logging -> CORS -> APIKeyAuth -> Identity
	var h http.Handler = mux
	h = middleware.Identity(h)
	h = middleware.APIKeyAuth(apiKey, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
