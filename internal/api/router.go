package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/transferhub/transferhub-go/internal/api/handler"
	apimiddleware "github.com/transferhub/transferhub-go/internal/api/middleware"
	"github.com/transferhub/transferhub-go/internal/middleware"
	"github.com/transferhub/transferhub-go/internal/services/auth"
	"github.com/transferhub/transferhub-go/internal/services/transfer"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	AuthService     *auth.Service
	TransferService *transfer.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService)
	transferHandler := handler.NewTransferHandler(cfg.TransferService)

	// Create middleware
	authMiddleware := apimiddleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := apimiddleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Auth routes (no token required)
	api.HandleFunc("/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/token", authHandler.Token).Methods(http.MethodPost)

	// Transfer routes (all require auth)
	transfers := api.PathPrefix("/transfers").Subrouter()
	transfers.Use(authMiddleware)
	transfers.HandleFunc("", transferHandler.Create).Methods(http.MethodPost)
	transfers.HandleFunc("", transferHandler.List).Methods(http.MethodGet)
	transfers.HandleFunc("/{id}", transferHandler.Get).Methods(http.MethodGet)
	transfers.HandleFunc("/{id}", transferHandler.Update).Methods(http.MethodPatch)
	transfers.HandleFunc("/{id}", transferHandler.Delete).Methods(http.MethodDelete)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
