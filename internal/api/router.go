package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jterhune/watchvault/internal/api/handler"
	"github.com/jterhune/watchvault/internal/api/middleware"
	"github.com/jterhune/watchvault/internal/services/auth"
	"github.com/jterhune/watchvault/internal/services/movie"
	"github.com/jterhune/watchvault/internal/storage"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger       *slog.Logger
	AuthService  *auth.Service
	MovieService *movie.Service
	Storage      storage.Storage
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.Storage)
	movieHandler := handler.NewMovieHandler(cfg.MovieService)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Auth routes (no auth required)
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)

	// Protected auth routes
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(authMiddleware)
	authProtected.HandleFunc("/me", authHandler.Me).Methods(http.MethodGet)

	// Movie routes (all require auth)
	movies := api.PathPrefix("/movies").Subrouter()
	movies.Use(authMiddleware)
	movies.HandleFunc("", movieHandler.Create).Methods(http.MethodPost)
	movies.HandleFunc("", movieHandler.List).Methods(http.MethodGet)
	movies.HandleFunc("/{id}", movieHandler.Get).Methods(http.MethodGet)
	movies.HandleFunc("/{id}", movieHandler.Update).Methods(http.MethodPut)
	movies.HandleFunc("/{id}", movieHandler.Delete).Methods(http.MethodDelete)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
