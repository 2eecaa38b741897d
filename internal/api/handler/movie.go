package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jterhune/watchvault/internal/api/middleware"
	"github.com/jterhune/watchvault/internal/api/request"
	"github.com/jterhune/watchvault/internal/api/response"
	"github.com/jterhune/watchvault/internal/model"
	"github.com/jterhune/watchvault/internal/services/movie"
)

// MovieHandler handles watchlist endpoints
type MovieHandler struct {
	movieService *movie.Service
}

// NewMovieHandler creates a new movie handler
func NewMovieHandler(movieService *movie.Service) *MovieHandler {
	return &MovieHandler{
		movieService: movieService,
	}
}

// Create handles POST /api/v1/movies
func (h *MovieHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.MustGetUserID(r.Context())

	var req request.CreateMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	created, err := h.movieService.Create(r.Context(), userID, movie.CreateInput{
		Title:             req.Title,
		Type:              model.MediaType(req.Type),
		Genres:            req.Genre,
		Rating:            req.Rating,
		WatchStatus:       model.WatchStatus(req.WatchStatus),
		StreamingPlatform: req.StreamingPlatform,
		ReleaseYear:       req.ReleaseYear,
		PosterURL:         req.PosterURL,
		IsFavorite:        req.IsFavorite,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.MovieFromModel(created))
}

// List handles GET /api/v1/movies
func (h *MovieHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.MustGetUserID(r.Context())

	movies, err := h.movieService.List(r.Context(), userID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MoviesFromModel(movies))
}

// Get handles GET /api/v1/movies/{id}
func (h *MovieHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.MustGetUserID(r.Context())
	id := model.MovieID(mux.Vars(r)["id"])

	m, err := h.movieService.Get(r.Context(), id, userID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MovieFromModel(m))
}

// Update handles PUT /api/v1/movies/{id}
func (h *MovieHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.MustGetUserID(r.Context())
	id := model.MovieID(mux.Vars(r)["id"])

	// Reject unknown fields so immutable or misspelled fields fail loudly
	// instead of being silently dropped
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req request.UpdateMovieRequest
	if err := dec.Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	updated, err := h.movieService.Update(r.Context(), id, userID, req.ToPatch())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MovieFromModel(updated))
}

// Delete handles DELETE /api/v1/movies/{id}
func (h *MovieHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.MustGetUserID(r.Context())
	id := model.MovieID(mux.Vars(r)["id"])

	if err := h.movieService.Delete(r.Context(), id, userID); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Message{Message: "Movie deleted successfully"})
}
