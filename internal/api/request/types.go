package request

import "github.com/jterhune/watchvault/internal/model"

// RegisterRequest is the request body for registering a user
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateMovieRequest is the request body for adding a watchlist entry
type CreateMovieRequest struct {
	Title             string   `json:"title"`
	Type              string   `json:"type"`
	Genre             []string `json:"genre"`
	Rating            int      `json:"rating,omitempty"`
	WatchStatus       string   `json:"watchStatus,omitempty"`
	StreamingPlatform string   `json:"streamingPlatform,omitempty"`
	ReleaseYear       int      `json:"releaseYear,omitempty"`
	PosterURL         string   `json:"posterUrl,omitempty"`
	IsFavorite        bool     `json:"isFavorite,omitempty"`
}

// UpdateMovieRequest is the request body for updating an entry. Only the
// fields listed here may change; id and userId are not accepted at all,
// and unknown fields are rejected at decode time.
type UpdateMovieRequest struct {
	Title             *string  `json:"title,omitempty"`
	Type              *string  `json:"type,omitempty"`
	Genre             []string `json:"genre,omitempty"`
	Rating            *int     `json:"rating,omitempty"`
	WatchStatus       *string  `json:"watchStatus,omitempty"`
	StreamingPlatform *string  `json:"streamingPlatform,omitempty"`
	ReleaseYear       *int     `json:"releaseYear,omitempty"`
	PosterURL         *string  `json:"posterUrl,omitempty"`
	IsFavorite        *bool    `json:"isFavorite,omitempty"`
}

// ToPatch converts the request into a model patch
func (r *UpdateMovieRequest) ToPatch() model.MoviePatch {
	patch := model.MoviePatch{
		Title:             r.Title,
		Genres:            r.Genre,
		Rating:            r.Rating,
		StreamingPlatform: r.StreamingPlatform,
		ReleaseYear:       r.ReleaseYear,
		PosterURL:         r.PosterURL,
		IsFavorite:        r.IsFavorite,
	}
	if r.Type != nil {
		t := model.MediaType(*r.Type)
		patch.Type = &t
	}
	if r.WatchStatus != nil {
		ws := model.WatchStatus(*r.WatchStatus)
		patch.WatchStatus = &ws
	}
	return patch
}
