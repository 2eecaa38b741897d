package response

import (
	"time"

	"github.com/jterhune/watchvault/internal/model"
)

// User represents a user in API responses. The password hash never
// leaves the server.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// UserFromModel converts a model.User to a response User
func UserFromModel(u *model.User) User {
	return User{
		ID:       string(u.ID),
		Username: u.Username,
	}
}

// AuthResponse is the response for a successful login
type AuthResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// Movie represents a watchlist entry in API responses
type Movie struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Type              string    `json:"type"`
	Genre             []string  `json:"genre"`
	Rating            int       `json:"rating,omitempty"`
	WatchStatus       string    `json:"watchStatus"`
	StreamingPlatform string    `json:"streamingPlatform,omitempty"`
	ReleaseYear       int       `json:"releaseYear,omitempty"`
	PosterURL         string    `json:"posterUrl,omitempty"`
	IsFavorite        bool      `json:"isFavorite"`
	UserID            string    `json:"userId"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// MovieFromModel converts a model.Movie to a response Movie
func MovieFromModel(m *model.Movie) Movie {
	return Movie{
		ID:                string(m.ID),
		Title:             m.Title,
		Type:              string(m.Type),
		Genre:             m.Genres,
		Rating:            m.Rating,
		WatchStatus:       string(m.WatchStatus),
		StreamingPlatform: m.StreamingPlatform,
		ReleaseYear:       m.ReleaseYear,
		PosterURL:         m.PosterURL,
		IsFavorite:        m.IsFavorite,
		UserID:            string(m.UserID),
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// MoviesFromModel converts a slice of model movies
func MoviesFromModel(movies []*model.Movie) []Movie {
	out := make([]Movie, len(movies))
	for i, m := range movies {
		out[i] = MovieFromModel(m)
	}
	return out
}

// Message is a simple confirmation response
type Message struct {
	Message string `json:"message"`
}
