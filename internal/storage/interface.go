package storage

import (
	"context"

	"github.com/jterhune/watchvault/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// User operations
	SaveUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)

	// Movie operations
	SaveMovie(ctx context.Context, movie *model.Movie) error
	GetMovie(ctx context.Context, id model.MovieID) (*model.Movie, error)
	ListMoviesByUser(ctx context.Context, userID model.UserID) ([]*model.Movie, error)
	DeleteMovie(ctx context.Context, id model.MovieID) error
}
