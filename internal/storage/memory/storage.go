package memory

import (
	"context"
	"sync"

	"github.com/jterhune/watchvault/internal/model"
	"github.com/jterhune/watchvault/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	users         map[model.UserID]*model.User
	usernameIndex map[string]model.UserID
	movies        map[model.MovieID]*model.Movie
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:         make(map[model.UserID]*model.User),
		usernameIndex: make(map[string]model.UserID),
		movies:        make(map[model.MovieID]*model.Movie),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
	s.usernameIndex[user.Username] = user.ID
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

// Movie operations

func (s *Storage) SaveMovie(ctx context.Context, movie *model.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.movies[movie.ID] = movie
	return nil
}

func (s *Storage) GetMovie(ctx context.Context, id model.MovieID) (*model.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	movie, ok := s.movies[id]
	if !ok {
		return nil, model.ErrMovieNotFound
	}
	return movie, nil
}

func (s *Storage) ListMoviesByUser(ctx context.Context, userID model.UserID) ([]*model.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	movies := make([]*model.Movie, 0)
	for _, movie := range s.movies {
		if movie.UserID == userID {
			movies = append(movies, movie)
		}
	}
	return movies, nil
}

func (s *Storage) DeleteMovie(ctx context.Context, id model.MovieID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.movies, id)
	return nil
}
