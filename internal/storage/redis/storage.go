package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jterhune/watchvault/internal/model"
	"github.com/jterhune/watchvault/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Each entity is stored as a JSON document under its own key, with SET
// and string keys serving as secondary indexes.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	// Pipeline keeps document and username index in step
	pipe := s.client.Pipeline()
	pipe.Set(ctx, userKey(user.ID), data, 0)
	pipe.Set(ctx, usernameIndexKey(user.Username), string(user.ID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	data, err := s.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	userIDStr, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	return s.GetUser(ctx, model.UserID(userIDStr))
}

// Movie operations

func (s *Storage) SaveMovie(ctx context.Context, movie *model.Movie) error {
	data, err := json.Marshal(movie)
	if err != nil {
		return err
	}

	mKey := movieKey(movie.ID)
	indexKey := moviesForUserIndexKey(movie.UserID)

	pipe := s.client.Pipeline()
	pipe.Set(ctx, mKey, data, 0)
	pipe.SAdd(ctx, indexKey, mKey)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetMovie(ctx context.Context, id model.MovieID) (*model.Movie, error) {
	data, err := s.client.Get(ctx, movieKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrMovieNotFound
		}
		return nil, err
	}

	var movie model.Movie
	if err := json.Unmarshal(data, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

func (s *Storage) ListMoviesByUser(ctx context.Context, userID model.UserID) ([]*model.Movie, error) {
	indexKey := moviesForUserIndexKey(userID)

	movieKeys, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, err
	}

	if len(movieKeys) == 0 {
		return []*model.Movie{}, nil
	}

	values, err := s.client.MGet(ctx, movieKeys...).Result()
	if err != nil {
		return nil, err
	}

	movies := make([]*model.Movie, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Index entry with no document
		}
		var movie model.Movie
		if err := json.Unmarshal([]byte(val.(string)), &movie); err != nil {
			continue // Skip invalid data
		}
		movies = append(movies, &movie)
	}

	return movies, nil
}

func (s *Storage) DeleteMovie(ctx context.Context, id model.MovieID) error {
	// Fetch the document first so the owner's index can be cleaned up
	movie, err := s.GetMovie(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrMovieNotFound) {
			return nil
		}
		return err
	}

	mKey := movieKey(id)

	pipe := s.client.Pipeline()
	pipe.Del(ctx, mKey)
	pipe.SRem(ctx, moviesForUserIndexKey(movie.UserID), mKey)
	_, err = pipe.Exec(ctx)
	return err
}
