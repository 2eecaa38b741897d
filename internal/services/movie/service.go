package movie

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jterhune/watchvault/internal/dependencies/clock"
	"github.com/jterhune/watchvault/internal/model"
	"github.com/jterhune/watchvault/internal/storage"
)

// Service exposes ownership-scoped CRUD over watchlist entries. Every
// operation takes the caller's user ID; an entry is only ever visible to
// its owner.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new movie Service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// CreateInput holds the caller-supplied fields for a new entry
type CreateInput struct {
	Title             string
	Type              model.MediaType
	Genres            []string
	Rating            int
	WatchStatus       model.WatchStatus
	StreamingPlatform string
	ReleaseYear       int
	PosterURL         string
	IsFavorite        bool
}

// Create validates the input, stamps identifiers and timestamps, and
// persists the entry. The owner is always the caller, never the input.
func (s *Service) Create(ctx context.Context, ownerID model.UserID, input CreateInput) (*model.Movie, error) {
	now := s.clock.Now()

	movie := &model.Movie{
		ID:                model.MovieID(uuid.NewString()),
		Title:             input.Title,
		Type:              input.Type,
		Genres:            model.NormalizeGenres(input.Genres),
		Rating:            input.Rating,
		WatchStatus:       input.WatchStatus,
		StreamingPlatform: input.StreamingPlatform,
		ReleaseYear:       input.ReleaseYear,
		PosterURL:         input.PosterURL,
		IsFavorite:        input.IsFavorite,
		UserID:            ownerID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if movie.WatchStatus == "" {
		movie.WatchStatus = model.WatchStatusPlanToWatch
	}

	if err := movie.Validate(); err != nil {
		return nil, err
	}

	if err := s.storage.SaveMovie(ctx, movie); err != nil {
		s.logger.Error("failed to save movie", slog.String("error", err.Error()))
		return nil, err
	}

	return movie, nil
}

// List returns all of the caller's entries, unordered
func (s *Service) List(ctx context.Context, ownerID model.UserID) ([]*model.Movie, error) {
	return s.storage.ListMoviesByUser(ctx, ownerID)
}

// Get fetches an entry by ID, rejecting access by anyone but the owner
func (s *Service) Get(ctx context.Context, id model.MovieID, callerID model.UserID) (*model.Movie, error) {
	movie, err := s.storage.GetMovie(ctx, id)
	if err != nil {
		return nil, err
	}
	if movie.UserID != callerID {
		return nil, model.ErrNotOwner
	}
	return movie, nil
}

// Update applies a partial merge of mutable fields and re-validates the
// result. Ownership is checked the same way as Get: only the owner may
// update an entry.
func (s *Service) Update(ctx context.Context, id model.MovieID, callerID model.UserID, patch model.MoviePatch) (*model.Movie, error) {
	movie, err := s.Get(ctx, id, callerID)
	if err != nil {
		return nil, err
	}

	updated := *movie
	updated.Genres = append([]string(nil), movie.Genres...)
	patch.Apply(&updated)

	if err := updated.Validate(); err != nil {
		return nil, err
	}

	updated.UpdatedAt = s.clock.Now()

	if err := s.storage.SaveMovie(ctx, &updated); err != nil {
		s.logger.Error("failed to update movie", slog.String("error", err.Error()))
		return nil, err
	}

	return &updated, nil
}

// Delete removes an entry. Only the owner may delete; deleting an entry
// that does not exist reports ErrMovieNotFound.
func (s *Service) Delete(ctx context.Context, id model.MovieID, callerID model.UserID) error {
	if _, err := s.Get(ctx, id, callerID); err != nil {
		return err
	}

	if err := s.storage.DeleteMovie(ctx, id); err != nil {
		s.logger.Error("failed to delete movie", slog.String("error", err.Error()))
		return err
	}

	return nil
}
