package model

import (
	"fmt"
	"strings"
	"time"
)

// MovieID uniquely identifies a watchlist entry
type MovieID string

// MediaType is the kind of entry: a film or a series
type MediaType string

const (
	MediaTypeMovie  MediaType = "Movie"
	MediaTypeSeries MediaType = "Series"
)

// Valid reports whether the media type is a known value
func (t MediaType) Valid() bool {
	return t == MediaTypeMovie || t == MediaTypeSeries
}

// WatchStatus tracks progress through an entry
type WatchStatus string

const (
	WatchStatusPlanToWatch WatchStatus = "Plan to Watch"
	WatchStatusWatching    WatchStatus = "Watching"
	WatchStatusCompleted   WatchStatus = "Completed"
)

// Valid reports whether the watch status is a known value
func (s WatchStatus) Valid() bool {
	switch s {
	case WatchStatusPlanToWatch, WatchStatusWatching, WatchStatusCompleted:
		return true
	}
	return false
}

// Rating bounds (inclusive); zero means unrated
const (
	MinRating = 1
	MaxRating = 10
)

// Movie is one watchlist entry. UserID is the owner, assigned at creation
// and never reassignable.
type Movie struct {
	ID                MovieID
	Title             string
	Type              MediaType
	Genres            []string
	Rating            int // 0 = unrated
	WatchStatus       WatchStatus
	StreamingPlatform string
	ReleaseYear       int // 0 = unknown
	PosterURL         string
	IsFavorite        bool
	UserID            UserID
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ValidationError describes input rejected before it reached storage
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with a formatted message
func NewValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// Validate checks the entry's own invariants. Ownership and identifiers
// are the service's responsibility.
func (m *Movie) Validate() error {
	if strings.TrimSpace(m.Title) == "" {
		return NewValidationError("title is required")
	}
	if !m.Type.Valid() {
		return NewValidationError("type must be %q or %q", MediaTypeMovie, MediaTypeSeries)
	}
	if len(m.Genres) == 0 {
		return NewValidationError("at least one genre is required")
	}
	for _, g := range m.Genres {
		if strings.TrimSpace(g) == "" {
			return NewValidationError("genres must not be empty")
		}
	}
	if !m.WatchStatus.Valid() {
		return NewValidationError("watch status must be one of %q, %q, %q",
			WatchStatusPlanToWatch, WatchStatusWatching, WatchStatusCompleted)
	}
	if m.Rating != 0 && (m.Rating < MinRating || m.Rating > MaxRating) {
		return NewValidationError("rating must be between %d and %d", MinRating, MaxRating)
	}
	return nil
}

// MoviePatch is the whitelist of fields an update may change. Nil fields
// are left untouched. ID and UserID are deliberately absent: they are
// immutable after creation.
type MoviePatch struct {
	Title             *string
	Type              *MediaType
	Genres            []string
	Rating            *int
	WatchStatus       *WatchStatus
	StreamingPlatform *string
	ReleaseYear       *int
	PosterURL         *string
	IsFavorite        *bool
}

// Apply merges the patch into the movie, field by field
func (p *MoviePatch) Apply(m *Movie) {
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.Type != nil {
		m.Type = *p.Type
	}
	if p.Genres != nil {
		m.Genres = NormalizeGenres(p.Genres)
	}
	if p.Rating != nil {
		m.Rating = *p.Rating
	}
	if p.WatchStatus != nil {
		m.WatchStatus = *p.WatchStatus
	}
	if p.StreamingPlatform != nil {
		m.StreamingPlatform = *p.StreamingPlatform
	}
	if p.ReleaseYear != nil {
		m.ReleaseYear = *p.ReleaseYear
	}
	if p.PosterURL != nil {
		m.PosterURL = *p.PosterURL
	}
	if p.IsFavorite != nil {
		m.IsFavorite = *p.IsFavorite
	}
}

// ParseGenres splits a comma-separated genre string, trimming whitespace
// and dropping empty segments: "Action, , Sci-Fi" -> ["Action", "Sci-Fi"]
func ParseGenres(s string) []string {
	parts := strings.Split(s, ",")
	genres := make([]string, 0, len(parts))
	for _, p := range parts {
		if g := strings.TrimSpace(p); g != "" {
			genres = append(genres, g)
		}
	}
	return genres
}

// NormalizeGenres trims whitespace from each genre and drops empty entries
func NormalizeGenres(genres []string) []string {
	out := make([]string, 0, len(genres))
	for _, g := range genres {
		if t := strings.TrimSpace(g); t != "" {
			out = append(out, t)
		}
	}
	return out
}
