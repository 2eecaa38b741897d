package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameExists     = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Token errors
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Movie errors
	ErrMovieNotFound = errors.New("movie not found")
	ErrNotOwner      = errors.New("movie belongs to another user")
)
