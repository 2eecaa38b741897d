package redis

import (
	"fmt"

	"github.com/jterhune/watchvault/internal/model"
)

// Key prefix for all watchlist data
const keyPrefix = "watchvault"

// userKey returns the Redis key for a User document
func userKey(id model.UserID) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, id)
}

// usernameIndexKey returns the Redis key for the username -> user_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// movieKey returns the Redis key for a Movie document
func movieKey(id model.MovieID) string {
	return fmt.Sprintf("%s:movie:%s", keyPrefix, id)
}

// moviesForUserIndexKey returns the Redis key for the SET of a user's movie keys
func moviesForUserIndexKey(userID model.UserID) string {
	return fmt.Sprintf("%s:idx:movies_for_user:%s", keyPrefix, userID)
}
