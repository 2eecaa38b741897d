package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jterhune/watchvault/internal/api"
	"github.com/jterhune/watchvault/internal/api/response"
	"github.com/jterhune/watchvault/internal/factory"
	"github.com/jterhune/watchvault/internal/testutil"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	app := factory.NewTestApp()

	router := api.NewRouter(api.RouterConfig{
		Logger:       testutil.NopLogger(),
		AuthService:  app.AuthService,
		MovieService: app.MovieService,
		Storage:      app.Storage,
	})

	return &testServer{
		handler: router,
		app:     app,
	}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// registerAndLogin creates an account and returns its token
func registerAndLogin(t *testing.T, ts *testServer, username, password string) string {
	t.Helper()

	body := map[string]string{"username": username, "password": password}
	rr := ts.request(http.MethodPost, "/api/v1/auth/register", body, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/auth/login", body, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func createMovie(t *testing.T, ts *testServer, token string, body map[string]any) response.Movie {
	t.Helper()

	rr := ts.request(http.MethodPost, "/api/v1/movies", body, token)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var resp response.Movie
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestRegisterAndLogin(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{"username": "alice", "password": "secret1"}
	rr := ts.request(http.MethodPost, "/api/v1/auth/register", body, "")
	assert.Equal(t, http.StatusCreated, rr.Code)

	var registerResp response.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &registerResp))
	assert.Equal(t, "alice", registerResp.Username)
	assert.NotEmpty(t, registerResp.ID)

	rr = ts.request(http.MethodPost, "/api/v1/auth/login", body, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var loginResp response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &loginResp))
	assert.Equal(t, "alice", loginResp.Username)
	assert.NotEmpty(t, loginResp.Token)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{"username": "alice", "password": "secret1"}
	rr := ts.request(http.MethodPost, "/api/v1/auth/register", body, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = ts.request(http.MethodPost, "/api/v1/auth/register", body, "")
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "USERNAME_EXISTS")
}

func TestRegisterEmptyUsername(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{"username": "", "password": "secret1"}
	rr := ts.request(http.MethodPost, "/api/v1/auth/register", body, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLoginBadCredentials(t *testing.T) {
	ts := newTestServer(t)

	registerAndLogin(t, ts, "alice", "secret1")

	body := map[string]string{"username": "alice", "password": "wrong"}
	rr := ts.request(http.MethodPost, "/api/v1/auth/login", body, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_CREDENTIALS")
}

func TestMissingAuthHeaderIsUnauthorized(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/movies", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "UNAUTHENTICATED")
}

// Invalid tokens are 400, not 401, matching the service this replaces
func TestInvalidTokenIsBadRequest(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/movies", nil, "garbage-token")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_TOKEN")
}

func TestRawTokenWithoutBearerPrefix(t *testing.T) {
	ts := newTestServer(t)
	token := registerAndLogin(t, ts, "alice", "secret1")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/movies", nil)
	req.Header.Set("Authorization", token)
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestGetMe(t *testing.T) {
	ts := newTestServer(t)
	token := registerAndLogin(t, ts, "alice", "secret1")

	rr := ts.request(http.MethodGet, "/api/v1/auth/me", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.User
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp.Username)
}

func TestCreateMovieValidation(t *testing.T) {
	ts := newTestServer(t)
	token := registerAndLogin(t, ts, "alice", "secret1")

	// Missing title
	rr := ts.request(http.MethodPost, "/api/v1/movies", map[string]any{
		"type":  "Movie",
		"genre": []string{"Drama"},
	}, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// Rating out of range
	rr = ts.request(http.MethodPost, "/api/v1/movies", map[string]any{
		"title":  "Dune",
		"type":   "Movie",
		"genre":  []string{"Sci-Fi"},
		"rating": 42,
	}, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestOwnershipIsolation(t *testing.T) {
	ts := newTestServer(t)
	aliceToken := registerAndLogin(t, ts, "alice", "secret1")
	bobToken := registerAndLogin(t, ts, "bob", "secret2")

	movie := createMovie(t, ts, aliceToken, map[string]any{
		"title": "Dune",
		"type":  "Movie",
		"genre": []string{"Sci-Fi"},
	})

	// Bob's list never includes Alice's entries
	rr := ts.request(http.MethodGet, "/api/v1/movies", nil, bobToken)
	require.Equal(t, http.StatusOK, rr.Code)
	var bobMovies []response.Movie
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &bobMovies))
	assert.Empty(t, bobMovies)

	// Bob cannot read, update or delete Alice's entry
	rr = ts.request(http.MethodGet, "/api/v1/movies/"+movie.ID, nil, bobToken)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "NOT_OWNER")

	rr = ts.request(http.MethodPut, "/api/v1/movies/"+movie.ID, map[string]any{"isFavorite": true}, bobToken)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodDelete, "/api/v1/movies/"+movie.ID, nil, bobToken)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// Entry is untouched
	rr = ts.request(http.MethodGet, "/api/v1/movies/"+movie.ID, nil, aliceToken)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestUpdateRejectsUnknownFields(t *testing.T) {
	ts := newTestServer(t)
	token := registerAndLogin(t, ts, "alice", "secret1")

	movie := createMovie(t, ts, token, map[string]any{
		"title": "Dune",
		"type":  "Movie",
		"genre": []string{"Sci-Fi"},
	})

	// The owner is immutable; supplying it is an error, not a silent merge
	rr := ts.request(http.MethodPut, "/api/v1/movies/"+movie.ID, map[string]any{
		"userId": "someone-else",
	}, token)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestMovieNotFound(t *testing.T) {
	ts := newTestServer(t)
	token := registerAndLogin(t, ts, "alice", "secret1")

	rr := ts.request(http.MethodGet, "/api/v1/movies/does-not-exist", nil, token)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = ts.request(http.MethodDelete, "/api/v1/movies/does-not-exist", nil, token)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

// Full lifecycle: register, login, create, list, favorite, delete, verify gone
func TestWatchlistLifecycle(t *testing.T) {
	ts := newTestServer(t)
	token := registerAndLogin(t, ts, "alice", "secret1")

	created := createMovie(t, ts, token, map[string]any{
		"title": "Dune",
		"type":  "Movie",
		"genre": []string{"Sci-Fi"},
	})
	assert.Equal(t, "Dune", created.Title)
	assert.Equal(t, "Plan to Watch", created.WatchStatus)
	assert.NotEmpty(t, created.UserID)
	assert.False(t, created.IsFavorite)

	// List contains the entry
	rr := ts.request(http.MethodGet, "/api/v1/movies", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)
	var movies []response.Movie
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &movies))
	require.Len(t, movies, 1)
	assert.Equal(t, created.ID, movies[0].ID)

	// Round-trip: get returns the same fields
	rr = ts.request(http.MethodGet, "/api/v1/movies/"+created.ID, nil, token)
	require.Equal(t, http.StatusOK, rr.Code)
	var fetched response.Movie
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &fetched))
	assert.Equal(t, created, fetched)

	// Toggle favorite
	rr = ts.request(http.MethodPut, "/api/v1/movies/"+created.ID, map[string]any{"isFavorite": true}, token)
	require.Equal(t, http.StatusOK, rr.Code)
	var updated response.Movie
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
	assert.True(t, updated.IsFavorite)
	assert.Equal(t, "Dune", updated.Title)

	// Delete
	rr = ts.request(http.MethodDelete, "/api/v1/movies/"+created.ID, nil, token)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "deleted")

	// Gone now
	rr = ts.request(http.MethodGet, "/api/v1/movies/"+created.ID, nil, token)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
