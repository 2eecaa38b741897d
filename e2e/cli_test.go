package e2e_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jterhune/watchvault/internal/api"
	"github.com/jterhune/watchvault/internal/factory"
	"github.com/jterhune/watchvault/internal/services/auth"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	tokenFile  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(projectRoot, "bin", "watchvault-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/watchvault")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	// Create temp token file
	tokenFile := filepath.Join(t.TempDir(), "token")

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		tokenFile:  tokenFile,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token-file", r.tokenFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func (r *cliRunner) runWithToken(token string, args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token", token,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	server   *http.Server
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	// Create application
	app, err := factory.New(factory.Config{
		Logger: logger,
		AuthConfig: auth.Config{
			TokenSecret: "e2e-test-secret",
		},
	})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:       logger,
		AuthService:  app.AuthService,
		MovieService: app.MovieService,
		Storage:      app.Storage,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		server: server,
		addr:   serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type authResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

type movieResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Type        string   `json:"type"`
	Genre       []string `json:"genre"`
	Rating      int      `json:"rating"`
	WatchStatus string   `json:"watchStatus"`
	IsFavorite  bool     `json:"isFavorite"`
	UserID      string   `json:"userId"`
}

type healthResponse struct {
	Status string `json:"status"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_AuthCommands(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Register
	output, err := cli.run("auth", "register", "--user", "alice", "--pass", "secret1")
	require.NoError(t, err, "output: %s", output)

	var user userResponse
	require.NoError(t, json.Unmarshal([]byte(output), &user))
	assert.Equal(t, "alice", user.Username)
	assert.NotEmpty(t, user.ID)

	// Login (token is saved to the token file)
	output, err = cli.run("auth", "login", "--user", "alice", "--pass", "secret1")
	require.NoError(t, err, "output: %s", output)

	var authResp authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &authResp))
	assert.Equal(t, "alice", authResp.Username)
	assert.NotEmpty(t, authResp.Token)

	// Me uses the saved token
	output, err = cli.run("auth", "me")
	require.NoError(t, err, "output: %s", output)

	var me userResponse
	require.NoError(t, json.Unmarshal([]byte(output), &me))
	assert.Equal(t, user.ID, me.ID)

	// Logout removes the token
	_, err = cli.run("auth", "logout")
	require.NoError(t, err)

	output, err = cli.run("auth", "me")
	assert.Error(t, err)
	assert.Contains(t, strings.ToUpper(output), "UNAUTHENTICATED")
}

func TestCLI_WatchlistLifecycle(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Register and login
	_, err := cli.run("auth", "register", "--user", "alice", "--pass", "secret1")
	require.NoError(t, err)
	_, err = cli.run("auth", "login", "--user", "alice", "--pass", "secret1")
	require.NoError(t, err)

	// Add an entry
	output, err := cli.run("movie", "add",
		"--title", "Dune",
		"--type", "Movie",
		"--genre", "Sci-Fi, Adventure",
		"--rating", "9",
		"--year", "2021")
	require.NoError(t, err, "output: %s", output)

	var movie movieResponse
	require.NoError(t, json.Unmarshal([]byte(output), &movie))
	assert.Equal(t, "Dune", movie.Title)
	assert.Equal(t, []string{"Sci-Fi", "Adventure"}, movie.Genre)
	assert.Equal(t, "Plan to Watch", movie.WatchStatus)
	movieID := movie.ID

	// List shows it
	output, err = cli.run("movie", "list")
	require.NoError(t, err, "output: %s", output)

	var movies []movieResponse
	require.NoError(t, json.Unmarshal([]byte(output), &movies))
	require.Len(t, movies, 1)
	assert.Equal(t, movieID, movies[0].ID)

	// Update status
	output, err = cli.run("movie", "update", movieID, "--status", "Completed")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &movie))
	assert.Equal(t, "Completed", movie.WatchStatus)
	assert.Equal(t, "Dune", movie.Title)

	// Toggle favorite
	output, err = cli.run("movie", "favorite", movieID)
	require.NoError(t, err, "output: %s", output)

	output, err = cli.run("movie", "get", movieID)
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &movie))
	assert.True(t, movie.IsFavorite)

	// Delete
	output, err = cli.run("movie", "delete", movieID)
	require.NoError(t, err, "output: %s", output)

	var msgResp messageResponse
	require.NoError(t, json.Unmarshal([]byte(output), &msgResp))
	assert.Contains(t, msgResp.Message, "deleted")

	// Gone now
	_, err = cli.run("movie", "get", movieID)
	assert.Error(t, err)
}

func TestCLI_OwnershipIsolation(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli1 := newCLIRunner(t, ts.addr)
	cli2 := &cliRunner{
		binaryPath: cli1.binaryPath,
		serverURL:  cli1.serverURL,
		tokenFile:  filepath.Join(t.TempDir(), "token2"),
	}

	// Two accounts
	_, err := cli1.run("auth", "register", "--user", "alice", "--pass", "secret1")
	require.NoError(t, err)
	_, err = cli1.run("auth", "login", "--user", "alice", "--pass", "secret1")
	require.NoError(t, err)

	_, err = cli2.run("auth", "register", "--user", "bob", "--pass", "secret2")
	require.NoError(t, err)
	_, err = cli2.run("auth", "login", "--user", "bob", "--pass", "secret2")
	require.NoError(t, err)

	// Alice adds an entry
	output, err := cli1.run("movie", "add", "--title", "Dune", "--genre", "Sci-Fi")
	require.NoError(t, err, "output: %s", output)
	var movie movieResponse
	require.NoError(t, json.Unmarshal([]byte(output), &movie))

	// Bob cannot see or touch it
	output, err = cli2.run("movie", "list")
	require.NoError(t, err, "output: %s", output)
	var bobMovies []movieResponse
	require.NoError(t, json.Unmarshal([]byte(output), &bobMovies))
	assert.Empty(t, bobMovies)

	output, err = cli2.run("movie", "get", movie.ID)
	assert.Error(t, err)
	assert.Contains(t, strings.ToUpper(output), "NOT_OWNER")

	_, err = cli2.run("movie", "delete", movie.ID)
	assert.Error(t, err)
}

func TestCLI_ErrorHandling(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// List without auth
	output, err := cli.run("movie", "list")
	assert.Error(t, err)
	assert.Contains(t, strings.ToUpper(output), "UNAUTHENTICATED")

	// Duplicate registration
	_, err = cli.run("auth", "register", "--user", "alice", "--pass", "secret1")
	require.NoError(t, err)

	output, err = cli.run("auth", "register", "--user", "alice", "--pass", "secret1")
	assert.Error(t, err)
	assert.Contains(t, strings.ToUpper(output), "USERNAME_EXISTS")

	// Missing entry
	_, err = cli.run("auth", "login", "--user", "alice", "--pass", "secret1")
	require.NoError(t, err)

	output, err = cli.run("movie", "get", "does-not-exist")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "not found")
}
