package e2e_test

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/chessclub/internal/api"
	"github.com/mcoot/chessclub/internal/factory"
	"github.com/mcoot/chessclub/internal/testutil"
	"github.com/mcoot/chessclub/internal/web"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	projectRoot := findProjectRoot(t)

	binaryPath := filepath.Join(t.TempDir(), "chessclub-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/chessclub")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
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

// startTestServer runs the full server stack on a free port until the test ends
func startTestServer(t *testing.T) (string, *factory.TestApp) {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	app := factory.NewTestApp()
	logger := testutil.NopLogger()

	mux := http.NewServeMux()
	mux.Handle("/api/", api.NewRouter(api.RouterConfig{
		Logger:      logger,
		Coordinator: app.Coordinator,
	}))
	mux.Handle("/", web.NewRouter(web.RouterConfig{
		Logger:      logger,
		Coordinator: app.Coordinator,
		Hub:         app.Hub,
		StaticDir:   filepath.Join(findProjectRoot(t), "internal/web/static"),
	}))

	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = "127.0.0.1"
	serverConfig.Port = port
	serverConfig.ShutdownTimeout = 5 * time.Second
	server := api.NewServer(mux, serverConfig, logger)
	server.OnShutdown(app.Hub.Close)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Run(ctx) }()

	t.Cleanup(func() {
		cancel()
		assert.NoError(t, <-done)
		_ = app.Close()
	})

	serverURL := "http://" + net.JoinHostPort("127.0.0.1", strconv.Itoa(port))
	waitForServer(t, serverURL+"/api/v1/health")
	return serverURL, app
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
type healthResponse struct {
	Status string `json:"status"`
}

type rankedRow struct {
	Rank int    `json:"rank"`
	Name string `json:"name"`
	Elo  string `json:"elo"`
}

type playerListResponse struct {
	Players []rankedRow `json:"players"`
}

type addPlayerResponse struct {
	Player struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Elo  *int   `json:"elo"`
	} `json:"player"`
	Message string `json:"message"`
}

type snapshotResponse struct {
	Status  string      `json:"status"`
	Players []rankedRow `json:"players"`
}

func TestCLI_HealthCheck(t *testing.T) {
	serverURL, _ := startTestServer(t)
	cli := newCLIRunner(t, serverURL)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_ClubFlow(t *testing.T) {
	serverURL, _ := startTestServer(t)
	cli := newCLIRunner(t, serverURL)

	output, err := cli.run("players", "list")
	require.NoError(t, err, "output: %s", output)
	var list playerListResponse
	require.NoError(t, json.Unmarshal([]byte(output), &list))
	assert.Empty(t, list.Players)

	output, err = cli.run("players", "add", "--name", "Ann", "--elo", "1300")
	require.NoError(t, err, "output: %s", output)
	var added addPlayerResponse
	require.NoError(t, json.Unmarshal([]byte(output), &added))
	assert.Equal(t, "Ann", added.Player.Name)
	assert.Equal(t, `Player "Ann" added successfully!`, added.Message)

	output, err = cli.run("players", "add", "--name", "Bo", "--elo", "1500")
	require.NoError(t, err, "output: %s", output)

	output, err = cli.run("players", "add", "--name", "Cy")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &added))
	require.NotNil(t, added.Player.Elo)
	assert.Equal(t, 1200, *added.Player.Elo)

	output, err = cli.run("players", "list")
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &list))
	assert.Equal(t, []rankedRow{
		{Rank: 1, Name: "Bo", Elo: "1500"},
		{Rank: 2, Name: "Ann", Elo: "1300"},
		{Rank: 3, Name: "Cy", Elo: "1200"},
	}, list.Players)
}

func TestCLI_AddRejectsBlankName(t *testing.T) {
	serverURL, app := startTestServer(t)
	cli := newCLIRunner(t, serverURL)

	output, err := cli.run("players", "add", "--name", "   ")
	require.Error(t, err)
	assert.Contains(t, output, "INVALID_REQUEST")

	players, err := app.Memory.ListPlayers(testContext(t))
	require.NoError(t, err)
	assert.Empty(t, players)
}

func TestCLI_WatchSeesNewPlayer(t *testing.T) {
	serverURL, app := startTestServer(t)
	cli := newCLIRunner(t, serverURL)

	// Nothing is settled yet, so the first update is the refresh the add triggers
	type result struct {
		output string
		err    error
	}
	watched := make(chan result, 1)
	go func() {
		out, err := cli.run("watch", "--count", "1")
		watched <- result{out, err}
	}()

	require.Eventually(t, func() bool {
		return app.Hub.ClientCount() == 1
	}, 10*time.Second, 20*time.Millisecond, "watch never connected")

	output, err := cli.run("players", "add", "--name", "Dee", "--elo", "1700")
	require.NoError(t, err, "output: %s", output)

	select {
	case res := <-watched:
		require.NoError(t, res.err, "output: %s", res.output)
		var snap snapshotResponse
		require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(res.output)), &snap))
		assert.Equal(t, "ready", snap.Status)
		require.Len(t, snap.Players, 1)
		assert.Equal(t, "Dee", snap.Players[0].Name)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not report the new player")
	}
}
