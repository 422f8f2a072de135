package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/chessclub/internal/model"
	"github.com/mcoot/chessclub/internal/services/leaderboard"
	"github.com/mcoot/chessclub/internal/web/templates/components"
)

func render(t *testing.T, state leaderboard.ViewState) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, components.Leaderboard(state, true).Render(context.Background(), &b))
	return b.String()
}

func TestParseLeaderboard_Rows(t *testing.T) {
	html := render(t, leaderboard.ViewState{
		Status: leaderboard.StatusReady,
		Players: []model.Player{
			{ID: "9", Name: "Bo", Elo: model.IntPtr(1500), GamesPlayed: model.IntPtr(4), Wins: model.IntPtr(2), Losses: model.IntPtr(1), Draws: model.IntPtr(1)},
			{ID: "3", Name: "Ann & Co"},
		},
	})

	snap, err := parseLeaderboard(html)
	require.NoError(t, err)
	assert.Equal(t, "ready", snap.Status)
	assert.Equal(t, []RankedRow{
		{ID: "9", Rank: 1, Name: "Bo", Elo: "1500", GamesPlayed: 4, Wins: 2, Losses: 1, Draws: 1},
		{ID: "3", Rank: 2, Name: "Ann & Co", Elo: "N/A"},
	}, snap.Rows)
}

func TestParseLeaderboard_PlaceholderIsNotARow(t *testing.T) {
	snap, err := parseLeaderboard(render(t, leaderboard.ViewState{Status: leaderboard.StatusReady}))
	require.NoError(t, err)
	assert.Empty(t, snap.Rows)
	assert.Empty(t, snap.Error)
}

func TestParseLeaderboard_Failure(t *testing.T) {
	snap, err := parseLeaderboard(render(t, leaderboard.ViewState{
		Status: leaderboard.StatusFailed,
		Error:  "Failed to load players: boom. Check RLS policies.",
	}))
	require.NoError(t, err)
	assert.Equal(t, "failed", snap.Status)
	assert.Equal(t, "Failed to load players: boom. Check RLS policies.", snap.Error)
	assert.Empty(t, snap.Rows)
}

func TestParseLeaderboard_MissingSection(t *testing.T) {
	_, err := parseLeaderboard(`<p>nothing here</p>`)
	assert.Error(t, err)
}

func TestReadEvents(t *testing.T) {
	stream := "retry: 3000\n\n" +
		"event: connected\ndata: {\"status\":\"connected\"}\n\n" +
		"event: leaderboard-update\ndata: <section>\ndata: </section>\n\n" +
		"event: leaderboard-update\ndata: second\n\n"

	type event struct{ name, data string }
	var got []event
	err := readEvents(strings.NewReader(stream), func(name, data string) bool {
		got = append(got, event{name, data})
		return len(got) < 2
	})
	require.NoError(t, err)
	assert.Equal(t, []event{
		{"connected", `{"status":"connected"}`},
		{"leaderboard-update", "<section>\n</section>"},
	}, got)
}
