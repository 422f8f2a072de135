package sse

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/chessclub/internal/dependencies/mocks"
	"github.com/mcoot/chessclub/internal/model"
	"github.com/mcoot/chessclub/internal/services/leaderboard"
	"github.com/mcoot/chessclub/internal/testutil"
)

func newAttachedHub(t *testing.T, store *mocks.MockStore) (*Hub, *leaderboard.View, *Client) {
	t.Helper()
	hub := NewHub(testutil.NopLogger())
	go hub.Run()
	t.Cleanup(hub.Close)

	view := leaderboard.NewView(store, mocks.NewMockClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)), testutil.NopLogger())
	detach := NewBroadcaster(hub, testutil.NopLogger()).Attach(view)
	t.Cleanup(detach)

	client := NewClient("watcher")
	hub.Register(client)
	waitForClients(t, hub, 1)
	return hub, view, client
}

func receive(t *testing.T, client *Client) string {
	t.Helper()
	select {
	case msg := <-client.send:
		return string(msg)
	case <-time.After(time.Second):
		t.Fatal("no event received")
		return ""
	}
}

func TestBroadcaster_PushesReadyTable(t *testing.T) {
	store := mocks.NewMockStore(
		model.Player{ID: "2", Name: "Bo", Elo: model.IntPtr(1500)},
		model.Player{ID: "1", Name: "Ann", Elo: model.IntPtr(1300)},
	)
	_, view, client := newAttachedHub(t, store)

	require.NoError(t, view.Activate(context.Background()))

	msg := receive(t, client)
	assert.True(t, strings.HasPrefix(msg, "event: leaderboard-update\n"))
	assert.Contains(t, msg, `hx-swap-oob="true"`)
	assert.Contains(t, msg, "Bo")
	assert.Contains(t, msg, "Ann")

	// Loading is not pushed, so exactly one event per refresh
	select {
	case extra := <-client.send:
		t.Fatalf("unexpected extra event %q", extra)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestBroadcaster_PushesFailure(t *testing.T) {
	store := mocks.NewMockStore()
	store.ListFunc = func(context.Context) ([]model.Player, error) {
		return nil, assert.AnError
	}
	_, view, client := newAttachedHub(t, store)

	_ = view.Refresh(context.Background())

	msg := receive(t, client)
	assert.Contains(t, msg, "Failed to load players")
	assert.NotContains(t, msg, "<table")
}

func TestRenderLeaderboard_IsOOBSection(t *testing.T) {
	html, err := RenderLeaderboard(context.Background(), leaderboard.ViewState{
		Status:  leaderboard.StatusReady,
		Players: []model.Player{},
	})
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)

	section := doc.Find("section#leaderboard")
	require.Equal(t, 1, section.Length())
	oob, _ := section.Attr("hx-swap-oob")
	assert.Equal(t, "true", oob)
	assert.Equal(t, 1, section.Find("tbody tr").Length())
}
