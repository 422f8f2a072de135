package sse

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/mcoot/chessclub/internal/services/leaderboard"
	"github.com/mcoot/chessclub/internal/web/templates/components"
)

// EventLeaderboardUpdate carries an out-of-band leaderboard section
const EventLeaderboardUpdate = "leaderboard-update"

// Broadcaster pushes settled leaderboard states to SSE clients
type Broadcaster struct {
	hub    *Hub
	logger *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hub *Hub, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hub:    hub,
		logger: logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// Attach subscribes to view and returns the matching unsubscribe
func (b *Broadcaster) Attach(view *leaderboard.View) (detach func()) {
	return view.Subscribe(b.BroadcastLeaderboard)
}

// BroadcastLeaderboard sends state to every client once it has settled.
// Loading transitions are skipped so open pages keep their last table.
func (b *Broadcaster) BroadcastLeaderboard(state leaderboard.ViewState) {
	if state.Status != leaderboard.StatusReady && state.Status != leaderboard.StatusFailed {
		return
	}

	html, err := RenderLeaderboard(context.Background(), state)
	if err != nil {
		b.logger.Error("sse failed to render leaderboard",
			slog.Uint64("generation", state.Generation),
			slog.Any("error", err))
		return
	}
	b.hub.BroadcastEvent(EventLeaderboardUpdate, html)
}

// RenderLeaderboard renders the OOB-swappable leaderboard section
func RenderLeaderboard(ctx context.Context, state leaderboard.ViewState) (string, error) {
	var buf bytes.Buffer
	if err := components.Leaderboard(state, true).Render(ctx, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// LeaderboardEvent is the wire form of a leaderboard-update event
func LeaderboardEvent(ctx context.Context, state leaderboard.ViewState) ([]byte, error) {
	html, err := RenderLeaderboard(ctx, state)
	if err != nil {
		return nil, err
	}
	return formatSSEMessage(EventLeaderboardUpdate, html), nil
}
