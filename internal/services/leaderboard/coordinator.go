package leaderboard

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/mcoot/chessclub/internal/storage"
)

// Coordinator owns the shared view and hands out forms wired to refresh it
type Coordinator struct {
	store     storage.Store
	view      *View
	logger    *slog.Logger
	refreshes atomic.Int64
}

// NewCoordinator ties forms created through it to view
func NewCoordinator(store storage.Store, view *View, logger *slog.Logger) *Coordinator {
	return &Coordinator{
		store:  store,
		view:   view,
		logger: logger.With(slog.String("component", "leaderboard")),
	}
}

// View returns the shared player list
func (c *Coordinator) View() *View {
	return c.view
}

// NewForm creates a form whose successful submits refresh the view
func (c *Coordinator) NewForm() *Form {
	return NewForm(c.store, c.logger, c.playerAdded)
}

// RefreshCount is the number of refreshes triggered by added players
func (c *Coordinator) RefreshCount() int64 {
	return c.refreshes.Load()
}

func (c *Coordinator) playerAdded(ctx context.Context) {
	c.refreshes.Add(1)
	err := c.view.Refresh(ctx)
	if err != nil && !errors.Is(err, ErrDeactivated) {
		// The view already surfaces the failure; nothing to retry
		c.logger.Warn("refresh after player added failed", slog.String("error", err.Error()))
	}
}
