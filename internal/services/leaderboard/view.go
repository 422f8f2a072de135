package leaderboard

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/mcoot/chessclub/internal/dependencies/clock"
	"github.com/mcoot/chessclub/internal/model"
	"github.com/mcoot/chessclub/internal/storage"
)

// Status is the lifecycle of the player list: idle -> loading -> ready | failed
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusFailed  Status = "failed"
)

// MissingElo is shown in place of an elo the store did not return
const MissingElo = "N/A"

// ViewState is an immutable snapshot of the player list
type ViewState struct {
	Status  Status
	Players []model.Player
	// Error is the user-facing message when Status is failed
	Error string
	// Generation is the refresh that produced this state
	Generation uint64
	UpdatedAt  time.Time
}

// RankedRow is one rendered leaderboard line
type RankedRow struct {
	ID          model.PlayerID `json:"id"`
	Rank        int            `json:"rank"`
	Name        string         `json:"name"`
	Elo         string         `json:"elo"`
	GamesPlayed int            `json:"games_played"`
	Wins        int            `json:"wins"`
	Losses      int            `json:"losses"`
	Draws       int            `json:"draws"`
}

// Rows ranks players by their position in the store's order.
// A missing elo shows as N/A while missing counts show as 0.
func (s ViewState) Rows() []RankedRow {
	rows := make([]RankedRow, len(s.Players))
	for i, p := range s.Players {
		elo := MissingElo
		if p.Elo != nil {
			elo = strconv.Itoa(*p.Elo)
		}
		rows[i] = RankedRow{
			ID:          p.ID,
			Rank:        i + 1,
			Name:        p.Name,
			Elo:         elo,
			GamesPlayed: countOrZero(p.GamesPlayed),
			Wins:        countOrZero(p.Wins),
			Losses:      countOrZero(p.Losses),
			Draws:       countOrZero(p.Draws),
		}
	}
	return rows
}

func countOrZero(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}

// View holds the leaderboard list and refreshes it from the store.
//
// Every refresh takes a new generation; a result is applied only if no
// newer refresh was started in the meantime, so overlapping refreshes
// settle on the most recently initiated one. After Deactivate, late
// results are dropped.
type View struct {
	store  storage.Store
	clock  clock.Clock
	logger *slog.Logger

	mu          sync.Mutex
	state       ViewState
	latest      uint64
	deactivated bool
	subscribers map[int]func(ViewState)
	nextSubID   int

	// notifyMu keeps subscriber callbacks in transition order
	notifyMu sync.Mutex
}

// NewView creates an idle view over the store
func NewView(store storage.Store, clk clock.Clock, logger *slog.Logger) *View {
	return &View{
		store:       store,
		clock:       clk,
		logger:      logger.With(slog.String("component", "leaderboard-view")),
		state:       ViewState{Status: StatusIdle},
		subscribers: make(map[int]func(ViewState)),
	}
}

// State returns the current snapshot
func (v *View) State() ViewState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Subscribe registers fn to receive every applied state transition.
// Callbacks run synchronously and must not call Refresh.
func (v *View) Subscribe(fn func(ViewState)) (unsubscribe func()) {
	v.mu.Lock()
	id := v.nextSubID
	v.nextSubID++
	v.subscribers[id] = fn
	v.mu.Unlock()

	return func() {
		v.mu.Lock()
		delete(v.subscribers, id)
		v.mu.Unlock()
	}
}

// Activate (re)mounts the view and performs the initial refresh
func (v *View) Activate(ctx context.Context) error {
	v.mu.Lock()
	v.deactivated = false
	v.mu.Unlock()
	return v.Refresh(ctx)
}

// Deactivate tears the view down; in-flight refreshes settle as no-ops
func (v *View) Deactivate() {
	v.mu.Lock()
	v.deactivated = true
	v.mu.Unlock()
	v.logger.Debug("leaderboard view deactivated")
}

// Refresh queries the store once and applies the outcome.
// The store call is not cancelled when ctx is; there is no retry.
func (v *View) Refresh(ctx context.Context) error {
	gen, err := v.begin()
	if err != nil {
		return err
	}

	players, err := v.store.ListPlayers(context.WithoutCancel(ctx))
	if err != nil {
		storeErr := &StoreError{Op: OpListPlayers, Err: err}
		v.logger.Error("failed to load players",
			slog.Uint64("generation", gen),
			slog.String("error", err.Error()))
		v.settle(gen, ViewState{
			Status: StatusFailed,
			Error:  fmt.Sprintf("Failed to load players: %s. Check RLS policies.", err.Error()),
		})
		return storeErr
	}

	if players == nil {
		players = []model.Player{}
	}
	v.settle(gen, ViewState{
		Status:  StatusReady,
		Players: players,
	})
	return nil
}

// begin starts a new generation and enters loading
func (v *View) begin() (uint64, error) {
	v.notifyMu.Lock()
	defer v.notifyMu.Unlock()

	v.mu.Lock()
	if v.deactivated {
		v.mu.Unlock()
		return 0, ErrDeactivated
	}
	v.latest++
	gen := v.latest
	v.state = ViewState{
		Status:     StatusLoading,
		Players:    v.state.Players,
		Generation: gen,
		UpdatedAt:  v.clock.Now(),
	}
	state, subs := v.state, v.subscriberList()
	v.mu.Unlock()

	notify(subs, state)
	return gen, nil
}

// settle applies next if gen is still the latest refresh
func (v *View) settle(gen uint64, next ViewState) {
	v.notifyMu.Lock()
	defer v.notifyMu.Unlock()

	v.mu.Lock()
	if v.deactivated {
		v.mu.Unlock()
		v.logger.Debug("dropping refresh result after deactivation", slog.Uint64("generation", gen))
		return
	}
	if gen != v.latest {
		latest := v.latest
		v.mu.Unlock()
		v.logger.Debug("dropping stale refresh result",
			slog.Uint64("generation", gen),
			slog.Uint64("latest", latest))
		return
	}
	next.Generation = gen
	next.UpdatedAt = v.clock.Now()
	v.state = next
	subs := v.subscriberList()
	v.mu.Unlock()

	notify(subs, next)
}

// subscriberList must be called with mu held
func (v *View) subscriberList() []func(ViewState) {
	subs := make([]func(ViewState), 0, len(v.subscribers))
	for id := 0; id < v.nextSubID; id++ {
		if fn, ok := v.subscribers[id]; ok {
			subs = append(subs, fn)
		}
	}
	return subs
}

func notify(subs []func(ViewState), state ViewState) {
	for _, fn := range subs {
		fn(state)
	}
}
