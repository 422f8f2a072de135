package leaderboard

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/mcoot/chessclub/internal/model"
	"github.com/mcoot/chessclub/internal/storage"
)

// MessageKind distinguishes success from failure feedback
type MessageKind string

const (
	MessageSuccess MessageKind = "success"
	MessageError   MessageKind = "error"
)

// Message is the feedback line shown under the form
type Message struct {
	Kind MessageKind
	Text string
}

// FormState is a snapshot of the add-player form
type FormState struct {
	Fields     Fields
	Submitting bool
	Message    *Message
}

// Form collects a new player's details and submits them to the store
type Form struct {
	store         storage.Store
	logger        *slog.Logger
	onPlayerAdded func(ctx context.Context)

	mu         sync.Mutex
	fields     Fields
	submitting bool
	message    *Message
}

// NewForm creates an empty form. onPlayerAdded may be nil.
func NewForm(store storage.Store, logger *slog.Logger, onPlayerAdded func(ctx context.Context)) *Form {
	return &Form{
		store:         store,
		logger:        logger.With(slog.String("component", "add-player-form")),
		onPlayerAdded: onPlayerAdded,
	}
}

// SetFields replaces the inputs; inputs are disabled while submitting
func (f *Form) SetFields(fields Fields) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitting {
		return ErrSubmitInProgress
	}
	f.fields = fields
	return nil
}

// State returns the current snapshot
func (f *Form) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	var msg *Message
	if f.message != nil {
		m := *f.message
		msg = &m
	}
	return FormState{
		Fields:     f.fields,
		Submitting: f.submitting,
		Message:    msg,
	}
}

// Submit validates the inputs and creates the player.
// On success the fields are cleared and onPlayerAdded runs exactly once;
// on failure the fields are kept. The submitting flag is always released.
func (f *Form) Submit(ctx context.Context) (*model.Player, error) {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return nil, ErrSubmitInProgress
	}
	f.message = nil

	if strings.TrimSpace(f.fields.Name) == "" {
		f.message = &Message{Kind: MessageError, Text: "Player name is required."}
		f.mu.Unlock()
		return nil, ErrNameRequired
	}

	row := BuildPlayerCreate(f.fields)
	f.submitting = true
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.submitting = false
		f.mu.Unlock()
	}()

	created, err := f.store.InsertPlayer(context.WithoutCancel(ctx), row)
	if err != nil {
		f.logger.Error("failed to add player",
			slog.String("name", row.Name),
			slog.String("error", err.Error()))
		f.mu.Lock()
		f.message = &Message{Kind: MessageError, Text: "Failed to add player: " + err.Error()}
		f.mu.Unlock()
		return nil, &StoreError{Op: OpInsertPlayer, Err: err}
	}

	f.mu.Lock()
	f.fields = Fields{}
	f.message = &Message{Kind: MessageSuccess, Text: `Player "` + row.Name + `" added successfully!`}
	f.mu.Unlock()

	f.logger.Info("player added",
		slog.String("player_id", string(created.ID)),
		slog.String("name", row.Name))

	if f.onPlayerAdded != nil {
		f.onPlayerAdded(ctx)
	}

	return created, nil
}
