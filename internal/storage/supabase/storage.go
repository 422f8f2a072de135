package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/mcoot/chessclub/internal/model"
	"github.com/mcoot/chessclub/internal/storage"
)

const restPath = "/rest/v1/"

// Storage talks to the players table through the PostgREST API
type Storage struct {
	baseURL    string
	apiKey     string
	schema     string
	httpClient *http.Client
}

// New creates a PostgREST-backed store
func New(cfg Config) (*Storage, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if _, err := url.ParseRequestURI(cfg.URL); err != nil {
		return nil, fmt.Errorf("invalid supabase URL: %w", err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		// No client timeout: each call lives exactly as long as its context
		httpClient = &http.Client{}
	}

	return &Storage{
		baseURL:    strings.TrimSuffix(cfg.URL, "/"),
		apiKey:     cfg.APIKey,
		schema:     cfg.Schema,
		httpClient: httpClient,
	}, nil
}

// Ensure Storage implements the interface
var _ storage.Store = (*Storage)(nil)

func (s *Storage) ListPlayers(ctx context.Context) ([]model.Player, error) {
	query := url.Values{}
	query.Set("select", strings.Join(model.ListColumns, ","))
	query.Set("order", "elo.desc")

	var players []model.Player
	if err := s.do(ctx, http.MethodGet, model.PlayersTable, query, nil, &players); err != nil {
		return nil, err
	}
	if players == nil {
		players = []model.Player{}
	}
	return players, nil
}

func (s *Storage) InsertPlayer(ctx context.Context, row model.PlayerCreate) (*model.Player, error) {
	var created []model.Player
	// Insert takes an array of rows
	if err := s.do(ctx, http.MethodPost, model.PlayersTable, nil, []model.PlayerCreate{row}, &created); err != nil {
		return nil, err
	}
	if len(created) == 0 {
		return nil, fmt.Errorf("insert returned no rows")
	}
	return &created[0], nil
}

func (s *Storage) do(ctx context.Context, method, table string, query url.Values, body, result any) error {
	endpoint := s.baseURL + restPath + table
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Prefer", "return=representation")
	}
	if s.schema != "" {
		if method == http.MethodGet {
			req.Header.Set("Accept-Profile", s.schema)
		} else {
			req.Header.Set("Content-Profile", s.schema)
		}
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrStoreUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &storage.APIError{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(respBody, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(respBody))
		}
		return apiErr
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}
