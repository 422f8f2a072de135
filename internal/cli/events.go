package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/spf13/cobra"
)

const eventLeaderboardUpdate = "leaderboard-update"

func newWatchCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream leaderboard updates",
		Long: `Connect to the server's event stream and print the leaderboard
every time it changes.

Press Ctrl+C to disconnect.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			return streamEvents(ctx, cfg.ServerURL, out, count)
		},
	}

	cmd.Flags().IntVar(&count, "count", 0, "Exit after this many leaderboard updates (0 streams forever)")

	return cmd
}

// LeaderboardSnapshot is one leaderboard update decoded from the stream
type LeaderboardSnapshot struct {
	Time   time.Time   `json:"time"`
	Status string      `json:"status"`
	Error  string      `json:"error,omitempty"`
	Rows   []RankedRow `json:"players"`
}

func streamEvents(ctx context.Context, serverURL string, out *Output, count int) error {
	// SSE lives on the web router, not under /api
	url := strings.TrimSuffix(serverURL, "/") + "/events"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	// No timeout for SSE
	resp, err := (&http.Client{}).Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	seen := 0
	err = readEvents(resp.Body, func(event, data string) bool {
		if event != eventLeaderboardUpdate {
			return true
		}
		snap, err := parseLeaderboard(data)
		if err != nil {
			out.PrintError(err)
			return true
		}
		snap.Time = time.Now()
		out.Print(snap)
		seen++
		return count <= 0 || seen < count
	})
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("stream error: %w", err)
	}
	return nil
}

// readEvents calls fn for every complete event until fn returns false or the stream ends
func readEvents(r io.Reader, fn func(event, data string) bool) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	var currentEvent string
	var dataLines []string

	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case strings.HasPrefix(line, "event: "):
			currentEvent = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			dataLines = append(dataLines, strings.TrimPrefix(line, "data: "))
		case line == "":
			if currentEvent != "" {
				if !fn(currentEvent, strings.Join(dataLines, "\n")) {
					return nil
				}
			}
			currentEvent = ""
			dataLines = nil
		}
	}
	return scanner.Err()
}

// parseLeaderboard reads the rendered leaderboard section back into rows
func parseLeaderboard(fragment string) (*LeaderboardSnapshot, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil, fmt.Errorf("failed to parse leaderboard: %w", err)
	}

	section := doc.Find("section#leaderboard")
	if section.Length() == 0 {
		return nil, fmt.Errorf("leaderboard section missing from event")
	}

	snap := &LeaderboardSnapshot{Status: section.AttrOr("data-status", "")}
	if errText := section.Find("p.error"); errText.Length() > 0 {
		snap.Error = strings.TrimSpace(errText.Text())
		return snap, nil
	}

	section.Find("tbody tr").Not(".placeholder").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td").Map(func(_ int, td *goquery.Selection) string {
			return strings.TrimSpace(td.Text())
		})
		if len(cells) != 7 {
			return
		}
		snap.Rows = append(snap.Rows, RankedRow{
			ID:          tr.AttrOr("data-player-id", ""),
			Rank:        atoi(cells[0]),
			Name:        cells[1],
			Elo:         cells[2],
			GamesPlayed: atoi(cells[3]),
			Wins:        atoi(cells[4]),
			Losses:      atoi(cells[5]),
			Draws:       atoi(cells[6]),
		})
	})
	return snap, nil
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func (o *Output) printSnapshot(s *LeaderboardSnapshot) {
	timestamp := s.Time.Format("2006-01-02 15:04:05")
	if s.Error != "" {
		_, _ = fmt.Fprintf(o.w, "[%s] %s\n", timestamp, s.Error)
		return
	}
	_, _ = fmt.Fprintf(o.w, "[%s] %d players\n", timestamp, len(s.Rows))
	if len(s.Rows) > 0 {
		o.printRows(s.Rows)
	}
}
