package leaderboard

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/mcoot/chessclub/internal/model"
)

// Fields are the raw text inputs of the add-player form
type Fields struct {
	Name  string
	Email string
	Elo   string
}

// IsEmpty reports whether all inputs are blank
func (f Fields) IsEmpty() bool {
	return f.Name == "" && f.Email == "" && f.Elo == ""
}

// ParseElo reads a leading integer the way browsers parse number inputs:
// leading space and an optional sign are allowed, trailing junk is ignored.
// It reports false when no digits lead the text.
func ParseElo(text string) (int, bool) {
	s := strings.TrimLeftFunc(text, unicode.IsSpace)

	sign := ""
	if s != "" && (s[0] == '+' || s[0] == '-') {
		sign, s = s[:1], s[1:]
	}

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}

	n, err := strconv.Atoi(sign + s[:end])
	if err != nil {
		// Out of range
		return 0, false
	}
	return n, true
}

// BuildPlayerCreate turns form inputs into the creation row.
// Callers validate the name first.
func BuildPlayerCreate(fields Fields) model.PlayerCreate {
	row := model.NewPlayerCreate(strings.TrimSpace(fields.Name))

	if email := strings.TrimSpace(fields.Email); email != "" {
		row.Email = &email
	}

	if fields.Elo != "" {
		if elo, ok := ParseElo(fields.Elo); ok {
			row.Elo = elo
		}
	}

	return row
}
