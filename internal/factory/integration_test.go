package factory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/chessclub/internal/model"
	"github.com/mcoot/chessclub/internal/services/leaderboard"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

func (s *IntegrationSuite) TearDownTest() {
	s.NoError(s.app.Close())
}

func (s *IntegrationSuite) addPlayer(name, elo string) {
	form := s.app.Coordinator.NewForm()
	s.Require().NoError(form.SetFields(leaderboard.Fields{Name: name, Elo: elo}))
	_, err := form.Submit(s.ctx)
	s.Require().NoError(err)
}

// Test: a club fills up from empty and the table follows every insert
func (s *IntegrationSuite) TestClubFlow() {
	s.Require().NoError(s.app.View.Activate(s.ctx))
	s.Equal(leaderboard.StatusReady, s.app.View.State().Status)
	s.Empty(s.app.View.State().Rows())

	s.addPlayer("Ann", "1300")
	s.addPlayer("Bo", "1500")
	s.addPlayer("Cy", "")

	rows := s.app.View.State().Rows()
	s.Require().Len(rows, 3)
	s.Equal([]string{"Bo", "Ann", "Cy"}, []string{rows[0].Name, rows[1].Name, rows[2].Name})
	s.Equal("1200", rows[2].Elo)
	s.Equal(int64(3), s.app.Coordinator.RefreshCount())
}

func (s *IntegrationSuite) TestSeededPlayersWithGaps() {
	s.app.SeedPlayers(
		model.Player{Name: "Dee", Elo: model.IntPtr(1700), GamesPlayed: model.IntPtr(10), Wins: model.IntPtr(6)},
		model.Player{Name: "Eve"},
	)

	s.Require().NoError(s.app.View.Activate(s.ctx))

	rows := s.app.View.State().Rows()
	s.Require().Len(rows, 2)
	s.Equal("Dee", rows[0].Name)
	s.Equal(10, rows[0].GamesPlayed)
	s.Equal(0, rows[0].Losses)
	s.Equal("Eve", rows[1].Name)
	s.Equal(leaderboard.MissingElo, rows[1].Elo)
}

func (s *IntegrationSuite) TestCloseDeactivatesView() {
	s.Require().NoError(s.app.View.Activate(s.ctx))
	s.Require().NoError(s.app.Close())

	s.ErrorIs(s.app.View.Refresh(s.ctx), leaderboard.ErrDeactivated)
	s.Equal(0, s.app.Hub.ClientCount())
}
