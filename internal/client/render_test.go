package client

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
)

func plainRenderer() *Renderer {
	return NewRenderer(NewStyles(&bytes.Buffer{}, ColorNever))
}

func handOf(s string) game.HandView {
	h := game.Hand{Cards: deck.MustParseCards(s)}
	return h.View()
}

func tableSnapshot(phase game.Phase) game.Snapshot {
	players := []game.PlayerView{
		{ID: "p1", Name: "Alice", Hand: handOf("Th7c"), Bet: 10, Balance: 990},
		{ID: "p2", Name: "Bob", Hand: handOf("AsKd"), Bet: 20, Balance: 980},
	}
	return game.Snapshot{
		RoomID:  "lobby",
		Version: 4,
		Players: players,
		GameState: &game.GameStateView{
			RoundID:         "round-1",
			DealerHand:      handOf("9s6h"),
			Players:         players,
			CurrentPlayerID: "p1",
			Phase:           phase,
		},
		IsActive: phase == game.PlayerTurn,
	}
}

func TestRenderSnapshotDuringPlayerTurn(t *testing.T) {
	out := plainRenderer().RenderSnapshot(tableSnapshot(game.PlayerTurn), "p1")

	assert.Contains(t, out, "Room lobby")
	assert.Contains(t, out, "PlayerTurn")
	assert.Contains(t, out, "[9♠ ??] (?)")
	assert.NotContains(t, out, "6♥")
	assert.Contains(t, out, "Alice (you)")
	assert.Contains(t, out, "[T♥ 7♣] (17)")
	assert.Contains(t, out, "[A♠ K♦] (blackjack)")
	assert.Contains(t, out, "bet $20  balance $980")
	assert.Contains(t, out, "Your turn")
}

func TestRenderSnapshotAfterRound(t *testing.T) {
	snap := tableSnapshot(game.GameEnd)
	snap.GameState.CurrentPlayerID = ""

	out := plainRenderer().RenderSnapshot(snap, "p2")

	assert.Contains(t, out, "[9♠ 6♥] (15)")
	assert.Contains(t, out, "Bob (you)")
	assert.NotContains(t, out, "Your turn")
	assert.NotContains(t, out, ">")
}

func TestRenderSnapshotWithoutRound(t *testing.T) {
	snap := game.Snapshot{
		RoomID:  "empty-table",
		Players: []game.PlayerView{{ID: "p1", Name: "Alice", Balance: 1000}},
	}

	out := plainRenderer().RenderSnapshot(snap, "p1")

	assert.Contains(t, out, "WaitingForPlayers")
	assert.NotContains(t, out, "Dealer")
	assert.Contains(t, out, "[]  bet $0  balance $1000")
}

func TestScoreText(t *testing.T) {
	tests := []struct {
		cards string
		want  string
	}{
		{"", ""},
		{"AhKs", "blackjack"},
		{"Ah6c", "soft 17"},
		{"KhQs5d", "25 bust"},
		{"Th9c", "19"},
	}

	for _, tt := range tests {
		t.Run(tt.cards, func(t *testing.T) {
			assert.Equal(t, tt.want, scoreText(handOf(tt.cards)))
		})
	}
}

func TestRenderRooms(t *testing.T) {
	r := plainRenderer()

	assert.Equal(t, "No rooms open\n", r.RenderRooms(nil))

	out := r.RenderRooms([]game.Summary{
		{ID: "lobby", PlayerCount: 2, MaxPlayers: 6, Phase: "PlayerTurn", IsActive: true},
		{ID: "quiet", PlayerCount: 1, MaxPlayers: 6, Phase: "WaitingForPlayers"},
	})
	assert.Contains(t, out, "lobby")
	assert.Contains(t, out, "2/6 players")
	assert.Contains(t, out, "WaitingForPlayers")
}
