package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/blackjack/internal/deck"
)

func TestEventFormatter_FormatPlayerAction(t *testing.T) {
	tests := []struct {
		name     string
		opts     FormattingOptions
		id       string
		action   Action
		expected string
	}{
		{"hit", FormattingOptions{}, "p1", Hit, "Alice: hits"},
		{"stand", FormattingOptions{}, "p1", Stand, "Alice: stands"},
		{"double", FormattingOptions{}, "p1", DoubleDown, "Alice: doubles down"},
		{"timeout hidden", FormattingOptions{}, "p1", TimeoutStand, "Alice: stands"},
		{"timeout shown", FormattingOptions{ShowTimeouts: true}, "p1", TimeoutStand, "Alice: times out and stands"},
		{"own perspective", FormattingOptions{Perspective: "p1"}, "p1", Hit, "You: hits"},
		{"other perspective", FormattingOptions{Perspective: "p2"}, "p1", Hit, "Alice: hits"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ef := NewEventFormatter(tt.opts)
			assert.Equal(t, tt.expected, ef.FormatPlayerAction(tt.id, "Alice", tt.action))
		})
	}
}

func TestEventFormatter_FormatResult(t *testing.T) {
	ef := NewEventFormatter(FormattingOptions{})

	tests := []struct {
		result   Result
		expected string
	}{
		{Result{PlayerID: "p1", Outcome: OutcomeBlackjack, Bet: 10, Payout: 25}, "Bob: blackjack! wins $15"},
		{Result{PlayerID: "p1", Outcome: OutcomeWin, Bet: 10, Payout: 20}, "Bob: wins $10"},
		{Result{PlayerID: "p1", Outcome: OutcomePush, Bet: 10, Payout: 10}, "Bob: pushes, $10 returned"},
		{Result{PlayerID: "p1", Outcome: OutcomeBust, Bet: 10}, "Bob: busts, loses $10"},
		{Result{PlayerID: "p1", Outcome: OutcomeLose, Bet: 10}, "Bob: loses $10"},
	}

	for _, tt := range tests {
		t.Run(string(tt.result.Outcome), func(t *testing.T) {
			assert.Equal(t, tt.expected, ef.FormatResult(tt.result, "Bob"))
		})
	}
}

func TestEventFormatter_FormatScore(t *testing.T) {
	ef := NewEventFormatter(FormattingOptions{})

	assert.Equal(t, "(blackjack)", ef.FormatScore(handOf("AhKd").View()))
	assert.Equal(t, "(soft 17)", ef.FormatScore(handOf("Ah6d").View()))
	assert.Equal(t, "(22, bust)", ef.FormatScore(handOf("KhQd2c").View()))
	assert.Equal(t, "(19)", ef.FormatScore(handOf("Th9d").View()))
}

func TestEventFormatter_FormatRoundEnd(t *testing.T) {
	ef := NewEventFormatter(FormattingOptions{Perspective: "p2"})
	state := GameStateView{
		DealerHand: HandView{Cards: deck.MustParseCards("Th7c"), Score: 17},
		Players: []PlayerView{
			{ID: "p1", Name: "Alice"},
			{ID: "p2", Name: "Bob"},
		},
		Phase: GameEnd,
		Results: []Result{
			{PlayerID: "p1", Outcome: OutcomeLose, Bet: 10},
			{PlayerID: "p2", Outcome: OutcomeWin, Bet: 10, Payout: 20},
		},
	}

	expected := "*** ROUND OVER *** Dealer [T♥ 7♣] (17)\n" +
		"Alice: loses $10\n" +
		"You: wins $10"
	assert.Equal(t, expected, ef.FormatRoundEnd(state))
}

func TestEventFormatter_FormatRoundStart(t *testing.T) {
	ef := NewEventFormatter(FormattingOptions{})
	state := GameStateView{
		DealerHand: HandView{Cards: deck.MustParseCards("AsTd")},
		Players:    []PlayerView{{ID: "p1"}, {ID: "p2"}},
	}

	assert.Equal(t, "*** NEW ROUND *** 2 player(s), dealer shows [A♠]", ef.FormatRoundStart(state))
}
