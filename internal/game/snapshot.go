package game

import "github.com/lox/blackjack/internal/deck"

// HandView is a hand as sent to clients. Score and the flags are derived
// here so clients never need their own scoring.
type HandView struct {
	Cards     []deck.Card `json:"cards"`
	Score     int         `json:"score"`
	Busted    bool        `json:"busted"`
	Blackjack bool        `json:"blackjack"`
	Soft      bool        `json:"soft"`
}

// PlayerView is a player as sent to clients
type PlayerView struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Hand     HandView `json:"hand"`
	Bet      int      `json:"bet"`
	Balance  int      `json:"balance"`
	IsActive bool     `json:"is_active"`
}

// GameStateView is the round state as sent to clients
type GameStateView struct {
	RoundID            string       `json:"roundId"`
	DealerHand         HandView     `json:"dealer_hand"`
	Players            []PlayerView `json:"players"`
	CurrentPlayerIndex int          `json:"current_player_index"`
	CurrentPlayerID    string       `json:"currentPlayerId,omitempty"`
	Phase              Phase        `json:"phase"`
	Results            []Result     `json:"results,omitempty"`
}

// Snapshot is the full externally visible room state. Clients replace their
// copy wholesale and may drop any snapshot older than the last Version seen.
type Snapshot struct {
	RoomID    string         `json:"roomId"`
	Version   uint64         `json:"version"`
	Players   []PlayerView   `json:"players"`
	GameState *GameStateView `json:"gameState"`
	IsActive  bool           `json:"isActive"`
}

// Player returns the view of the given player, if present
func (s Snapshot) Player(id string) (PlayerView, bool) {
	for _, p := range s.Players {
		if p.ID == id {
			return p, true
		}
	}
	return PlayerView{}, false
}

// Summary is the lightweight description used for room listings
type Summary struct {
	ID          string `json:"id"`
	PlayerCount int    `json:"playerCount"`
	MaxPlayers  int    `json:"maxPlayers"`
	Phase       string `json:"phase"`
	IsActive    bool   `json:"isActive"`
}
