package game

import "github.com/lox/blackjack/internal/deck"

// Hand is the ordered set of cards dealt to a player or the dealer
type Hand struct {
	Cards []deck.Card
}

// Add appends a card drawn by the room
func (h *Hand) Add(c deck.Card) {
	h.Cards = append(h.Cards, c)
}

// Reset clears the hand for a new round
func (h *Hand) Reset() {
	h.Cards = nil
}

// Len returns the number of cards held
func (h Hand) Len() int { return len(h.Cards) }

// Score returns the blackjack total
func (h Hand) Score() int { return deck.Score(h.Cards) }

// IsBusted reports a total over 21
func (h Hand) IsBusted() bool { return deck.IsBusted(h.Cards) }

// IsBlackjack reports a two-card 21
func (h Hand) IsBlackjack() bool { return deck.IsBlackjack(h.Cards) }

// View returns the externally visible form of the hand
func (h Hand) View() HandView {
	cards := make([]deck.Card, len(h.Cards))
	copy(cards, h.Cards)
	return HandView{
		Cards:     cards,
		Score:     deck.Score(h.Cards),
		Busted:    deck.IsBusted(h.Cards),
		Blackjack: deck.IsBlackjack(h.Cards),
		Soft:      deck.IsSoft(h.Cards),
	}
}
