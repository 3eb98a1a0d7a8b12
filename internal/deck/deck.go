package deck

import (
	rand "math/rand/v2"

	"github.com/lox/blackjack/internal/randutil"
)

// DrawSource produces the next card for a hand. Implementations are not safe
// for concurrent use; each room owns its own source and only draws under its
// lock.
type DrawSource interface {
	Draw() Card
}

// DrawFunc adapts a plain function to DrawSource
type DrawFunc func() Card

// Draw calls f()
func (f DrawFunc) Draw() Card { return f() }

// Random draws uniformly from the 52 unique cards with replacement. No shoe
// is modeled: every draw is independent of the previous ones.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a with-replacement draw source. A nil rng is seeded from
// the current time.
func NewRandom(rng *rand.Rand) *Random {
	if rng == nil {
		rng = randutil.Now()
	}
	return &Random{rng: rng}
}

// Draw returns a uniformly random card
func (r *Random) Draw() Card {
	n := r.rng.IntN(len(Suits) * len(Ranks))
	return Card{Suit: Suits[n/len(Ranks)], Rank: Ranks[n%len(Ranks)]}
}

// DefaultReshuffleAt is the remaining-card count below which a shoe is rebuilt
const DefaultReshuffleAt = 20

// Deck is a finite shoe of one or more 52-card decks that reshuffles itself
// when it runs low.
type Deck struct {
	cards       []Card
	decks       int
	reshuffleAt int
	rng         *rand.Rand
}

// NewDeck creates a shuffled shoe made of the given number of decks
func NewDeck(decks int, rng *rand.Rand) *Deck {
	if decks < 1 {
		decks = 1
	}
	if rng == nil {
		rng = randutil.Now()
	}
	d := &Deck{
		cards:       make([]Card, 0, 52*decks),
		decks:       decks,
		reshuffleAt: DefaultReshuffleAt,
		rng:         rng,
	}
	d.Reset()
	return d
}

// Shuffle randomizes the order of cards in the deck
func (d *Deck) Shuffle() {
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Deal removes and returns the top card from the deck
func (d *Deck) Deal() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}

	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, true
}

// Draw deals the top card, rebuilding the shoe first if fewer than the
// reshuffle threshold remain.
func (d *Deck) Draw() Card {
	if len(d.cards) < d.reshuffleAt {
		d.Reset()
	}
	card, _ := d.Deal()
	return card
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return len(d.cards)
}

// Reset restores the shoe to full and shuffles it
func (d *Deck) Reset() {
	d.cards = d.cards[:0]
	for i := 0; i < d.decks; i++ {
		for _, suit := range Suits {
			for _, rank := range Ranks {
				d.cards = append(d.cards, NewCard(suit, rank))
			}
		}
	}
	d.Shuffle()
}

// Stacked deals a fixed sequence of cards and then falls back to another
// source. It lets tests script exact deals.
type Stacked struct {
	cards    []Card
	fallback DrawSource
}

// NewStacked returns a source that deals cards in order, then draws from
// fallback (or repeats Two of Clubs when fallback is nil).
func NewStacked(cards []Card, fallback DrawSource) *Stacked {
	return &Stacked{cards: append([]Card(nil), cards...), fallback: fallback}
}

// Push appends more cards to the scripted sequence
func (s *Stacked) Push(cards ...Card) {
	s.cards = append(s.cards, cards...)
}

// Remaining returns how many scripted cards are left
func (s *Stacked) Remaining() int {
	return len(s.cards)
}

// Draw returns the next scripted card
func (s *Stacked) Draw() Card {
	if len(s.cards) > 0 {
		c := s.cards[0]
		s.cards = s.cards[1:]
		return c
	}
	if s.fallback != nil {
		return s.fallback.Draw()
	}
	return Card{Suit: Clubs, Rank: Two}
}
