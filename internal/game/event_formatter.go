package game

import (
	"fmt"
	"strings"

	"github.com/lox/blackjack/internal/deck"
)

// FormattingOptions controls how events are rendered as text
type FormattingOptions struct {
	ShowTimeouts bool   // Say "times out" instead of "stands" for timeout stands
	Perspective  string // Player id rendered as "You"
}

// EventFormatter renders room activity as one-line transcript entries
type EventFormatter struct {
	opts FormattingOptions
}

// NewEventFormatter creates a new event formatter with the given options
func NewEventFormatter(opts FormattingOptions) *EventFormatter {
	return &EventFormatter{opts: opts}
}

func (ef *EventFormatter) who(id, name string) string {
	if ef.opts.Perspective != "" && id == ef.opts.Perspective {
		return "You"
	}
	if name == "" {
		return id
	}
	return name
}

// FormatPlayerAction formats an accepted action
func (ef *EventFormatter) FormatPlayerAction(playerID, name string, action Action) string {
	who := ef.who(playerID, name)
	switch action {
	case Hit:
		return fmt.Sprintf("%s: hits", who)
	case Stand:
		return fmt.Sprintf("%s: stands", who)
	case DoubleDown:
		return fmt.Sprintf("%s: doubles down", who)
	case TimeoutStand:
		if ef.opts.ShowTimeouts {
			return fmt.Sprintf("%s: times out and stands", who)
		}
		return fmt.Sprintf("%s: stands", who)
	default:
		return fmt.Sprintf("%s: %s", who, action)
	}
}

// FormatPlayerJoined formats a join notice
func (ef *EventFormatter) FormatPlayerJoined(p PlayerView) string {
	return fmt.Sprintf("%s joined with $%d", ef.who(p.ID, p.Name), p.Balance)
}

// FormatPlayerLeft formats a leave notice
func (ef *EventFormatter) FormatPlayerLeft(playerID, name string) string {
	return fmt.Sprintf("%s left the table", ef.who(playerID, name))
}

// FormatRoundStart formats the deal, showing the dealer's up card only
func (ef *EventFormatter) FormatRoundStart(state GameStateView) string {
	up := "?"
	if len(state.DealerHand.Cards) > 0 {
		up = state.DealerHand.Cards[0].String()
	}
	return fmt.Sprintf("*** NEW ROUND *** %d player(s), dealer shows [%s]", len(state.Players), up)
}

// FormatRoundEnd formats the dealer's final hand followed by one line per
// settled seat
func (ef *EventFormatter) FormatRoundEnd(state GameStateView) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "*** ROUND OVER *** Dealer [%s] %s", ef.formatCards(state.DealerHand.Cards), ef.FormatScore(state.DealerHand))

	names := make(map[string]string, len(state.Players))
	for _, p := range state.Players {
		names[p.ID] = p.Name
	}
	for _, r := range state.Results {
		fmt.Fprintf(&sb, "\n%s", ef.FormatResult(r, names[r.PlayerID]))
	}
	return sb.String()
}

// FormatResult formats a single seat's settlement
func (ef *EventFormatter) FormatResult(r Result, name string) string {
	who := ef.who(r.PlayerID, name)
	switch r.Outcome {
	case OutcomeBlackjack:
		return fmt.Sprintf("%s: blackjack! wins $%d", who, r.Payout-r.Bet)
	case OutcomeWin:
		return fmt.Sprintf("%s: wins $%d", who, r.Payout-r.Bet)
	case OutcomePush:
		return fmt.Sprintf("%s: pushes, $%d returned", who, r.Payout)
	case OutcomeBust:
		return fmt.Sprintf("%s: busts, loses $%d", who, r.Bet)
	default:
		return fmt.Sprintf("%s: loses $%d", who, r.Bet)
	}
}

// FormatScore formats a hand total with its soft, bust and blackjack flags
func (ef *EventFormatter) FormatScore(h HandView) string {
	switch {
	case h.Blackjack:
		return "(blackjack)"
	case h.Busted:
		return fmt.Sprintf("(%d, bust)", h.Score)
	case h.Soft:
		return fmt.Sprintf("(soft %d)", h.Score)
	default:
		return fmt.Sprintf("(%d)", h.Score)
	}
}

func (ef *EventFormatter) formatCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
