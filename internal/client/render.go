package client

import (
	"fmt"
	"strings"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
)

// Renderer draws room snapshots as plain text blocks
type Renderer struct {
	styles Styles
}

// NewRenderer creates a renderer with the given styles
func NewRenderer(styles Styles) *Renderer {
	return &Renderer{styles: styles}
}

// RenderCard renders a single card colored by suit
func (r *Renderer) RenderCard(c deck.Card) string {
	if c.IsRed() {
		return r.styles.RedCard.Render(c.String())
	}
	return r.styles.BlackCard.Render(c.String())
}

func (r *Renderer) renderCards(cards []deck.Card, hideFrom int) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		if hideFrom >= 0 && i >= hideFrom {
			parts[i] = "??"
			continue
		}
		parts[i] = r.RenderCard(c)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func scoreText(h game.HandView) string {
	switch {
	case len(h.Cards) == 0:
		return ""
	case h.Blackjack:
		return "blackjack"
	case h.Busted:
		return fmt.Sprintf("%d bust", h.Score)
	case h.Soft:
		return fmt.Sprintf("soft %d", h.Score)
	default:
		return fmt.Sprintf("%d", h.Score)
	}
}

// RenderSnapshot renders the table from selfID's point of view. The dealer's
// hole card stays hidden while players are acting.
func (r *Renderer) RenderSnapshot(snap game.Snapshot, selfID string) string {
	var sb strings.Builder

	gs := snap.GameState
	phase := game.WaitingForPlayers
	if gs != nil {
		phase = gs.Phase
	}
	sb.WriteString(r.styles.Header.Render(fmt.Sprintf(" Room %s · %s ", snap.RoomID, phase)))
	sb.WriteString("\n")

	if gs != nil {
		dealer := gs.DealerHand
		hideFrom, score := -1, scoreText(dealer)
		if phase == game.PlayerTurn {
			hideFrom, score = 1, "?"
		}
		fmt.Fprintf(&sb, "  %s %s (%s)\n",
			r.styles.Dealer.Render(fmt.Sprintf("%-10s", "Dealer")),
			r.renderCards(dealer.Cards, hideFrom), score)
	}

	for _, p := range snap.Players {
		marker := " "
		if gs != nil && gs.CurrentPlayerID == p.ID {
			marker = r.styles.Turn.Render(">")
		}

		name := p.Name
		style := r.styles.Player
		if p.ID == selfID {
			name += " (you)"
			style = r.styles.Self
		}

		hand := "[]"
		if len(p.Hand.Cards) > 0 {
			hand = fmt.Sprintf("%s (%s)", r.renderCards(p.Hand.Cards, -1), scoreText(p.Hand))
		}
		fmt.Fprintf(&sb, "%s %s %s  bet $%d  balance $%d\n",
			marker, style.Render(fmt.Sprintf("%-10s", name)), hand, p.Bet, p.Balance)
	}

	if gs != nil && phase == game.PlayerTurn && gs.CurrentPlayerID == selfID {
		sb.WriteString(r.styles.Turn.Render("Your turn: hit, stand or double"))
		sb.WriteString("\n")
	}
	return sb.String()
}

// RenderRooms renders a room listing
func (r *Renderer) RenderRooms(rooms []game.Summary) string {
	if len(rooms) == 0 {
		return r.styles.Info.Render("No rooms open") + "\n"
	}
	var sb strings.Builder
	for _, room := range rooms {
		fmt.Fprintf(&sb, "  %-16s %d/%d players  %s\n", room.ID, room.PlayerCount, room.MaxPlayers, room.Phase)
	}
	return sb.String()
}
