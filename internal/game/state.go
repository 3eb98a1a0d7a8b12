package game

import "fmt"

// Phase is the stage of the current round
type Phase int

const (
	WaitingForPlayers Phase = iota
	PlayerTurn
	DealerTurn
	GameEnd
)

var phaseNames = [...]string{"WaitingForPlayers", "PlayerTurn", "DealerTurn", "GameEnd"}

// String returns the string representation of a phase
func (p Phase) String() string {
	if p < WaitingForPlayers || p > GameEnd {
		return "Unknown"
	}
	return phaseNames[p]
}

// MarshalText implements encoding.TextMarshaler
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (p *Phase) UnmarshalText(text []byte) error {
	for i, name := range phaseNames {
		if name == string(text) {
			*p = Phase(i)
			return nil
		}
	}
	return fmt.Errorf("invalid phase: %q", text)
}

// Action is a player decision during their turn
type Action string

const (
	Hit        Action = "hit"
	Stand      Action = "stand"
	DoubleDown Action = "double_down"

	// TimeoutStand is reported when the turn timer stands a player. Clients
	// cannot send it.
	TimeoutStand Action = "timeout_stand"
)

// ParseAction validates a client supplied action
func ParseAction(s string) (Action, error) {
	switch a := Action(s); a {
	case Hit, Stand, DoubleDown:
		return a, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
	}
}

// String returns the wire name of the action
func (a Action) String() string {
	return string(a)
}

// Outcome is how a seat's hand resolved against the dealer
type Outcome string

const (
	OutcomeWin       Outcome = "win"
	OutcomeBlackjack Outcome = "blackjack"
	OutcomePush      Outcome = "push"
	OutcomeLose      Outcome = "lose"
	OutcomeBust      Outcome = "bust"
)

// Result records the settlement of one seat at the end of a round
type Result struct {
	PlayerID string  `json:"playerId"`
	Outcome  Outcome `json:"outcome"`
	Bet      int     `json:"bet"`
	Payout   int     `json:"payout"`
}
