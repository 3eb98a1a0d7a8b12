package game

// Player is a seat at a room. Players are owned by their room and only
// mutated under its lock.
type Player struct {
	ID       string
	Name     string
	Hand     Hand
	Bet      int
	Balance  int
	IsActive bool

	// staged is true while Bet has been taken from Balance and not yet
	// settled.
	staged bool
}

func newPlayer(id, name string, balance int) *Player {
	return &Player{
		ID:       id,
		Name:     name,
		Balance:  balance,
		IsActive: true,
	}
}

// View returns a copy of the player suitable for snapshots
func (p *Player) View() PlayerView {
	return PlayerView{
		ID:       p.ID,
		Name:     p.Name,
		Hand:     p.Hand.View(),
		Bet:      p.Bet,
		Balance:  p.Balance,
		IsActive: p.IsActive,
	}
}

// stage moves amount from balance to the bet, refunding any bet already
// staged for the coming round.
func (p *Player) stage(amount int) error {
	if amount < 0 {
		return ErrInvalidBet
	}
	available := p.Balance
	if p.staged {
		available += p.Bet
	}
	if available < amount {
		return ErrInsufficientFunds
	}
	p.Balance = available - amount
	p.Bet = amount
	p.staged = true
	return nil
}
