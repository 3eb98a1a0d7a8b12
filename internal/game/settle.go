package game

// settle pays out every seat against the dealer's final hand and returns the
// per-seat results in seating order.
//
// A bust always loses, even when the dealer also busts. A natural pays 3:2
// unless the dealer also has one, in which case the bet is returned. A dealer
// natural beats any other hand. Otherwise the higher total wins and equal
// totals push.
func settle(dealer Hand, seats []*Player) []Result {
	results := make([]Result, 0, len(seats))
	for _, p := range seats {
		bet := p.Bet
		var outcome Outcome
		var payout int

		switch {
		case p.Hand.IsBusted():
			outcome, payout = OutcomeBust, 0
		case p.Hand.IsBlackjack() && dealer.IsBlackjack():
			outcome, payout = OutcomePush, bet
		case p.Hand.IsBlackjack():
			outcome, payout = OutcomeBlackjack, bet+bet*3/2
		case dealer.IsBlackjack():
			outcome, payout = OutcomeLose, 0
		case dealer.IsBusted() || p.Hand.Score() > dealer.Score():
			outcome, payout = OutcomeWin, 2*bet
		case p.Hand.Score() == dealer.Score():
			outcome, payout = OutcomePush, bet
		default:
			outcome, payout = OutcomeLose, 0
		}

		p.Balance += payout
		p.staged = false
		results = append(results, Result{PlayerID: p.ID, Outcome: outcome, Bet: bet, Payout: payout})
	}
	return results
}
