package deck

// BlackjackTotal is the best possible hand total
const BlackjackTotal = 21

// Score returns the blackjack total for a set of cards. Every ace starts at 1
// and is promoted to 11, ace by ace, while the total stays at or below 21.
func Score(cards []Card) int {
	score, _ := scoreWithSoft(cards)
	return score
}

// IsSoft reports whether at least one ace is counted as 11 in the total.
func IsSoft(cards []Card) bool {
	_, soft := scoreWithSoft(cards)
	return soft
}

// IsBusted reports whether the total exceeds 21 regardless of aces.
func IsBusted(cards []Card) bool {
	return Score(cards) > BlackjackTotal
}

// IsBlackjack reports a two-card 21.
func IsBlackjack(cards []Card) bool {
	return len(cards) == 2 && Score(cards) == BlackjackTotal
}

func scoreWithSoft(cards []Card) (int, bool) {
	score := 0
	aces := 0
	for _, c := range cards {
		if c.IsAce() {
			aces++
		}
		score += c.Rank.Value()
	}

	soft := false
	for i := 0; i < aces; i++ {
		if score+10 <= BlackjackTotal {
			score += 10
			soft = true
		}
	}
	return score, soft
}
