package game

import "errors"

// syncTurnTimer arms the turn timer for whoever holds the turn, replacing
// any timer armed for an earlier turn. Called under the room lock.
func (r *Room) syncTurnTimer() {
	if r.config.TurnTimeout <= 0 {
		return
	}

	key := ""
	if rd := r.round; rd != nil && rd.phase == PlayerTurn {
		key = rd.id + "/" + rd.seats[rd.current].ID
	}
	if key == r.turnKey {
		return
	}

	r.stopTurnTimer()
	r.turnKey = key
	if key == "" {
		return
	}
	r.turnTimer = r.clock.AfterFunc(r.config.TurnTimeout, func() { r.expireTurn(key) }, "turn")
}

func (r *Room) stopTurnTimer() {
	if r.turnTimer != nil {
		r.turnTimer.Stop()
		r.turnTimer = nil
	}
	r.turnKey = ""
}

// expireTurn stands the player the timer was armed for, if they still hold
// the turn.
func (r *Room) expireTurn(key string) {
	err := r.apply(func() error {
		if key != r.turnKey {
			return errStaleTurn
		}
		// The timer has fired; let syncTurnTimer arm a fresh one.
		r.turnTimer = nil
		r.turnKey = ""

		rd := r.round
		cur := rd.seats[rd.current]
		r.logger.Info("Turn timed out", "player", cur.ID, "round", rd.id)
		r.emit(PlayerActionEvent{eventBase: r.base(r.members()), PlayerID: cur.ID, Action: TimeoutStand})

		cur.IsActive = false
		r.nextPlayer()
		return nil
	})
	if err != nil && !errors.Is(err, errStaleTurn) && !errors.Is(err, ErrRoomClosed) {
		r.logger.Warn("Turn timer failed", "error", err)
	}
}
