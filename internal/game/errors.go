package game

import "errors"

// Capacity errors
var (
	ErrRoomFull = errors.New("room is full")
)

// Precondition errors. These indicate a client that is out of sync with the
// room rather than a server fault; the room state is never modified.
var (
	ErrPlayerExists      = errors.New("player already in room")
	ErrPlayerNotFound    = errors.New("player not in room")
	ErrNoPlayers         = errors.New("no players in room")
	ErrRoundInProgress   = errors.New("round in progress")
	ErrWrongPhase        = errors.New("not accepting player actions")
	ErrNotYourTurn       = errors.New("not this player's turn")
	ErrUnknownAction     = errors.New("unknown action")
	ErrInvalidBet        = errors.New("bet must not be negative")
	ErrInsufficientFunds = errors.New("insufficient balance")
	ErrRoomClosed        = errors.New("room closed")
	ErrInvalidRoomID     = errors.New("room id required")
	ErrRoomNotFound      = errors.New("room not found")
)

// errStaleTurn is returned internally when a turn timer fires after the
// turn it was armed for has already ended.
var errStaleTurn = errors.New("stale turn timer")
