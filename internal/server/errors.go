package server

import (
	"errors"

	"github.com/gorilla/websocket"

	"github.com/lox/blackjack/internal/game"
)

// Error codes sent in error messages
const (
	CodeRoomFull           = "room_full"
	CodeNotYourTurn        = "not_your_turn"
	CodeWrongPhase         = "wrong_phase"
	CodeInsufficientFunds  = "insufficient_funds"
	CodeInvalidBet         = "invalid_bet"
	CodeNoPlayers          = "no_players"
	CodeRoundInProgress    = "round_in_progress"
	CodeNotInRoom          = "not_in_room"
	CodeUnknownAction      = "unknown_action"
	CodeInvalidMessage     = "invalid_message"
	CodeUnknownMessageType = "unknown_message_type"
	CodeAlreadyInRoom      = "already_in_room"
	CodeInvalidRoom        = "invalid_room"
	CodeInternal           = "internal_error"
)

var (
	ErrConnectionClosed = websocket.ErrCloseSent
)

var errorCodes = []struct {
	err  error
	code string
}{
	{game.ErrRoomFull, CodeRoomFull},
	{game.ErrNotYourTurn, CodeNotYourTurn},
	{game.ErrWrongPhase, CodeWrongPhase},
	{game.ErrInsufficientFunds, CodeInsufficientFunds},
	{game.ErrInvalidBet, CodeInvalidBet},
	{game.ErrNoPlayers, CodeNoPlayers},
	{game.ErrRoundInProgress, CodeRoundInProgress},
	{game.ErrPlayerNotFound, CodeNotInRoom},
	{game.ErrRoomNotFound, CodeNotInRoom},
	{game.ErrRoomClosed, CodeNotInRoom},
	{game.ErrUnknownAction, CodeUnknownAction},
	{game.ErrPlayerExists, CodeAlreadyInRoom},
	{game.ErrInvalidRoomID, CodeInvalidRoom},
}

// errorCode maps a room error to the code reported to the client
func errorCode(err error) string {
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return ec.code
		}
	}
	return CodeInternal
}
