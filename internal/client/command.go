package client

import (
	"fmt"
	"strconv"
	"strings"
)

// CommandKind identifies a line-mode command
type CommandKind string

const (
	CommandHit    CommandKind = "hit"
	CommandStand  CommandKind = "stand"
	CommandDouble CommandKind = "double"
	CommandBet    CommandKind = "bet"
	CommandStart  CommandKind = "start"
	CommandLeave  CommandKind = "leave"
	CommandJoin   CommandKind = "join"
	CommandRooms  CommandKind = "rooms"
	CommandTable  CommandKind = "table"
	CommandHelp   CommandKind = "help"
	CommandQuit   CommandKind = "quit"
)

// Command is a parsed line of user input
type Command struct {
	Kind   CommandKind
	Amount int
	Room   string
}

var commandAliases = map[string]CommandKind{
	"hit":    CommandHit,
	"h":      CommandHit,
	"stand":  CommandStand,
	"s":      CommandStand,
	"double": CommandDouble,
	"d":      CommandDouble,
	"bet":    CommandBet,
	"b":      CommandBet,
	"start":  CommandStart,
	"deal":   CommandStart,
	"leave":  CommandLeave,
	"join":   CommandJoin,
	"rooms":  CommandRooms,
	"ls":     CommandRooms,
	"table":  CommandTable,
	"t":      CommandTable,
	"help":   CommandHelp,
	"?":      CommandHelp,
	"quit":   CommandQuit,
	"q":      CommandQuit,
	"exit":   CommandQuit,
}

// HelpText lists the available commands
const HelpText = `Commands:
  hit (h)            draw a card
  stand (s)          end your turn
  double (d)         double your bet and draw one card
  bet (b) <amount>   stage a bet for the next round
  start (deal)       deal a new round
  table (t)          show the table
  join <room>        join another room
  leave              leave the room
  rooms (ls)         list open rooms
  quit (q)           leave and exit`

// ParseCommand parses a line of user input
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("empty command")
	}

	kind, ok := commandAliases[strings.ToLower(fields[0])]
	if !ok {
		return Command{}, fmt.Errorf("unknown command %q (try help)", fields[0])
	}
	cmd := Command{Kind: kind}

	switch kind {
	case CommandBet:
		if len(fields) != 2 {
			return Command{}, fmt.Errorf("usage: bet <amount>")
		}
		amount, err := strconv.Atoi(fields[1])
		if err != nil || amount < 0 {
			return Command{}, fmt.Errorf("invalid bet amount %q", fields[1])
		}
		cmd.Amount = amount

	case CommandJoin:
		if len(fields) != 2 {
			return Command{}, fmt.Errorf("usage: join <room>")
		}
		cmd.Room = fields[1]

	default:
		if len(fields) > 1 {
			return Command{}, fmt.Errorf("%s takes no arguments", kind)
		}
	}
	return cmd, nil
}
