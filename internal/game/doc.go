// Package game implements multiplayer blackjack rooms.
//
// A Room seats up to Config.MaxPlayers players and runs one round at a time
// through the phases WaitingForPlayers, PlayerTurn, DealerTurn and GameEnd.
// Players act strictly in seating order; once every seat has stood, busted
// or doubled, the dealer draws to 17 and bets are settled.
//
// # Basic Usage
//
//	reg := game.NewRegistry(game.WithLogger(logger))
//	reg.Bus().Subscribe(game.SubscriberFunc(func(e game.Event) {
//	    // deliver to e.Recipients()
//	}))
//	room, _ := reg.Join("table-1", "p1", "Alice")
//	_ = room.StartNewRound()
//	_ = room.HandlePlayerAction("p1", game.Stand)
//
// # Events
//
// Every accepted mutation bumps the room's snapshot version and publishes a
// RoomStateEvent followed by the events the mutation produced. Rejected
// operations return an error and publish nothing. Events for a single room
// are delivered in the order the mutations were applied.
//
// # Deterministic Testing
//
// Card order is controlled with WithDrawSource; deck.NewStacked scripts an
// exact deal and deck.NewRandom with a seeded generator reproduces a
// session. WithClock accepts a quartz mock for driving turn timeouts.
package game
