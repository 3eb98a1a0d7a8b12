package game

import (
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/samber/lo"

	"github.com/lox/blackjack/internal/deck"
)

// round is the state of one deal from the first card to settlement
type round struct {
	id      string
	dealer  Hand
	seats   []*Player // seating order at deal time, minus players who left
	current int
	phase   Phase
	results []Result
}

// Room is one blackjack table. Every exported method is safe for concurrent
// use; all mutations of a room are serialized by its lock and the resulting
// events are published after the lock is released, in mutation order.
type Room struct {
	id       string
	config   Config
	logger   *log.Logger
	clock    quartz.Clock
	draw     deck.DrawSource
	bus      EventBus
	roundIDs func() string

	mu      sync.Mutex
	pubMu   sync.Mutex
	players map[string]*Player
	order   []string
	round   *round
	active  bool
	closed  bool
	version uint64
	pending []Event

	turnTimer *quartz.Timer
	turnKey   string
}

// NewRoom creates an empty room
func NewRoom(id string, opts ...Option) *Room {
	return newRoom(id, resolveOptions(opts))
}

func newRoom(id string, o options) *Room {
	return &Room{
		id:       id,
		config:   o.config,
		logger:   o.logger.WithPrefix("room").With("room", id),
		clock:    o.clock,
		draw:     o.draws(id),
		bus:      o.bus,
		roundIDs: o.roundIDs,
		players:  make(map[string]*Player),
	}
}

// ID returns the room identifier
func (r *Room) ID() string { return r.id }

// MaxPlayers returns the seat limit
func (r *Room) MaxPlayers() int { return r.config.MaxPlayers }

// AddPlayer seats a new player at the end of the seating order. Players
// joining during a round are dealt in from the next round.
func (r *Room) AddPlayer(id, name string) error {
	return r.apply(func() error {
		if len(r.players) >= r.config.MaxPlayers {
			return ErrRoomFull
		}
		if _, ok := r.players[id]; ok {
			return ErrPlayerExists
		}

		p := newPlayer(id, name, r.config.StartingBalance)
		r.players[id] = p
		r.order = append(r.order, id)

		r.logger.Info("Player joined", "player", id, "name", name, "players", len(r.players))
		if others := lo.Without(r.order, id); len(others) > 0 {
			r.emit(PlayerJoinedEvent{eventBase: r.base(others), Player: p.View()})
		}
		return nil
	})
}

// RemovePlayer removes a player if present. A player leaving mid-round is
// treated as standing: the turn moves on if it was theirs and any staged bet
// is forfeited.
func (r *Room) RemovePlayer(id string) bool {
	err := r.apply(func() error {
		p, ok := r.players[id]
		if !ok {
			return ErrPlayerNotFound
		}

		delete(r.players, id)
		r.order = lo.Without(r.order, id)
		r.removeFromRound(p)

		r.logger.Info("Player left", "player", id, "players", len(r.players))
		r.emit(PlayerLeftEvent{eventBase: r.base(r.members()), PlayerID: id, Name: p.Name})
		return nil
	})
	return err == nil
}

func (r *Room) removeFromRound(p *Player) {
	rd := r.round
	if rd == nil {
		return
	}
	idx := slices.Index(rd.seats, p)
	if idx < 0 {
		return
	}
	rd.seats = slices.Delete(rd.seats, idx, idx+1)
	if rd.phase != PlayerTurn {
		return
	}

	if len(rd.seats) == 0 {
		r.logger.Info("Last seated player left, ending round", "round", rd.id)
		rd.phase = GameEnd
		rd.current = 0
		r.active = false
		r.emit(RoundEndedEvent{eventBase: r.base(r.members()), State: *r.gameStateView()})
		return
	}

	switch {
	case idx < rd.current:
		rd.current--
	case idx == rd.current:
		p.IsActive = false
		rd.current = idx - 1
		r.nextPlayer()
	}
}

// StartNewRound resets every hand and deals two cards to each player and
// the dealer. Players who have not staged a bet since the last round bet the
// default amount.
func (r *Room) StartNewRound() error {
	return r.apply(func() error {
		if len(r.players) == 0 {
			return ErrNoPlayers
		}
		if r.inProgress() {
			return ErrRoundInProgress
		}

		rd := &round{id: r.roundIDs(), phase: PlayerTurn}
		rd.seats = lo.Map(r.order, func(id string, _ int) *Player { return r.players[id] })

		for _, p := range rd.seats {
			p.Hand.Reset()
			p.IsActive = true
			if !p.staged {
				_ = p.stage(min(r.config.DefaultBet, p.Balance))
			}
		}

		for i := 0; i < 2; i++ {
			for _, p := range rd.seats {
				p.Hand.Add(r.draw.Draw())
			}
			rd.dealer.Add(r.draw.Draw())
		}

		r.round = rd
		r.active = true

		r.logger.Info("Round started", "round", rd.id, "players", len(rd.seats))
		r.emit(GameStartedEvent{eventBase: r.base(r.members()), State: *r.gameStateView()})
		return nil
	})
}

// HandlePlayerAction applies an action for the player whose turn it is.
// Double down on anything but a two-card hand is accepted as a no-op.
func (r *Room) HandlePlayerAction(playerID string, action Action) error {
	return r.apply(func() error {
		rd := r.round
		if rd == nil || rd.phase != PlayerTurn {
			return ErrWrongPhase
		}
		cur := rd.seats[rd.current]
		if cur.ID != playerID {
			return ErrNotYourTurn
		}

		switch action {
		case Hit, Stand, DoubleDown:
		default:
			return ErrUnknownAction
		}

		r.logger.Debug("Player action", "player", playerID, "action", action)
		r.emit(PlayerActionEvent{eventBase: r.base(r.members()), PlayerID: playerID, Action: action})

		switch action {
		case Hit:
			cur.Hand.Add(r.draw.Draw())
			if cur.Hand.IsBusted() {
				cur.IsActive = false
				r.nextPlayer()
			}

		case Stand:
			cur.IsActive = false
			r.nextPlayer()

		case DoubleDown:
			if cur.Hand.Len() != 2 {
				return nil
			}
			cur.Hand.Add(r.draw.Draw())
			extra := min(cur.Bet, cur.Balance)
			cur.Balance -= extra
			cur.Bet += extra
			cur.IsActive = false
			r.nextPlayer()
		}
		return nil
	})
}

// PlaceBet stages a bet for the next round. A bet staged earlier in the same
// betting window is refunded before the new amount is taken.
func (r *Room) PlaceBet(playerID string, amount int) error {
	return r.apply(func() error {
		if amount < 0 {
			return ErrInvalidBet
		}
		if r.inProgress() {
			return ErrRoundInProgress
		}
		p, ok := r.players[playerID]
		if !ok {
			return ErrPlayerNotFound
		}
		return p.stage(amount)
	})
}

// nextPlayer hands the turn to the next active seat, or to the dealer when
// none remain.
func (r *Room) nextPlayer() {
	rd := r.round
	for i := rd.current + 1; i < len(rd.seats); i++ {
		if rd.seats[i].IsActive {
			rd.current = i
			return
		}
	}

	rd.phase = DealerTurn
	r.dealerPlay()
}

// dealerPlay draws to 17 or more and settles the round
func (r *Room) dealerPlay() {
	rd := r.round
	for rd.dealer.Score() < DealerStandsOn {
		rd.dealer.Add(r.draw.Draw())
	}

	rd.phase = GameEnd
	r.active = false
	rd.results = settle(rd.dealer, rd.seats)

	r.logger.Info("Round ended", "round", rd.id, "dealer", rd.dealer.Score())
	r.emit(RoundEndedEvent{eventBase: r.base(r.members()), State: *r.gameStateView()})
}

func (r *Room) inProgress() bool {
	return r.round != nil && (r.round.phase == PlayerTurn || r.round.phase == DealerTurn)
}

// Close detaches the room. Every later operation fails with ErrRoomClosed.
func (r *Room) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	r.stopTurnTimer()
}

// PlayerCount returns the number of seated players
func (r *Room) PlayerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}

// HasPlayer reports whether the player is seated here
func (r *Room) HasPlayer(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.players[id]
	return ok
}

// Snapshot returns the current externally visible state
func (r *Room) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot()
}

// Summary returns the listing entry for the room
func (r *Room) Summary() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()
	phase := WaitingForPlayers
	if r.round != nil {
		phase = r.round.phase
	}
	return Summary{
		ID:          r.id,
		PlayerCount: len(r.players),
		MaxPlayers:  r.config.MaxPlayers,
		Phase:       phase.String(),
		IsActive:    r.active,
	}
}

// apply runs fn under the room lock. On success the version is bumped, the
// snapshot and any events fn emitted are published, and the turn timer is
// re-armed for whoever holds the turn.
func (r *Room) apply(fn func() error) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return ErrRoomClosed
	}
	if err := fn(); err != nil {
		r.pending = nil
		r.mu.Unlock()
		return err
	}

	r.syncTurnTimer()
	r.version++

	events := make([]Event, 0, len(r.pending)+1)
	if members := r.members(); len(members) > 0 {
		events = append(events, RoomStateEvent{eventBase: r.base(members), Snapshot: r.snapshot()})
	}
	events = append(events, r.pending...)
	r.pending = nil

	// Hand over to the publish lock before releasing the room so that
	// subscribers see events in mutation order without holding the room.
	r.pubMu.Lock()
	r.mu.Unlock()
	defer r.pubMu.Unlock()

	for _, e := range events {
		r.bus.Publish(e)
	}
	return nil
}

func (r *Room) emit(e Event) {
	r.pending = append(r.pending, e)
}

func (r *Room) base(recipients []string) eventBase {
	return eventBase{room: r.id, recipients: recipients, timestamp: r.clock.Now()}
}

func (r *Room) members() []string {
	return slices.Clone(r.order)
}

func (r *Room) snapshot() Snapshot {
	return Snapshot{
		RoomID:    r.id,
		Version:   r.version,
		Players:   lo.Map(r.order, func(id string, _ int) PlayerView { return r.players[id].View() }),
		GameState: r.gameStateView(),
		IsActive:  r.active,
	}
}

func (r *Room) gameStateView() *GameStateView {
	rd := r.round
	if rd == nil {
		return nil
	}
	view := &GameStateView{
		RoundID:            rd.id,
		DealerHand:         rd.dealer.View(),
		Players:            lo.Map(rd.seats, func(p *Player, _ int) PlayerView { return p.View() }),
		CurrentPlayerIndex: rd.current,
		Phase:              rd.phase,
		Results:            slices.Clone(rd.results),
	}
	if rd.phase == PlayerTurn {
		view.CurrentPlayerID = rd.seats[rd.current].ID
	}
	return view
}
