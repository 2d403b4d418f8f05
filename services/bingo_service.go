package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"sweeps-wager-system/engine"
	"sweeps-wager-system/models"

	"github.com/google/uuid"
)

type RoomState string

const (
	RoomWaiting  RoomState = "waiting"
	RoomRunning  RoomState = "running"
	RoomFinished RoomState = "finished"
)

// bingoPlayer is one seated card and the bet that bought it.
type bingoPlayer struct {
	card *engine.BingoCard
	bet  *models.GameBet
	won  bool
}

// BingoRoom runs one call sequence over a set of seated cards. The runner
// goroutine mutates it under mu; never marshal a room directly, hand out
// a Snapshot instead.
type BingoRoom struct {
	ID       string
	Name     string
	GameID   string // catalog entry the card purchases bet on
	CardType engine.BingoType

	// Pattern is the room's curated pattern; empty means structural lines pay.
	Pattern      string
	CardPrice    float64
	LinePrize    float64
	AutoMark     bool
	CallInterval time.Duration

	State      RoomState
	LastCall   int
	CallCount  int
	RecentCall []int

	caller  *engine.BingoCaller
	players map[string]*bingoPlayer
	mu      sync.Mutex
}

// RoomView is an immutable copy of a room's public state, safe to marshal
// while the caller goroutine keeps running.
type RoomView struct {
	ID                  string           `json:"id"`
	Name                string           `json:"name"`
	GameID              string           `json:"game_id"`
	CardType            engine.BingoType `json:"card_type"`
	Pattern             string           `json:"pattern,omitempty"`
	CardPrice           float64          `json:"card_price"`
	LinePrize           float64          `json:"line_prize"`
	AutoMark            bool             `json:"auto_mark"`
	CallIntervalSeconds int              `json:"call_interval_seconds"`
	State               RoomState        `json:"state"`
	LastCall            int              `json:"last_call,omitempty"`
	CallCount           int              `json:"call_count"`
	RecentCalls         []int            `json:"recent_calls"`
	Players             int              `json:"players"`
}

// Snapshot copies the room's state under its lock.
func (r *BingoRoom) Snapshot() RoomView {
	r.mu.Lock()
	defer r.mu.Unlock()
	recent := make([]int, len(r.RecentCall))
	copy(recent, r.RecentCall)
	return RoomView{
		ID:                  r.ID,
		Name:                r.Name,
		GameID:              r.GameID,
		CardType:            r.CardType,
		Pattern:             r.Pattern,
		CardPrice:           r.CardPrice,
		LinePrize:           r.LinePrize,
		AutoMark:            r.AutoMark,
		CallIntervalSeconds: int(r.CallInterval / time.Second),
		State:               r.State,
		LastCall:            r.LastCall,
		CallCount:           r.CallCount,
		RecentCalls:         recent,
		Players:             len(r.players),
	}
}

// BingoService manages rooms, card purchases, and bingo settlement.
type BingoService struct {
	Bets *BetService
	Rng  engine.Rand

	mu    sync.Mutex
	rooms map[string]*BingoRoom
}

func NewBingoService(bets *BetService, rng engine.Rand) *BingoService {
	return &BingoService{Bets: bets, Rng: rng, rooms: make(map[string]*BingoRoom)}
}

// CreateRoom opens a waiting room. patternName may be empty for line play, or
// the name of a curated pattern.
func (s *BingoService) CreateRoom(name, gameID string, cardType engine.BingoType, patternName string, cardPrice, linePrize float64, callInterval time.Duration, autoMark bool) (*BingoRoom, error) {
	if patternName != "" && engine.PatternByName(patternName) == nil {
		return nil, fmt.Errorf("unknown bingo pattern %q", patternName)
	}
	if cardType != engine.Bingo75 && cardType != engine.Bingo90 {
		return nil, fmt.Errorf("unknown card type %q", cardType)
	}
	if callInterval <= 0 {
		callInterval = 3 * time.Second
	}

	room := &BingoRoom{
		ID:           uuid.NewString(),
		Name:         name,
		GameID:       gameID,
		CardType:     cardType,
		Pattern:      patternName,
		CardPrice:    cardPrice,
		LinePrize:    linePrize,
		AutoMark:     autoMark,
		CallInterval: callInterval,
		State:        RoomWaiting,
		players:      make(map[string]*bingoPlayer),
	}

	s.mu.Lock()
	s.rooms[room.ID] = room
	s.mu.Unlock()
	return room, nil
}

func (s *BingoService) Room(roomID string) (*BingoRoom, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[roomID]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

// RoomViews snapshots every room for listing.
func (s *BingoService) RoomViews() []RoomView {
	s.mu.Lock()
	rooms := make([]*BingoRoom, 0, len(s.rooms))
	for _, r := range s.rooms {
		rooms = append(rooms, r)
	}
	s.mu.Unlock()

	out := make([]RoomView, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, r.Snapshot())
	}
	return out
}

// JoinRoom buys one card: the purchase is a bingo bet through the ledger, so
// the usual session precondition and limit checks apply.
func (s *BingoService) JoinRoom(ctx context.Context, roomID, userID string, currency models.Currency) (*engine.BingoCard, *models.GameBet, error) {
	room, err := s.Room(roomID)
	if err != nil {
		return nil, nil, err
	}

	room.mu.Lock()
	defer room.mu.Unlock()
	if room.State != RoomWaiting {
		return nil, nil, fmt.Errorf("room %s is %s, not accepting cards", room.Name, room.State)
	}
	if _, seated := room.players[userID]; seated {
		return nil, nil, fmt.Errorf("user already holds a card in room %s", room.Name)
	}

	bet, err := s.Bets.PlaceBet(ctx, PlaceBetInput{
		UserID:   userID,
		GameID:   room.GameID,
		Amount:   room.CardPrice,
		Currency: currency,
	})
	if err != nil {
		return nil, nil, err
	}

	var card *engine.BingoCard
	if room.CardType == engine.Bingo90 {
		card = engine.GenerateCard90(s.Rng)
	} else {
		card = engine.GenerateCard75(s.Rng)
	}
	room.players[userID] = &bingoPlayer{card: card, bet: bet}
	return card, bet, nil
}

// Start moves the room to running and drives the caller on its interval
// until a winner lands or the pool runs out.
func (s *BingoService) Start(ctx context.Context, roomID string) error {
	room, err := s.Room(roomID)
	if err != nil {
		return err
	}

	room.mu.Lock()
	if room.State != RoomWaiting {
		room.mu.Unlock()
		return fmt.Errorf("room %s already %s", room.Name, room.State)
	}
	if len(room.players) == 0 {
		room.mu.Unlock()
		return fmt.Errorf("room %s has no seated cards", room.Name)
	}
	maxNumber := 75
	if room.CardType == engine.Bingo90 {
		maxNumber = 90
	}
	room.caller = engine.NewBingoCaller(s.Rng, maxNumber, 10)
	room.State = RoomRunning
	interval := room.CallInterval
	room.mu.Unlock()

	log.Printf("[Bingo] Room %s started with %d cards", room.Name, len(room.players))

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				done, err := s.CallNext(ctx, roomID)
				if err != nil {
					log.Printf("[Bingo] Room %s call failed: %v", room.Name, err)
					return
				}
				if done {
					return
				}
			}
		}
	}()
	return nil
}

// CallNext draws one number, auto-marks when enabled, and evaluates every
// card against the room's win condition. done is true once the room finished.
func (s *BingoService) CallNext(ctx context.Context, roomID string) (done bool, err error) {
	room, err := s.Room(roomID)
	if err != nil {
		return false, err
	}

	room.mu.Lock()
	if room.State != RoomRunning {
		room.mu.Unlock()
		return true, nil
	}

	n, ok := room.caller.Call()
	if !ok {
		room.mu.Unlock()
		return true, s.finish(ctx, room)
	}
	room.LastCall = n
	room.CallCount++
	room.RecentCall = room.caller.Recent()

	pattern := engine.PatternByName(room.Pattern)
	called := room.caller.Called()

	winners := false
	for _, p := range room.players {
		if room.AutoMark {
			p.card.Mark(n)
		}
		if p.card.LinePrize(pattern, called, room.LinePrize) > 0 {
			p.won = true
			winners = true
		}
	}
	room.mu.Unlock()

	if winners {
		return true, s.finish(ctx, room)
	}
	return false, nil
}

// MarkNumber is the manual daub path for rooms without auto-mark. The number
// must already have been called.
func (s *BingoService) MarkNumber(roomID, userID string, n int) error {
	room, err := s.Room(roomID)
	if err != nil {
		return err
	}

	room.mu.Lock()
	defer room.mu.Unlock()
	if room.State != RoomRunning {
		return fmt.Errorf("room %s is %s, not accepting daubs", room.Name, room.State)
	}
	p, ok := room.players[userID]
	if !ok {
		return fmt.Errorf("user holds no card in room %s", room.Name)
	}
	if room.caller == nil || !room.caller.Called()[n] {
		return fmt.Errorf("number %d has not been called", n)
	}
	p.card.Mark(n)
	return nil
}

// finish settles every seated bet: winners collect their prize, the rest
// settle as losses.
func (s *BingoService) finish(ctx context.Context, room *BingoRoom) error {
	room.mu.Lock()
	if room.State == RoomFinished {
		room.mu.Unlock()
		return nil
	}
	room.State = RoomFinished
	pattern := engine.PatternByName(room.Pattern)
	var called map[int]bool
	if room.caller != nil {
		called = room.caller.Called()
	}
	players := make(map[string]*bingoPlayer, len(room.players))
	for id, p := range room.players {
		players[id] = p
	}
	room.mu.Unlock()

	var firstErr error
	for userID, p := range players {
		outcome := Outcome{Result: models.OutcomeLose}
		if p.won {
			prize := p.card.LinePrize(pattern, called, room.LinePrize)
			outcome = Outcome{Result: models.OutcomeWin, WinAmount: prize}
		}
		outcome.Detail = map[string]any{
			"room":    room.Name,
			"card":    p.card,
			"pattern": room.Pattern,
			"calls":   room.CallCount,
		}
		if _, err := s.Bets.Settle(ctx, p.bet, outcome); err != nil {
			log.Printf("[Bingo] Failed to settle card for user %s in room %s: %v", userID, room.Name, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	log.Printf("[Bingo] Room %s finished after %d calls", room.Name, room.CallCount)
	return firstErr
}
