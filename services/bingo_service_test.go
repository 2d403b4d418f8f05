package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"sweeps-wager-system/engine"
	"sweeps-wager-system/models"
)

func newBingoEnv(t *testing.T) (*testEnv, *BingoService) {
	t.Helper()
	env := newTestEnv(t, engine.NewRand(42))
	return env, NewBingoService(env.bets, engine.NewRand(42))
}

func TestCreateRoomValidation(t *testing.T) {
	_, bingo := newBingoEnv(t)

	if _, err := bingo.CreateRoom("bad", "bingo-1", engine.Bingo75, "Lucky Clover", 5, 10, 0, true); err == nil {
		t.Fatal("expected error for unknown pattern")
	}
	if _, err := bingo.CreateRoom("bad", "bingo-1", engine.BingoType("30-ball"), "", 5, 10, 0, true); err == nil {
		t.Fatal("expected error for unknown card type")
	}

	room, err := bingo.CreateRoom("hall", "bingo-1", engine.Bingo75, "Four Corners", 5, 10, 0, true)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	assertEqual(t, RoomWaiting, room.State, "room waits for players")
	assertEqual(t, 3*time.Second, room.CallInterval, "default call interval")
	assertEqual(t, 3, room.Snapshot().CallIntervalSeconds, "snapshot exposes the interval in seconds")
}

func TestJoinRoomRequiresSession(t *testing.T) {
	env, bingo := newBingoEnv(t)
	env.wallet.Fund("u1", models.CurrencyGC, 100)

	room, err := bingo.CreateRoom("hall", "bingo-1", engine.Bingo75, "", 5, 10, time.Hour, true)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, _, err = bingo.JoinRoom(context.Background(), room.ID, "u1", models.CurrencyGC)
	if !errors.Is(err, ErrNoActiveSession) {
		t.Fatalf("expected ErrNoActiveSession, got %v", err)
	}
	assertEqual(t, 100.0, env.balance(t, "u1", models.CurrencyGC), "no debit without session")
}

func TestJoinRoomBuysOneCard(t *testing.T) {
	env, bingo := newBingoEnv(t)
	env.startSession(t, "u1", models.CategoryBingo, models.CurrencyGC, 100)

	room, err := bingo.CreateRoom("hall", "bingo-1", engine.Bingo90, "", 5, 10, time.Hour, true)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	card, bet, err := bingo.JoinRoom(context.Background(), room.ID, "u1", models.CurrencyGC)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	assertEqual(t, engine.Bingo90, card.Type, "card matches room type")
	assertEqual(t, models.BetProcessing, bet.Status, "card purchase awaits settlement")
	assertEqual(t, 95.0, env.balance(t, "u1", models.CurrencyGC), "card price debited")

	// One card per user per room.
	if _, _, err := bingo.JoinRoom(context.Background(), room.ID, "u1", models.CurrencyGC); err == nil {
		t.Fatal("expected error on second card")
	}
}

func TestBingoRoundSettlesEveryCard(t *testing.T) {
	env, bingo := newBingoEnv(t)
	s1 := env.startSession(t, "u1", models.CategoryBingo, models.CurrencyGC, 100)
	env.startSession(t, "u2", models.CategoryBingo, models.CurrencyGC, 100)

	room, err := bingo.CreateRoom("hall", "bingo-1", engine.Bingo75, "", 5, 10, time.Hour, true)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	_, bet1, err := bingo.JoinRoom(context.Background(), room.ID, "u1", models.CurrencyGC)
	if err != nil {
		t.Fatalf("join u1: %v", err)
	}
	if _, _, err := bingo.JoinRoom(context.Background(), room.ID, "u2", models.CurrencyGC); err != nil {
		t.Fatalf("join u2: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := bingo.Start(ctx, room.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	assertEqual(t, RoomRunning, room.State, "room running")

	// Drive the caller directly; a completed line must land before the
	// 75-number pool runs out.
	for calls := 0; calls <= 75; calls++ {
		done, err := bingo.CallNext(ctx, room.ID)
		if err != nil {
			t.Fatalf("call %d: %v", calls, err)
		}
		if done {
			break
		}
	}
	assertEqual(t, RoomFinished, room.State, "room finished")

	// A finished room no longer accepts daubs.
	if err := bingo.MarkNumber(room.ID, "u1", room.LastCall); err == nil {
		t.Fatal("expected error for daub after the room finished")
	}

	// Every seated bet is settled, winners collected a prize.
	var bets []models.GameBet
	env.db.Find(&bets)
	assertEqual(t, 2, len(bets), "two card purchases")
	winners := 0
	for _, bet := range bets {
		assertEqual(t, models.BetCompleted, bet.Status, "card settled")
		var result models.GameResult
		if err := env.db.First(&result, "bet_id = ?", bet.ID).Error; err != nil {
			t.Fatalf("missing result for bet %s: %v", bet.ID, err)
		}
		if result.Outcome == models.OutcomeWin {
			winners++
			if result.WinAmount <= 0 {
				t.Fatal("winning card with no prize")
			}
		} else {
			assertEqual(t, 0.0, result.WinAmount, "losing card pays nothing")
		}
	}
	if winners == 0 {
		t.Fatal("round finished without a winner")
	}

	var result models.GameResult
	env.db.First(&result, "bet_id = ?", bet1.ID)
	sess, _ := env.sessions.GetSession(s1.ID)
	assertEqual(t, 5.0, sess.TotalWagered, "card price on session")
	assertEqual(t, result.WinAmount, sess.TotalWon, "session credited the prize")
}

func TestMarkNumberIsManualDaub(t *testing.T) {
	env, bingo := newBingoEnv(t)
	env.startSession(t, "u1", models.CategoryBingo, models.CurrencyGC, 100)

	room, err := bingo.CreateRoom("hall", "bingo-1", engine.Bingo75, "", 5, 10, time.Hour, false)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	card, _, err := bingo.JoinRoom(context.Background(), room.ID, "u1", models.CurrencyGC)
	if err != nil {
		t.Fatalf("join: %v", err)
	}

	if err := bingo.MarkNumber(room.ID, "u1", 1); err == nil {
		t.Fatal("expected error before the room starts")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := bingo.Start(ctx, room.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := bingo.CallNext(ctx, room.ID); err != nil {
		t.Fatalf("call: %v", err)
	}

	if err := bingo.MarkNumber(room.ID, "u2", room.LastCall); err == nil {
		t.Fatal("expected error for user without a card")
	}

	if err := bingo.MarkNumber(room.ID, "u1", room.LastCall); err != nil {
		t.Fatalf("mark called number: %v", err)
	}
	if card.Has(room.LastCall) && !card.Marked[room.LastCall] {
		t.Fatal("manual daub did not mark the card")
	}

	uncalled := room.LastCall%75 + 1
	if err := bingo.MarkNumber(room.ID, "u1", uncalled); err == nil {
		t.Fatal("expected error for uncalled number")
	}
}

func TestRoomSnapshotIsSafeDuringCalls(t *testing.T) {
	env, bingo := newBingoEnv(t)
	env.startSession(t, "u1", models.CategoryBingo, models.CurrencyGC, 100)

	room, err := bingo.CreateRoom("hall", "bingo-1", engine.Bingo75, "", 5, 10, time.Hour, true)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, _, err := bingo.JoinRoom(context.Background(), room.ID, "u1", models.CurrencyGC); err != nil {
		t.Fatalf("join: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := bingo.Start(ctx, room.ID); err != nil {
		t.Fatalf("start: %v", err)
	}

	// Marshal snapshots while the caller mutates the room from another
	// goroutine; the race detector must stay quiet.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			finished, err := bingo.CallNext(ctx, room.ID)
			if err != nil || finished {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			view := room.Snapshot()
			assertEqual(t, RoomFinished, view.State, "room finished")
			assertEqual(t, 1, view.Players, "one seated card")
			return
		default:
			if _, err := json.Marshal(room.Snapshot()); err != nil {
				t.Fatalf("marshal snapshot: %v", err)
			}
		}
	}
}

func TestStartRequiresSeatedCards(t *testing.T) {
	_, bingo := newBingoEnv(t)
	room, err := bingo.CreateRoom("hall", "bingo-1", engine.Bingo75, "", 5, 10, time.Hour, true)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := bingo.Start(context.Background(), room.ID); err == nil {
		t.Fatal("expected error for empty room")
	}
	if err := bingo.Start(context.Background(), "no-such-room"); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}
}
