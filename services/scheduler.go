package services

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartEngineScheduler runs the two background jobs the engine needs:
// closing idle sessions and re-driving queued settlement credits.
func StartEngineScheduler(sessions *SessionService, bets *BetService, sessionTTL time.Duration) {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	// Every minute: end sessions idle past the TTL.
	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			ended, err := sessions.EndIdleSessions(sessionTTL)
			if err != nil {
				log.Printf("[Scheduler] Idle-session sweep failed: %v", err)
				return
			}
			if ended > 0 {
				log.Printf("[Scheduler] Ended %d idle sessions", ended)
			}
		}),
	)

	// Every 30 seconds: retry settlements whose wallet credit failed.
	_, _ = sched.NewJob(
		gocron.DurationJob(30*time.Second),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
			defer cancel()
			settled, err := bets.RetryQueuedSettlements(ctx)
			if err != nil {
				log.Printf("[Scheduler] Settlement retry sweep failed: %v", err)
				return
			}
			if settled > 0 {
				log.Printf("✅ Recovered %d queued settlements", settled)
			}
		}),
	)
}
