package services

import "errors"

// Engine error taxonomy. Handlers map these onto HTTP statuses; everything
// else surfaces as a 500.
var (
	ErrUnsupportedCurrency = errors.New("currency not accepted for this game category")
	ErrBetOutOfRange       = errors.New("bet amount outside category limits")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrWalletTimeout       = errors.New("wallet call timed out")
	ErrNoActiveSession     = errors.New("no active session for user and category")
	ErrSessionNotFound     = errors.New("session not found")
	ErrSessionEnded        = errors.New("session already ended")
	ErrUnknownGame         = errors.New("unknown game")
	ErrMalformedOutcome    = errors.New("generator produced a malformed outcome")
	ErrSettlementFailure   = errors.New("settlement failed after outcome was generated")
	ErrRoomNotFound        = errors.New("bingo room not found")
)

// BoundError wraps ErrBetOutOfRange with the violated bound so the caller can
// display it.
type BoundError struct {
	Violated string  // "minimum" | "maximum"
	Bound    float64 // the violated limit
	Amount   float64 // the offending bet amount
}

func (e *BoundError) Error() string {
	return ErrBetOutOfRange.Error()
}

func (e *BoundError) Unwrap() error { return ErrBetOutOfRange }
