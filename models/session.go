package models

import "time"

type SessionStatus string

const (
	SessionActive SessionStatus = "active"
	SessionPaused SessionStatus = "paused"
	SessionEnded  SessionStatus = "ended" // terminal
)

// GameSession is the aggregate record of one continuous play period for a user
// within one game category and currency. At most one session per
// (user, category) pair is active at a time.
type GameSession struct {
	ID       string        `gorm:"primaryKey" json:"id"`
	UserID   string        `gorm:"index:idx_session_user_cat" json:"user_id"`
	Category GameCategory  `gorm:"index:idx_session_user_cat;type:varchar(16)" json:"category"`
	Currency Currency      `gorm:"type:varchar(4)" json:"currency"`
	Status   SessionStatus `gorm:"type:varchar(8);default:'active'" json:"status"`

	TotalWagered float64 `json:"total_wagered"`
	TotalWon     float64 `json:"total_won"`
	NetResult    float64 `json:"net_result"` // TotalWon - TotalWagered
	BetCount     int     `json:"bet_count"`

	// EndReason distinguishes an explicit end from a session superseded by a
	// newer start for the same (user, category) pair.
	EndReason string `gorm:"size:32" json:"end_reason,omitempty"`

	// Archived marks the snapshot as exported to object storage.
	Archived bool `gorm:"default:false;index" json:"archived"`

	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Valid reports whether the stored row still parses as a usable snapshot.
// Rows that fail this check are skipped on startup, never fatal.
func (s *GameSession) Valid() bool {
	switch s.Status {
	case SessionActive, SessionPaused, SessionEnded:
	default:
		return false
	}
	return s.ID != "" && s.UserID != "" && s.Category.Valid() && s.Currency.Valid()
}
