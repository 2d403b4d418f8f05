package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"sweeps-wager-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionService tracks one active wagering session per (user, category) and
// persists a snapshot on every mutation.
type SessionService struct {
	DB *gorm.DB
}

func NewSessionService(db *gorm.DB) *SessionService {
	return &SessionService{DB: db}
}

// LoadSessions reads the persisted snapshot at startup. Rows that no longer
// parse as valid sessions are skipped and logged, never fatal.
func (s *SessionService) LoadSessions() ([]models.GameSession, error) {
	var rows []models.GameSession
	if err := s.DB.Order("started_at ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load session snapshot: %w", err)
	}

	sessions := rows[:0]
	skipped := 0
	for _, row := range rows {
		if !row.Valid() {
			skipped++
			log.Printf("[Sessions] Skipping corrupt session row %q (status=%q category=%q)", row.ID, row.Status, row.Category)
			continue
		}
		sessions = append(sessions, row)
	}
	if skipped > 0 {
		log.Printf("[Sessions] Loaded %d sessions, skipped %d corrupt rows", len(sessions), skipped)
	}
	return sessions, nil
}

// StartSession opens a fresh active session for (user, category). Any prior
// active session for the pair is explicitly ended with reason "superseded"
// rather than left dangling.
func (s *SessionService) StartSession(userID string, category models.GameCategory, currency models.Currency) (*models.GameSession, error) {
	now := time.Now()

	err := s.DB.Model(&models.GameSession{}).
		Where("user_id = ? AND category = ? AND status = ?", userID, category, models.SessionActive).
		Updates(map[string]any{
			"status":     models.SessionEnded,
			"end_reason": "superseded",
			"ended_at":   now,
		}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to supersede prior session: %w", err)
	}

	session := &models.GameSession{
		ID:        uuid.NewString(),
		UserID:    userID,
		Category:  category,
		Currency:  currency,
		Status:    models.SessionActive,
		StartedAt: now,
	}
	if err := s.DB.Create(session).Error; err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// GetActiveSession returns the most recent active session for the pair, or
// ErrNoActiveSession.
func (s *SessionService) GetActiveSession(userID string, category models.GameCategory) (*models.GameSession, error) {
	var session models.GameSession
	err := s.DB.
		Where("user_id = ? AND category = ? AND status = ?", userID, category, models.SessionActive).
		Order("started_at DESC").
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoActiveSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up active session: %w", err)
	}
	return &session, nil
}

// GetSession fetches any session by id.
func (s *SessionService) GetSession(sessionID string) (*models.GameSession, error) {
	var session models.GameSession
	err := s.DB.First(&session, "id = ?", sessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up session: %w", err)
	}
	return &session, nil
}

// PauseSession parks an active session. Unused by current storefront callers
// but part of the lifecycle.
func (s *SessionService) PauseSession(sessionID string) (*models.GameSession, error) {
	session, err := s.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status == models.SessionEnded {
		return nil, ErrSessionEnded
	}
	session.Status = models.SessionPaused
	if err := s.DB.Save(session).Error; err != nil {
		return nil, fmt.Errorf("failed to pause session: %w", err)
	}
	return session, nil
}

// EndSession closes a session. Ended is terminal; no further mutation is
// permitted through RecordBet/RecordWin.
func (s *SessionService) EndSession(sessionID, reason string) (*models.GameSession, error) {
	session, err := s.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status == models.SessionEnded {
		return nil, ErrSessionEnded
	}
	now := time.Now()
	session.Status = models.SessionEnded
	session.EndReason = reason
	session.EndedAt = &now
	if err := s.DB.Save(session).Error; err != nil {
		return nil, fmt.Errorf("failed to end session: %w", err)
	}
	return session, nil
}

// RecordBet applies the speculative debit: wagered and bet count go up, net
// result goes down before the outcome is known.
func (s *SessionService) RecordBet(sessionID string, amount float64) error {
	return s.record(sessionID, func(session *models.GameSession) {
		session.TotalWagered += amount
		session.NetResult -= amount
		session.BetCount++
	})
}

// RecordWin credits a settled win back into the aggregates.
func (s *SessionService) RecordWin(sessionID string, amount float64) error {
	return s.record(sessionID, func(session *models.GameSession) {
		session.TotalWon += amount
		session.NetResult += amount
	})
}

func (s *SessionService) record(sessionID string, mutate func(*models.GameSession)) error {
	session, err := s.GetSession(sessionID)
	if err != nil {
		return err
	}
	if session.Status == models.SessionEnded {
		return ErrSessionEnded
	}
	mutate(session)
	if err := s.DB.Save(session).Error; err != nil {
		return fmt.Errorf("failed to persist session aggregates: %w", err)
	}
	return nil
}

// EndIdleSessions closes every active session whose last mutation is older
// than ttl. Called by the scheduler.
func (s *SessionService) EndIdleSessions(ttl time.Duration) (int, error) {
	cutoff := time.Now().Add(-ttl)
	res := s.DB.Model(&models.GameSession{}).
		Where("status = ? AND updated_at < ?", models.SessionActive, cutoff).
		Updates(map[string]any{
			"status":     models.SessionEnded,
			"end_reason": "idle",
			"ended_at":   time.Now(),
		})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to end idle sessions: %w", res.Error)
	}
	return int(res.RowsAffected), nil
}
