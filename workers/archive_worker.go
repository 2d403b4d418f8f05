package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"sweeps-wager-system/models"
	"sweeps-wager-system/utils"

	"gorm.io/gorm"
)

// SessionArchiver exports ended-session snapshots to the R2 archive bucket so
// compliance can audit play history after rows rotate out of the hot store.
type SessionArchiver struct {
	DB *gorm.DB
}

func NewSessionArchiver(db *gorm.DB) *SessionArchiver {
	return &SessionArchiver{DB: db}
}

// archiveBatch uploads every ended, unarchived session and marks it archived.
func (a *SessionArchiver) archiveBatch(ctx context.Context) (int, error) {
	var sessions []models.GameSession
	err := a.DB.
		Where("status = ? AND archived = ?", models.SessionEnded, false).
		Limit(100).
		Find(&sessions).Error
	if err != nil {
		return 0, fmt.Errorf("failed to load sessions for archive: %w", err)
	}

	archived := 0
	for _, session := range sessions {
		payload, err := json.Marshal(session)
		if err != nil {
			log.Printf("[Archive] Failed to encode session %s: %v", session.ID, err)
			continue
		}

		key := fmt.Sprintf("sessions/%s/%s.json", session.StartedAt.Format("2006/01"), session.ID)
		if err := utils.UploadJSONToR2(ctx, key, payload); err != nil {
			// Leave unarchived; the next cycle retries.
			log.Printf("[Archive] Upload failed for session %s: %v", session.ID, err)
			continue
		}

		if err := a.DB.Model(&models.GameSession{}).
			Where("id = ?", session.ID).
			Update("archived", true).Error; err != nil {
			log.Printf("[Archive] Failed to mark session %s archived: %v", session.ID, err)
			continue
		}
		archived++
	}
	return archived, nil
}

// PollSessions runs the archiver until the context is cancelled.
func PollSessions(ctx context.Context, archiver *SessionArchiver, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[Archive] Session archiver stopping")
			return
		case <-ticker.C:
			archived, err := archiver.archiveBatch(ctx)
			if err != nil {
				log.Printf("[Archive] Cycle failed: %v", err)
				continue
			}
			if archived > 0 {
				log.Printf("[Archive] Exported %d session snapshots", archived)
			}
		}
	}
}
