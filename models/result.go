package models

import (
	"encoding/json"
	"time"
)

type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLose Outcome = "lose"
	OutcomePush Outcome = "push" // stake returned by the wallet service, no win amount here
)

// GameResult is the settled outcome of one bet. A win always carries a
// positive WinAmount; lose and push carry zero. Multiplier is WinAmount
// over the stake, stored for wins only.
type GameResult struct {
	ID         string  `gorm:"primaryKey" json:"id"`
	BetID      string  `gorm:"uniqueIndex" json:"bet_id"`
	Outcome    Outcome `gorm:"type:varchar(8)" json:"outcome"`
	WinAmount  float64 `json:"win_amount"`
	Multiplier float64 `json:"multiplier"`

	// Detail carries the display payload: reel matrix, synthesized hand,
	// bingo card and pattern, etc. Stored as JSON text.
	Detail string `gorm:"type:text" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

// DetailMap decodes the stored detail payload. A row whose detail no longer
// parses is treated as corrupt by loaders and skipped.
func (r *GameResult) DetailMap() (map[string]any, error) {
	if r.Detail == "" {
		return map[string]any{}, nil
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(r.Detail), &m); err != nil {
		return nil, err
	}
	return m, nil
}

// SetDetail encodes and stores the display payload.
func (r *GameResult) SetDetail(detail any) error {
	if detail == nil {
		r.Detail = ""
		return nil
	}
	raw, err := json.Marshal(detail)
	if err != nil {
		return err
	}
	r.Detail = string(raw)
	return nil
}

// MarshalJSON inlines the decoded detail so subscribers receive a structured
// payload instead of a JSON string.
func (r *GameResult) MarshalJSON() ([]byte, error) {
	detail, err := r.DetailMap()
	if err != nil {
		detail = map[string]any{}
	}
	type alias GameResult
	return json.Marshal(struct {
		*alias
		Detail map[string]any `json:"detail"`
	}{(*alias)(r), detail})
}
