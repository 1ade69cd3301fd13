package postgres

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ScoreboardEntry is one row of the admin scoreboard: a participant and the
// chronological names of everyone they have gifted so far. Backed by the
// participant_scoreboard view (migration 005).
type ScoreboardEntry struct {
	ParticipantID uuid.UUID      `json:"participant_id" gorm:"column:participant_id"`
	Name          string         `json:"name" gorm:"column:name"`
	Receivers     pq.StringArray `json:"receivers" gorm:"column:receivers;type:text[]"`
	Years         pq.Int64Array  `json:"years" gorm:"column:years;type:integer[]"`
}

// GetScoreboard returns the per-participant receiver history for display.
func (r *PostgresPairingRepository) GetScoreboard() ([]*ScoreboardEntry, error) {
	var entries []*ScoreboardEntry
	if err := r.db.Raw("SELECT participant_id, name, receivers, years FROM participant_scoreboard ORDER BY name").
		Scan(&entries).Error; err != nil {
		r.log.Error("Failed to load scoreboard", "error", err)
		return nil, fmt.Errorf("failed to load scoreboard: %w", err)
	}

	r.log.Debug("Scoreboard loaded", "rows", len(entries))
	return entries, nil
}
