package migrations

import "gorm.io/gorm"

// migration003Up creates performance indexes
func migration003Up(db *gorm.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_participants_role ON participants(role)",

		"CREATE INDEX IF NOT EXISTS idx_pairings_giver ON pairings(giver_id)",
		"CREATE INDEX IF NOT EXISTS idx_pairings_receiver ON pairings(receiver_id)",
		"CREATE INDEX IF NOT EXISTS idx_pairings_year ON pairings(year)",
		"CREATE INDEX IF NOT EXISTS idx_pairings_giver_year ON pairings(giver_id, year)",

		"CREATE INDEX IF NOT EXISTS idx_messages_participant ON messages(participant_id)",
		"CREATE INDEX IF NOT EXISTS idx_messages_year ON messages(year)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			return err
		}
	}

	return nil
}

// migration003Down drops performance indexes
func migration003Down(db *gorm.DB) error {
	indexes := []string{
		"DROP INDEX IF EXISTS idx_participants_role",
		"DROP INDEX IF EXISTS idx_pairings_giver",
		"DROP INDEX IF EXISTS idx_pairings_receiver",
		"DROP INDEX IF EXISTS idx_pairings_year",
		"DROP INDEX IF EXISTS idx_pairings_giver_year",
		"DROP INDEX IF EXISTS idx_messages_participant",
		"DROP INDEX IF EXISTS idx_messages_year",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			return err
		}
	}

	return nil
}
