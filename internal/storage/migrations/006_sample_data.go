package migrations

import "gorm.io/gorm"

// migration006Up inserts sample data for testing and development.
// All sample accounts use the development password "wichteln".
func migration006Up(db *gorm.DB) error {
	participantsSQL := `
        INSERT INTO participants (id, name, password_hash, role) VALUES
            ('550e8400-e29b-41d4-a716-446655440000', 'Orga', '$2a$10$CwTycUXWue0Thq9StjUM0uJ8.WqzSfvGo9Xm6u0ZDAPyYC1itZXxK', 'admin'),
            ('550e8400-e29b-41d4-a716-446655440001', 'Anna', '$2a$10$CwTycUXWue0Thq9StjUM0uJ8.WqzSfvGo9Xm6u0ZDAPyYC1itZXxK', 'participant'),
            ('550e8400-e29b-41d4-a716-446655440002', 'Ben', '$2a$10$CwTycUXWue0Thq9StjUM0uJ8.WqzSfvGo9Xm6u0ZDAPyYC1itZXxK', 'participant'),
            ('550e8400-e29b-41d4-a716-446655440003', 'Clara', '$2a$10$CwTycUXWue0Thq9StjUM0uJ8.WqzSfvGo9Xm6u0ZDAPyYC1itZXxK', 'participant'),
            ('550e8400-e29b-41d4-a716-446655440004', 'David', '$2a$10$CwTycUXWue0Thq9StjUM0uJ8.WqzSfvGo9Xm6u0ZDAPyYC1itZXxK', 'participant'),
            ('550e8400-e29b-41d4-a716-446655440005', 'Emma', '$2a$10$CwTycUXWue0Thq9StjUM0uJ8.WqzSfvGo9Xm6u0ZDAPyYC1itZXxK', 'participant')
        ON CONFLICT (name) DO NOTHING
    `

	if err := db.Exec(participantsSQL).Error; err != nil {
		return err
	}

	// One finished round so the scoreboard and the no-repeat rule have
	// something to chew on in development
	pairingsSQL := `
        INSERT INTO pairings (giver_id, receiver_id, year) VALUES
            ('550e8400-e29b-41d4-a716-446655440001', '550e8400-e29b-41d4-a716-446655440002', 2024),
            ('550e8400-e29b-41d4-a716-446655440002', '550e8400-e29b-41d4-a716-446655440003', 2024),
            ('550e8400-e29b-41d4-a716-446655440003', '550e8400-e29b-41d4-a716-446655440004', 2024),
            ('550e8400-e29b-41d4-a716-446655440004', '550e8400-e29b-41d4-a716-446655440005', 2024),
            ('550e8400-e29b-41d4-a716-446655440005', '550e8400-e29b-41d4-a716-446655440001', 2024)
        ON CONFLICT (giver_id, year) DO NOTHING
    `

	if err := db.Exec(pairingsSQL).Error; err != nil {
		return err
	}

	return nil
}

// migration006Down removes sample data
func migration006Down(db *gorm.DB) error {
	queries := []string{
		"DELETE FROM pairings WHERE giver_id IN (SELECT id FROM participants WHERE id::text LIKE '550e8400-e29b-41d4-a716-44665544000%')",
		"DELETE FROM messages WHERE participant_id IN (SELECT id FROM participants WHERE id::text LIKE '550e8400-e29b-41d4-a716-44665544000%')",
		"DELETE FROM participants WHERE id::text LIKE '550e8400-e29b-41d4-a716-44665544000%'",
	}

	for _, query := range queries {
		if err := db.Exec(query).Error; err != nil {
			return err
		}
	}

	return nil
}
