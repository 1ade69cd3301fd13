package migrations

import "gorm.io/gorm"

// migration005Up creates reporting views
func migration005Up(db *gorm.DB) error {
	views := []string{
		`CREATE VIEW participant_scoreboard AS
        SELECT
            p.id AS participant_id,
            p.name,
            COALESCE(
                array_agg(r.name ORDER BY pr.year) FILTER (WHERE r.name IS NOT NULL),
                '{}'
            ) AS receivers,
            COALESCE(
                array_agg(pr.year ORDER BY pr.year) FILTER (WHERE pr.year IS NOT NULL),
                '{}'
            ) AS years
        FROM participants p
        LEFT JOIN pairings pr ON pr.giver_id = p.id
        LEFT JOIN participants r ON r.id = pr.receiver_id
        GROUP BY p.id, p.name`,

		`CREATE VIEW round_status AS
        SELECT
            pr.year,
            COUNT(*) AS pairing_count,
            COUNT(DISTINCT pr.giver_id) AS giver_count,
            COUNT(DISTINCT pr.receiver_id) AS receiver_count,
            MIN(pr.created_at) AS drawn_at
        FROM pairings pr
        GROUP BY pr.year`,

		`CREATE VIEW message_progress AS
        SELECT
            m.year,
            COUNT(*) AS submitted,
            (SELECT COUNT(*) FROM participants WHERE role = 'participant') AS participants,
            ROUND(
                100.0 * COUNT(*) /
                GREATEST((SELECT COUNT(*) FROM participants WHERE role = 'participant'), 1), 2
            ) AS completion_percentage
        FROM messages m
        GROUP BY m.year`,
	}

	for _, view := range views {
		if err := db.Exec(view).Error; err != nil {
			return err
		}
	}

	return nil
}

// migration005Down drops reporting views
func migration005Down(db *gorm.DB) error {
	views := []string{
		"DROP VIEW IF EXISTS message_progress",
		"DROP VIEW IF EXISTS round_status",
		"DROP VIEW IF EXISTS participant_scoreboard",
	}

	for _, view := range views {
		if err := db.Exec(view).Error; err != nil {
			return err
		}
	}

	return nil
}
