package migrations

import "gorm.io/gorm"

// migration004Up creates constraints and triggers enforcing the pairing
// invariants at the database level: one giver and one receiver per year,
// no self-pairing, and no repeat of a historical giver→receiver pair.
func migration004Up(db *gorm.DB) error {
	constraints := []string{
		`ALTER TABLE pairings
            ADD CONSTRAINT uq_pairings_giver_year UNIQUE (giver_id, year)`,

		`ALTER TABLE pairings
            ADD CONSTRAINT uq_pairings_receiver_year UNIQUE (receiver_id, year)`,

		`ALTER TABLE pairings
            ADD CONSTRAINT chk_pairings_no_self CHECK (giver_id <> receiver_id)`,

		`ALTER TABLE messages
            ADD CONSTRAINT uq_messages_participant_year UNIQUE (participant_id, year)`,

		`ALTER TABLE messages
            ADD CONSTRAINT chk_messages_not_blank CHECK (btrim(text) <> '')`,
	}

	for _, constraint := range constraints {
		if err := db.Exec(constraint).Error; err != nil {
			return err
		}
	}

	triggers := []string{
		`CREATE OR REPLACE FUNCTION validate_pairing_constraints()
        RETURNS TRIGGER AS $$
        DECLARE
            repeat_count INTEGER;
        BEGIN
            -- The no-repeat rule: a giver never draws the same receiver twice
            SELECT COUNT(*) INTO repeat_count
            FROM pairings
            WHERE giver_id = NEW.giver_id
              AND receiver_id = NEW.receiver_id
              AND year <> NEW.year;

            IF repeat_count > 0 THEN
                RAISE EXCEPTION 'Giver % already had receiver % in a previous year',
                    NEW.giver_id, NEW.receiver_id;
            END IF;

            RETURN NEW;
        END;
        $$ LANGUAGE plpgsql`,

		`CREATE TRIGGER trigger_validate_pairing
            BEFORE INSERT ON pairings
            FOR EACH ROW EXECUTE FUNCTION validate_pairing_constraints()`,

		`CREATE OR REPLACE FUNCTION prevent_pairing_update()
        RETURNS TRIGGER AS $$
        BEGIN
            RAISE EXCEPTION 'Pairing records are immutable';
        END;
        $$ LANGUAGE plpgsql`,

		`CREATE TRIGGER trigger_pairings_immutable
            BEFORE UPDATE ON pairings
            FOR EACH ROW EXECUTE FUNCTION prevent_pairing_update()`,
	}

	for _, trigger := range triggers {
		if err := db.Exec(trigger).Error; err != nil {
			return err
		}
	}

	return nil
}

// migration004Down removes constraints and triggers
func migration004Down(db *gorm.DB) error {
	statements := []string{
		"DROP TRIGGER IF EXISTS trigger_pairings_immutable ON pairings",
		"DROP FUNCTION IF EXISTS prevent_pairing_update()",
		"DROP TRIGGER IF EXISTS trigger_validate_pairing ON pairings",
		"DROP FUNCTION IF EXISTS validate_pairing_constraints()",
		"ALTER TABLE messages DROP CONSTRAINT IF EXISTS chk_messages_not_blank",
		"ALTER TABLE messages DROP CONSTRAINT IF EXISTS uq_messages_participant_year",
		"ALTER TABLE pairings DROP CONSTRAINT IF EXISTS chk_pairings_no_self",
		"ALTER TABLE pairings DROP CONSTRAINT IF EXISTS uq_pairings_receiver_year",
		"ALTER TABLE pairings DROP CONSTRAINT IF EXISTS uq_pairings_giver_year",
	}

	for _, statement := range statements {
		if err := db.Exec(statement).Error; err != nil {
			return err
		}
	}

	return nil
}
