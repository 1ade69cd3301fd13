package postgres

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wichtelrunde/wichtel-api/internal/domain/participant"
	"github.com/wichtelrunde/wichtel-api/internal/logger"
)

// PostgresParticipantRepository implements ParticipantRepository using GORM
type PostgresParticipantRepository struct {
	db  *gorm.DB
	log *log.Logger
}

// NewPostgresParticipantRepository creates a new PostgreSQL participant repository
func NewPostgresParticipantRepository(db *gorm.DB) *PostgresParticipantRepository {
	return &PostgresParticipantRepository{
		db:  db,
		log: logger.Repository("participant"),
	}
}

func (r *PostgresParticipantRepository) Create(p *participant.Participant) error {
	r.log.Debug("Creating participant", "name", p.Name)

	if err := p.Validate(); err != nil {
		r.log.Error("Participant validation failed", "error", err)
		return fmt.Errorf("participant validation failed: %w", err)
	}

	var existing participant.Participant
	if err := r.db.Where("name = ?", p.Name).First(&existing).Error; err == nil {
		r.log.Error("Participant with name already exists", "name", p.Name)
		return fmt.Errorf("participant with name %s already exists", p.Name)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		r.log.Error("Failed to check existing participant", "name", p.Name, "error", err)
		return fmt.Errorf("failed to check existing participant: %w", err)
	}

	if err := r.db.Create(p).Error; err != nil {
		r.log.Error("Failed to create participant", "error", err, "name", p.Name)
		return fmt.Errorf("failed to create participant: %w", err)
	}

	r.log.Info("Participant created successfully", "id", p.ID, "name", p.Name)
	return nil
}

func (r *PostgresParticipantRepository) GetByID(id string) (*participant.Participant, error) {
	r.log.Debug("retrieving participant by ID", "participant_id", id)

	participantID, err := uuid.Parse(id)
	if err != nil {
		r.log.Error("Invalid participant ID format", "id", id, "error", err)
		return nil, errors.New("invalid participant ID format")
	}

	var p participant.Participant
	if err := r.db.First(&p, participantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("Participant not found", "id", id)
			return nil, errors.New("participant not found")
		}
		r.log.Error("Failed to get participant by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get participant by ID: %w", err)
	}

	return &p, nil
}

func (r *PostgresParticipantRepository) GetByName(name string) (*participant.Participant, error) {
	r.log.Debug("retrieving participant by name", "name", name)

	if name == "" {
		return nil, errors.New("name cannot be empty")
	}

	var p participant.Participant
	if err := r.db.Where("name = ?", name).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("Participant not found", "name", name)
			return nil, errors.New("participant not found")
		}
		r.log.Error("Failed to get participant by name", "name", name, "error", err)
		return nil, fmt.Errorf("failed to get participant by name: %w", err)
	}

	return &p, nil
}

func (r *PostgresParticipantRepository) GetAll() ([]*participant.Participant, error) {
	var participants []*participant.Participant
	if err := r.db.Order("name ASC").Find(&participants).Error; err != nil {
		r.log.Error("Failed to get all participants", "error", err)
		return nil, fmt.Errorf("failed to get all participants: %w", err)
	}

	r.log.Debug("Retrieved all participants", "count", len(participants))
	return participants, nil
}

func (r *PostgresParticipantRepository) Update(p *participant.Participant) error {
	r.log.Debug("Updating participant", "id", p.ID)

	if err := p.Validate(); err != nil {
		r.log.Error("Participant validation failed", "error", err)
		return fmt.Errorf("participant validation failed: %w", err)
	}

	result := r.db.Model(&participant.Participant{}).Where("id = ?", p.ID).Updates(map[string]any{
		"name":          p.Name,
		"password_hash": p.PasswordHash,
		"role":          p.Role,
	})
	if result.Error != nil {
		r.log.Error("Failed to update participant", "id", p.ID, "error", result.Error)
		return fmt.Errorf("failed to update participant: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("participant not found")
	}

	r.log.Info("Participant updated successfully", "id", p.ID, "name", p.Name)
	return nil
}

func (r *PostgresParticipantRepository) Delete(id string) error {
	r.log.Debug("Deleting participant", "id", id)

	participantID, err := uuid.Parse(id)
	if err != nil {
		return errors.New("invalid participant ID format")
	}

	result := r.db.Delete(&participant.Participant{}, participantID)
	if result.Error != nil {
		r.log.Error("Failed to delete participant", "id", id, "error", result.Error)
		return fmt.Errorf("failed to delete participant: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("participant not found")
	}

	r.log.Info("Participant deleted", "id", id)
	return nil
}
