package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wichtelrunde/wichtel-api/internal/domain/message"
	"github.com/wichtelrunde/wichtel-api/internal/logger"
)

// PostgresMessageRepository implements MessageRepository using GORM
type PostgresMessageRepository struct {
	db  *gorm.DB
	log *log.Logger
}

// NewPostgresMessageRepository creates a new PostgreSQL message repository
func NewPostgresMessageRepository(db *gorm.DB) *PostgresMessageRepository {
	return &PostgresMessageRepository{
		db:  db,
		log: logger.Repository("message"),
	}
}

func (r *PostgresMessageRepository) Create(m *message.Message) error {
	r.log.Debug("Creating message", "participant", m.ParticipantID, "year", m.Year)

	if err := m.Validate(); err != nil {
		r.log.Error("Message validation failed", "error", err)
		return fmt.Errorf("message validation failed: %w", err)
	}

	// One message per participant and year
	var existing message.Message
	err := r.db.Where("participant_id = ? AND year = ?", m.ParticipantID, m.Year).First(&existing).Error
	if err == nil {
		r.log.Error("Message already exists for year", "participant", m.ParticipantID, "year", m.Year)
		return fmt.Errorf("participant already has a message for year %d", m.Year)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check existing message: %w", err)
	}

	if err := r.db.Create(m).Error; err != nil {
		r.log.Error("Failed to create message", "error", err)
		return fmt.Errorf("failed to create message: %w", err)
	}

	r.log.Info("Message created", "id", m.ID, "participant", m.ParticipantID, "year", m.Year)
	return nil
}

func (r *PostgresMessageRepository) GetByID(id string) (*message.Message, error) {
	messageID, err := uuid.Parse(id)
	if err != nil {
		return nil, errors.New("invalid message ID format")
	}

	var m message.Message
	if err := r.db.First(&m, messageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("message not found")
		}
		r.log.Error("Failed to get message by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get message by ID: %w", err)
	}
	return &m, nil
}

func (r *PostgresMessageRepository) GetForYear(participantID uuid.UUID, year int) (*message.Message, error) {
	var m message.Message
	if err := r.db.Where("participant_id = ? AND year = ?", participantID, year).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("message not found")
		}
		r.log.Error("Failed to get message", "participant", participantID, "year", year, "error", err)
		return nil, fmt.Errorf("failed to get message: %w", err)
	}
	return &m, nil
}

// HasMessage reports whether the participant submitted a non-empty message
// for the year. Consumed by the assignment engine precondition.
func (r *PostgresMessageRepository) HasMessage(participantID uuid.UUID, year int) (bool, error) {
	var m message.Message
	err := r.db.Where("participant_id = ? AND year = ?", participantID, year).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		r.log.Error("Failed to check message existence", "participant", participantID, "year", year, "error", err)
		return false, fmt.Errorf("failed to check message existence: %w", err)
	}
	return strings.TrimSpace(m.Text) != "", nil
}

func (r *PostgresMessageRepository) Update(m *message.Message) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("message validation failed: %w", err)
	}

	result := r.db.Model(&message.Message{}).Where("id = ?", m.ID).Update("text", m.Text)
	if result.Error != nil {
		r.log.Error("Failed to update message", "id", m.ID, "error", result.Error)
		return fmt.Errorf("failed to update message: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("message not found")
	}

	r.log.Info("Message updated", "id", m.ID)
	return nil
}

func (r *PostgresMessageRepository) Delete(id string) error {
	messageID, err := uuid.Parse(id)
	if err != nil {
		return errors.New("invalid message ID format")
	}

	result := r.db.Delete(&message.Message{}, messageID)
	if result.Error != nil {
		r.log.Error("Failed to delete message", "id", id, "error", result.Error)
		return fmt.Errorf("failed to delete message: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.New("message not found")
	}

	r.log.Info("Message deleted", "id", id)
	return nil
}
