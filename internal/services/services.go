package services

import (
	"errors"

	"github.com/google/uuid"

	"github.com/wichtelrunde/wichtel-api/internal/domain/message"
	"github.com/wichtelrunde/wichtel-api/internal/domain/participant"
	"github.com/wichtelrunde/wichtel-api/internal/storage/postgres"
	"github.com/wichtelrunde/wichtel-api/internal/validation"
)

// ParticipantService handles participant business logic
type ParticipantService struct {
	participantRepo postgres.ParticipantRepository
	pairingRepo     postgres.PairingRepository
	validator       validation.ParticipantValidation
}

// NewParticipantService creates a new participant service
func NewParticipantService(participantRepo postgres.ParticipantRepository, pairingRepo postgres.PairingRepository) *ParticipantService {
	return &ParticipantService{
		participantRepo: participantRepo,
		pairingRepo:     pairingRepo,
		validator:       validation.ParticipantValidation{},
	}
}

// CreateParticipantRequest represents a request to create a participant
type CreateParticipantRequest struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// CreateParticipant registers a new participant
func (s *ParticipantService) CreateParticipant(req CreateParticipantRequest) (*participant.Participant, error) {
	if err := s.validator.ValidateParticipantName(req.Name); err != nil {
		return nil, err
	}

	if err := s.validator.ValidateParticipantPassword(req.Password); err != nil {
		return nil, err
	}

	role := participant.RoleParticipant
	if req.Role == string(participant.RoleAdmin) {
		role = participant.RoleAdmin
	}

	if _, err := s.participantRepo.GetByName(req.Name); err == nil {
		return nil, errors.New("name already exists")
	}

	p, err := participant.New(req.Name, req.Password, role)
	if err != nil {
		return nil, err
	}

	if err := s.participantRepo.Create(p); err != nil {
		return nil, err
	}

	return p, nil
}

// UpdateParticipantRequest represents a rename / password change
type UpdateParticipantRequest struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password"`
}

// UpdateParticipant renames a participant and optionally changes the password
func (s *ParticipantService) UpdateParticipant(id string, req UpdateParticipantRequest) (*participant.Participant, error) {
	if err := validation.ValidateUUID(id, "participant_id"); err != nil {
		return nil, err
	}

	if err := s.validator.ValidateParticipantName(req.Name); err != nil {
		return nil, err
	}

	p, err := s.participantRepo.GetByID(id)
	if err != nil {
		return nil, errors.New("participant not found")
	}

	p.Name = req.Name
	if req.Password != "" {
		if err := s.validator.ValidateParticipantPassword(req.Password); err != nil {
			return nil, err
		}
		if err := p.SetPassword(req.Password); err != nil {
			return nil, err
		}
	}

	if err := s.participantRepo.Update(p); err != nil {
		return nil, err
	}

	return p, nil
}

// GetAllParticipants returns every registered participant
func (s *ParticipantService) GetAllParticipants() ([]*participant.Participant, error) {
	return s.participantRepo.GetAll()
}

// GetParticipantByID returns a participant by id
func (s *ParticipantService) GetParticipantByID(id string) (*participant.Participant, error) {
	if err := validation.ValidateUUID(id, "participant_id"); err != nil {
		return nil, err
	}

	return s.participantRepo.GetByID(id)
}

// RemoveParticipant deletes a participant. Their pairing history stays.
func (s *ParticipantService) RemoveParticipant(id string) error {
	if err := validation.ValidateUUID(id, "participant_id"); err != nil {
		return err
	}

	return s.participantRepo.Delete(id)
}

// GetScoreboard returns the per-participant history of past receivers
func (s *ParticipantService) GetScoreboard() ([]*postgres.ScoreboardEntry, error) {
	return s.pairingRepo.GetScoreboard()
}

// MessageService handles gift message business logic
type MessageService struct {
	messageRepo     postgres.MessageRepository
	participantRepo postgres.ParticipantRepository
	validator       validation.MessageValidation
}

// NewMessageService creates a new message service
func NewMessageService(messageRepo postgres.MessageRepository, participantRepo postgres.ParticipantRepository) *MessageService {
	return &MessageService{
		messageRepo:     messageRepo,
		participantRepo: participantRepo,
		validator:       validation.MessageValidation{},
	}
}

// SubmitMessageRequest represents a new gift message
type SubmitMessageRequest struct {
	ParticipantID string `json:"participant_id" binding:"required"`
	Year          int    `json:"year" binding:"required"`
	Text          string `json:"text" binding:"required"`
}

// SubmitMessage stores a participant's gift message for a year.
// A second message for the same year is rejected.
func (s *MessageService) SubmitMessage(req SubmitMessageRequest) (*message.Message, error) {
	if err := validation.ValidateUUID(req.ParticipantID, "participant_id"); err != nil {
		return nil, err
	}

	if err := validation.ValidateYear(req.Year); err != nil {
		return nil, err
	}

	if err := s.validator.ValidateMessageText(req.Text); err != nil {
		return nil, err
	}

	participantID := uuid.MustParse(req.ParticipantID)

	if _, err := s.participantRepo.GetByID(req.ParticipantID); err != nil {
		return nil, errors.New("participant not found")
	}

	if _, err := s.messageRepo.GetForYear(participantID, req.Year); err == nil {
		return nil, errors.New("participant already has a message for this year")
	}

	m := message.New(participantID, req.Year, req.Text)

	if err := s.messageRepo.Create(m); err != nil {
		return nil, err
	}

	return m, nil
}

// UpdateMessage replaces the text of an existing message
func (s *MessageService) UpdateMessage(id, text string) (*message.Message, error) {
	if err := validation.ValidateUUID(id, "message_id"); err != nil {
		return nil, err
	}

	if err := s.validator.ValidateMessageText(text); err != nil {
		return nil, err
	}

	m, err := s.messageRepo.GetByID(id)
	if err != nil {
		return nil, errors.New("message not found")
	}

	m.Text = text
	if err := s.messageRepo.Update(m); err != nil {
		return nil, err
	}

	return m, nil
}

// DeleteMessage removes a message
func (s *MessageService) DeleteMessage(id string) error {
	if err := validation.ValidateUUID(id, "message_id"); err != nil {
		return err
	}

	return s.messageRepo.Delete(id)
}

// GetMessageForYear returns a participant's message for a year
func (s *MessageService) GetMessageForYear(participantID string, year int) (*message.Message, error) {
	if err := validation.ValidateUUID(participantID, "participant_id"); err != nil {
		return nil, err
	}

	return s.messageRepo.GetForYear(uuid.MustParse(participantID), year)
}
