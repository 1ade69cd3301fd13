package participant

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Role separates the round organizer from regular participants.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleParticipant Role = "participant"
)

// Participant is a member of the Wichteln round. The id stays stable
// across years so pairing history survives renames.
type Participant struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Name         string    `json:"name" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;not null"`
	Role         Role      `json:"role" gorm:"type:participant_role;not null;default:'participant'"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName overrides the table name
func (Participant) TableName() string {
	return "participants"
}

// New creates a participant with a hashed password.
func New(name, password string, role Role) (*Participant, error) {
	p := &Participant{
		ID:        uuid.New(),
		Name:      name,
		Role:      role,
		CreatedAt: time.Now(),
	}
	if err := p.SetPassword(password); err != nil {
		return nil, err
	}
	return p, nil
}

// SetPassword hashes and stores the password. Plaintext is never kept.
func (p *Participant) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	p.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether the password matches the stored hash.
func (p *Participant) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)) == nil
}

// IsAdmin reports whether the participant organizes the round.
func (p *Participant) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// Validate checks if the participant data is valid
func (p *Participant) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.PasswordHash == "" {
		return fmt.Errorf("password hash is required")
	}
	if p.Role != RoleAdmin && p.Role != RoleParticipant {
		return fmt.Errorf("invalid role %q", p.Role)
	}
	return nil
}
