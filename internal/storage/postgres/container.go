package postgres

import (
	"fmt"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"

	"github.com/wichtelrunde/wichtel-api/internal/config"
	"github.com/wichtelrunde/wichtel-api/internal/logger"
)

// Container bundles the repositories behind one database connection.
type Container struct {
	db              *gorm.DB
	log             *log.Logger
	participantRepo ParticipantRepository
	pairingRepo     PairingRepository
	messageRepo     MessageRepository
}

// NewContainer creates a new repository container with all repositories initialized
func NewContainer(cfg *config.Config) (*Container, error) {
	log := logger.Repository("postgres_container")
	log.Info("Initializing PostgreSQL repository container...")

	db, err := Connect(cfg)
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := AutoMigrate(db); err != nil {
		log.Error("Failed to run migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	container := &Container{
		db:              db,
		log:             log,
		participantRepo: NewPostgresParticipantRepository(db),
		pairingRepo:     NewPostgresPairingRepository(db),
		messageRepo:     NewPostgresMessageRepository(db),
	}

	if err := container.Health(); err != nil {
		log.Error("Container health check failed", "error", err)
		return nil, fmt.Errorf("container health check failed: %w", err)
	}

	log.Info("PostgreSQL repository container initialized")
	return container, nil
}

// Health checks the underlying database connection.
func (c *Container) Health() error {
	return HealthCheck(c.db)
}

// DB exposes the underlying connection for the server wiring.
func (c *Container) DB() *gorm.DB {
	return c.db
}

// Participants returns the participant repository.
func (c *Container) Participants() ParticipantRepository {
	return c.participantRepo
}

// Pairings returns the pairing repository.
func (c *Container) Pairings() PairingRepository {
	return c.pairingRepo
}

// Messages returns the message repository.
func (c *Container) Messages() MessageRepository {
	return c.messageRepo
}

// Close shuts down the shared database connection.
func (c *Container) Close() error {
	return Close()
}
