package postgres

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wichtelrunde/wichtel-api/internal/domain/assignment"
	"github.com/wichtelrunde/wichtel-api/internal/logger"
)

// PostgresPairingRepository implements PairingRepository using GORM
type PostgresPairingRepository struct {
	db  *gorm.DB
	log *log.Logger
}

// NewPostgresPairingRepository creates a new PostgreSQL pairing repository
func NewPostgresPairingRepository(db *gorm.DB) *PostgresPairingRepository {
	return &PostgresPairingRepository{
		db:  db,
		log: logger.Repository("pairing"),
	}
}

// CreateBatch stores a full year's pairings in one transaction. Either the
// whole run is persisted or none of it, keeping the bijection invariant in
// the database.
func (r *PostgresPairingRepository) CreateBatch(pairings []*assignment.Pairing) error {
	if len(pairings) == 0 {
		return errors.New("no pairings to store")
	}

	r.log.Debug("Storing pairing batch", "count", len(pairings), "year", pairings[0].Year)

	for _, p := range pairings {
		if err := p.Validate(); err != nil {
			r.log.Error("Pairing validation failed", "error", err, "giver", p.GiverID)
			return fmt.Errorf("pairing validation failed: %w", err)
		}
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		for _, p := range pairings {
			if err := tx.Create(p).Error; err != nil {
				return fmt.Errorf("failed to store pairing for giver %s: %w", p.GiverID, err)
			}
		}
		return nil
	})
	if err != nil {
		r.log.Error("Failed to store pairing batch", "error", err)
		return err
	}

	r.log.Info("Pairing batch stored", "count", len(pairings), "year", pairings[0].Year)
	return nil
}

// PairingsBefore returns every pairing from years strictly before year.
func (r *PostgresPairingRepository) PairingsBefore(year int) ([]*assignment.Pairing, error) {
	var pairings []*assignment.Pairing
	if err := r.db.Where("year < ?", year).Order("year ASC").Find(&pairings).Error; err != nil {
		r.log.Error("Failed to load pairing history", "year", year, "error", err)
		return nil, fmt.Errorf("failed to load pairing history: %w", err)
	}

	r.log.Debug("Loaded pairing history", "before_year", year, "count", len(pairings))
	return pairings, nil
}

// ExistsForYear reports whether any pairing is already stored for year.
func (r *PostgresPairingRepository) ExistsForYear(year int) (bool, error) {
	var count int64
	if err := r.db.Model(&assignment.Pairing{}).Where("year = ?", year).Count(&count).Error; err != nil {
		r.log.Error("Failed to count pairings for year", "year", year, "error", err)
		return false, fmt.Errorf("failed to count pairings for year: %w", err)
	}
	return count > 0, nil
}

func (r *PostgresPairingRepository) GetByYear(year int) ([]*assignment.Pairing, error) {
	var pairings []*assignment.Pairing
	if err := r.db.Where("year = ?", year).Find(&pairings).Error; err != nil {
		r.log.Error("Failed to get pairings by year", "year", year, "error", err)
		return nil, fmt.Errorf("failed to get pairings by year: %w", err)
	}
	return pairings, nil
}

func (r *PostgresPairingRepository) GetByGiver(giverID uuid.UUID) ([]*assignment.Pairing, error) {
	var pairings []*assignment.Pairing
	if err := r.db.Where("giver_id = ?", giverID).Order("year ASC").Find(&pairings).Error; err != nil {
		r.log.Error("Failed to get pairings by giver", "giver", giverID, "error", err)
		return nil, fmt.Errorf("failed to get pairings by giver: %w", err)
	}
	return pairings, nil
}

func (r *PostgresPairingRepository) GetForGiverAndYear(giverID uuid.UUID, year int) (*assignment.Pairing, error) {
	var p assignment.Pairing
	if err := r.db.Where("giver_id = ? AND year = ?", giverID, year).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("pairing not found")
		}
		r.log.Error("Failed to get pairing", "giver", giverID, "year", year, "error", err)
		return nil, fmt.Errorf("failed to get pairing: %w", err)
	}
	return &p, nil
}
