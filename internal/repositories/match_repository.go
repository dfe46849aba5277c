package repositories

import (
	"errors"

	"unimatch_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrMatchNotFound = errors.New("match not found")
)

type MatchRepository interface {
	// FindByUser returns matches where the user is on either side of the
	// pair, newest-first by matched_at.
	FindByUser(userID string) ([]models.Match, error)
	CountByUser(userID string) (int64, error)
	FindByID(id string) (*models.Match, error)
	// Create exists for seeds and tests; the application itself never
	// writes match rows.
	Create(match *models.Match) error
}

type MatchRepositoryImpl struct {
	db *gorm.DB
}

func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &MatchRepositoryImpl{db: db}
}

func (r *MatchRepositoryImpl) FindByUser(userID string) ([]models.Match, error) {
	var matches []models.Match
	err := r.db.
		Where("user_a_id = ? OR user_b_id = ?", userID, userID).
		Order("matched_at DESC").
		Find(&matches).Error
	if err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *MatchRepositoryImpl) CountByUser(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Match{}).
		Where("user_a_id = ? OR user_b_id = ?", userID, userID).
		Count(&count).Error
	return count, err
}

func (r *MatchRepositoryImpl) FindByID(id string) (*models.Match, error) {
	var match models.Match
	err := r.db.First(&match, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}

func (r *MatchRepositoryImpl) Create(match *models.Match) error {
	return r.db.Create(match).Error
}
