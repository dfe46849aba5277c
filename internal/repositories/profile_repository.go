package repositories

import (
	"errors"

	"unimatch_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrProfileNotFound      = errors.New("profile not found")
	ErrProfileAlreadyExists = errors.New("profile already exists")
)

type ProfileRepository interface {
	Create(profile *models.Profile) error
	FindByUserID(userID string) (*models.Profile, error)
	FindByUserIDs(userIDs []string) ([]models.Profile, error)
	Update(profile *models.Profile) error
	AnonymousNameExists(name string) (bool, error)
	SetVerified(userID string) error
}

type ProfileRepositoryImpl struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &ProfileRepositoryImpl{db: db}
}

func (r *ProfileRepositoryImpl) Create(profile *models.Profile) error {
	var existing models.Profile
	if err := r.db.Where("user_id = ?", profile.UserID).First(&existing).Error; err == nil {
		return ErrProfileAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.Create(profile).Error
}

func (r *ProfileRepositoryImpl) FindByUserID(userID string) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) FindByUserIDs(userIDs []string) ([]models.Profile, error) {
	var profiles []models.Profile
	if len(userIDs) == 0 {
		return profiles, nil
	}
	if err := r.db.Where("user_id IN ?", userIDs).Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *ProfileRepositoryImpl) Update(profile *models.Profile) error {
	return r.db.Save(profile).Error
}

func (r *ProfileRepositoryImpl) AnonymousNameExists(name string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Profile{}).Where("anonymous_name = ?", name).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// SetVerified flips is_verified on the user's profile. Idempotent.
func (r *ProfileRepositoryImpl) SetVerified(userID string) error {
	result := r.db.Model(&models.Profile{}).
		Where("user_id = ? AND is_verified = false", userID).
		Update("is_verified", true)
	return result.Error
}
