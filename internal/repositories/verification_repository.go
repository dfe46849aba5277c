package repositories

import (
	"errors"
	"time"

	"unimatch_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrVerificationNotFound = errors.New("verification record not found")
)

type VerificationRepository interface {
	Create(file *models.VerificationFile) error
	FindByID(id string) (*models.VerificationFile, error)
	// FindActiveByUserAndType returns the pending or approved row occupying
	// the (user, file_type) slot, if any.
	FindActiveByUserAndType(userID string, fileType models.FileType) (*models.VerificationFile, error)
	FindByUser(userID string) ([]models.VerificationFile, error)
	FindByStatus(status models.FileStatus, limit, offset int) ([]models.VerificationFile, int64, error)
	UpdateReview(id string, status models.FileStatus, reviewerID, reason string) error
	FindRejectedBefore(cutoff time.Time) ([]models.VerificationFile, error)
	Delete(id string) error
}

type VerificationRepositoryImpl struct {
	db *gorm.DB
}

func NewVerificationRepository(db *gorm.DB) VerificationRepository {
	return &VerificationRepositoryImpl{db: db}
}

func (r *VerificationRepositoryImpl) Create(file *models.VerificationFile) error {
	return r.db.Create(file).Error
}

func (r *VerificationRepositoryImpl) FindByID(id string) (*models.VerificationFile, error) {
	var file models.VerificationFile
	err := r.db.First(&file, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVerificationNotFound
		}
		return nil, err
	}
	return &file, nil
}

func (r *VerificationRepositoryImpl) FindActiveByUserAndType(userID string, fileType models.FileType) (*models.VerificationFile, error) {
	var file models.VerificationFile
	err := r.db.
		Where("user_id = ? AND file_type = ? AND status IN ?",
			userID, fileType, []models.FileStatus{models.FileStatusPending, models.FileStatusApproved}).
		First(&file).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVerificationNotFound
		}
		return nil, err
	}
	return &file, nil
}

func (r *VerificationRepositoryImpl) FindByUser(userID string) ([]models.VerificationFile, error) {
	var files []models.VerificationFile
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&files).Error
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (r *VerificationRepositoryImpl) FindByStatus(status models.FileStatus, limit, offset int) ([]models.VerificationFile, int64, error) {
	var files []models.VerificationFile
	var total int64

	query := r.db.Model(&models.VerificationFile{}).Where("status = ?", status)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at ASC").Limit(limit).Offset(offset).Find(&files).Error
	if err != nil {
		return nil, 0, err
	}
	return files, total, nil
}

func (r *VerificationRepositoryImpl) UpdateReview(id string, status models.FileStatus, reviewerID, reason string) error {
	now := time.Now()
	result := r.db.Model(&models.VerificationFile{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":           status,
		"rejection_reason": reason,
		"reviewed_at":      &now,
		"reviewed_by":      &reviewerID,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVerificationNotFound
	}
	return nil
}

func (r *VerificationRepositoryImpl) FindRejectedBefore(cutoff time.Time) ([]models.VerificationFile, error) {
	var files []models.VerificationFile
	err := r.db.
		Where("status = ? AND reviewed_at < ?", models.FileStatusRejected, cutoff).
		Find(&files).Error
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (r *VerificationRepositoryImpl) Delete(id string) error {
	return r.db.Delete(&models.VerificationFile{}, "id = ?", id).Error
}
