package repositories

import (
	"errors"
	"time"

	"unimatch_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrBlockAlreadyExists = errors.New("block already exists")
	ErrReportNotFound     = errors.New("report not found")
)

type ModerationRepository interface {
	CreateBlock(block *models.Block) error
	BlockExists(blockerID, blockedID string) (bool, error)
	CreateReport(report *models.Report) error
	FindReports(status models.ReportStatus, limit, offset int) ([]models.Report, int64, error)
	ResolveReport(id, resolverID string) error
}

type ModerationRepositoryImpl struct {
	db *gorm.DB
}

func NewModerationRepository(db *gorm.DB) ModerationRepository {
	return &ModerationRepositoryImpl{db: db}
}

func (r *ModerationRepositoryImpl) CreateBlock(block *models.Block) error {
	exists, err := r.BlockExists(block.BlockerID, block.BlockedID)
	if err != nil {
		return err
	}
	if exists {
		return ErrBlockAlreadyExists
	}
	return r.db.Create(block).Error
}

func (r *ModerationRepositoryImpl) BlockExists(blockerID, blockedID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Block{}).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *ModerationRepositoryImpl) CreateReport(report *models.Report) error {
	return r.db.Create(report).Error
}

func (r *ModerationRepositoryImpl) FindReports(status models.ReportStatus, limit, offset int) ([]models.Report, int64, error) {
	var reports []models.Report
	var total int64

	query := r.db.Model(&models.Report{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&reports).Error
	if err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

func (r *ModerationRepositoryImpl) ResolveReport(id, resolverID string) error {
	now := time.Now()
	result := r.db.Model(&models.Report{}).
		Where("id = ? AND status = ?", id, models.ReportStatusOpen).
		Updates(map[string]interface{}{
			"status":      models.ReportStatusResolved,
			"resolved_at": &now,
			"resolved_by": &resolverID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReportNotFound
	}
	return nil
}
