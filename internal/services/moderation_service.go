package services

import (
	"context"
	"errors"

	"unimatch_backend/internal/logger"
	"unimatch_backend/internal/models"
	"unimatch_backend/internal/repositories"
	"unimatch_backend/internal/services/dto"
	"unimatch_backend/pkg/apperrors"
)

type ModerationService interface {
	BlockUser(ctx context.Context, blockerID, blockedID string) error
	ReportUser(ctx context.Context, reporterID string, req *dto.ReportUserRequest) (*dto.ReportResponse, error)
	ListReports(ctx context.Context, status string, limit, offset int) (*dto.ReportListResponse, error)
	ResolveReport(ctx context.Context, reportID, resolverID string) error
	UpdateUserStatus(ctx context.Context, userID string, status models.UserStatus) error
}

type ModerationServiceImpl struct {
	moderationRepo repositories.ModerationRepository
	userRepo       repositories.UserRepository
}

func NewModerationService(moderationRepo repositories.ModerationRepository, userRepo repositories.UserRepository) ModerationService {
	return &ModerationServiceImpl{
		moderationRepo: moderationRepo,
		userRepo:       userRepo,
	}
}

func (s *ModerationServiceImpl) BlockUser(ctx context.Context, blockerID, blockedID string) error {
	if blockerID == blockedID {
		return apperrors.NewBadRequestError("You cannot block yourself")
	}
	if _, err := s.userRepo.FindByID(blockedID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.InternalError(err)
	}

	block := &models.Block{BlockerID: blockerID, BlockedID: blockedID}
	if err := s.moderationRepo.CreateBlock(block); err != nil {
		if errors.Is(err, repositories.ErrBlockAlreadyExists) {
			return apperrors.ErrBlockAlreadyExists
		}
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "user blocked", "blocker_id", blockerID, "blocked_id", blockedID)
	return nil
}

func (s *ModerationServiceImpl) ReportUser(ctx context.Context, reporterID string, req *dto.ReportUserRequest) (*dto.ReportResponse, error) {
	if reporterID == req.UserID {
		return nil, apperrors.NewBadRequestError("You cannot report yourself")
	}
	if _, err := s.userRepo.FindByID(req.UserID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	report := &models.Report{
		ReporterID: reporterID,
		ReportedID: req.UserID,
		Reason:     req.Reason,
		Status:     models.ReportStatusOpen,
	}
	if err := s.moderationRepo.CreateReport(report); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "user reported", "reporter_id", reporterID, "reported_id", req.UserID)
	return toReportResponse(report), nil
}

func (s *ModerationServiceImpl) ListReports(ctx context.Context, status string, limit, offset int) (*dto.ReportListResponse, error) {
	reports, total, err := s.moderationRepo.FindReports(models.ReportStatus(status), limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.ReportListResponse{
		Reports: make([]dto.ReportResponse, 0, len(reports)),
		Total:   total,
	}
	for i := range reports {
		resp.Reports = append(resp.Reports, *toReportResponse(&reports[i]))
	}
	return resp, nil
}

func (s *ModerationServiceImpl) ResolveReport(ctx context.Context, reportID, resolverID string) error {
	if err := s.moderationRepo.ResolveReport(reportID, resolverID); err != nil {
		if errors.Is(err, repositories.ErrReportNotFound) {
			return apperrors.ErrReportNotFound
		}
		return apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "report resolved", "report_id", reportID, "resolver_id", resolverID)
	return nil
}

// UpdateUserStatus is the admin lever for suspending, banning or restoring
// an account.
func (s *ModerationServiceImpl) UpdateUserStatus(ctx context.Context, userID string, status models.UserStatus) error {
	if err := s.userRepo.UpdateStatus(userID, status); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "user status updated", "user_id", userID, "status", status)
	return nil
}

func toReportResponse(r *models.Report) *dto.ReportResponse {
	return &dto.ReportResponse{
		ID:         r.ID,
		ReporterID: r.ReporterID,
		ReportedID: r.ReportedID,
		Reason:     r.Reason,
		Status:     string(r.Status),
		CreatedAt:  r.CreatedAt,
		ResolvedAt: r.ResolvedAt,
	}
}
