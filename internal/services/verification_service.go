package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"unimatch_backend/internal/config"
	"unimatch_backend/internal/logger"
	"unimatch_backend/internal/models"
	"unimatch_backend/internal/repositories"
	"unimatch_backend/internal/services/dto"
	"unimatch_backend/internal/storage"
	"unimatch_backend/pkg/apperrors"
)

// signedURLExpiry bounds how long an admin's document link stays valid.
const signedURLExpiry = time.Hour

type UploadInput struct {
	FileType     string
	OriginalName string
	Size         int64
	MimeType     string
	Reader       io.Reader
}

type VerificationService interface {
	Submit(ctx context.Context, userID string, input *UploadInput) (*dto.VerificationFileResponse, error)
	GetStatus(ctx context.Context, userID string) (*dto.VerificationStatusResponse, error)
	ListPending(ctx context.Context, limit, offset int) (*dto.AdminVerificationListResponse, error)
	Review(ctx context.Context, fileID, reviewerID string, req *dto.ReviewVerificationRequest) error
}

type VerificationServiceImpl struct {
	verificationRepo repositories.VerificationRepository
	profileRepo      repositories.ProfileRepository
	userRepo         repositories.UserRepository
	storage          storage.Storage
}

func NewVerificationService(
	verificationRepo repositories.VerificationRepository,
	profileRepo repositories.ProfileRepository,
	userRepo repositories.UserRepository,
	store storage.Storage,
) VerificationService {
	return &VerificationServiceImpl{
		verificationRepo: verificationRepo,
		profileRepo:      profileRepo,
		userRepo:         userRepo,
		storage:          store,
	}
}

// Submit stores the document and records a pending verification row. The
// upload happens before the insert; if the insert fails the stored object
// is deleted best-effort so the two stay consistent.
func (s *VerificationServiceImpl) Submit(ctx context.Context, userID string, input *UploadInput) (*dto.VerificationFileResponse, error) {
	fileType := models.FileType(input.FileType)
	if !models.ValidFileType(fileType) {
		return nil, apperrors.ErrInvalidFileType
	}

	if _, err := s.profileRepo.FindByUserID(userID); err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	cfg := config.GetConfig()
	if input.Size > cfg.Upload.MaxSize {
		return nil, apperrors.ErrFileTooLarge.WithDetails(map[string]interface{}{
			"max_size": cfg.Upload.MaxSize,
		})
	}
	if !allowedMimeType(input.MimeType, cfg.Upload.AllowedTypes) {
		return nil, apperrors.NewBadRequestError("Unsupported file format")
	}

	// One active document per type: a pending or approved row blocks a new
	// submission, a rejected one does not.
	active, err := s.verificationRepo.FindActiveByUserAndType(userID, fileType)
	if err != nil && !errors.Is(err, repositories.ErrVerificationNotFound) {
		return nil, apperrors.InternalError(err)
	}
	if active != nil {
		if active.Status == models.FileStatusApproved {
			return nil, apperrors.ErrVerificationApproved
		}
		return nil, apperrors.ErrVerificationPending
	}

	path := fmt.Sprintf("verifications/%s/%s/%d%s",
		userID, fileType, time.Now().UnixNano(), filepath.Ext(input.OriginalName))

	if err := s.storage.Save(ctx, path, input.Reader, input.MimeType); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeFileUploadFailed, "Failed to store file", 500)
	}

	file := &models.VerificationFile{
		UserID:       userID,
		FileType:     fileType,
		Path:         path,
		OriginalName: input.OriginalName,
		Size:         input.Size,
		MimeType:     input.MimeType,
		Status:       models.FileStatusPending,
	}
	if err := s.verificationRepo.Create(file); err != nil {
		if delErr := s.storage.Delete(ctx, path); delErr != nil {
			logger.CtxWarn(ctx, "failed to clean up orphaned upload", "error", delErr, "path", path)
		}
		return nil, apperrors.InternalError(err)
	}

	s.markUserPending(ctx, userID)

	logger.CtxInfo(ctx, "verification submitted",
		"user_id", userID, "file_type", fileType, "size", input.Size)
	return toVerificationFileResponse(file), nil
}

// markUserPending moves the user's verification status to pending unless
// they are already verified.
func (s *VerificationServiceImpl) markUserPending(ctx context.Context, userID string) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		logger.CtxWarn(ctx, "failed to load user for status update", "error", err, "user_id", userID)
		return
	}
	if user.VerificationStatus == models.VerificationVerified {
		return
	}
	if err := s.userRepo.SetVerificationStatus(userID, models.VerificationPending); err != nil {
		logger.CtxWarn(ctx, "failed to mark verification pending", "error", err, "user_id", userID)
	}
}

// GetStatus returns the user's documents newest-first. An approved document
// that has not yet been reflected on the user or profile is propagated here,
// so the flag converges even if the review-time update was missed.
func (s *VerificationServiceImpl) GetStatus(ctx context.Context, userID string) (*dto.VerificationStatusResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	files, err := s.verificationRepo.FindByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	hasApproved := false
	for i := range files {
		if files[i].Status == models.FileStatusApproved {
			hasApproved = true
			break
		}
	}

	if hasApproved && user.VerificationStatus != models.VerificationVerified {
		if err := s.userRepo.SetVerificationStatus(userID, models.VerificationVerified); err != nil {
			logger.CtxWarn(ctx, "failed to propagate verified status", "error", err, "user_id", userID)
		} else {
			user.VerificationStatus = models.VerificationVerified
		}
		if err := s.profileRepo.SetVerified(userID); err != nil {
			logger.CtxWarn(ctx, "failed to propagate profile verified flag", "error", err, "user_id", userID)
		}
	}

	resp := &dto.VerificationStatusResponse{
		VerificationStatus: string(user.VerificationStatus),
		IsVerified:         user.VerificationStatus == models.VerificationVerified,
		Files:              make([]dto.VerificationFileResponse, 0, len(files)),
	}
	for i := range files {
		resp.Files = append(resp.Files, *toVerificationFileResponse(&files[i]))
	}
	return resp, nil
}

// ListPending returns the review queue oldest-first with signed document
// URLs. A URL that cannot be signed leaves the field empty rather than
// failing the page.
func (s *VerificationServiceImpl) ListPending(ctx context.Context, limit, offset int) (*dto.AdminVerificationListResponse, error) {
	files, total, err := s.verificationRepo.FindByStatus(models.FileStatusPending, limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	userIDs := make([]string, 0, len(files))
	seen := make(map[string]bool, len(files))
	for i := range files {
		if !seen[files[i].UserID] {
			seen[files[i].UserID] = true
			userIDs = append(userIDs, files[i].UserID)
		}
	}

	emails := make(map[string]string, len(userIDs))
	users, err := s.userRepo.FindByIDs(userIDs)
	if err != nil {
		logger.CtxWarn(ctx, "failed to load submitters for review queue", "error", err)
	} else {
		for i := range users {
			emails[users[i].ID] = users[i].Email
		}
	}

	resp := &dto.AdminVerificationListResponse{
		Items: make([]dto.AdminVerificationResponse, 0, len(files)),
		Total: total,
	}
	for i := range files {
		f := &files[i]
		url, err := s.storage.GetSignedURL(ctx, f.Path, signedURLExpiry)
		if err != nil {
			logger.CtxWarn(ctx, "failed to sign document url", "error", err, "path", f.Path)
			url = ""
		}
		resp.Items = append(resp.Items, dto.AdminVerificationResponse{
			ID:           f.ID,
			UserID:       f.UserID,
			UserEmail:    emails[f.UserID],
			FileType:     string(f.FileType),
			OriginalName: f.OriginalName,
			MimeType:     f.MimeType,
			Size:         f.Size,
			Status:       string(f.Status),
			FileURL:      url,
			SubmittedAt:  f.CreatedAt,
		})
	}
	return resp, nil
}

// Review settles a pending document. Approved and rejected are terminal;
// reviewing twice conflicts.
func (s *VerificationServiceImpl) Review(ctx context.Context, fileID, reviewerID string, req *dto.ReviewVerificationRequest) error {
	file, err := s.verificationRepo.FindByID(fileID)
	if err != nil {
		if errors.Is(err, repositories.ErrVerificationNotFound) {
			return apperrors.ErrVerificationNotFound
		}
		return apperrors.InternalError(err)
	}

	if file.Status != models.FileStatusPending {
		return apperrors.ErrVerificationReviewed
	}

	switch req.Action {
	case "approve":
		if err := s.verificationRepo.UpdateReview(fileID, models.FileStatusApproved, reviewerID, ""); err != nil {
			return apperrors.InternalError(err)
		}
		if err := s.userRepo.SetVerificationStatus(file.UserID, models.VerificationVerified); err != nil {
			logger.CtxWarn(ctx, "failed to mark user verified", "error", err, "user_id", file.UserID)
		}
		if err := s.profileRepo.SetVerified(file.UserID); err != nil {
			logger.CtxWarn(ctx, "failed to mark profile verified", "error", err, "user_id", file.UserID)
		}
	case "reject":
		if req.Reason == "" {
			return apperrors.NewBadRequestError("A reason is required when rejecting")
		}
		if err := s.verificationRepo.UpdateReview(fileID, models.FileStatusRejected, reviewerID, req.Reason); err != nil {
			return apperrors.InternalError(err)
		}
		s.downgradeIfNothingActive(ctx, file.UserID)
	default:
		return apperrors.NewBadRequestError("Action must be approve or reject")
	}

	logger.CtxInfo(ctx, "verification reviewed",
		"file_id", fileID, "action", req.Action, "reviewer_id", reviewerID)
	return nil
}

// downgradeIfNothingActive sets the user back to rejected when the last
// pending document was turned down and nothing approved remains.
func (s *VerificationServiceImpl) downgradeIfNothingActive(ctx context.Context, userID string) {
	files, err := s.verificationRepo.FindByUser(userID)
	if err != nil {
		logger.CtxWarn(ctx, "failed to load documents after rejection", "error", err, "user_id", userID)
		return
	}
	for i := range files {
		if files[i].Active() {
			return
		}
	}
	if err := s.userRepo.SetVerificationStatus(userID, models.VerificationRejected); err != nil {
		logger.CtxWarn(ctx, "failed to downgrade verification status", "error", err, "user_id", userID)
	}
}

func allowedMimeType(mime string, allowed []string) bool {
	for _, t := range allowed {
		if t == mime {
			return true
		}
	}
	return false
}

func toVerificationFileResponse(f *models.VerificationFile) *dto.VerificationFileResponse {
	return &dto.VerificationFileResponse{
		ID:              f.ID,
		FileType:        string(f.FileType),
		OriginalName:    f.OriginalName,
		Status:          string(f.Status),
		RejectionReason: f.RejectionReason,
		SubmittedAt:     f.CreatedAt,
		ReviewedAt:      f.ReviewedAt,
	}
}
