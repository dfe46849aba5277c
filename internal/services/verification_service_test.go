package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"unimatch_backend/internal/models"
	"unimatch_backend/internal/services/dto"
	"unimatch_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type verificationFixture struct {
	userRepo         *fakeUserRepo
	profileRepo      *fakeProfileRepo
	verificationRepo *fakeVerificationRepo
	storage          *fakeStorage
	svc              VerificationService
	userID           string
}

func newVerificationFixture() *verificationFixture {
	setTestConfig()
	f := &verificationFixture{
		userRepo:         newFakeUserRepo(),
		profileRepo:      newFakeProfileRepo(),
		verificationRepo: newFakeVerificationRepo(),
		storage:          newFakeStorage(),
	}
	f.svc = NewVerificationService(f.verificationRepo, f.profileRepo, f.userRepo, f.storage)

	user := f.userRepo.add(&models.User{
		Email:              "alice@uni.edu",
		EmailVerified:      true,
		Status:             models.UserStatusActive,
		VerificationStatus: models.VerificationUnverified,
	})
	f.userID = user.ID
	f.profileRepo.add(&models.Profile{
		UserID:        user.ID,
		AnonymousName: "swiftfox123",
		Gender:        models.GenderFemale,
	})
	return f
}

func uploadInput(fileType string) *UploadInput {
	return &UploadInput{
		FileType:     fileType,
		OriginalName: "student_card.jpg",
		Size:         1024,
		MimeType:     "image/jpeg",
		Reader:       strings.NewReader("fake image bytes"),
	}
}

func TestSubmitVerification(t *testing.T) {
	f := newVerificationFixture()

	resp, err := f.svc.Submit(context.Background(), f.userID, uploadInput("student_id"))
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "student_id", resp.FileType)

	assert.Len(t, f.storage.objects, 1, "document should be stored")

	user, err := f.userRepo.FindByID(f.userID)
	require.NoError(t, err)
	assert.Equal(t, models.VerificationPending, user.VerificationStatus)
}

func TestSubmitVerificationInvalidType(t *testing.T) {
	f := newVerificationFixture()
	_, err := f.svc.Submit(context.Background(), f.userID, uploadInput("passport"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidFileType)
}

func TestSubmitVerificationWithoutProfile(t *testing.T) {
	f := newVerificationFixture()
	stranger := f.userRepo.add(&models.User{Email: "bob@uni.edu"})

	_, err := f.svc.Submit(context.Background(), stranger.ID, uploadInput("student_id"))
	assert.ErrorIs(t, err, apperrors.ErrProfileNotFound)
}

func TestSubmitVerificationTooLarge(t *testing.T) {
	f := newVerificationFixture()
	input := uploadInput("student_id")
	input.Size = 100 * 1024 * 1024

	_, err := f.svc.Submit(context.Background(), f.userID, input)
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeFileTooLarge, appErr.Code)
}

func TestSubmitVerificationBadMimeType(t *testing.T) {
	f := newVerificationFixture()
	input := uploadInput("student_id")
	input.MimeType = "application/zip"

	_, err := f.svc.Submit(context.Background(), f.userID, input)
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.HTTPCode)
}

func TestSubmitVerificationPendingConflict(t *testing.T) {
	f := newVerificationFixture()
	_, err := f.svc.Submit(context.Background(), f.userID, uploadInput("student_id"))
	require.NoError(t, err)

	_, err = f.svc.Submit(context.Background(), f.userID, uploadInput("student_id"))
	assert.ErrorIs(t, err, apperrors.ErrVerificationPending)
}

func TestSubmitVerificationApprovedConflict(t *testing.T) {
	f := newVerificationFixture()
	f.verificationRepo.add(&models.VerificationFile{
		UserID:   f.userID,
		FileType: models.FileTypeStudentID,
		Status:   models.FileStatusApproved,
	})

	_, err := f.svc.Submit(context.Background(), f.userID, uploadInput("student_id"))
	assert.ErrorIs(t, err, apperrors.ErrVerificationApproved)
}

func TestSubmitVerificationAfterRejectionAllowed(t *testing.T) {
	f := newVerificationFixture()
	f.verificationRepo.add(&models.VerificationFile{
		UserID:   f.userID,
		FileType: models.FileTypeStudentID,
		Status:   models.FileStatusRejected,
	})

	_, err := f.svc.Submit(context.Background(), f.userID, uploadInput("student_id"))
	assert.NoError(t, err, "a rejected document must not block resubmission")
}

func TestSubmitVerificationOtherTypeUnaffected(t *testing.T) {
	f := newVerificationFixture()
	_, err := f.svc.Submit(context.Background(), f.userID, uploadInput("student_id"))
	require.NoError(t, err)

	_, err = f.svc.Submit(context.Background(), f.userID, uploadInput("screenshot"))
	assert.NoError(t, err, "the slot rule is per file type")
}

func TestSubmitVerificationCompensatesFailedInsert(t *testing.T) {
	f := newVerificationFixture()
	f.verificationRepo.createErr = assert.AnError

	_, err := f.svc.Submit(context.Background(), f.userID, uploadInput("student_id"))
	require.Error(t, err)
	assert.Len(t, f.storage.deleted, 1, "the stored object should be removed when the insert fails")
	assert.Empty(t, f.storage.objects)
}

func TestGetStatusPropagatesApproval(t *testing.T) {
	f := newVerificationFixture()
	now := time.Now()
	f.verificationRepo.add(&models.VerificationFile{
		UserID:     f.userID,
		FileType:   models.FileTypeStudentID,
		Status:     models.FileStatusApproved,
		ReviewedAt: &now,
	})

	resp, err := f.svc.GetStatus(context.Background(), f.userID)
	require.NoError(t, err)
	assert.True(t, resp.IsVerified)
	assert.Equal(t, "verified", resp.VerificationStatus)

	user, err := f.userRepo.FindByID(f.userID)
	require.NoError(t, err)
	assert.Equal(t, models.VerificationVerified, user.VerificationStatus)

	profile, err := f.profileRepo.FindByUserID(f.userID)
	require.NoError(t, err)
	assert.True(t, profile.IsVerified, "approval should reach the profile flag")
}

func TestGetStatusNewestFirst(t *testing.T) {
	f := newVerificationFixture()
	old := f.verificationRepo.add(&models.VerificationFile{
		UserID:   f.userID,
		FileType: models.FileTypeScreenshot,
		Status:   models.FileStatusRejected,
	})
	old.CreatedAt = time.Now().Add(-time.Hour)
	recent := f.verificationRepo.add(&models.VerificationFile{
		UserID:   f.userID,
		FileType: models.FileTypeStudentID,
		Status:   models.FileStatusPending,
	})

	resp, err := f.svc.GetStatus(context.Background(), f.userID)
	require.NoError(t, err)
	require.Len(t, resp.Files, 2)
	assert.Equal(t, recent.ID, resp.Files[0].ID)
	assert.Equal(t, old.ID, resp.Files[1].ID)
}

func TestReviewApprove(t *testing.T) {
	f := newVerificationFixture()
	file := f.verificationRepo.add(&models.VerificationFile{
		UserID:   f.userID,
		FileType: models.FileTypeStudentID,
		Status:   models.FileStatusPending,
	})
	admin := f.userRepo.add(&models.User{Email: "admin@uni.edu", Role: models.UserRoleAdmin})

	err := f.svc.Review(context.Background(), file.ID, admin.ID, &dto.ReviewVerificationRequest{Action: "approve"})
	require.NoError(t, err)

	reviewed, err := f.verificationRepo.FindByID(file.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FileStatusApproved, reviewed.Status)
	require.NotNil(t, reviewed.ReviewedBy)
	assert.Equal(t, admin.ID, *reviewed.ReviewedBy)

	user, err := f.userRepo.FindByID(f.userID)
	require.NoError(t, err)
	assert.Equal(t, models.VerificationVerified, user.VerificationStatus)
}

func TestReviewReject(t *testing.T) {
	f := newVerificationFixture()
	file := f.verificationRepo.add(&models.VerificationFile{
		UserID:   f.userID,
		FileType: models.FileTypeStudentID,
		Status:   models.FileStatusPending,
	})

	err := f.svc.Review(context.Background(), file.ID, "admin-1", &dto.ReviewVerificationRequest{
		Action: "reject",
		Reason: "Document is unreadable",
	})
	require.NoError(t, err)

	reviewed, err := f.verificationRepo.FindByID(file.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FileStatusRejected, reviewed.Status)
	assert.Equal(t, "Document is unreadable", reviewed.RejectionReason)

	user, err := f.userRepo.FindByID(f.userID)
	require.NoError(t, err)
	assert.Equal(t, models.VerificationRejected, user.VerificationStatus)
}

func TestReviewRejectRequiresReason(t *testing.T) {
	f := newVerificationFixture()
	file := f.verificationRepo.add(&models.VerificationFile{
		UserID:   f.userID,
		FileType: models.FileTypeStudentID,
		Status:   models.FileStatusPending,
	})

	err := f.svc.Review(context.Background(), file.ID, "admin-1", &dto.ReviewVerificationRequest{Action: "reject"})
	require.Error(t, err)
}

func TestReviewTwiceConflicts(t *testing.T) {
	f := newVerificationFixture()
	file := f.verificationRepo.add(&models.VerificationFile{
		UserID:   f.userID,
		FileType: models.FileTypeStudentID,
		Status:   models.FileStatusPending,
	})

	require.NoError(t, f.svc.Review(context.Background(), file.ID, "admin-1", &dto.ReviewVerificationRequest{Action: "approve"}))

	err := f.svc.Review(context.Background(), file.ID, "admin-1", &dto.ReviewVerificationRequest{Action: "approve"})
	assert.ErrorIs(t, err, apperrors.ErrVerificationReviewed)
}

func TestReviewUnknownFile(t *testing.T) {
	f := newVerificationFixture()
	err := f.svc.Review(context.Background(), "missing", "admin-1", &dto.ReviewVerificationRequest{Action: "approve"})
	assert.ErrorIs(t, err, apperrors.ErrVerificationNotFound)
}

func TestListPendingSignsURLs(t *testing.T) {
	f := newVerificationFixture()
	f.verificationRepo.add(&models.VerificationFile{
		UserID:   f.userID,
		FileType: models.FileTypeStudentID,
		Status:   models.FileStatusPending,
		Path:     "verifications/u/student_id/1.jpg",
	})

	resp, err := f.svc.ListPending(context.Background(), 20, 0)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, int64(1), resp.Total)
	assert.Contains(t, resp.Items[0].FileURL, "https://signed.example/")
	assert.Equal(t, "alice@uni.edu", resp.Items[0].UserEmail)
}
