package services

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"unimatch_backend/internal/identity"
	"unimatch_backend/internal/logger"
	"unimatch_backend/internal/models"
	"unimatch_backend/internal/repositories"
	"unimatch_backend/internal/services/dto"
	"unimatch_backend/pkg/apperrors"
)

const (
	bioMinLen = 20
	bioMaxLen = 500
	minAge    = 18
)

type ProfileService interface {
	Create(ctx context.Context, userID string, req *dto.CreateProfileRequest) (*dto.ProfileResponse, error)
	Get(ctx context.Context, userID string) (*dto.ProfileResponse, error)
	Update(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
}

type ProfileServiceImpl struct {
	profileRepo repositories.ProfileRepository
	userRepo    repositories.UserRepository
	generator   *identity.Generator
}

func NewProfileService(profileRepo repositories.ProfileRepository, userRepo repositories.UserRepository, generator *identity.Generator) ProfileService {
	return &ProfileServiceImpl{
		profileRepo: profileRepo,
		userRepo:    userRepo,
		generator:   generator,
	}
}

// Create builds the anonymous profile. The alias and avatar are generated
// server-side; clients never choose them.
func (s *ProfileServiceImpl) Create(ctx context.Context, userID string, req *dto.CreateProfileRequest) (*dto.ProfileResponse, error) {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if err := validateBio(req.Bio); err != nil {
		return nil, err
	}

	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Date of birth must be in YYYY-MM-DD format")
	}
	if ageAt(dob, time.Now()) < minAge {
		return nil, apperrors.NewBadRequestError("You must be at least 18 years old")
	}

	name, err := s.generator.EnsureUnique(s.profileRepo.AnonymousNameExists)
	if err != nil {
		return nil, err
	}

	gender := models.Gender(req.Gender)
	profile := &models.Profile{
		UserID:        userID,
		AnonymousName: name,
		AvatarGlyph:   s.generator.Avatar(gender),
		RealName:      req.RealName,
		DateOfBirth:   dob,
		Gender:        gender,
		University:    req.University,
		Faculty:       req.Faculty,
		Bio:           req.Bio,
		PrefAgeMin:    18,
		PrefAgeMax:    99,
		IsPublic:      true,
	}
	profile.SetInterests(req.Interests)

	if err := s.profileRepo.Create(profile); err != nil {
		if errors.Is(err, repositories.ErrProfileAlreadyExists) {
			return nil, apperrors.ErrProfileAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "profile created", "user_id", userID, "anonymous_name", name)
	return toProfileResponse(profile), nil
}

func (s *ProfileServiceImpl) Get(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return toProfileResponse(profile), nil
}

// Update applies a partial patch. Identity fields (alias, avatar, real name,
// date of birth, gender) are immutable after creation.
func (s *ProfileServiceImpl) Update(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Bio != nil {
		if err := validateBio(*req.Bio); err != nil {
			return nil, err
		}
		profile.Bio = *req.Bio
	}
	if req.University != nil {
		profile.University = *req.University
	}
	if req.Faculty != nil {
		profile.Faculty = *req.Faculty
	}
	if req.Interests != nil {
		profile.SetInterests(req.Interests)
	}
	if req.PrefAgeMin != nil {
		profile.PrefAgeMin = *req.PrefAgeMin
	}
	if req.PrefAgeMax != nil {
		profile.PrefAgeMax = *req.PrefAgeMax
	}
	if profile.PrefAgeMin > profile.PrefAgeMax {
		return nil, apperrors.NewBadRequestError("Minimum preferred age cannot exceed maximum")
	}
	if req.PrefGenders != nil {
		profile.SetPrefGenders(req.PrefGenders)
	}
	if req.PrefInterests != nil {
		profile.SetPrefInterests(req.PrefInterests)
	}
	if req.IsPublic != nil {
		profile.IsPublic = *req.IsPublic
	}

	if err := s.profileRepo.Update(profile); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return toProfileResponse(profile), nil
}

func validateBio(bio string) error {
	n := utf8.RuneCountInString(bio)
	if n < bioMinLen || n > bioMaxLen {
		return apperrors.NewBadRequestError("Bio must be between 20 and 500 characters")
	}
	return nil
}

// ageAt computes full years between dob and now.
func ageAt(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.YearDay() < dob.YearDay() {
		age--
	}
	return age
}

func toProfileResponse(p *models.Profile) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		ID:            p.ID,
		AnonymousName: p.AnonymousName,
		AvatarGlyph:   p.AvatarGlyph,
		RealName:      p.RealName,
		DateOfBirth:   p.DateOfBirth.Format("2006-01-02"),
		Age:           p.Age(),
		Gender:        string(p.Gender),
		University:    p.University,
		Faculty:       p.Faculty,
		Bio:           p.Bio,
		Interests:     p.GetInterests(),
		PrefAgeMin:    p.PrefAgeMin,
		PrefAgeMax:    p.PrefAgeMax,
		PrefGenders:   p.GetPrefGenders(),
		PrefInterests: p.GetPrefInterests(),
		IsPublic:      p.IsPublic,
		IsVerified:    p.IsVerified,
		CreatedAt:     p.CreatedAt,
	}
}
