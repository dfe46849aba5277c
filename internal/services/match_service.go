package services

import (
	"context"

	"unimatch_backend/internal/logger"
	"unimatch_backend/internal/models"
	"unimatch_backend/internal/repositories"
	"unimatch_backend/internal/services/dto"
	"unimatch_backend/pkg/apperrors"
)

type MatchService interface {
	ListMatches(ctx context.Context, userID string) (*dto.MatchListResponse, error)
}

type MatchServiceImpl struct {
	matchRepo   repositories.MatchRepository
	profileRepo repositories.ProfileRepository
	userRepo    repositories.UserRepository
}

func NewMatchService(
	matchRepo repositories.MatchRepository,
	profileRepo repositories.ProfileRepository,
	userRepo repositories.UserRepository,
) MatchService {
	return &MatchServiceImpl{
		matchRepo:   matchRepo,
		profileRepo: profileRepo,
		userRepo:    userRepo,
	}
}

// ListMatches assembles the match list with two batched lookups: one for
// counterpart profiles, one for counterpart users. A missing profile
// degrades that card to placeholders instead of failing the list.
func (s *MatchServiceImpl) ListMatches(ctx context.Context, userID string) (*dto.MatchListResponse, error) {
	matches, err := s.matchRepo.FindByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	otherIDs := make([]string, 0, len(matches))
	for i := range matches {
		if id := matches[i].OtherUserID(userID); id != "" {
			otherIDs = append(otherIDs, id)
		}
	}

	profilesByUser := make(map[string]*models.Profile, len(otherIDs))
	profiles, err := s.profileRepo.FindByUserIDs(otherIDs)
	if err != nil {
		logger.CtxWarn(ctx, "failed to batch-load match profiles", "error", err, "user_id", userID)
	} else {
		for i := range profiles {
			profilesByUser[profiles[i].UserID] = &profiles[i]
		}
	}

	usersByID := make(map[string]*models.User, len(otherIDs))
	users, err := s.userRepo.FindByIDs(otherIDs)
	if err != nil {
		logger.CtxWarn(ctx, "failed to batch-load match users", "error", err, "user_id", userID)
	} else {
		for i := range users {
			usersByID[users[i].ID] = &users[i]
		}
	}

	resp := &dto.MatchListResponse{
		Matches: make([]dto.MatchResponse, 0, len(matches)),
		Total:   int64(len(matches)),
	}
	for i := range matches {
		m := &matches[i]
		otherID := m.OtherUserID(userID)
		if otherID == "" {
			continue
		}
		resp.Matches = append(resp.Matches,
			buildMatchCard(m, otherID, profilesByUser[otherID], usersByID[otherID]))
	}
	return resp, nil
}

// buildMatchCard renders one anonymous card. Placeholders stand in for a
// counterpart whose profile row is missing.
func buildMatchCard(m *models.Match, otherID string, profile *models.Profile, user *models.User) dto.MatchResponse {
	card := dto.MatchResponse{
		MatchID:       m.ID,
		UserID:        otherID,
		AnonymousName: "Anonymous",
		AvatarEmoji:   genderEmoji(""),
		Age:           0,
		University:    "University",
		MatchedAt:     m.MatchedAt,
	}

	if profile != nil {
		card.AnonymousName = profile.AnonymousName
		card.AvatarEmoji = genderEmoji(profile.Gender)
		card.Age = profile.Age()
		card.University = profile.University
		card.Bio = profile.Bio
		card.Interests = profile.GetInterests()
		card.Verified = profile.IsVerified
	}
	if user != nil && user.VerificationStatus == models.VerificationVerified {
		card.Verified = true
	}
	return card
}

// genderEmoji maps the counterpart's gender to a display emoji for the
// match card.
func genderEmoji(gender models.Gender) string {
	switch gender {
	case models.GenderMale:
		return "👨"
	case models.GenderFemale:
		return "👩"
	case models.GenderNonBinary:
		return "🧑"
	default:
		return "👤"
	}
}
