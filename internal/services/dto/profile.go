package dto

import "time"

type CreateProfileRequest struct {
	RealName    string   `json:"real_name" validate:"required,min=2,max=100"`
	DateOfBirth string   `json:"date_of_birth" validate:"required"` // YYYY-MM-DD
	Gender      string   `json:"gender" validate:"required,oneof=male female non_binary other"`
	University  string   `json:"university" validate:"required,min=2,max=200"`
	Faculty     string   `json:"faculty" validate:"omitempty,max=200"`
	Bio         string   `json:"bio" validate:"required"`
	Interests   []string `json:"interests" validate:"omitempty,max=20,dive,min=1,max=50"`
}

type UpdateProfileRequest struct {
	Bio           *string  `json:"bio,omitempty"`
	Faculty       *string  `json:"faculty,omitempty" validate:"omitempty,max=200"`
	University    *string  `json:"university,omitempty" validate:"omitempty,min=2,max=200"`
	Interests     []string `json:"interests,omitempty" validate:"omitempty,max=20,dive,min=1,max=50"`
	PrefAgeMin    *int     `json:"pref_age_min,omitempty" validate:"omitempty,min=18,max=99"`
	PrefAgeMax    *int     `json:"pref_age_max,omitempty" validate:"omitempty,min=18,max=99"`
	PrefGenders   []string `json:"pref_genders,omitempty" validate:"omitempty,dive,oneof=male female non_binary other"`
	PrefInterests []string `json:"pref_interests,omitempty" validate:"omitempty,max=20,dive,min=1,max=50"`
	IsPublic      *bool    `json:"is_public,omitempty"`
}

// ProfileResponse is the owner-facing view; it includes the private fields
// that are never shown to other users.
type ProfileResponse struct {
	ID            string    `json:"id"`
	AnonymousName string    `json:"anonymous_name"`
	AvatarGlyph   string    `json:"avatar_glyph"`
	RealName      string    `json:"real_name"`
	DateOfBirth   string    `json:"date_of_birth"`
	Age           int       `json:"age"`
	Gender        string    `json:"gender"`
	University    string    `json:"university"`
	Faculty       string    `json:"faculty,omitempty"`
	Bio           string    `json:"bio"`
	Interests     []string  `json:"interests"`
	PrefAgeMin    int       `json:"pref_age_min"`
	PrefAgeMax    int       `json:"pref_age_max"`
	PrefGenders   []string  `json:"pref_genders"`
	PrefInterests []string  `json:"pref_interests"`
	IsPublic      bool      `json:"is_public"`
	IsVerified    bool      `json:"is_verified"`
	CreatedAt     time.Time `json:"created_at"`
}
