package models

import "time"

type User struct {
	BaseModel
	Email              string             `gorm:"uniqueIndex;not null"`
	PasswordHash       string             `gorm:"not null"`
	Role               UserRole           `gorm:"type:varchar(20);not null;default:'user'"`
	Status             UserStatus         `gorm:"type:varchar(20);default:'pending'"`
	EmailVerified      bool               `gorm:"default:false"`
	ActivationToken    string             `gorm:"index"`
	ActivationTokenExp *time.Time
	VerificationStatus VerificationStatus `gorm:"type:varchar(20);default:'unverified'"`
	LastLoginAt        *time.Time

	// Relations
	Profile       *Profile           `gorm:"foreignKey:UserID"`
	Verifications []VerificationFile `gorm:"foreignKey:UserID"`
	RefreshTokens []RefreshToken     `gorm:"foreignKey:UserID"`
}

type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"not null;index"`
	Token     string    `gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
}
