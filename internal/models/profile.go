package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Profile is the anonymous-facing profile, 1:1 with User. RealName stays
// private; only AnonymousName and AvatarGlyph are exposed to other users.
type Profile struct {
	BaseModel
	UserID        string `gorm:"uniqueIndex;not null"`
	AnonymousName string `gorm:"uniqueIndex;not null"`
	AvatarGlyph   string `gorm:"not null"`
	RealName      string `gorm:"not null"`
	DateOfBirth   time.Time
	Gender        Gender `gorm:"type:varchar(20);not null"`
	University    string `gorm:"not null"`
	Faculty       string
	Bio           string         `gorm:"type:text"`
	Interests     datatypes.JSON `gorm:"type:jsonb"` // ["hiking", "anime"]
	PrefAgeMin    int            `gorm:"default:18"`
	PrefAgeMax    int            `gorm:"default:99"`
	PrefGenders   datatypes.JSON `gorm:"type:jsonb"` // ["male", "female"]
	PrefInterests datatypes.JSON `gorm:"type:jsonb"`
	IsPublic      bool           `gorm:"default:true"`
	IsVerified    bool           `gorm:"default:false"`
}

// Age computes the profile holder's age in full years.
func (p *Profile) Age() int {
	if p.DateOfBirth.IsZero() {
		return 0
	}
	now := time.Now()
	age := now.Year() - p.DateOfBirth.Year()
	if now.YearDay() < p.DateOfBirth.YearDay() {
		age--
	}
	return age
}

func (p *Profile) GetInterests() []string {
	var interests []string
	if len(p.Interests) > 0 {
		_ = json.Unmarshal(p.Interests, &interests)
	}
	return interests
}

func (p *Profile) SetInterests(interests []string) {
	data, _ := json.Marshal(interests)
	p.Interests = datatypes.JSON(data)
}

func (p *Profile) GetPrefGenders() []string {
	var genders []string
	if len(p.PrefGenders) > 0 {
		_ = json.Unmarshal(p.PrefGenders, &genders)
	}
	return genders
}

func (p *Profile) SetPrefGenders(genders []string) {
	data, _ := json.Marshal(genders)
	p.PrefGenders = datatypes.JSON(data)
}

func (p *Profile) GetPrefInterests() []string {
	var interests []string
	if len(p.PrefInterests) > 0 {
		_ = json.Unmarshal(p.PrefInterests, &interests)
	}
	return interests
}

func (p *Profile) SetPrefInterests(interests []string) {
	data, _ := json.Marshal(interests)
	p.PrefInterests = datatypes.JSON(data)
}
