package models

import "time"

// Match is a symmetric pairing of two users. The application only reads
// matches; rows are written by an external process (see DESIGN.md).
type Match struct {
	BaseModel
	UserAID   string    `gorm:"column:user_a_id;not null;index"`
	UserBID   string    `gorm:"column:user_b_id;not null;index"`
	MatchedAt time.Time `gorm:"not null;index"`
}

// OtherUserID returns the counterpart of userID in the pair, or "" when
// userID is not part of the match.
func (m *Match) OtherUserID(userID string) string {
	switch userID {
	case m.UserAID:
		return m.UserBID
	case m.UserBID:
		return m.UserAID
	}
	return ""
}
