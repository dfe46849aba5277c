package dto

import "time"

// MatchResponse is the anonymous card shown in the match list. When the
// counterpart's profile is missing the display fields fall back to
// placeholders rather than failing the whole list.
type MatchResponse struct {
	MatchID       string    `json:"match_id"`
	UserID        string    `json:"user_id"`
	AnonymousName string    `json:"anonymous_name"`
	AvatarEmoji   string    `json:"avatar_emoji"`
	Age           int       `json:"age"`
	University    string    `json:"university"`
	Bio           string    `json:"bio,omitempty"`
	Interests     []string  `json:"interests,omitempty"`
	Verified      bool      `json:"verified"`
	MatchedAt     time.Time `json:"matched_at"`
}

type MatchListResponse struct {
	Matches []MatchResponse `json:"matches"`
	Total   int64           `json:"total"`
}
