package dto

import "time"

type VerificationFileResponse struct {
	ID              string     `json:"id"`
	FileType        string     `json:"file_type"`
	OriginalName    string     `json:"original_name,omitempty"`
	Status          string     `json:"status"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	SubmittedAt     time.Time  `json:"submitted_at"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
}

type VerificationStatusResponse struct {
	VerificationStatus string                     `json:"verification_status"`
	IsVerified         bool                       `json:"is_verified"`
	Files              []VerificationFileResponse `json:"files"`
}

type ReviewVerificationRequest struct {
	Action string `json:"action" validate:"required,oneof=approve reject"`
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

// AdminVerificationResponse extends the file view with the submitter and a
// short-lived signed URL for the document itself.
type AdminVerificationResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	UserEmail    string    `json:"user_email,omitempty"`
	FileType     string    `json:"file_type"`
	OriginalName string    `json:"original_name,omitempty"`
	MimeType     string    `json:"mime_type,omitempty"`
	Size         int64     `json:"size"`
	Status       string    `json:"status"`
	FileURL      string    `json:"file_url,omitempty"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

type AdminVerificationListResponse struct {
	Items []AdminVerificationResponse `json:"items"`
	Total int64                       `json:"total"`
}
