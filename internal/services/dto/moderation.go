package dto

import "time"

type BlockUserRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
}

type ReportUserRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
	Reason string `json:"reason" validate:"required,min=10,max=1000"`
}

type ReportResponse struct {
	ID         string     `json:"id"`
	ReporterID string     `json:"reporter_id"`
	ReportedID string     `json:"reported_id"`
	Reason     string     `json:"reason"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
}

type ReportListResponse struct {
	Reports []ReportResponse `json:"reports"`
	Total   int64            `json:"total"`
}

type UpdateUserStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active suspended banned"`
}
