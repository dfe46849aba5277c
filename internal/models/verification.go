package models

import "time"

// VerificationFile is one uploaded identity document. At most one active
// (pending or approved) row may exist per (user, file_type); rejected rows
// never block resubmission.
type VerificationFile struct {
	BaseModel
	UserID          string     `gorm:"not null;index"`
	FileType        FileType   `gorm:"type:varchar(30);not null;index"`
	Path            string     `gorm:"not null"`
	OriginalName    string     `gorm:"column:original_name"`
	Size            int64
	MimeType        string
	Status          FileStatus `gorm:"type:varchar(20);default:'pending';index"`
	RejectionReason string     `gorm:"type:text"`
	ReviewedAt      *time.Time
	ReviewedBy      *string `gorm:"type:uuid"`
}

// Active reports whether the row still occupies the (user, file_type) slot.
func (v *VerificationFile) Active() bool {
	return v.Status == FileStatusPending || v.Status == FileStatusApproved
}
