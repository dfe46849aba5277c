package models

type UserStatus string
type UserRole string
type VerificationStatus string
type FileStatus string
type FileType string
type Gender string
type ReportStatus string

const (
	UserStatusPending   UserStatus = "pending"
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusBanned    UserStatus = "banned"

	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"

	// VerificationStatus tracks identity verification on the user row.
	VerificationUnverified VerificationStatus = "unverified"
	VerificationPending    VerificationStatus = "pending"
	VerificationVerified   VerificationStatus = "verified"
	VerificationRejected   VerificationStatus = "rejected"

	// FileStatus is the per-document state machine. Approved and rejected
	// are terminal; resubmission always creates a new row.
	FileStatusPending  FileStatus = "pending"
	FileStatusApproved FileStatus = "approved"
	FileStatusRejected FileStatus = "rejected"

	FileTypeScreenshot       FileType = "screenshot"
	FileTypeStudentID        FileType = "student_id"
	FileTypeAcademicDocument FileType = "academic_document"

	GenderMale      Gender = "male"
	GenderFemale    Gender = "female"
	GenderNonBinary Gender = "non_binary"
	GenderOther     Gender = "other"

	ReportStatusOpen     ReportStatus = "open"
	ReportStatusResolved ReportStatus = "resolved"
)

// ValidFileType reports whether t is one of the closed document type enum.
func ValidFileType(t FileType) bool {
	switch t {
	case FileTypeScreenshot, FileTypeStudentID, FileTypeAcademicDocument:
		return true
	}
	return false
}
