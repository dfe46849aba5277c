package models

import "time"

type Block struct {
	BaseModel
	BlockerID string `gorm:"not null;index;uniqueIndex:idx_block_pair"`
	BlockedID string `gorm:"not null;index;uniqueIndex:idx_block_pair"`
}

type Report struct {
	BaseModel
	ReporterID string       `gorm:"not null;index"`
	ReportedID string       `gorm:"not null;index"`
	Reason     string       `gorm:"type:text;not null"`
	Status     ReportStatus `gorm:"type:varchar(20);default:'open';index"`
	ResolvedAt *time.Time
	ResolvedBy *string `gorm:"type:uuid"`
}
