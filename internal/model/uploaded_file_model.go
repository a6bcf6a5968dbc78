package model

import "time"

const (
	FileStatusPending = "Pending"
	FileStatusDone    = "Done"
	FileStatusFailed  = "Failed"
)

// UploadDateLayout is the calendar-day format used for upload dates.
const UploadDateLayout = "2006-01-02"

type UploadedFile struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	Name       string    `gorm:"type:varchar(512);not null;index" json:"name"`
	UploadDate string    `gorm:"type:varchar(10)" json:"uploadDate"`
	Status     string    `gorm:"type:varchar(20);not null" json:"status"`
	ProjectID  string    `gorm:"type:varchar(36);index" json:"projectId"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
}

func (f *UploadedFile) TableName() string {
	return "uploaded_files"
}
