package models

import "time"

// Media is the record of an uploaded file. The bytes themselves live wherever
// URL points; this table only tracks metadata and ownership.
type Media struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Filename     string    `gorm:"not null" json:"filename"`
	OriginalName string    `gorm:"not null" json:"original_name"`
	MimeType     string    `gorm:"not null" json:"mime_type"`
	Size         int64     `gorm:"not null" json:"size"`
	URL          string    `gorm:"not null" json:"url"`
	Alt          string    `json:"alt"`
	Caption      string    `json:"caption"`
	UploadedByID uint      `gorm:"not null" json:"uploaded_by_id"`
	UploadedBy   User      `gorm:"foreignKey:UploadedByID" json:"uploaded_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
