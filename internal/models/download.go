package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Download is a document offered on the downloads page (fee structures,
// tenders, circulars).
type Download struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	DocumentID string         `gorm:"type:varchar(36);uniqueIndex" json:"documentId"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Title       string `gorm:"type:varchar(255);not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	FileURL     string `gorm:"type:text;not null" json:"fileUrl"`
	Order       int    `json:"order"`
}

// BeforeCreate assigns the public document id.
func (d *Download) BeforeCreate(tx *gorm.DB) error {
	if d.DocumentID == "" {
		d.DocumentID = uuid.NewString()
	}
	return nil
}

// DefaultDownloads are listed when no downloads store is configured.
func DefaultDownloads() []Download {
	return []Download{
		{Title: "Fees Structure", FileURL: "/pdfs/fees-structure.pdf", Order: 1},
		{Title: "Tenders", FileURL: "/pdfs/tenders.pdf", Order: 2},
	}
}
