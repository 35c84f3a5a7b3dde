package document

import "time"

type Document struct {
	ID          int64     `gorm:"primaryKey"`
	Title       string    `gorm:"column:title;not null"`
	Description *string   `gorm:"column:description"`
	OwnerID     int64     `gorm:"column:owner_id;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;default:now()"`
}

func (Document) TableName() string {
	return "documents"
}

// DocumentVersion rows carry a version_number that is strictly increasing
// per document, starting at 1. The repository assigns the number inside a
// transaction; callers never pick it.
type DocumentVersion struct {
	ID            int64     `gorm:"primaryKey"`
	DocumentID    int64     `gorm:"column:document_id;not null;index"`
	VersionNumber int64     `gorm:"column:version_number;not null"`
	PathURL       string    `gorm:"column:path_url;not null"`
	CreatedAt     time.Time `gorm:"column:created_at;default:now()"`
}

func (DocumentVersion) TableName() string {
	return "document_versions"
}

type TagDocument struct {
	DocumentID int64 `gorm:"column:document_id;primaryKey"`
	TagID      int64 `gorm:"column:tag_id;primaryKey"`
}

func (TagDocument) TableName() string {
	return "tag_documents"
}
