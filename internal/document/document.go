package document

import (
	"time"

	documentDatamodel "github.com/frahmantamala/document-management/internal/core/datamodel/document"
)

// Document is the domain model. The owner is set at creation and never
// reassigned; there is no operation to change it.
type Document struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	OwnerID     int64     `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type DocumentVersion struct {
	ID            int64     `json:"id"`
	DocumentID    int64     `json:"document_id"`
	VersionNumber int64     `json:"version_number"`
	PathURL       string    `json:"path_url"`
	CreatedAt     time.Time `json:"created_at"`
}

func ToDataModel(d *Document) *documentDatamodel.Document {
	return &documentDatamodel.Document{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		OwnerID:     d.OwnerID,
		CreatedAt:   d.CreatedAt,
	}
}

func FromDataModel(d *documentDatamodel.Document) *Document {
	return &Document{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		OwnerID:     d.OwnerID,
		CreatedAt:   d.CreatedAt,
	}
}

func VersionFromDataModel(v *documentDatamodel.DocumentVersion) *DocumentVersion {
	return &DocumentVersion{
		ID:            v.ID,
		DocumentID:    v.DocumentID,
		VersionNumber: v.VersionNumber,
		PathURL:       v.PathURL,
		CreatedAt:     v.CreatedAt,
	}
}
