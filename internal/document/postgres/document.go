package postgres

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/frahmantamala/document-management/internal"
	"github.com/frahmantamala/document-management/internal/document"
	documentDatamodel "github.com/frahmantamala/document-management/internal/core/datamodel/document"
	"gorm.io/gorm"
)

// DocumentRepository implements document.Repository using GORM.
type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) document.Repository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Create(doc *document.Document) error {
	record := document.ToDataModel(doc)
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	if err := r.db.Create(record).Error; err != nil {
		return err
	}
	doc.ID = record.ID
	doc.CreatedAt = record.CreatedAt
	return nil
}

func (r *DocumentRepository) GetByID(id int64) (*document.Document, error) {
	var record documentDatamodel.Document
	err := r.db.Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrDocumentNotFound
		}
		return nil, err
	}
	return document.FromDataModel(&record), nil
}

// ListAccessible returns documents the user owns, is directly granted, or
// reaches through a department grant. Paths are unioned in SQL so the
// result needs no in-process merging.
func (r *DocumentRepository) ListAccessible(userID int64, limit, offset int) ([]*document.Document, error) {
	query := `SELECT DISTINCT d.id, d.title, d.description, d.owner_id, d.created_at
	  FROM documents d
	  LEFT JOIN user_document_access uda
	    ON uda.document_id = d.id AND uda.user_id = ?
	  LEFT JOIN department_document_access dda
	    ON dda.document_id = d.id
	  LEFT JOIN user_departments ud
	    ON ud.department_id = dda.department_id AND ud.user_id = ?
	  WHERE d.owner_id = ? OR uda.user_id IS NOT NULL OR ud.user_id IS NOT NULL
	  ORDER BY d.id
	  LIMIT ? OFFSET ?`

	rows, err := r.db.Raw(query, userID, userID, userID, limit, offset).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*document.Document
	for rows.Next() {
		var rec documentDatamodel.Document
		if err := rows.Scan(&rec.ID, &rec.Title, &rec.Description, &rec.OwnerID, &rec.CreatedAt); err != nil {
			return nil, err
		}
		docs = append(docs, document.FromDataModel(&rec))
	}
	return docs, rows.Err()
}

// AddVersion assigns the next version number inside a transaction. The
// unique index on (document_id, version_number) is the backstop if two
// writers race: the loser fails instead of duplicating a number.
func (r *DocumentRepository) AddVersion(documentID int64, pathURL string) (*document.DocumentVersion, error) {
	var record documentDatamodel.DocumentVersion

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var exists int
		row := tx.Raw(`SELECT 1 FROM documents WHERE id = ?`, documentID).Row()
		if err := row.Scan(&exists); err != nil {
			if err == sql.ErrNoRows {
				return internal.ErrDocumentNotFound
			}
			return err
		}

		var nextNumber int64
		row = tx.Raw(`SELECT COALESCE(MAX(version_number), 0) + 1 FROM document_versions WHERE document_id = ?`, documentID).Row()
		if err := row.Scan(&nextNumber); err != nil {
			return err
		}

		record = documentDatamodel.DocumentVersion{
			DocumentID:    documentID,
			VersionNumber: nextNumber,
			PathURL:       pathURL,
			CreatedAt:     time.Now(),
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		return nil, err
	}

	return document.VersionFromDataModel(&record), nil
}

func (r *DocumentRepository) ListVersions(documentID int64) ([]*document.DocumentVersion, error) {
	var records []documentDatamodel.DocumentVersion
	err := r.db.Where("document_id = ?", documentID).
		Order("version_number ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	versions := make([]*document.DocumentVersion, 0, len(records))
	for i := range records {
		versions = append(versions, document.VersionFromDataModel(&records[i]))
	}
	return versions, nil
}

func (r *DocumentRepository) AttachTag(documentID, tagID int64) error {
	record := &documentDatamodel.TagDocument{DocumentID: documentID, TagID: tagID}
	if err := r.db.Create(record).Error; err != nil {
		msg := err.Error()
		if errors.Is(err, gorm.ErrDuplicatedKey) ||
			strings.Contains(msg, "duplicate key") ||
			strings.Contains(msg, "UNIQUE constraint") {
			// attaching an already-attached tag is a no-op
			return nil
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) ||
			strings.Contains(msg, "foreign key") || strings.Contains(msg, "FOREIGN KEY") {
			return internal.ErrRecordNotFound
		}
		return err
	}
	return nil
}

func (r *DocumentRepository) DetachTag(documentID, tagID int64) error {
	return r.db.Where("document_id = ? AND tag_id = ?", documentID, tagID).
		Delete(&documentDatamodel.TagDocument{}).Error
}
