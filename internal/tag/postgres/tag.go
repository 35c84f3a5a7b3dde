package postgres

import (
	tagDatamodel "github.com/frahmantamala/document-management/internal/core/datamodel/tag"
	"github.com/frahmantamala/document-management/internal/tag"
	"gorm.io/gorm"
)

type TagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) tag.RepositoryAPI {
	return &TagRepository{db: db}
}

func (r *TagRepository) GetAll() ([]*tagDatamodel.Tag, error) {
	var tags []*tagDatamodel.Tag
	err := r.db.Order("name ASC").Find(&tags).Error
	return tags, err
}

func (r *TagRepository) GetByID(id int64) (*tagDatamodel.Tag, error) {
	var t tagDatamodel.Tag
	if err := r.db.Where("id = ?", id).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TagRepository) GetByName(name string) (*tagDatamodel.Tag, error) {
	var t tagDatamodel.Tag
	if err := r.db.Where("name = ?", name).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TagRepository) Create(t *tagDatamodel.Tag) error {
	return r.db.Create(t).Error
}
