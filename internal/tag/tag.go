package tag

import (
	tagDatamodel "github.com/frahmantamala/document-management/internal/core/datamodel/tag"
)

type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (t *Tag) ToResponse() TagResponse {
	return TagResponse{
		ID:   t.ID,
		Name: t.Name,
	}
}

func ToDataModel(t *Tag) *tagDatamodel.Tag {
	return &tagDatamodel.Tag{
		ID:   t.ID,
		Name: t.Name,
	}
}

func FromDataModel(t *tagDatamodel.Tag) *Tag {
	return &Tag{
		ID:   t.ID,
		Name: t.Name,
	}
}
