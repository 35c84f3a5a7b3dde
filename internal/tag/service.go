package tag

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/frahmantamala/document-management/internal"
	tagDatamodel "github.com/frahmantamala/document-management/internal/core/datamodel/tag"
	"gorm.io/gorm"
)

type RepositoryAPI interface {
	GetAll() ([]*tagDatamodel.Tag, error)
	GetByID(id int64) (*tagDatamodel.Tag, error)
	GetByName(name string) (*tagDatamodel.Tag, error)
	Create(tag *tagDatamodel.Tag) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetAllTags() ([]TagResponse, error) {
	dataTags, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to get tags from repository", "error", err)
		return nil, err
	}

	responses := make([]TagResponse, 0, len(dataTags))
	for _, dataTag := range dataTags {
		responses = append(responses, FromDataModel(dataTag).ToResponse())
	}

	return responses, nil
}

func (s *Service) GetTagByID(id int64) (*TagResponse, error) {
	dataTag, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrRecordNotFound
		}
		s.logger.Error("failed to get tag", "tag_id", id, "error", err)
		return nil, err
	}

	response := FromDataModel(dataTag).ToResponse()
	return &response, nil
}

func (s *Service) CreateTag(dto *CreateTagDTO) (*TagResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	name := strings.ToLower(dto.Name)

	existing, err := s.repo.GetByName(name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("failed to check existing tag", "name", name, "error", err)
		return nil, err
	}
	if existing != nil {
		response := FromDataModel(existing).ToResponse()
		return &response, nil
	}

	dataTag := &tagDatamodel.Tag{Name: name}
	if err := s.repo.Create(dataTag); err != nil {
		s.logger.Error("failed to create tag", "name", name, "error", err)
		return nil, err
	}

	s.logger.Info("tag created", "tag_id", dataTag.ID, "name", name)

	response := FromDataModel(dataTag).ToResponse()
	return &response, nil
}
