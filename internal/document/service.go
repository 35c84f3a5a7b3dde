package document

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/document-management/internal"
	"github.com/frahmantamala/document-management/internal/access"
	"github.com/frahmantamala/document-management/internal/core/events"
)

// AccessChecker resolves whether a user holds a permission on a document.
type AccessChecker interface {
	CanAccess(userID, documentID int64, permission string) (bool, error)
}

// GrantManager records access grants; sharing endpoints delegate to it.
type GrantManager interface {
	GrantUserAccess(userID, documentID, roleID int64) error
	GrantDepartmentAccess(departmentID, documentID, roleID int64) error
}

// ObjectStore builds storage paths for version payloads. The store itself
// is external; this service only records the resulting path.
type ObjectStore interface {
	BuildObjectPath(documentID int64, fileName string) string
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type Repository interface {
	Create(doc *Document) error
	GetByID(id int64) (*Document, error)
	ListAccessible(userID int64, limit, offset int) ([]*Document, error)
	AddVersion(documentID int64, pathURL string) (*DocumentVersion, error)
	ListVersions(documentID int64) ([]*DocumentVersion, error)
	AttachTag(documentID, tagID int64) error
	DetachTag(documentID, tagID int64) error
}

type Service struct {
	repo     Repository
	checker  AccessChecker
	grants   GrantManager
	store    ObjectStore
	eventBus EventPublisher
	logger   *slog.Logger
}

func NewService(repo Repository, checker AccessChecker, grants GrantManager, store ObjectStore, eventBus EventPublisher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:     repo,
		checker:  checker,
		grants:   grants,
		store:    store,
		eventBus: eventBus,
		logger:   logger,
	}
}

// CreateDocument persists a new document owned by the caller.
func (s *Service) CreateDocument(ownerID int64, dto CreateDocumentDTO) (*Document, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	doc := &Document{
		Title:       dto.Title,
		Description: dto.Description,
		OwnerID:     ownerID,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.Create(doc); err != nil {
		s.logger.Error("failed to create document", "error", err, "owner_id", ownerID)
		return nil, err
	}

	s.publish(events.NewDocumentCreatedEvent(doc.ID, ownerID, doc.Title))

	s.logger.Info("document created", "document_id", doc.ID, "owner_id", ownerID)
	return doc, nil
}

// GetDocument returns a document when the caller may read it.
func (s *Service) GetDocument(userID, documentID int64) (*Document, error) {
	doc, err := s.repo.GetByID(documentID)
	if err != nil {
		return nil, err
	}

	if err := s.requirePermission(userID, documentID, access.PermissionReadDocument); err != nil {
		return nil, err
	}

	return doc, nil
}

// ListDocuments returns documents the caller can reach: owned, directly
// granted, or granted through a department.
func (s *Service) ListDocuments(userID int64, limit, offset int) ([]*Document, error) {
	docs, err := s.repo.ListAccessible(userID, limit, offset)
	if err != nil {
		s.logger.Error("failed to list documents", "error", err, "user_id", userID)
		return nil, err
	}
	return docs, nil
}

// AddVersion records a new version for a document. The repository assigns
// the next version number; the object store supplies the payload path.
func (s *Service) AddVersion(userID, documentID int64, dto AddVersionDTO) (*DocumentVersion, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if err := s.requirePermission(userID, documentID, access.PermissionWriteDocument); err != nil {
		return nil, err
	}

	pathURL := s.store.BuildObjectPath(documentID, dto.FileName)

	version, err := s.repo.AddVersion(documentID, pathURL)
	if err != nil {
		s.logger.Error("failed to add version", "error", err, "document_id", documentID)
		return nil, err
	}

	s.publish(events.NewDocumentVersionAddedEvent(documentID, version.VersionNumber, pathURL))

	s.logger.Info("version added",
		"document_id", documentID,
		"version_number", version.VersionNumber)
	return version, nil
}

func (s *Service) ListVersions(userID, documentID int64) ([]*DocumentVersion, error) {
	if err := s.requirePermission(userID, documentID, access.PermissionReadDocument); err != nil {
		return nil, err
	}
	return s.repo.ListVersions(documentID)
}

func (s *Service) AttachTag(userID, documentID, tagID int64) error {
	if err := s.requirePermission(userID, documentID, access.PermissionWriteDocument); err != nil {
		return err
	}
	return s.repo.AttachTag(documentID, tagID)
}

func (s *Service) DetachTag(userID, documentID, tagID int64) error {
	if err := s.requirePermission(userID, documentID, access.PermissionWriteDocument); err != nil {
		return err
	}
	return s.repo.DetachTag(documentID, tagID)
}

// GrantUserAccess shares a document with another user. Sharing itself
// requires the share permission, which owners hold implicitly.
func (s *Service) GrantUserAccess(actorID, documentID int64, dto GrantUserAccessDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}
	if err := s.requirePermission(actorID, documentID, access.PermissionShareDocument); err != nil {
		return err
	}
	return s.grants.GrantUserAccess(dto.UserID, documentID, dto.RoleID)
}

func (s *Service) GrantDepartmentAccess(actorID, documentID int64, dto GrantDepartmentAccessDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}
	if err := s.requirePermission(actorID, documentID, access.PermissionShareDocument); err != nil {
		return err
	}
	return s.grants.GrantDepartmentAccess(dto.DepartmentID, documentID, dto.RoleID)
}

func (s *Service) requirePermission(userID, documentID int64, permission string) error {
	allowed, err := s.checker.CanAccess(userID, documentID, permission)
	if err != nil {
		return err
	}
	if !allowed {
		s.logger.Warn("document access denied",
			"user_id", userID,
			"document_id", documentID,
			"permission", permission)
		return internal.ErrUnauthorizedAccess
	}
	return nil
}

// publish delivers lifecycle events best-effort; a bus failure never
// affects the request outcome.
func (s *Service) publish(event events.Event) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(context.Background(), event); err != nil {
		s.logger.Warn("event publish failed", "event_type", event.EventType(), "error", err)
	}
}
