package access_test

import (
	"log/slog"
	"os"
	"testing"

	"github.com/frahmantamala/document-management/internal"
	"github.com/frahmantamala/document-management/internal/access"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestAccessService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Access Service Suite")
}

type grantKey struct {
	subjectID  int64
	documentID int64
	permission string
}

// MockRepository implements access.Repository for testing
type MockRepository struct {
	owners           map[int64]int64
	directGrants     map[grantKey]bool
	departmentGrants map[grantKey]bool

	departments []*access.Department
	roles       []*access.Role
	permissions []*access.Permission
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		owners:           make(map[int64]int64),
		directGrants:     make(map[grantKey]bool),
		departmentGrants: make(map[grantKey]bool),
	}
}

func (m *MockRepository) GetDocumentOwner(documentID int64) (int64, error) {
	owner, ok := m.owners[documentID]
	if !ok {
		return 0, internal.ErrDocumentNotFound
	}
	return owner, nil
}

func (m *MockRepository) UserHasDirectGrant(userID, documentID int64, permission string) (bool, error) {
	return m.directGrants[grantKey{userID, documentID, permission}], nil
}

func (m *MockRepository) UserHasDepartmentGrant(userID, documentID int64, permission string) (bool, error) {
	return m.departmentGrants[grantKey{userID, documentID, permission}], nil
}

func (m *MockRepository) CreateDepartment(name string) (*access.Department, error) {
	d := &access.Department{ID: int64(len(m.departments) + 1), Name: name}
	m.departments = append(m.departments, d)
	return d, nil
}

func (m *MockRepository) ListDepartments() ([]*access.Department, error) {
	return m.departments, nil
}

func (m *MockRepository) AddUserToDepartment(userID, departmentID int64) error {
	return nil
}

func (m *MockRepository) CreateRole(name string) (*access.Role, error) {
	r := &access.Role{ID: int64(len(m.roles) + 1), Name: name}
	m.roles = append(m.roles, r)
	return r, nil
}

func (m *MockRepository) ListRoles() ([]*access.Role, error) {
	return m.roles, nil
}

func (m *MockRepository) AssignRoleToUser(userID, roleID int64) error {
	return nil
}

func (m *MockRepository) CreatePermission(name, description string) (*access.Permission, error) {
	p := &access.Permission{ID: int64(len(m.permissions) + 1), Name: name, Description: description}
	m.permissions = append(m.permissions, p)
	return p, nil
}

func (m *MockRepository) ListPermissions() ([]*access.Permission, error) {
	return m.permissions, nil
}

func (m *MockRepository) AttachPermissionToRole(roleID, permissionID int64) error {
	return nil
}

func (m *MockRepository) GrantUserAccess(userID, documentID, roleID int64) error {
	return nil
}

func (m *MockRepository) GrantDepartmentAccess(departmentID, documentID, roleID int64) error {
	return nil
}

var _ = Describe("Access Service", func() {
	var (
		mockRepo *MockRepository
		service  *access.Service
	)

	const (
		ownerID    int64 = 1
		readerID   int64 = 2
		memberID   int64 = 3
		strangerID int64 = 4
		documentID int64 = 10
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = access.NewService(mockRepo, logger)

		mockRepo.owners[documentID] = ownerID
		mockRepo.directGrants[grantKey{readerID, documentID, access.PermissionReadDocument}] = true
		mockRepo.departmentGrants[grantKey{memberID, documentID, access.PermissionReadDocument}] = true
	})

	Describe("CanAccess", func() {
		Context("for the document owner", func() {
			It("should allow every permission without a grant row", func() {
				for _, perm := range []string{
					access.PermissionReadDocument,
					access.PermissionWriteDocument,
					access.PermissionShareDocument,
				} {
					ok, err := service.CanAccess(ownerID, documentID, perm)
					Expect(err).NotTo(HaveOccurred())
					Expect(ok).To(BeTrue(), "owner should hold %s", perm)
				}
			})
		})

		Context("for a user with a direct grant", func() {
			It("should allow the granted permission", func() {
				ok, err := service.CanAccess(readerID, documentID, access.PermissionReadDocument)
				Expect(err).NotTo(HaveOccurred())
				Expect(ok).To(BeTrue())
			})

			It("should deny permissions outside the granted role", func() {
				ok, err := service.CanAccess(readerID, documentID, access.PermissionWriteDocument)
				Expect(err).NotTo(HaveOccurred())
				Expect(ok).To(BeFalse())
			})
		})

		Context("for a user whose department holds a grant", func() {
			It("should allow the granted permission", func() {
				ok, err := service.CanAccess(memberID, documentID, access.PermissionReadDocument)
				Expect(err).NotTo(HaveOccurred())
				Expect(ok).To(BeTrue())
			})
		})

		Context("for a user with no path to the document", func() {
			It("should deny without an error", func() {
				ok, err := service.CanAccess(strangerID, documentID, access.PermissionReadDocument)
				Expect(err).NotTo(HaveOccurred())
				Expect(ok).To(BeFalse())
			})
		})

		Context("for a missing document", func() {
			It("should surface the not-found error", func() {
				_, err := service.CanAccess(ownerID, 999, access.PermissionReadDocument)
				Expect(err).To(MatchError(internal.ErrDocumentNotFound))
			})
		})
	})

	Describe("Grant management", func() {
		It("should create departments through validated DTOs", func() {
			dept, err := service.CreateDepartment(access.CreateDepartmentDTO{Name: "Engineering"})
			Expect(err).NotTo(HaveOccurred())
			Expect(dept.Name).To(Equal("Engineering"))
		})

		It("should reject an empty department name", func() {
			_, err := service.CreateDepartment(access.CreateDepartmentDTO{})
			Expect(err).To(HaveOccurred())
		})

		It("should reject non-positive member IDs", func() {
			err := service.AddUserToDepartment(1, access.AddDepartmentMemberDTO{UserID: 0})
			Expect(err).To(HaveOccurred())
		})

		It("should create roles and permissions", func() {
			role, err := service.CreateRole(access.CreateRoleDTO{Name: "viewer"})
			Expect(err).NotTo(HaveOccurred())
			Expect(role.Name).To(Equal("viewer"))

			perm, err := service.CreatePermission(access.CreatePermissionDTO{Name: "read_document"})
			Expect(err).NotTo(HaveOccurred())
			Expect(perm.Name).To(Equal("read_document"))
		})
	})
})
