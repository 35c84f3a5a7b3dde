package user_test

import (
	"log/slog"
	"os"
	"testing"

	"github.com/frahmantamala/document-management/internal"
	"github.com/frahmantamala/document-management/internal/auth"
	"github.com/frahmantamala/document-management/internal/user"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

func TestUserService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Service Suite")
}

type MockRepository struct {
	users       map[int64]*user.User
	departments map[int64][]string
	hashes      map[int64]string

	duplicateEmail bool
	updateErr      error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		users:       make(map[int64]*user.User),
		departments: make(map[int64][]string),
		hashes:      make(map[int64]string),
	}
}

func (m *MockRepository) GetByID(userID int64) (*user.User, error) {
	u, ok := m.users[userID]
	if !ok {
		return nil, internal.ErrRecordNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *MockRepository) GetDepartments(userID int64) ([]string, error) {
	return m.departments[userID], nil
}

func (m *MockRepository) GetPasswordHash(userID int64) (string, error) {
	hash, ok := m.hashes[userID]
	if !ok {
		return "", internal.ErrRecordNotFound
	}
	return hash, nil
}

func (m *MockRepository) UpdateProfile(userID int64, name, email *string) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if m.duplicateEmail {
		return internal.ErrDuplicateEmail
	}
	u, ok := m.users[userID]
	if !ok {
		return internal.ErrRecordNotFound
	}
	if name != nil {
		u.Name = *name
	}
	if email != nil {
		u.Email = *email
	}
	return nil
}

func (m *MockRepository) UpdatePassword(userID int64, passwordHash string) error {
	if _, ok := m.hashes[userID]; !ok {
		return internal.ErrRecordNotFound
	}
	m.hashes[userID] = passwordHash
	return nil
}

var _ = Describe("User Service", func() {
	var (
		mockRepo *MockRepository
		service  *user.Service
	)

	addUser := func(id int64, name, email, password string) {
		mockRepo.users[id] = &user.User{ID: id, Name: name, Email: email}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		Expect(err).NotTo(HaveOccurred())
		mockRepo.hashes[id] = string(hash)
	}

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
		service = user.NewService(mockRepo, bcrypt.MinCost, logger)
		addUser(1, "Alice", "alice@example.com", "oldpassword")
	})

	Describe("GetByID", func() {
		It("should merge department names into the profile", func() {
			mockRepo.departments[1] = []string{"Engineering", "Legal"}

			u, err := service.GetByID(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Email).To(Equal("alice@example.com"))
			Expect(u.Departments).To(Equal([]string{"Engineering", "Legal"}))
		})

		It("should return an error for a missing user", func() {
			_, err := service.GetByID(999)
			Expect(err).To(MatchError(internal.ErrRecordNotFound))
		})
	})

	Describe("UpdateProfile", func() {
		It("should update the name", func() {
			name := "Alice Cooper"
			u, err := service.UpdateProfile(1, &user.UpdateProfileDTO{Name: &name})
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Name).To(Equal("Alice Cooper"))
		})

		It("should normalize the new email", func() {
			email := "  ALICE.NEW@Example.COM "
			u, err := service.UpdateProfile(1, &user.UpdateProfileDTO{Email: &email})
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Email).To(Equal("alice.new@example.com"))
		})

		It("should surface a duplicate email", func() {
			mockRepo.duplicateEmail = true
			email := "taken@example.com"
			_, err := service.UpdateProfile(1, &user.UpdateProfileDTO{Email: &email})
			Expect(err).To(MatchError(internal.ErrDuplicateEmail))
		})

		It("should reject an empty update", func() {
			_, err := service.UpdateProfile(1, &user.UpdateProfileDTO{})
			Expect(err).To(HaveOccurred())
			Expect(err).To(BeAssignableToTypeOf(&user.ValidationError{}))
		})

		It("should reject a malformed email", func() {
			email := "not-an-email"
			_, err := service.UpdateProfile(1, &user.UpdateProfileDTO{Email: &email})
			Expect(err).To(BeAssignableToTypeOf(&user.ValidationError{}))
		})
	})

	Describe("UpdatePassword", func() {
		It("should rehash and store the new password", func() {
			err := service.UpdatePassword(1, &user.UpdatePasswordDTO{
				CurrentPassword: "oldpassword",
				NewPassword:     "newpassword",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(auth.VerifyPassword(mockRepo.hashes[1], "newpassword")).To(BeTrue())
			Expect(auth.VerifyPassword(mockRepo.hashes[1], "oldpassword")).To(BeFalse())
		})

		It("should reject a wrong current password", func() {
			err := service.UpdatePassword(1, &user.UpdatePasswordDTO{
				CurrentPassword: "wrong",
				NewPassword:     "newpassword",
			})
			Expect(err).To(MatchError(internal.ErrInvalidCredentials))
		})

		It("should reject a short new password", func() {
			err := service.UpdatePassword(1, &user.UpdatePasswordDTO{
				CurrentPassword: "oldpassword",
				NewPassword:     "short",
			})
			Expect(err).To(BeAssignableToTypeOf(&user.ValidationError{}))
		})
	})
})
