package auth_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/frahmantamala/document-management/internal/auth"
	"golang.org/x/crypto/bcrypt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestAuthService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Service Suite")
}

type mockUser struct {
	id           int64
	name         string
	email        string
	passwordHash string
}

// MockRepository implements auth.RepositoryAPI for testing
type MockRepository struct {
	users      map[string]*mockUser
	nextID     int64
	createErr  error
	duplicates bool
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		users:  make(map[string]*mockUser),
		nextID: 1,
	}
}

func (m *MockRepository) AddUser(name, email, passwordHash string) {
	m.users[email] = &mockUser{
		id:           m.nextID,
		name:         name,
		email:        email,
		passwordHash: passwordHash,
	}
	m.nextID++
}

func (m *MockRepository) GetCredentialsByEmail(email string) (string, int64, error) {
	u, ok := m.users[email]
	if !ok {
		return "", 0, auth.ErrUserNotFound
	}
	return u.passwordHash, u.id, nil
}

func (m *MockRepository) GetUserWithPermissions(email string) (*auth.User, error) {
	u, ok := m.users[email]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	return &auth.User{ID: u.id, Email: u.email, Name: u.name}, nil
}

func (m *MockRepository) CreateUser(name, email, passwordHash string) (*auth.UserInfo, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	if m.duplicates {
		return nil, auth.ErrDuplicateEmail
	}
	m.AddUser(name, email, passwordHash)
	u := m.users[email]
	return &auth.UserInfo{ID: u.id, Name: u.name, Email: u.email, CreatedAt: time.Now()}, nil
}

var _ = Describe("Auth Service", func() {
	var (
		mockRepo *MockRepository
		tokenGen *auth.JWTTokenGenerator
		service  *auth.Service
		logger   *slog.Logger
	)

	const secret = "0123456789abcdef0123456789abcdef"

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		tokenGen = auth.NewJWTTokenGenerator(secret, 30*time.Minute)
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = auth.NewService(mockRepo, tokenGen, bcrypt.MinCost, nil, logger)
	})

	Describe("Authenticate", func() {
		BeforeEach(func() {
			hash, err := auth.HashPassword("correct-password", bcrypt.MinCost)
			Expect(err).NotTo(HaveOccurred())
			mockRepo.AddUser("Alice", "alice@example.com", hash)
		})

		Context("with valid credentials", func() {
			It("should return a bearer token", func() {
				token, err := service.Authenticate(auth.LoginDTO{
					Email:    "alice@example.com",
					Password: "correct-password",
				})
				Expect(err).NotTo(HaveOccurred())
				Expect(token.AccessToken).NotTo(BeEmpty())
				Expect(token.TokenType).To(Equal("bearer"))
			})

			It("should bind the token subject to the user email", func() {
				token, err := service.Authenticate(auth.LoginDTO{
					Email:    "alice@example.com",
					Password: "correct-password",
				})
				Expect(err).NotTo(HaveOccurred())

				claims, err := service.ValidateAccessToken(token.AccessToken)
				Expect(err).NotTo(HaveOccurred())
				Expect(claims.Subject).To(Equal("alice@example.com"))
			})

			It("should normalize the email before lookup", func() {
				_, err := service.Authenticate(auth.LoginDTO{
					Email:    "  ALICE@Example.COM ",
					Password: "correct-password",
				})
				Expect(err).NotTo(HaveOccurred())
			})
		})

		Context("with a wrong password", func() {
			It("should return ErrInvalidCredentials", func() {
				_, err := service.Authenticate(auth.LoginDTO{
					Email:    "alice@example.com",
					Password: "wrong-password",
				})
				Expect(err).To(MatchError(auth.ErrInvalidCredentials))
			})
		})

		Context("with an unknown email", func() {
			It("should return the same ErrInvalidCredentials", func() {
				_, err := service.Authenticate(auth.LoginDTO{
					Email:    "nobody@example.com",
					Password: "correct-password",
				})
				Expect(err).To(MatchError(auth.ErrInvalidCredentials))
			})
		})

		Context("with missing fields", func() {
			It("should return a validation error", func() {
				_, err := service.Authenticate(auth.LoginDTO{Email: "alice@example.com"})
				Expect(err).To(HaveOccurred())
				Expect(errors.Is(err, auth.ErrInvalidCredentials)).To(BeFalse())
			})
		})
	})

	Describe("Register", func() {
		It("should create a user and never expose the password hash", func() {
			info, err := service.Register(auth.RegisterDTO{
				Name:     "Bob",
				Email:    "bob@example.com",
				Password: "long-enough-password",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(info.Email).To(Equal("bob@example.com"))
			Expect(info.ID).To(BeNumerically(">", 0))
		})

		It("should lowercase the stored email", func() {
			info, err := service.Register(auth.RegisterDTO{
				Name:     "Bob",
				Email:    "Bob@Example.com",
				Password: "long-enough-password",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(info.Email).To(Equal("bob@example.com"))
		})

		Context("when the email is already registered", func() {
			BeforeEach(func() {
				hash, _ := auth.HashPassword("whatever1", bcrypt.MinCost)
				mockRepo.AddUser("Existing", "bob@example.com", hash)
			})

			It("should return ErrDuplicateEmail", func() {
				_, err := service.Register(auth.RegisterDTO{
					Name:     "Bob",
					Email:    "bob@example.com",
					Password: "long-enough-password",
				})
				Expect(err).To(MatchError(auth.ErrDuplicateEmail))
			})
		})

		Context("when two registrations race past the pre-check", func() {
			BeforeEach(func() {
				mockRepo.duplicates = true
			})

			It("should surface the constraint violation as ErrDuplicateEmail", func() {
				_, err := service.Register(auth.RegisterDTO{
					Name:     "Bob",
					Email:    "bob@example.com",
					Password: "long-enough-password",
				})
				Expect(err).To(MatchError(auth.ErrDuplicateEmail))
			})
		})

		Context("with a short password", func() {
			It("should return a validation error", func() {
				_, err := service.Register(auth.RegisterDTO{
					Name:     "Bob",
					Email:    "bob@example.com",
					Password: "short",
				})
				Expect(err).To(HaveOccurred())
			})
		})
	})

	Describe("Token verification", func() {
		It("should round-trip a token minted by the same generator", func() {
			token, err := tokenGen.GenerateAccessToken("alice@example.com")
			Expect(err).NotTo(HaveOccurred())

			claims, err := tokenGen.ValidateToken(token)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.Subject).To(Equal("alice@example.com"))
		})

		It("should reject an expired token with ErrTokenExpired", func() {
			expiredGen := auth.NewJWTTokenGenerator(secret, time.Nanosecond)
			token, err := expiredGen.GenerateAccessToken("alice@example.com")
			Expect(err).NotTo(HaveOccurred())

			time.Sleep(10 * time.Millisecond)

			_, err = expiredGen.ValidateToken(token)
			Expect(err).To(MatchError(auth.ErrTokenExpired))
		})

		It("should reject a token signed with a different secret", func() {
			otherGen := auth.NewJWTTokenGenerator("another-secret-another-secret-32", 30*time.Minute)
			token, err := otherGen.GenerateAccessToken("alice@example.com")
			Expect(err).NotTo(HaveOccurred())

			_, err = tokenGen.ValidateToken(token)
			Expect(err).To(MatchError(auth.ErrInvalidToken))
		})

		It("should reject garbage tokens with ErrInvalidToken", func() {
			_, err := tokenGen.ValidateToken("not-a-jwt")
			Expect(err).To(MatchError(auth.ErrInvalidToken))
		})

		It("should reject a token without a subject", func() {
			token, err := tokenGen.GenerateAccessToken("")
			Expect(err).NotTo(HaveOccurred())

			_, err = tokenGen.ValidateToken(token)
			Expect(err).To(MatchError(auth.ErrInvalidToken))
		})
	})

	Describe("Password hashing", func() {
		It("should produce different digests for the same plaintext", func() {
			hash1, err := auth.HashPassword("same-password", bcrypt.MinCost)
			Expect(err).NotTo(HaveOccurred())
			hash2, err := auth.HashPassword("same-password", bcrypt.MinCost)
			Expect(err).NotTo(HaveOccurred())

			Expect(hash1).NotTo(Equal(hash2))
			Expect(auth.VerifyPassword(hash1, "same-password")).To(BeTrue())
			Expect(auth.VerifyPassword(hash2, "same-password")).To(BeTrue())
		})

		It("should return false for a malformed digest", func() {
			Expect(auth.VerifyPassword("not-a-bcrypt-digest", "anything")).To(BeFalse())
		})

		It("should return false for the wrong password", func() {
			hash, err := auth.HashPassword("right", bcrypt.MinCost)
			Expect(err).NotTo(HaveOccurred())
			Expect(auth.VerifyPassword(hash, "wrong")).To(BeFalse())
		})
	})
})
