package auth_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"

	"github.com/frahmantamala/document-management/internal/auth"
	"golang.org/x/crypto/bcrypt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Auth Handler", func() {
	var (
		mockRepo *MockRepository
		service  *auth.Service
		handler  *auth.Handler
	)

	const secret = "0123456789abcdef0123456789abcdef"

	login := func(form url.Values) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		handler.Login(rec, req)
		return rec
	}

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		tokenGen := auth.NewJWTTokenGenerator(secret, 30*time.Minute)
		service = auth.NewService(mockRepo, tokenGen, bcrypt.MinCost, nil, nil)
		handler = auth.NewHandler(service)

		hash, err := auth.HashPassword("correct-password", bcrypt.MinCost)
		Expect(err).NotTo(HaveOccurred())
		mockRepo.AddUser("Alice", "alice@example.com", hash)
	})

	Describe("Login", func() {
		It("should accept form-encoded credentials and return a bearer token", func() {
			rec := login(url.Values{
				"email":    {"alice@example.com"},
				"password": {"correct-password"},
			})

			Expect(rec.Code).To(Equal(http.StatusOK))

			var body auth.AuthToken
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body.AccessToken).NotTo(BeEmpty())
			Expect(body.TokenType).To(Equal("bearer"))
		})

		It("should accept username as an alias for email", func() {
			rec := login(url.Values{
				"username": {"alice@example.com"},
				"password": {"correct-password"},
			})

			Expect(rec.Code).To(Equal(http.StatusOK))
		})

		It("should return 401 with a challenge header for bad credentials", func() {
			rec := login(url.Values{
				"email":    {"alice@example.com"},
				"password": {"wrong-password"},
			})

			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(rec.Header().Get("WWW-Authenticate")).To(Equal("Bearer"))
			Expect(rec.Body.String()).To(ContainSubstring("invalid email or password"))
		})

		It("should answer unknown emails exactly like wrong passwords", func() {
			rec := login(url.Values{
				"email":    {"nobody@example.com"},
				"password": {"correct-password"},
			})

			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(rec.Body.String()).To(ContainSubstring("invalid email or password"))
		})

		It("should return 400 when fields are missing", func() {
			rec := login(url.Values{"email": {"alice@example.com"}})
			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("Register", func() {
		register := func(payload map[string]string) *httptest.ResponseRecorder {
			body, _ := json.Marshal(payload)
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			handler.Register(rec, req)
			return rec
		}

		It("should create a user and return its projection", func() {
			rec := register(map[string]string{
				"name":     "Bob",
				"email":    "bob@example.com",
				"password": "long-enough-password",
			})

			Expect(rec.Code).To(Equal(http.StatusCreated))

			var info auth.UserInfo
			Expect(json.Unmarshal(rec.Body.Bytes(), &info)).To(Succeed())
			Expect(info.Email).To(Equal("bob@example.com"))
			Expect(rec.Body.String()).NotTo(ContainSubstring("password"))
		})

		It("should return 409 for a duplicate email", func() {
			rec := register(map[string]string{
				"name":     "Alice Again",
				"email":    "alice@example.com",
				"password": "long-enough-password",
			})

			Expect(rec.Code).To(Equal(http.StatusConflict))
			Expect(rec.Body.String()).To(ContainSubstring("already registered"))
		})

		It("should return 400 for an invalid email", func() {
			rec := register(map[string]string{
				"name":     "Bob",
				"email":    "not-an-email",
				"password": "long-enough-password",
			})

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("AuthMiddleware", func() {
		var protected http.Handler

		BeforeEach(func() {
			protected = handler.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				user, ok := auth.UserFromContext(r.Context())
				Expect(ok).To(BeTrue())
				w.Write([]byte(user.Email))
			}))
		})

		request := func(header string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, req)
			return rec
		}

		It("should pass a valid bearer token through with the user in context", func() {
			token, err := service.Authenticate(auth.LoginDTO{
				Email:    "alice@example.com",
				Password: "correct-password",
			})
			Expect(err).NotTo(HaveOccurred())

			rec := request("Bearer " + token.AccessToken)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(Equal("alice@example.com"))
		})

		It("should name the missing header distinctly", func() {
			rec := request("")
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(rec.Header().Get("WWW-Authenticate")).To(Equal("Bearer"))
			Expect(rec.Body.String()).To(ContainSubstring("authorization header missing"))
		})

		It("should name a wrong scheme distinctly", func() {
			rec := request("Basic abc123")
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(rec.Body.String()).To(ContainSubstring("invalid authorization scheme"))
		})

		It("should collapse bad tokens into one generic message", func() {
			rec := request("Bearer not-a-jwt")
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(rec.Body.String()).To(ContainSubstring("could not validate credentials"))
		})

		It("should collapse expired tokens into the same generic message", func() {
			expiredGen := auth.NewJWTTokenGenerator(secret, time.Nanosecond)
			token, err := expiredGen.GenerateAccessToken("alice@example.com")
			Expect(err).NotTo(HaveOccurred())
			time.Sleep(10 * time.Millisecond)

			rec := request("Bearer " + token)
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(rec.Body.String()).To(ContainSubstring("could not validate credentials"))
		})

		It("should reject tokens whose subject no longer exists", func() {
			gen := auth.NewJWTTokenGenerator(secret, 30*time.Minute)
			token, err := gen.GenerateAccessToken("deleted@example.com")
			Expect(err).NotTo(HaveOccurred())

			rec := request("Bearer " + token)
			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(rec.Body.String()).To(ContainSubstring("could not validate credentials"))
		})
	})
})
