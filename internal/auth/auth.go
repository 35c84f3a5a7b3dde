package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// User is the authenticated identity attached to a request context.
type User struct {
	ID          int64    `json:"id"`
	Email       string   `json:"email"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions,omitempty"`
}

func (u *User) HasPermission(permission string) bool {
	for _, p := range u.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

func (u *User) HasAnyPermission(permissions []string) bool {
	for _, userPerm := range u.Permissions {
		for _, requiredPerm := range permissions {
			if userPerm == requiredPerm {
				return true
			}
		}
	}
	return false
}

func (u *User) IsAdmin() bool {
	return u.HasPermission("admin")
}

// UserInfo is the public projection of a user record. The password hash is
// never part of it.
type UserInfo struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthToken is the login response body.
type AuthToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Claims carries the token payload: sub is the user's email, exp the
// absolute expiry instant.
type Claims struct {
	jwt.RegisteredClaims
}

type ServiceAPI interface {
	Authenticate(dto LoginDTO) (AuthToken, error)
	Register(dto RegisterDTO) (*UserInfo, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	GetUserWithPermissions(email string) (*User, error)
}

type RepositoryAPI interface {
	GetCredentialsByEmail(email string) (passwordHash string, userID int64, err error)
	GetUserWithPermissions(email string) (*User, error)
	CreateUser(name, email, passwordHash string) (*UserInfo, error)
}

type TokenGeneratorAPI interface {
	GenerateAccessToken(subject string) (token string, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

// JWTTokenGenerator signs HS256 tokens with a server-held secret.
type JWTTokenGenerator struct {
	Secret         []byte
	AccessTokenTTL time.Duration
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
)

type ctxKey string

const ContextUserKey ctxKey = "user"

func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(ContextUserKey).(*User)
	return u, ok
}

// NormalizeEmail lowercases and trims an email address. Both registration
// and login apply it, so lookups stay case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// VerifyPassword reports whether password matches the bcrypt digest. A
// malformed digest yields false, never an error kind the caller could
// distinguish.
func VerifyPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

// HashPassword creates a salted bcrypt digest. Two calls with the same
// plaintext produce different digests.
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
