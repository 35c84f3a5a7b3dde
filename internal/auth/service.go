package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/frahmantamala/document-management/internal/core/events"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Service is the auth gateway: it composes the credential store, the
// password hasher and the token generator.
type Service struct {
	repo           RepositoryAPI
	tokenGenerator TokenGeneratorAPI
	bcryptCost     int
	eventBus       EventPublisher
	logger         *slog.Logger
}

func NewService(repo RepositoryAPI, tokenGen TokenGeneratorAPI, bcryptCost int, eventBus EventPublisher, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:           repo,
		tokenGenerator: tokenGen,
		bcryptCost:     bcryptCost,
		eventBus:       eventBus,
		logger:         logger,
	}
}

func NewJWTTokenGenerator(secret string, accessTTL time.Duration) *JWTTokenGenerator {
	if accessTTL <= 0 {
		accessTTL = 30 * time.Minute
	}
	return &JWTTokenGenerator{
		Secret:         []byte(secret),
		AccessTokenTTL: accessTTL,
	}
}

// Authenticate validates credentials and mints an access token. Unknown
// email and wrong password both come back as ErrInvalidCredentials so the
// caller cannot enumerate accounts.
func (s *Service) Authenticate(dto LoginDTO) (AuthToken, error) {
	if err := dto.Validate(); err != nil {
		return AuthToken{}, err
	}

	email := NormalizeEmail(dto.Email)

	storedHash, userID, err := s.repo.GetCredentialsByEmail(email)
	if err != nil {
		s.logger.Warn("login failed: email not found", "email", email)
		return AuthToken{}, ErrInvalidCredentials
	}

	if !VerifyPassword(storedHash, dto.Password) {
		s.logger.Warn("login failed: password mismatch", "user_id", userID)
		return AuthToken{}, ErrInvalidCredentials
	}

	accessToken, err := s.tokenGenerator.GenerateAccessToken(email)
	if err != nil {
		return AuthToken{}, fmt.Errorf("generate access token: %w", err)
	}

	return AuthToken{
		AccessToken: accessToken,
		TokenType:   "bearer",
	}, nil
}

// Register hashes the password and persists a new user. A taken email is
// reported as ErrDuplicateEmail, whether caught by the pre-check or by the
// store's uniqueness constraint when two registrations race.
func (s *Service) Register(dto RegisterDTO) (*UserInfo, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	email := NormalizeEmail(dto.Email)

	if _, _, err := s.repo.GetCredentialsByEmail(email); err == nil {
		return nil, ErrDuplicateEmail
	}

	hash, err := HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	info, err := s.repo.CreateUser(dto.Name, email, hash)
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user registered", "user_id", info.ID, "email", info.Email)

	if s.eventBus != nil {
		if err := s.eventBus.Publish(context.Background(), events.NewUserRegisteredEvent(info.ID, info.Email)); err != nil {
			s.logger.Warn("failed to publish user registered event", "user_id", info.ID, "error", err)
		}
	}

	return info, nil
}

// ValidateAccessToken validates an access token and returns its claims.
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateToken(tokenString)
}

// GetUserWithPermissions resolves a token subject to a live user record
// with its global permission set.
func (s *Service) GetUserWithPermissions(email string) (*User, error) {
	return s.repo.GetUserWithPermissions(email)
}

// GenerateAccessToken creates a signed token whose subject is the user's
// email and whose expiry is now plus the configured TTL.
func (j *JWTTokenGenerator) GenerateAccessToken(subject string) (string, error) {
	now := time.Now()

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(j.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.Secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ValidateToken checks signature and expiry. Expired tokens surface as
// ErrTokenExpired for internal logging; every other failure collapses to
// ErrInvalidToken. Callers present both to clients as the same 401.
func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.Secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
