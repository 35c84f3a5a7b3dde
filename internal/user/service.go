package user

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/document-management/internal"
	"github.com/frahmantamala/document-management/internal/auth"
)

type Repository interface {
	GetByID(userID int64) (*User, error)
	GetDepartments(userID int64) ([]string, error)
	GetPasswordHash(userID int64) (string, error)
	UpdateProfile(userID int64, name, email *string) error
	UpdatePassword(userID int64, passwordHash string) error
}

type Service struct {
	repo       Repository
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo Repository, bcryptCost int, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func (s *Service) GetByID(userID int64) (*User, error) {
	u, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	departments, err := s.repo.GetDepartments(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user departments: %w", err)
	}
	u.Departments = departments

	return u, nil
}

func (s *Service) UpdateProfile(userID int64, dto *UpdateProfileDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if dto.Email != nil {
		normalized := auth.NormalizeEmail(*dto.Email)
		dto.Email = &normalized
	}

	if err := s.repo.UpdateProfile(userID, dto.Name, dto.Email); err != nil {
		if errors.Is(err, internal.ErrDuplicateEmail) {
			return nil, internal.ErrDuplicateEmail
		}
		s.logger.Error("failed to update profile", "user_id", userID, "error", err)
		return nil, err
	}

	return s.GetByID(userID)
}

func (s *Service) UpdatePassword(userID int64, dto *UpdatePasswordDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	currentHash, err := s.repo.GetPasswordHash(userID)
	if err != nil {
		s.logger.Error("failed to load password hash", "user_id", userID, "error", err)
		return err
	}

	if !auth.VerifyPassword(currentHash, dto.CurrentPassword) {
		return internal.ErrInvalidCredentials
	}

	newHash, err := auth.HashPassword(dto.NewPassword, s.bcryptCost)
	if err != nil {
		s.logger.Error("failed to hash new password", "user_id", userID, "error", err)
		return err
	}

	if err := s.repo.UpdatePassword(userID, newHash); err != nil {
		s.logger.Error("failed to update password", "user_id", userID, "error", err)
		return err
	}

	s.logger.Info("password updated", "user_id", userID)
	return nil
}
