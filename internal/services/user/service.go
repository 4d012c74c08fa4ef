package user

import (
	"errors"
	"fmt"

	"skyfare/internal/models"
	"skyfare/internal/repositories"
	"skyfare/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidInput = errors.New("invalid user input")
	ErrInvalidRole  = errors.New("unknown role")
)

// RegisterInput carries a registration form submission.
type RegisterInput struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	AgencyName string `json:"agency_name"`
}

type Service interface {
	Register(input RegisterInput) (*models.User, error)
	GetUser(id uint) (*models.User, error)
	ListUsers(offset, limit int) ([]*models.User, int64, error)
	ChangeRole(userID uint, role string) error
	DeleteUser(id uint) error
}

type service struct {
	repo repositories.UserRepository
}

func NewService(repo repositories.UserRepository) Service {
	return &service{
		repo: repo,
	}
}

func (s *service) Register(input RegisterInput) (*models.User, error) {
	v := validation.New()
	v.Required("email", input.Email)
	v.Email("email", input.Email)
	v.Required("name", input.Name)
	v.Required("phone", input.Phone)
	v.Password("password", input.Password)
	if !v.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, v.Errors)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:      input.Email,
		Password:   string(hashedPassword),
		Name:       input.Name,
		Phone:      input.Phone,
		AgencyName: input.AgencyName,
		Role:       models.RoleUser,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) GetUser(id uint) (*models.User, error) {
	return s.repo.GetByID(id)
}

func (s *service) ListUsers(offset, limit int) ([]*models.User, int64, error) {
	return s.repo.List(offset, limit)
}

func (s *service) ChangeRole(userID uint, role string) error {
	if !models.ValidRole(role) {
		return ErrInvalidRole
	}
	if err := s.repo.UpdateRole(userID, role); err != nil {
		return err
	}
	// Role drives permissions and markup resolution; force re-login.
	return s.repo.IncrementTokenVersion(userID)
}

func (s *service) DeleteUser(id uint) error {
	return s.repo.Delete(id)
}
