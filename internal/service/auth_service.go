package service

import (
	"errors"
	"fmt"

	"casetrack/internal/model"
	"casetrack/internal/repository"
	"casetrack/pkg/jwt"

	"gorm.io/gorm"
)

var ErrSetupComplete = errors.New("setup is already complete")

type LoginResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
}

type AuthService interface {
	// Setup creates the first admin account. It only works while the
	// user table is empty; afterwards it always fails.
	Setup(username, password string) (*model.UserResponse, error)
	Login(username, password string) (*LoginResponse, error)
	SetupComplete() (bool, error)
}

type authService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) SetupComplete() (bool, error) {
	count, err := s.userRepo.Count()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *authService) Setup(username, password string) (*model.UserResponse, error) {
	done, err := s.SetupComplete()
	if err != nil {
		return nil, err
	}
	if done {
		return nil, ErrSetupComplete
	}
	if username == "" || len(password) < 8 {
		return nil, fmt.Errorf("%w: username required, password must be at least 8 characters", ErrValidation)
	}

	admin := &model.User{
		Username: username,
		Role:     model.RoleAdmin,
		IsActive: true,
	}
	admin.CreatedBy = "setup"
	admin.UpdatedBy = "setup"
	if err := admin.SetPassword(password); err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(admin); err != nil {
		return nil, err
	}

	resp := admin.ToResponse()
	return &resp, nil
}

func (s *authService) Login(username, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	token, err := jwt.GenerateToken(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &LoginResponse{Token: token, User: user.ToResponse()}, nil
}
