package service

import (
	"errors"
	"fmt"

	"casetrack/internal/model"
	"casetrack/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateUserInput struct {
	Username string     `json:"username" validate:"required"`
	Password string     `json:"password" validate:"required,min=8"`
	Role     model.Role `json:"role"`
}

type UserService interface {
	Create(input CreateUserInput, actorID, actorName string) (*model.UserResponse, error)
	Disable(id uuid.UUID, actorID, actorName string) error
	List() ([]model.UserResponse, error)
}

type userService struct {
	userRepo    repository.UserRepository
	historyRepo repository.HistoryRepository
	db          *gorm.DB
}

func NewUserService(userRepo repository.UserRepository, historyRepo repository.HistoryRepository, db *gorm.DB) UserService {
	return &userService{userRepo: userRepo, historyRepo: historyRepo, db: db}
}

func (s *userService) Create(input CreateUserInput, actorID, actorName string) (*model.UserResponse, error) {
	if input.Username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidation)
	}
	if len(input.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}
	if input.Role == "" {
		input.Role = model.RoleStaff
	}
	if !input.Role.Valid() {
		return nil, fmt.Errorf("%w: role must be admin or staff", ErrValidation)
	}
	if _, err := s.userRepo.FindByUsername(input.Username); err == nil {
		return nil, fmt.Errorf("%w: that username already exists", ErrValidation)
	}

	user := &model.User{
		Username: input.Username,
		Role:     input.Role,
		IsActive: true,
	}
	user.CreatedBy = actorID
	user.UpdatedBy = actorID
	if err := user.SetPassword(input.Password); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		rec := &model.HistoryRecord{
			Username: actorName,
			Action:   model.ActionUserCreate,
			Notes:    fmt.Sprintf("Created user %s (%s)", input.Username, input.Role),
		}
		rec.CreatedBy = actorID
		rec.UpdatedBy = actorID
		return s.historyRepo.Create(tx, rec)
	})
	if err != nil {
		return nil, err
	}

	resp := user.ToResponse()
	return &resp, nil
}

func (s *userService) Disable(id uuid.UUID, actorID, actorName string) error {
	if id.String() == actorID {
		return fmt.Errorf("%w: you can't disable yourself", ErrValidation)
	}
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user", ErrNotFound)
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.User{}).Where("id = ?", id).
			Updates(map[string]interface{}{"is_active": false, "updated_by": actorID}).Error; err != nil {
			return err
		}
		rec := &model.HistoryRecord{
			Username: actorName,
			Action:   model.ActionUserDisable,
			Notes:    fmt.Sprintf("Disabled user %s", user.Username),
		}
		rec.CreatedBy = actorID
		rec.UpdatedBy = actorID
		return s.historyRepo.Create(tx, rec)
	})
}

func (s *userService) List() ([]model.UserResponse, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, err
	}
	out := make([]model.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, u.ToResponse())
	}
	return out, nil
}
