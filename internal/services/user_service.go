package services

import (
	"errors"

	"github.com/icyxonyx/Basic-CRUD/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrEmailTaken is returned when a create or update would break email
	// uniqueness.
	ErrEmailTaken = errors.New("email already registered")
	// ErrUserNotFound is returned when no record matches the given id or
	// email.
	ErrUserNotFound = errors.New("user not found")
)

// UserService is the persistence layer for the user collection.
type UserService interface {
	// CreateUser inserts the record, failing with ErrEmailTaken on a
	// duplicate email.
	CreateUser(user *models.User) error
	// GetUserByEmail looks up a record by exact email match.
	GetUserByEmail(email string) (*models.User, error)
	// GetUserByID looks up a record by its id.
	GetUserByID(id string) (*models.User, error)
	// UpdateUser applies a partial merge; unspecified columns are left
	// untouched. Callers hash passwords before passing them here.
	UpdateUser(id string, updates map[string]any) error
	// DeleteUser removes the record permanently.
	DeleteUser(id string) error
	// GetAllUsers returns every record, newest created first.
	GetAllUsers() ([]models.User, error)
}

type userService struct {
	db *gorm.DB
}

// NewUserService creates a new instance of UserService.
func NewUserService(db *gorm.DB) UserService {
	return &userService{db: db}
}

func (s *userService) CreateUser(user *models.User) error {
	var existing models.User
	if err := s.db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		return ErrEmailTaken
	}
	return s.db.Create(user).Error
}

func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *userService) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *userService) UpdateUser(id string, updates map[string]any) error {
	result := s.db.Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *userService) DeleteUser(id string) error {
	result := s.db.Where("id = ?", id).Delete(&models.User{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *userService) GetAllUsers() ([]models.User, error) {
	var users []models.User
	if err := s.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
