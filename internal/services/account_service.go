package services

import (
	"errors"
	"strings"

	"github.com/icyxonyx/Basic-CRUD/internal/auth"
	"github.com/icyxonyx/Basic-CRUD/internal/models"
)

var (
	// ErrInvalidCredentials is returned for both unknown emails and wrong
	// passwords, so a caller cannot tell which part failed.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrValidation is returned when required fields are missing or blank.
	ErrValidation = errors.New("name, email and password are required")
)

// ProfileUpdate carries the optional fields an update may change. Nil
// fields are left untouched. The record id itself is never updatable.
type ProfileUpdate struct {
	Name     *string
	Email    *string
	Password *string
	IsAdmin  *bool
}

// AccountService implements the register/login/self-service/admin flows on
// top of the user store, the password hasher, and the token service.
type AccountService interface {
	// Register creates a new account with a hashed password.
	Register(name, email, password string) (*models.User, error)
	// Authenticate checks credentials and returns a signed token.
	Authenticate(email, password string) (string, error)
	// FetchSelf returns the record for the given subject id.
	FetchSelf(id string) (*models.User, error)
	// UpdateProfile applies a partial update, hashing the password when
	// one is supplied.
	UpdateProfile(id string, update ProfileUpdate) error
	// ListAll returns every account, newest first.
	ListAll() ([]models.User, error)
	// DeleteByID removes an account permanently.
	DeleteByID(id string) error
}

type accountService struct {
	users  UserService
	hasher auth.PasswordHasher
	tokens *auth.TokenService
}

// NewAccountService creates a new instance of AccountService.
func NewAccountService(users UserService, hasher auth.PasswordHasher, tokens *auth.TokenService) AccountService {
	return &accountService{users: users, hasher: hasher, tokens: tokens}
}

func (s *accountService) Register(name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, ErrValidation
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: hashed,
	}
	if err := s.users.CreateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *accountService) Authenticate(email, password string) (string, error) {
	user, err := s.users.GetUserByEmail(strings.TrimSpace(email))
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if !s.hasher.Check(password, user.Password) {
		return "", ErrInvalidCredentials
	}
	return s.tokens.Issue(user.ID)
}

func (s *accountService) FetchSelf(id string) (*models.User, error) {
	return s.users.GetUserByID(id)
}

func (s *accountService) UpdateProfile(id string, update ProfileUpdate) error {
	updates := map[string]any{}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return ErrValidation
		}
		updates["name"] = name
	}
	if update.Email != nil {
		email := strings.TrimSpace(*update.Email)
		if email == "" {
			return ErrValidation
		}
		// Uniqueness is re-checked here so a duplicate surfaces as
		// ErrEmailTaken instead of a driver error.
		if existing, err := s.users.GetUserByEmail(email); err == nil && existing.ID != id {
			return ErrEmailTaken
		}
		updates["email"] = email
	}
	if update.Password != nil {
		if *update.Password == "" {
			return ErrValidation
		}
		hashed, err := s.hasher.Hash(*update.Password)
		if err != nil {
			return err
		}
		updates["password"] = hashed
	}
	if update.IsAdmin != nil {
		updates["is_admin"] = *update.IsAdmin
	}

	if len(updates) == 0 {
		_, err := s.users.GetUserByID(id)
		return err
	}
	return s.users.UpdateUser(id, updates)
}

func (s *accountService) ListAll() ([]models.User, error) {
	return s.users.GetAllUsers()
}

func (s *accountService) DeleteByID(id string) error {
	return s.users.DeleteUser(id)
}
