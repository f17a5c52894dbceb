package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aldo2074/UAS-DPM-PRATIKUM-BACKEND/internal/models"
	"github.com/aldo2074/UAS-DPM-PRATIKUM-BACKEND/internal/util"

	"gorm.io/gorm"
)

// UserStore persists user accounts.
type UserStore struct {
	DB *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{DB: db}
}

// FindByUsername looks a user up by exact username.
func (s *UserStore) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("username = ?", strings.TrimSpace(username)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user by username: %w", err)
	}
	return &user, nil
}

// FindByEmail looks a user up by normalized email.
func (s *UserStore) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("email = ?", util.NormalizeEmail(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

func (s *UserStore) FindByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

// Create inserts a new user. Username and email are trimmed (email also
// lowercased); duplicates report ErrDuplicateUsername / ErrDuplicateEmail.
// The pre-checks give precise errors; the unique indexes still back them
// up if two registrations race.
func (s *UserStore) Create(username, passwordHash, name string, email *string) (*models.User, error) {
	username = strings.TrimSpace(username)
	name = strings.TrimSpace(name)
	if username == "" || name == "" || passwordHash == "" {
		return nil, fmt.Errorf("%w: username, password and name are required", ErrInvalidInput)
	}

	if _, err := s.FindByUsername(username); err == nil {
		return nil, ErrDuplicateUsername
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	var normEmail *string
	if email != nil && strings.TrimSpace(*email) != "" {
		e := util.NormalizeEmail(*email)
		if err := util.ValidateEmail(e); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if _, err := s.FindByEmail(e); err == nil {
			return nil, ErrDuplicateEmail
		} else if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		normEmail = &e
	}

	user := models.User{
		Username:     username,
		PasswordHash: passwordHash,
		Name:         name,
		Email:        normEmail,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		if dup := duplicateKeyError(err); dup != nil {
			return nil, dup
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// UpdateProfile replaces name and email. Name must be non-blank; a nil or
// blank email clears the field.
func (s *UserStore) UpdateProfile(id uint, name string, email *string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is empty", ErrInvalidInput)
	}

	user, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	var normEmail *string
	if email != nil && strings.TrimSpace(*email) != "" {
		e := util.NormalizeEmail(*email)
		if err := util.ValidateEmail(e); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if other, err := s.FindByEmail(e); err == nil && other.ID != id {
			return nil, ErrDuplicateEmail
		} else if err != nil && !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		normEmail = &e
	}

	user.Name = name
	user.Email = normEmail
	if err := s.DB.Save(user).Error; err != nil {
		if dup := duplicateKeyError(err); dup != nil {
			return nil, dup
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}

// SetPasswordHash replaces the stored password hash.
func (s *UserStore) SetPasswordHash(id uint, hash string) error {
	res := s.DB.Model(&models.User{}).Where("id = ?", id).Update("password_hash", hash)
	if res.Error != nil {
		return fmt.Errorf("set password hash: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// duplicateKeyError classifies a unique-index violation by the column the
// driver names in the message. Nil when err is not a unique violation.
func duplicateKeyError(err error) error {
	if err == nil {
		return nil
	}
	s := err.Error()
	if !strings.Contains(s, "UNIQUE constraint failed") && !strings.Contains(s, "unique constraint") {
		return nil
	}
	if strings.Contains(s, "email") {
		return ErrDuplicateEmail
	}
	return ErrDuplicateUsername
}
