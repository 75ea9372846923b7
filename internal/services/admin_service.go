package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/casadocafe/cardapio-api/internal/models"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AdminService manages administrator accounts. Each account is an
// Administrator row plus an Identity row holding the credentials; the two are
// created and torn down in lockstep with best-effort compensation.
type AdminService interface {
	// List retrieves all administrators, newest first
	List(ctx context.Context) ([]models.Administrator, error)
	// Count returns the number of administrator accounts
	Count(ctx context.Context) (int64, error)
	// HasAny reports whether any administrator exists (bootstrap gate)
	HasAny(ctx context.Context) (bool, error)
	// GetByEmail retrieves an administrator by its login email
	GetByEmail(ctx context.Context, email string) (models.Administrator, error)
	// Create registers a new administrator: identity first, then the record,
	// compensating the identity when the record write fails
	Create(ctx context.Context, name, email, password, confirmPassword string) (models.Administrator, error)
	// Delete removes an administrator; self-deletion is rejected before any
	// storage call
	Delete(ctx context.Context, id, email, sessionEmail string) error
	// Authenticate verifies credentials and stamps the last login time
	Authenticate(ctx context.Context, email, password string) (models.Administrator, error)
}

type adminService struct {
	db *gorm.DB
}

// NewAdminService creates a new instance of AdminService
func NewAdminService(db *gorm.DB) AdminService {
	return &adminService{db: db}
}

func (s *adminService) List(ctx context.Context) ([]models.Administrator, error) {
	var admins []models.Administrator
	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&admins).Error; err != nil {
		return nil, models.NewBackendError("failed to list administrators", err)
	}
	return admins, nil
}

func (s *adminService) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Administrator{}).Count(&count).Error; err != nil {
		return 0, models.NewBackendError("failed to count administrators", err)
	}
	return count, nil
}

func (s *adminService) HasAny(ctx context.Context) (bool, error) {
	count, err := s.Count(ctx)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *adminService) GetByEmail(ctx context.Context, email string) (models.Administrator, error) {
	var admin models.Administrator
	err := s.db.WithContext(ctx).First(&admin, "email = ?", normalizeEmail(email)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Administrator{}, models.NewNotFoundError("administrator not found")
		}
		return models.Administrator{}, models.NewBackendError("failed to load administrator", err)
	}
	return admin, nil
}

func (s *adminService) Create(ctx context.Context, name, email, password, confirmPassword string) (models.Administrator, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	if name == "" || email == "" || password == "" {
		return models.Administrator{}, models.NewValidationError("name, email and password are required")
	}
	if password != confirmPassword {
		return models.Administrator{}, models.NewValidationError("passwords do not match")
	}
	if len(password) < 6 {
		return models.Administrator{}, models.NewValidationError("password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.Administrator{}, models.NewBackendError("failed to hash password", err)
	}

	// Identity first, administrator record second: a record must never exist
	// without a login behind it.
	identity := models.Identity{Email: email, PasswordHash: string(hash)}
	if err := s.db.WithContext(ctx).Create(&identity).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Administrator{}, models.NewConflictError("this email is already registered")
		}
		return models.Administrator{}, models.NewBackendError("failed to create identity", err)
	}

	admin := models.Administrator{Name: name, Email: email}
	if err := s.db.WithContext(ctx).Create(&admin).Error; err != nil {
		// Compensate: drop the just-created identity so no orphaned login
		// remains. Failure here is logged, not surfaced.
		if delErr := s.db.WithContext(ctx).Delete(&models.Identity{}, "id = ?", identity.ID).Error; delErr != nil {
			log.WithError(delErr).WithField("email", email).
				Warn("Failed to remove identity after administrator write failure")
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Administrator{}, models.NewConflictError("this email is already registered")
		}
		return models.Administrator{}, models.NewBackendError("failed to create administrator", err)
	}
	return admin, nil
}

func (s *adminService) Delete(ctx context.Context, id, email, sessionEmail string) error {
	// Guard before any storage call: an administrator cannot remove the
	// account its own session is logged in with.
	if normalizeEmail(email) == normalizeEmail(sessionEmail) {
		return models.NewValidationError("you cannot delete your own account")
	}

	result := s.db.WithContext(ctx).Delete(&models.Administrator{}, "id = ?", id)
	if result.Error != nil {
		return models.NewBackendError("failed to delete administrator", result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("administrator not found")
	}

	// Best-effort removal of the login behind the record.
	if err := s.db.WithContext(ctx).Delete(&models.Identity{}, "email = ?", normalizeEmail(email)).Error; err != nil {
		log.WithError(err).WithField("email", email).
			Warn("Failed to delete identity for removed administrator")
	}
	return nil
}

func (s *adminService) Authenticate(ctx context.Context, email, password string) (models.Administrator, error) {
	email = normalizeEmail(email)

	// The email must belong to an administrator before credentials are even
	// checked; unknown emails get the same answer as bad passwords.
	admin, err := s.GetByEmail(ctx, email)
	if err != nil {
		return models.Administrator{}, models.NewAuthError(models.ErrInvalidCredentials, "invalid email or password")
	}

	var identity models.Identity
	if err := s.db.WithContext(ctx).First(&identity, "email = ?", email).Error; err != nil {
		return models.Administrator{}, models.NewAuthError(models.ErrInvalidCredentials, "invalid email or password")
	}

	if bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password)) != nil {
		return models.Administrator{}, models.NewAuthError(models.ErrInvalidCredentials, "invalid email or password")
	}

	if !identity.EmailConfirmed {
		return models.Administrator{}, models.NewAuthError(models.ErrEmailNotConfirmed,
			"email confirmation required before logging in")
	}

	now := time.Now()
	if err := s.db.WithContext(ctx).Model(&admin).Update("last_login_at", now).Error; err != nil {
		// A failed stamp must not block the login itself.
		log.WithError(err).WithField("email", email).Warn("Failed to update last login time")
	} else {
		admin.LastLoginAt = &now
	}
	return admin, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
