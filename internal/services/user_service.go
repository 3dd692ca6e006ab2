package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/civixa/civixa-backend/internal/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService covers admin account management. New accounts get a temporary
// password and must change it on first login.
type UserService struct {
	db    *gorm.DB
	audit *AuditRecorder
}

func NewUserService(db *gorm.DB, audit *AuditRecorder) *UserService {
	return &UserService{db: db, audit: audit}
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *UserService) Create(ctx context.Context, name, email, role, tempPassword string, assignedLocationID *uuid.UUID, actor Actor) (*models.User, error) {
	if role != "admin" && role != "moderator" {
		return nil, errors.New("role must be admin or moderator")
	}
	if len(tempPassword) < 8 {
		return nil, errors.New("temporary password must be at least 8 characters")
	}

	var existing models.User
	if err := s.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:                 uuid.New(),
		Name:               name,
		Email:              email,
		Password:           string(hash),
		IsAdmin:            role == "admin",
		IsModerator:        role == "moderator",
		AssignedLocationID: assignedLocationID,
		MustChangePassword: true,
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	locID := uuid.Nil
	if assignedLocationID != nil {
		locID = *assignedLocationID
	}
	action := fmt.Sprintf("User added: %s (%s) as %s", name, email, role)
	if err := s.audit.Record(ctx, action, actor, locID); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) Delete(ctx context.Context, id uuid.UUID, actor Actor) error {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.RefreshToken{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	locID := uuid.Nil
	if user.AssignedLocationID != nil {
		locID = *user.AssignedLocationID
	}
	action := fmt.Sprintf("User removed: %s (%s)", user.Name, user.Email)
	return s.audit.Record(ctx, action, actor, locID)
}
