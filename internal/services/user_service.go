// internal/services/user_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/woocom/woocom-backend/internal/config"
	"github.com/woocom/woocom-backend/internal/models"
	"github.com/woocom/woocom-backend/internal/utils"
)

type UserService struct {
	db  *gorm.DB
	cfg *config.Config
}

type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

func NewUserService(db *gorm.DB, cfg *config.Config) *UserService {
	return &UserService{
		db:  db,
		cfg: cfg,
	}
}

// UpsertUser records a login: the user is created with the default role on
// first sight, and an existing user's role is left untouched. Returns a
// signed access token either way.
func (s *UserService) UpsertUser(email string) (*AuthResponse, error) {
	var user models.User
	now := time.Now()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("email = ?", email).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			user = models.User{
				Email:       email,
				Role:        models.UserRoleUser,
				LastLoginAt: &now,
			}
			return tx.Create(&user).Error
		}
		if err != nil {
			return fmt.Errorf("database error: %w", err)
		}

		return tx.Model(&user).Update("last_login_at", &now).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	token, err := utils.GenerateJWT(user.Email, string(user.Role), s.cfg.JWT.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &AuthResponse{User: &user, Token: token}, nil
}

func (s *UserService) GetUser(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}

func (s *UserService) UpdateProfile(email string, data models.JSONB) (*models.User, error) {
	user, err := s.GetUser(email)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(user).Update("profile_data", data).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

// MakeAdmin promotes a user; reachable only through the owner-guarded route.
func (s *UserService) MakeAdmin(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Model(&user).Update("role", models.UserRoleAdmin).Error; err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	return &user, nil
}

func (s *UserService) ListByRole(role models.UserRole) ([]models.User, error) {
	var users []models.User
	if err := s.db.Where("role = ?", role).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}
	return users, nil
}
