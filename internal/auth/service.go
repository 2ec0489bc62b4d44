package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/database"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/database/models"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/domain"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound       = fmt.Errorf("user %w", domain.ErrNotFound)
	ErrUserExists         = fmt.Errorf("user already exists: %w", domain.ErrConflict)
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWeakPassword       = fmt.Errorf("password must be at least %d characters: %w", MinPasswordLength, domain.ErrInvalidArgument)
)

type Service struct {
	db     *gorm.DB
	jwt    *JWTService
	events Broadcaster
	logger *slog.Logger
}

func NewService(db *gorm.DB, jwt *JWTService, events Broadcaster, logger *slog.Logger) *Service {
	return &Service{db: db, jwt: jwt, events: events, logger: logger}
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

type LoginInput struct {
	Email    string
	Password string
}

type ProfileInput struct {
	Name  string
	Email string
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) Register(ctx context.Context, input RegisterInput) (*AuthResponse, error) {
	input.Email = normalizeEmail(input.Email)
	input.Name = strings.TrimSpace(input.Name)
	if input.Email == "" || input.Name == "" {
		return nil, fmt.Errorf("name and email are required: %w", domain.ErrInvalidArgument)
	}
	if len(input.Password) < MinPasswordLength {
		return nil, ErrWeakPassword
	}

	// Check if user exists
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", input.Email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("checking email: %w", err)
	}
	if count > 0 {
		return nil, ErrUserExists
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := models.User{
		Email:        input.Email,
		PasswordHash: hash,
		Name:         input.Name,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Email, user.Name)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		Token: token,
		User:  &user,
	}, nil
}

func (s *Service) Login(ctx context.Context, input LoginInput) (*AuthResponse, error) {
	var user models.User
	if err := s.db.WithContext(ctx).
		Where("email = ?", normalizeEmail(input.Email)).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !CheckPassword(input.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Email, user.Name)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		Token: token,
		User:  &user,
	}, nil
}

func (s *Service) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateProfile changes the name and/or email. Empty fields are left alone.
func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, input ProfileInput) (*models.User, error) {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if name := strings.TrimSpace(input.Name); name != "" {
		updates["name"] = name
	}
	if email := normalizeEmail(input.Email); email != "" && email != user.Email {
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.User{}).
			Where("email = ? AND id <> ?", email, id).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("checking email: %w", err)
		}
		if count > 0 {
			return nil, ErrUserExists
		}
		updates["email"] = email
	}
	if len(updates) == 0 {
		return user, nil
	}

	if err := s.db.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("updating profile: %w", err)
	}
	return s.GetUserByID(ctx, id)
}

func (s *Service) ChangePassword(ctx context.Context, id uuid.UUID, current, next string) error {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return err
	}
	if !CheckPassword(current, user.PasswordHash) {
		return ErrInvalidCredentials
	}
	if len(next) < MinPasswordLength {
		return ErrWeakPassword
	}

	hash, err := HashPassword(next)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	if err := s.db.WithContext(ctx).Model(user).Update("password_hash", hash).Error; err != nil {
		return fmt.Errorf("updating password: %w", err)
	}
	return nil
}

// DeleteAccount removes the user together with the teams they created, their memberships,
// proposals, votes and notifications.
func (s *Service) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetUserByID(ctx, id); err != nil {
		return err
	}

	var teamIDs []uuid.UUID
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Team{}).Where("creator_id = ?", id).Pluck("id", &teamIDs).Error; err != nil {
			return fmt.Errorf("listing created teams: %w", err)
		}
		return database.DeleteUserCascade(tx, id)
	})
	if err != nil {
		return fmt.Errorf("deleting account: %w", err)
	}

	for _, teamID := range teamIDs {
		s.events.Emit(domain.RoomGlobal, domain.EventTeamDeleted, map[string]any{"teamId": teamID})
	}
	s.logger.Info("account deleted", "user_id", id, "teams_removed", len(teamIDs))
	return nil
}
