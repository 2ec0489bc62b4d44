package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/guru-bharadwaj20/Team-Dashboard/internal/database/models"
)

// Authenticator defines the interface for user authentication operations.
type Authenticator interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResponse, error)
	Login(ctx context.Context, input LoginInput) (*AuthResponse, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// AccountManager covers the self-service profile operations.
type AccountManager interface {
	UpdateProfile(ctx context.Context, id uuid.UUID, input ProfileInput) (*models.User, error)
	ChangePassword(ctx context.Context, id uuid.UUID, current, next string) error
	DeleteAccount(ctx context.Context, id uuid.UUID) error
}

// TokenService defines the interface for JWT token operations.
type TokenService interface {
	GenerateToken(userID uuid.UUID, email, name string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// Broadcaster is the realtime fan-out the service reports deleted teams to.
type Broadcaster interface {
	Emit(room, event string, payload any)
}

// Compile-time interface satisfaction checks
var (
	_ Authenticator  = (*Service)(nil)
	_ AccountManager = (*Service)(nil)
	_ TokenService   = (*JWTService)(nil)
)
