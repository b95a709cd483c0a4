package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/financas-go/apperror"
	"github.com/user/financas-go/config"
)

// bcryptCost is the bcrypt work factor applied to every stored password.
const bcryptCost = 12

// DefaultAssigner links the default category set to a user. The categories
// package provides the implementation; the indirection keeps auth from
// depending on it.
type DefaultAssigner interface {
	AssignDefaultsToUser(ctx context.Context, userID int) error
}

// Service implements registration, login and profile lookup.
type Service struct {
	store      UserStore
	authConfig config.AuthConfig
	defaults   DefaultAssigner
}

// NewService creates a Service. defaults may be nil, in which case new
// users start without any category links.
func NewService(store UserStore, authConfig config.AuthConfig, defaults DefaultAssigner) *Service {
	return &Service{
		store:      store,
		authConfig: authConfig,
		defaults:   defaults,
	}
}

// Claims is the JWT payload: the user id plus the registered claim set.
type Claims struct {
	UserID int `json:"id"`
	jwt.RegisteredClaims
}

// Register creates a new user and returns their identity with a signed
// token. The password is hashed before it reaches the store and is never
// logged. As a side effect the default category set is linked to the new
// user; a failure there is logged but does not fail the registration.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, apperror.NewInternalError("failed to hash password", err)
	}

	user := &User{
		Name:           req.Name,
		Email:          req.Email,
		HashedPassword: string(hashedPassword),
	}

	created, err := s.store.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return nil, apperror.NewConflictError("user already exists", nil)
		}
		return nil, apperror.NewDatabaseError("failed to create user", err)
	}

	if s.defaults != nil {
		if err := s.defaults.AssignDefaultsToUser(ctx, created.ID); err != nil {
			log.Printf("failed to assign default categories to user %d: %v", created.ID, err)
		}
	}

	token, err := s.GenerateToken(created.ID)
	if err != nil {
		return nil, apperror.NewInternalError("failed to generate token", err)
	}

	return &AuthResponse{
		ID:    created.ID,
		Name:  created.Name,
		Email: created.Email,
		Token: token,
	}, nil
}

// Login verifies credentials and returns the user's identity with a signed
// token. Unknown email and wrong password produce the same response, so a
// caller cannot tell which one failed.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperror.NewAuthError("invalid email or password", nil)
		}
		log.Printf("database error fetching user by email: %v", err)
		return nil, apperror.NewDatabaseError("failed to get user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		return nil, apperror.NewAuthError("invalid email or password", nil)
	}

	token, err := s.GenerateToken(user.ID)
	if err != nil {
		return nil, apperror.NewInternalError("failed to generate token", err)
	}

	return &AuthResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Token: token,
	}, nil
}

// GetProfile returns the public profile for a user id.
func (s *Service) GetProfile(ctx context.Context, userID int) (*ProfileResponse, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperror.NewNotFoundError("user not found", nil)
		}
		return nil, apperror.NewDatabaseError("failed to get user", err)
	}
	return &ProfileResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}, nil
}

// GenerateToken signs an HS256 token embedding the user id, valid for the
// configured duration.
func (s *Service) GenerateToken(userID int) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.authConfig.TokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   fmt.Sprintf("%d", userID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.authConfig.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
