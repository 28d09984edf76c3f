package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"leadmart/internal/caching"
	"leadmart/internal/models"
	"leadmart/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("a user with that email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTooManyAttempts    = errors.New("too many login attempts, try again later")
)

const (
	loginAttemptLimit  = 5
	loginAttemptWindow = 15 * time.Minute
)

// SessionClaims is the payload of the session cookie token.
type SessionClaims struct {
	AgentID string `json:"agent_id"`
	jwt.RegisteredClaims
}

// AuthService handles account creation and session token management.
type AuthService interface {
	Signup(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	ValidateSession(ctx context.Context, tokenString string) (*SessionClaims, error)
	Logout(ctx context.Context, tokenString string) error
	SessionTTL() time.Duration
}

type authService struct {
	userRepo   repositories.UserRepository
	agentRepo  repositories.AgentRepository
	cacheSvc   caching.CacheService
	secret     []byte
	sessionTTL time.Duration
}

func NewAuthService(userRepo repositories.UserRepository, agentRepo repositories.AgentRepository,
	cacheSvc caching.CacheService, secret string, sessionTTL time.Duration) AuthService {
	return &authService{
		userRepo:   userRepo,
		agentRepo:  agentRepo,
		cacheSvc:   cacheSvc,
		secret:     []byte(secret),
		sessionTTL: sessionTTL,
	}
}

// Signup creates the user account and its agent record. Email uniqueness is
// checked first so the form can re-render with a field error.
func (s *authService) Signup(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, errors.New("email and password are required")
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	agent := &models.Agent{
		ID:     uuid.New(),
		UserID: user.ID,
	}
	if err := s.agentRepo.Create(ctx, agent); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies the credentials and returns a signed session token. Attempts
// are rate limited per email.
func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	limited, err := s.cacheSvc.IsRateLimited(ctx, "login:"+email, loginAttemptLimit, loginAttemptWindow)
	if err == nil && limited {
		return "", ErrTooManyAttempts
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil || user == nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	agent, err := s.agentRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("agent record not found for user: %w", err)
	}

	now := time.Now()
	claims := SessionClaims{
		AgentID: agent.ID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "leadmart",
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// ValidateSession parses the token, verifies the signature and rejects tokens
// revoked by logout.
func (s *authService) ValidateSession(ctx context.Context, tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("session token not valid")
	}

	revoked, err := s.cacheSvc.IsTokenRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, errors.New("session has been logged out")
	}

	return claims, nil
}

// Logout denylists the token id for the remainder of its lifetime.
func (s *authService) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.ValidateSession(ctx, tokenString)
	if err != nil {
		return nil // already unusable, nothing to revoke
	}

	ttl := s.sessionTTL
	if claims.ExpiresAt != nil {
		if remaining := time.Until(claims.ExpiresAt.Time); remaining > 0 {
			ttl = remaining
		}
	}
	return s.cacheSvc.RevokeToken(ctx, claims.ID, ttl)
}

func (s *authService) SessionTTL() time.Duration {
	return s.sessionTTL
}
