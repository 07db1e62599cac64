package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"inventori/internal/models"
	"inventori/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// Authentication failures surfaced to handlers. Login failures are uniform on
// purpose: callers must not learn whether the username or the password was
// wrong. Token failures are split because the API returns a different message
// for an expired token than for a malformed one.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// AuthService handles registration, login and bearer-token lifecycle.
type AuthService struct {
	userRepo  repositories.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
	devMode   bool
}

// NewAuthService creates a new AuthService. devMode loosens the role
// elevation rule for local development.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, tokenTTL time.Duration, devMode bool) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		devMode:   devMode,
	}
}

// resolveRole applies the elevation rule: the requested role is honored in
// development mode, or for admin when no admin account exists yet. Everyone
// else registers as a regular user.
func (s *AuthService) resolveRole(requested string) (string, error) {
	if requested == "" || requested == models.RoleUser {
		return models.RoleUser, nil
	}
	if s.devMode {
		return requested, nil
	}
	if requested == models.RoleAdmin {
		exists, err := s.userRepo.AdminExists()
		if err != nil {
			return "", fmt.Errorf("failed to check for existing admin: %w", err)
		}
		if !exists {
			return models.RoleAdmin, nil
		}
	}
	return models.RoleUser, nil
}

// Register hashes the password and persists a new user, then issues a token
// so the client is logged in immediately. The unique constraint on username
// decides conflicts; callers see repositories.ErrUsernameTaken.
func (s *AuthService) Register(username, password, requestedRole string) (*models.User, string, error) {
	// Fast-path duplicate check for a friendlier error. The storage
	// constraint still decides under races.
	if existing, err := s.userRepo.GetByUsername(username); err == nil && existing != nil {
		return nil, "", fmt.Errorf("username %q: %w", username, repositories.ErrUsernameTaken)
	}

	role, err := s.resolveRole(requestedRole)
	if err != nil {
		return nil, "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: username,
		Password: string(hashed),
		Role:     role,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, "", err
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login authenticates a user and returns the user plus a fresh token.
func (s *AuthService) Login(username, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			// Same error whether the user is missing or the password is
			// wrong.
			return nil, "", ErrInvalidCredentials
		}
		// Storage failures are not credential failures; let the handler
		// log them and answer 500.
		return nil, "", fmt.Errorf("failed to look up user %q: %w", username, err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// GenerateToken issues an HS256 token carrying the user identity and role.
func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     now.Add(s.tokenTTL).Unix(),
		"iat":     now.Unix(),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and verifies a token, returning the subject user ID.
// Expired tokens fail with ErrTokenExpired, everything else with
// ErrTokenInvalid; the two produce different user-facing messages.
func (s *AuthService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return "", ErrTokenExpired
		}
		log.Printf("Token validation error: %v", err)
		return "", ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrTokenInvalid
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", ErrTokenInvalid
	}
	return userID, nil
}
