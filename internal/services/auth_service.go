package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/localnerve/recipedb/internal/config"
	"github.com/localnerve/recipedb/internal/models"
	"github.com/localnerve/recipedb/internal/types"
	"github.com/localnerve/recipedb/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	msgInvalidCredentials = "Invalid credentials"
	msgUsernameTaken      = "Username already taken"
	msgMissingToken       = "Missing token"
	msgInvalidToken       = "Invalid token"
)

// bcrypt ignores input past 72 bytes and x/crypto refuses to hash it
const maxPasswordBytes = 72

// passwordBytes is the bcrypt input for a password, cut to maxPasswordBytes
func passwordBytes(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}

// Principal is the verified identity behind a request
type Principal struct {
	UserID  uint64 `json:"userId"`
	IsAdmin bool   `json:"isAdmin"`
}

// TokenClaims is the signed token payload
type TokenClaims struct {
	UserID  uint64 `json:"userId"`
	IsAdmin bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// Credentials is the register and login request body
type Credentials struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8,max=200"`
}

// LoginResult is returned by a successful login
type LoginResult struct {
	Token string `json:"token"`
}

// AuthService registers users, checks credentials and issues tokens
type AuthService struct {
	secret []byte
	ttl    time.Duration
	cost   int
	now    func() time.Time

	// compared against when the username is unknown so both paths cost a bcrypt
	dummyHash []byte
}

// NewAuthService builds an AuthService from configuration
func NewAuthService(cfg *config.Config) *AuthService {
	s := &AuthService{
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.TokenTTL,
		cost:   cfg.BcryptCost,
		now:    time.Now,
	}
	// Only an out of range cost fails, and bcrypt substitutes its default for that
	s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("recipedb-unknown-user"), s.cost)
	return s
}

// Register creates a non-admin user
func (s *AuthService) Register(db *gorm.DB, in Credentials) (*models.User, error) {
	if err := utils.ValidateStruct(&in); err != nil {
		return nil, err
	}

	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", in.Username).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if count > 0 {
		return nil, types.NewConflictError(msgUsernameTaken)
	}

	hash, err := bcrypt.GenerateFromPassword(passwordBytes(in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{Username: in.Username, PasswordHash: string(hash)}
	if err := db.Create(&user).Error; err != nil {
		// Lost a race with a concurrent register
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, types.NewConflictError(msgUsernameTaken)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// Login checks credentials and issues a signed token.
// Unknown users and wrong passwords fail the same way.
func (s *AuthService) Login(db *gorm.DB, in Credentials) (*LoginResult, error) {
	if in.Username == "" || in.Password == "" {
		return nil, types.NewValidationError("username and password are required")
	}

	var user models.User
	err := db.Where("username = ?", in.Username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, passwordBytes(in.Password))
		return nil, types.NewAuthError(msgInvalidCredentials)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), passwordBytes(in.Password)); err != nil {
		return nil, types.NewAuthError(msgInvalidCredentials)
	}

	token, err := s.IssueToken(Principal{UserID: user.ID, IsAdmin: user.IsAdmin})
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token}, nil
}

// IssueToken signs a token for p valid for the configured TTL
func (s *AuthService) IssueToken(p Principal) (string, error) {
	now := s.now()
	claims := TokenClaims{
		UserID:  p.UserID,
		IsAdmin: p.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken validates a raw token and returns its principal
func (s *AuthService) VerifyToken(raw string) (*Principal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, types.NewAuthError(msgMissingToken)
	}

	var claims TokenClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || claims.UserID == 0 {
		return nil, types.NewAuthError(msgInvalidToken)
	}

	return &Principal{UserID: claims.UserID, IsAdmin: claims.IsAdmin}, nil
}

// ProvisionAdmin creates or updates an admin account, rotating its password hash
func (s *AuthService) ProvisionAdmin(db *gorm.DB, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, types.NewValidationError("admin username and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword(passwordBytes(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var user models.User
	err = db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("username = ?", username).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			user = models.User{Username: username, PasswordHash: string(hash), IsAdmin: true}
			return tx.Create(&user).Error
		}
		if err != nil {
			return err
		}
		user.PasswordHash = string(hash)
		user.IsAdmin = true
		return tx.Model(&user).Select("password_hash", "is_admin").Updates(&user).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to provision admin: %w", err)
	}
	return &user, nil
}
