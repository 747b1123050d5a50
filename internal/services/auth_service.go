package services

import (
	"fmt"
	"time"

	"church-admin/internal/models"
	"church-admin/internal/utils"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"

	// Refresh tokens outlive access tokens so clients can stay signed in
	// between visits.
	refreshExpiry = 7 * 24 * time.Hour
)

type AuthService struct {
	users     models.UserRepository
	jwtSecret string
	jwtExpiry time.Duration
}

func NewAuthService(users models.UserRepository, jwtSecret string, jwtExpiry time.Duration) *AuthService {
	return &AuthService{
		users:     users,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
	}
}

// Login returns an access token and a refresh token.
func (s *AuthService) Login(email, password string) (string, string, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		return "", "", err
	}
	if user == nil {
		return "", "", models.NewUnauthorizedError("Incorrect email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", models.NewUnauthorizedError("Incorrect email or password")
	}
	if !user.IsActive {
		return "", "", models.NewValidationError("Inactive user")
	}

	accessToken, err := s.GenerateToken(user)
	if err != nil {
		return "", "", err
	}
	refreshToken, err := s.GenerateRefreshToken(user)
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	return s.signToken(user, tokenTypeAccess, s.jwtExpiry)
}

func (s *AuthService) GenerateRefreshToken(user *models.User) (string, error) {
	return s.signToken(user, tokenTypeRefresh, refreshExpiry)
}

func (s *AuthService) signToken(user *models.User, tokenType string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":     user.Email,
		"user_id": user.ID,
		"role":    user.Role,
		"type":    tokenType,
		"iat":     now.Unix(),
		"exp":     now.Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("error signing token: %v", err)
	}
	return signed, nil
}

// Refresh exchanges a valid refresh token for a new access token.
func (s *AuthService) Refresh(refreshToken string) (string, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(refreshToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return "", models.NewUnauthorizedError("Could not validate credentials")
	}

	tokenType, _ := claims["type"].(string)
	email, _ := claims["sub"].(string)
	if tokenType != tokenTypeRefresh || email == "" {
		return "", models.NewUnauthorizedError("Could not validate credentials")
	}

	user, err := s.users.GetByEmail(email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", models.NewUnauthorizedError("Could not validate credentials")
	}

	return s.GenerateToken(user)
}

func (s *AuthService) CreateUser(email, password, role string, isActive bool) (*models.User, error) {
	existing, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("Email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %v", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     isActive,
	}
	if err := s.users.Save(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Register creates an account and immediately issues an access token.
func (s *AuthService) Register(req *models.RegisterRequest) (*models.User, string, error) {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	user, err := s.CreateUser(req.Email, req.Password, req.Role, isActive)
	if err != nil {
		return nil, "", err
	}

	accessToken, err := s.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}

	utils.Log.Info("user registered", zap.String("email", user.Email), zap.String("role", user.Role))
	return user, accessToken, nil
}

// EnsureAdmin seeds the bootstrap super_admin account when configured and
// absent. Called once at startup.
func (s *AuthService) EnsureAdmin(email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	existing, err := s.users.GetByEmail(email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	if _, err := s.CreateUser(email, password, models.RoleSuperAdmin, true); err != nil {
		return err
	}
	utils.Log.Info("bootstrap admin created", zap.String("email", email))
	return nil
}
