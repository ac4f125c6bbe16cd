package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/davidwere/sokoni-api/config"
	"github.com/davidwere/sokoni-api/models"
	"github.com/davidwere/sokoni-api/utils"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

const defaultRole = "user"

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

// Register creates a user. Username and email are each globally unique; a
// clash on either is a conflict.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	var existing models.User
	result := s.db.WithContext(ctx).
		Where("username = ? OR email = ?", req.Username, req.Email).
		Limit(1).Find(&existing)
	if result.Error != nil {
		return models.AuthResponse{}, result.Error
	}
	if result.RowsAffected > 0 {
		return models.AuthResponse{}, conflict("user already exists")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Println("Password hashing error:", err)
		return models.AuthResponse{}, err
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         defaultRole,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return models.AuthResponse{}, err
	}

	return s.toAuthResponse(user)
}

// Login accepts either the username or the email as identifier. Unknown
// identifier and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("username = ? OR email = ?", req.UsernameOrEmail, req.UsernameOrEmail).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.AuthResponse{}, unauthorized("invalid credentials")
		}
		return models.AuthResponse{}, err
	}

	if !utils.VerifyPassword(req.Password, user.PasswordHash) {
		return models.AuthResponse{}, unauthorized("invalid credentials")
	}

	return s.toAuthResponse(user)
}

func (s *AuthService) toAuthResponse(user models.User) (models.AuthResponse, error) {
	token, err := s.generateToken(user)
	if err != nil {
		log.Println("JWT generation error:", err)
		return models.AuthResponse{}, err
	}
	return models.AuthResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
		Token:    token,
	}, nil
}

func (s *AuthService) generateToken(user models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"role":     user.Role,
		"iss":      s.cfg.JWTIssuer,
		"aud":      s.cfg.JWTAudience,
		"iat":      now.Unix(),
		"exp":      now.Add(time.Duration(s.cfg.JWTExpiryMinutes) * time.Minute).Unix(),
	})
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
