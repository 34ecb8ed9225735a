package services

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/guraspy/personalized-workout-api/logger"
	"github.com/guraspy/personalized-workout-api/models"
	"github.com/guraspy/personalized-workout-api/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Mailer delivers account emails. Failures never block the caller.
type Mailer interface {
	SendWelcomeEmail(ctx context.Context, to, username string) error
}

type RegisterInput struct {
	Username string `json:"username" binding:"required,max=150"`
	Email    string `json:"email" binding:"omitempty,email,max=254"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

var usernameConflict = &ConflictError{
	Field:   "username",
	Message: "A user with that username already exists.",
}

// AuthService owns registration, credential checks and the JWT lifecycle.
type AuthService struct {
	db        *gorm.DB
	tokens    *utils.TokenIssuer
	blacklist TokenBlacklist
	mailer    Mailer
}

func NewAuthService(db *gorm.DB, tokens *utils.TokenIssuer, blacklist TokenBlacklist, mailer Mailer) *AuthService {
	if mailer == nil {
		mailer = utils.NopMailer{}
	}
	return &AuthService{db: db, tokens: tokens, blacklist: blacklist, mailer: mailer}
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	if !usernamePattern.MatchString(username) {
		return nil, invalid("username", "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters.")
	}

	var n int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&n).Error; err != nil {
		return nil, translate(err, "check username", nil)
	}
	if n > 0 {
		return nil, usernameConflict
	}

	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, translate(err, "hash password", nil)
	}
	user := &models.User{Username: username, Email: strings.TrimSpace(in.Email), Password: hashed}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, translate(err, "create user", usernameConflict)
	}
	logger.Info("user registered", zap.Uint("user_id", user.ID), zap.String("username", user.Username))

	if user.Email != "" {
		if err := s.mailer.SendWelcomeEmail(ctx, user.Email, user.Username); err != nil {
			logger.Warn("welcome email failed", zap.Uint("user_id", user.ID), zap.Error(err))
		}
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", strings.TrimSpace(username)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, translate(err, "find user", nil)
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, ErrUnauthorized
	}

	access, _, err := s.tokens.GenerateJWT(user.ID, utils.AccessToken)
	if err != nil {
		return nil, err
	}
	refresh, _, err := s.tokens.GenerateJWT(user.ID, utils.RefreshToken)
	if err != nil {
		return nil, err
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}

// Refresh exchanges a live refresh token for a new access token.
func (s *AuthService) Refresh(ctx context.Context, refresh string) (string, error) {
	claims, err := s.liveRefreshClaims(ctx, refresh)
	if err != nil {
		return "", err
	}
	if claims == nil {
		return "", ErrUnauthorized
	}
	access, _, err := s.tokens.GenerateJWT(claims.UserID, utils.AccessToken)
	return access, err
}

// Logout revokes refresh, which must be a live refresh token issued to userID.
func (s *AuthService) Logout(ctx context.Context, userID uint, refresh string) error {
	invalidToken := invalid("refresh_token", "Invalid token or token not provided.")
	if strings.TrimSpace(refresh) == "" {
		return invalidToken
	}
	claims, err := s.liveRefreshClaims(ctx, refresh)
	if err != nil {
		return err
	}
	if claims == nil || claims.UserID != userID {
		return invalidToken
	}
	if err := s.blacklist.Add(ctx, claims.ID, claims.UserID, claims.ExpiresAt.Time); err != nil {
		return translate(err, "blacklist token", nil)
	}
	logger.Info("refresh token revoked", zap.Uint("user_id", userID), zap.String("jti", claims.ID))
	return nil
}

// Authenticate resolves the user behind an access token.
func (s *AuthService) Authenticate(ctx context.Context, access string) (*models.User, error) {
	claims, err := s.tokens.ParseJWT(access, utils.AccessToken)
	if err != nil {
		return nil, ErrUnauthorized
	}
	var user models.User
	err = s.db.WithContext(ctx).First(&user, claims.UserID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, translate(err, "load user", nil)
	}
	return &user, nil
}

func (s *AuthService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err, "get user", nil)
	}
	return &user, nil
}

// liveRefreshClaims returns nil claims (and no error) when the token is
// malformed, expired, of the wrong type or blacklisted.
func (s *AuthService) liveRefreshClaims(ctx context.Context, refresh string) (*utils.Claims, error) {
	claims, err := s.tokens.ParseJWT(refresh, utils.RefreshToken)
	if err != nil {
		return nil, nil
	}
	revoked, err := s.blacklist.Contains(ctx, claims.ID)
	if err != nil {
		return nil, translate(err, "check blacklist", nil)
	}
	if revoked {
		return nil, nil
	}
	return claims, nil
}
