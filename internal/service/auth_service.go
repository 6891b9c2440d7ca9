package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"learning-service/internal/apperr"
	"learning-service/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// resetCodeTTL bounds how long a recovery code stays valid.
const resetCodeTTL = 10 * time.Minute

// LoginResult carries the signed token together with the claims the client
// needs before its first authenticated request.
type LoginResult struct {
	Token       string      `json:"token"`
	UserID      string      `json:"userId"`
	Name        string      `json:"name"`
	Role        models.Role `json:"role"`
	FirstAccess bool        `json:"firstAccess"`
}

// Claims is the JWT payload issued at login and parsed by the auth
// middleware.
type Claims struct {
	UserID    string      `json:"userId"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	CompanyID string      `json:"companyId"`
	jwt.RegisteredClaims
}

// AuthService owns login, token issuing and the password recovery flow.
// Recovery codes live in an expiring-key store so they survive restarts and
// are shared across instances.
type AuthService struct {
	Users      UserStore
	ResetCodes ResetCodeStore
	Mailer     Mailer
	Logger     *zap.Logger

	JWTSecret []byte
	TokenTTL  time.Duration
}

func NewAuthService(users UserStore, codes ResetCodeStore, mailer Mailer, secret string, tokenTTL time.Duration, logger *zap.Logger) *AuthService {
	return &AuthService{
		Users:      users,
		ResetCodes: codes,
		Mailer:     mailer,
		Logger:     logger,
		JWTSecret:  []byte(secret),
		TokenTTL:   tokenTTL,
	}
}

// Login verifies the credentials and issues a signed token. Wrong email and
// wrong password produce the same answer.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, apperr.InvalidInput("email and password are required")
	}
	user, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		if apperr.From(err) != nil {
			return nil, apperr.Unauthorized("invalid email or password")
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, apperr.Unauthorized("invalid email or password")
	}

	token, err := s.signToken(user)
	if err != nil {
		s.Logger.Error("token signing failed", zap.String("user_id", user.ID), zap.Error(err))
		return nil, apperr.Internal("failed to issue a session token")
	}
	return &LoginResult{
		Token:       token,
		UserID:      user.ID,
		Name:        user.Name,
		Role:        user.Role,
		FirstAccess: user.FirstAccess,
	}, nil
}

func (s *AuthService) signToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:    user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CompanyID: user.CompanyID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.JWTSecret)
}

// ParseToken validates a bearer token and returns its claims.
func (s *AuthService) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.JWTSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.Unauthorized("invalid or expired token")
	}
	return claims, nil
}

// ForgotPassword generates a recovery code and mails it. The response never
// reveals whether the email is registered.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	if email == "" {
		return apperr.InvalidInput("email is required")
	}
	if _, err := s.Users.FindByEmail(ctx, email); err != nil {
		if apperr.From(err) != nil {
			// Unknown address: answer as if the code was sent.
			return nil
		}
		return err
	}

	code, err := newResetCode()
	if err != nil {
		return apperr.Internal("failed to generate a recovery code")
	}
	if err := s.ResetCodes.Set(ctx, email, code, resetCodeTTL); err != nil {
		s.Logger.Error("storing recovery code failed", zap.Error(err))
		return apperr.Internal("failed to start the recovery flow")
	}
	s.Mailer.SendPasswordResetEmail(email, code)
	return nil
}

// ResendCode replaces any outstanding code with a fresh one.
func (s *AuthService) ResendCode(ctx context.Context, email string) error {
	return s.ForgotPassword(ctx, email)
}

// CheckCode verifies a recovery code without consuming it, so the client can
// gate the new-password form.
func (s *AuthService) CheckCode(ctx context.Context, email, code string) error {
	if email == "" || code == "" {
		return apperr.InvalidInput("email and code are required")
	}
	stored, err := s.ResetCodes.Get(ctx, email)
	if err != nil {
		return err
	}
	if stored == "" || stored != code {
		return apperr.Unauthorized("invalid or expired recovery code")
	}
	return nil
}

// ResetPassword consumes a valid recovery code and stores the new password
// hash.
func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if err := s.CheckCode(ctx, email, code); err != nil {
		return err
	}
	if len(newPassword) < 6 {
		return apperr.InvalidInput("password must be at least 6 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Internal("failed to hash the new password")
	}
	if err := s.Users.UpdatePasswordByEmail(ctx, email, string(hash)); err != nil {
		return err
	}
	if err := s.ResetCodes.Delete(ctx, email); err != nil {
		s.Logger.Warn("deleting used recovery code failed", zap.Error(err))
	}
	return nil
}

// SetInitialPassword replaces the temporary password on first access and
// clears the first-access flag. The mailed temporary password must be
// presented again.
func (s *AuthService) SetInitialPassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if len(newPassword) < 6 {
		return apperr.InvalidInput("password must be at least 6 characters")
	}
	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.FirstAccess {
		return apperr.Forbidden("the initial password was already set")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)) != nil {
		return apperr.Unauthorized("current password is incorrect")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Internal("failed to hash the new password")
	}
	return s.Users.UpdatePasswordByID(ctx, userID, string(hash))
}

// newResetCode returns a uniformly random 5 digit code.
func newResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(100000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%05d", n.Int64()), nil
}
