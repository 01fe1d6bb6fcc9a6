package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/univ-api/internal/models"
	appErrors "github.com/noah-isme/univ-api/pkg/errors"
	"github.com/noah-isme/univ-api/pkg/guard"
	"github.com/noah-isme/univ-api/pkg/mail"
	"github.com/noah-isme/univ-api/pkg/validation"
)

type authUserRepository interface {
	guard.Lookup
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindAccount(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdateLastLogin(ctx context.Context, id string, ts time.Time) error
	UpdatePassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) error
	MarkVerified(ctx context.Context, id string, ts time.Time) error
	RevokeUserRefreshTokens(ctx context.Context, userID string) error
	CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error
	FindRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, id string, revokedAt time.Time) error
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

type mailer interface {
	Send(ctx context.Context, msg mail.Message) error
}

// AuthConfig defines configuration for authentication flows.
type AuthConfig struct {
	AccessTokenSecret  string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
	VerifyTokenExpiry  time.Duration
	ResetTokenExpiry   time.Duration
	Issuer             string
	SingleSession      bool
	// LinkBase prefixes the verification and reset links sent by email.
	LinkBase string
}

// AuthService provides authentication use cases.
type AuthService struct {
	repo      authUserRepository
	mail      mailer
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
	now       func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(repo authUserRepository, sender mailer, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validation.New()
	}
	if config.VerifyTokenExpiry <= 0 {
		config.VerifyTokenExpiry = 24 * time.Hour
	}
	if config.ResetTokenExpiry <= 0 {
		config.ResetTokenExpiry = 10 * time.Minute
	}
	return &AuthService{repo: repo, mail: sender, validator: validate, logger: logger, config: config, now: time.Now}
}

// Signup registers an unverified account and emails a verification link.
func (s *AuthService) Signup(ctx context.Context, req models.SignupRequest) (*models.User, error) {
	req.Email = guard.Lower(req.Email)
	if err := s.validator.Struct(req); err != nil {
		return nil, validation.Error(err, "invalid signup payload")
	}

	role := req.Role
	if role == "" {
		role = models.RoleStudent
	}
	user := &models.User{
		Firstname: guard.Trim(req.Firstname),
		Lastname:  guard.Trim(req.Lastname),
		Email:     req.Email,
		Phone:     guard.Trim(req.Phone),
		Role:      role,
	}
	if err := models.UserConstraints.Check(ctx, s.repo, "", user); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}
	user.PasswordHash = string(hash)

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create user")
	}

	s.sendVerification(ctx, user)
	s.audit(ctx, user.ID, models.AuditActionSignup, req.IP, req.UserAgent)
	return user, nil
}

// VerifyEmail marks the account named by a verification token as verified.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	claims, err := s.parseAction(token, models.PurposeVerifyEmail, nil)
	if err != nil {
		return err
	}
	if err := s.repo.MarkVerified(ctx, claims.UserID, s.now().UTC()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "User not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to verify account")
	}
	s.audit(ctx, claims.UserID, models.AuditActionVerify, "", "")
	return nil
}

// ResendVerification issues a fresh verification link for an unverified account.
func (s *AuthService) ResendVerification(ctx context.Context, req models.EmailRequest) error {
	user, err := s.accountByEmail(ctx, req)
	if err != nil {
		return err
	}
	if user == nil {
		return appErrors.Clone(appErrors.ErrNotFound, "User not found")
	}
	if user.IsVerified {
		return appErrors.Clone(appErrors.ErrValidation, "Account is already verified")
	}
	s.sendVerification(ctx, user)
	return nil
}

// Login authenticates a user and returns issued tokens.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	req.Email = guard.Lower(req.Email)
	if err := s.validator.Struct(req); err != nil {
		return nil, validation.Error(err, "invalid login payload")
	}

	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid email or password")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid email or password")
	}
	if !user.IsVerified {
		return nil, appErrors.Clone(appErrors.ErrUnverifiedAccount, "please verify your email first")
	}

	if s.config.SingleSession {
		if err := s.repo.RevokeUserRefreshTokens(ctx, user.ID); err != nil {
			s.logger.Warn("failed to revoke previous refresh tokens", zap.Error(err))
		}
	}

	accessToken, refreshToken, err := s.issueSession(ctx, user, req.IP, req.UserAgent)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateLastLogin(ctx, user.ID, s.now().UTC()); err != nil {
		s.logger.Warn("failed to update last login", zap.Error(err))
	}
	s.audit(ctx, user.ID, models.AuditActionLogin, req.IP, req.UserAgent)

	return &models.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.config.AccessTokenExpiry.Seconds()),
		IssuedAt:     s.now().UTC(),
		User:         userInfo(user),
	}, nil
}

// RefreshToken exchanges a refresh token for a new access token pair. The used token is revoked.
func (s *AuthService) RefreshToken(ctx context.Context, req models.RefreshTokenRequest) (*models.RefreshTokenResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validation.Error(err, "invalid refresh payload")
	}

	stored, err := s.repo.FindRefreshToken(ctx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "refresh token not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch refresh token")
	}
	if !stored.Active(s.now().UTC()) {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "refresh token is expired or revoked")
	}

	user, err := s.repo.FindAccount(ctx, stored.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "associated user no longer exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}

	if err := s.repo.RevokeRefreshToken(ctx, stored.ID, s.now().UTC()); err != nil {
		s.logger.Warn("failed to revoke used refresh token", zap.Error(err))
	}

	accessToken, refreshToken, err := s.issueSession(ctx, user, req.IP, req.UserAgent)
	if err != nil {
		return nil, err
	}
	s.audit(ctx, user.ID, models.AuditActionRefresh, req.IP, req.UserAgent)

	return &models.RefreshTokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.config.AccessTokenExpiry.Seconds()),
		IssuedAt:     s.now().UTC(),
	}, nil
}

// Logout revokes the provided refresh token.
func (s *AuthService) Logout(ctx context.Context, refreshToken, userID, ip, userAgent string) error {
	stored, err := s.repo.FindRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrUnauthorized, "refresh token not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load refresh token")
	}
	if stored.UserID != userID {
		return appErrors.Clone(appErrors.ErrForbidden, "token does not belong to user")
	}

	if err := s.repo.RevokeRefreshToken(ctx, stored.ID, s.now().UTC()); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to revoke refresh token")
	}
	s.audit(ctx, userID, models.AuditActionLogout, ip, userAgent)
	return nil
}

// Profile returns the authenticated account.
func (s *AuthService) Profile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repo.FindAccount(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "User not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}
	return user, nil
}

// ChangePassword changes the password for the given user ID and ends every session.
func (s *AuthService) ChangePassword(ctx context.Context, userID string, req models.ChangePasswordRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return validation.Error(err, "invalid change password payload")
	}

	user, err := s.Profile(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		return appErrors.Clone(appErrors.ErrForbidden, "old password does not match")
	}
	if err := s.setPassword(ctx, userID, req.NewPassword); err != nil {
		return err
	}
	s.audit(ctx, userID, models.AuditActionPasswordChange, "", "")
	return nil
}

// ForgotPassword emails a reset link. Unknown addresses succeed silently.
func (s *AuthService) ForgotPassword(ctx context.Context, req models.EmailRequest) error {
	user, err := s.accountByEmail(ctx, req)
	if err != nil {
		return err
	}
	if user == nil {
		s.logger.Info("password reset requested for unknown email")
		return nil
	}

	token, err := s.signAction(user, models.PurposeResetPassword, s.config.ResetTokenExpiry, s.resetKey(user))
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create reset token")
	}
	msg := mail.PasswordResetMessage(user.Email, user.Firstname, s.config.LinkBase+"/auth/reset-password/"+token)
	if err := s.mail.Send(ctx, msg); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to send reset email")
	}
	return nil
}

// ResetPassword completes the reset flow. A reset token stops working once the password changes.
func (s *AuthService) ResetPassword(ctx context.Context, req models.ConfirmResetPasswordRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return validation.Error(err, "invalid reset password payload")
	}

	claims, err := s.parseAction(req.Token, models.PurposeResetPassword, func(c *models.ActionClaims) ([]byte, error) {
		user, err := s.repo.FindAccount(ctx, c.UserID)
		if err != nil {
			return nil, err
		}
		return s.resetKey(user), nil
	})
	if err != nil {
		return err
	}

	if err := s.setPassword(ctx, claims.UserID, req.NewPassword); err != nil {
		return err
	}
	s.audit(ctx, claims.UserID, models.AuditActionPasswordReset, "", "")
	return nil
}

// ValidateToken parses and validates an access token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.AccessTokenSecret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	return claims, nil
}

func (s *AuthService) accountByEmail(ctx context.Context, req models.EmailRequest) (*models.User, error) {
	req.Email = guard.Lower(req.Email)
	if err := s.validator.Struct(req); err != nil {
		return nil, validation.Error(err, "invalid email payload")
	}
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch user")
	}
	return user, nil
}

func (s *AuthService) setPassword(ctx context.Context, userID, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}
	if err := s.repo.UpdatePassword(ctx, userID, string(hash), s.now().UTC()); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update password")
	}
	if err := s.repo.RevokeUserRefreshTokens(ctx, userID); err != nil {
		s.logger.Warn("failed to revoke refresh tokens after password change", zap.Error(err))
	}
	return nil
}

// sendVerification never fails the caller; delivery problems are logged.
func (s *AuthService) sendVerification(ctx context.Context, user *models.User) {
	token, err := s.signAction(user, models.PurposeVerifyEmail, s.config.VerifyTokenExpiry, []byte(s.config.AccessTokenSecret))
	if err != nil {
		s.logger.Error("failed to sign verification token", zap.String("user_id", user.ID), zap.Error(err))
		return
	}
	msg := mail.VerificationMessage(user.Email, user.Firstname, s.config.LinkBase+"/auth/verify/"+token)
	if err := s.mail.Send(ctx, msg); err != nil {
		s.logger.Warn("failed to queue verification email", zap.String("user_id", user.ID), zap.Error(err))
	}
}

func (s *AuthService) issueSession(ctx context.Context, user *models.User, ip, userAgent string) (string, string, error) {
	accessToken, _, err := s.generateAccessToken(user)
	if err != nil {
		return "", "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create access token")
	}
	value, err := s.generateRefreshTokenString()
	if err != nil {
		return "", "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create refresh token")
	}

	now := s.now().UTC()
	refresh := &models.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Token:     value,
		ExpiresAt: now.Add(s.config.RefreshTokenExpiry),
		CreatedAt: now,
		IPAddress: ip,
		UserAgent: userAgent,
	}
	if err := s.repo.CreateRefreshToken(ctx, refresh); err != nil {
		return "", "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist refresh token")
	}
	return accessToken, refresh.Token, nil
}

func (s *AuthService) audit(ctx context.Context, userID, action, ip, userAgent string) {
	if err := s.repo.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &userID,
		Action:     action,
		Resource:   "auth",
		ResourceID: &userID,
		IPAddress:  ip,
		UserAgent:  userAgent,
	}); err != nil {
		s.logger.Warn("failed to record auth audit log", zap.String("action", action), zap.Error(err))
	}
}

func (s *AuthService) generateAccessToken(user *models.User) (string, time.Time, error) {
	issuedAt := s.now().UTC()
	expiresAt := issuedAt.Add(s.config.AccessTokenExpiry)
	claims := &models.JWTClaims{
		UserID: user.ID,
		Role:   user.Role,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.AccessTokenSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (s *AuthService) generateRefreshTokenString() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// resetKey binds reset tokens to the current password hash.
func (s *AuthService) resetKey(user *models.User) []byte {
	return []byte(s.config.AccessTokenSecret + user.PasswordHash)
}

func (s *AuthService) signAction(user *models.User, purpose string, ttl time.Duration, key []byte) (string, error) {
	issuedAt := s.now().UTC()
	claims := &models.ActionClaims{
		UserID:  user.ID,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
}

// parseAction validates a single-purpose token. keyFor overrides the signing key lookup.
func (s *AuthService) parseAction(token, purpose string, keyFor func(*models.ActionClaims) ([]byte, error)) (*models.ActionClaims, error) {
	claims := &models.ActionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		if claims.Purpose != purpose {
			return nil, fmt.Errorf("token purpose mismatch")
		}
		if keyFor != nil {
			return keyFor(claims)
		}
		return []byte(s.config.AccessTokenSecret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Token is invalid or has expired")
	}
	return claims, nil
}

func userInfo(user *models.User) models.UserInfo {
	return models.UserInfo{
		ID:         user.ID,
		Email:      user.Email,
		Firstname:  user.Firstname,
		Lastname:   user.Lastname,
		Role:       user.Role,
		IsVerified: user.IsVerified,
	}
}
