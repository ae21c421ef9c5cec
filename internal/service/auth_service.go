package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"taskboard-api/internal/client"
	"taskboard-api/internal/domain"
	"taskboard-api/internal/dto"
	"taskboard-api/internal/repository"
	"taskboard-api/internal/response"
)

// TokenIssuer signs access tokens
type TokenIssuer interface {
	Issue(userID uuid.UUID, email string) (string, error)
}

// CodeHasher hashes and checks verification codes
type CodeHasher interface {
	Hash(code string) (string, error)
	Matches(hash, code string) bool
}

// AuthService defines the interface for sign-up, sign-in and profile logic
type AuthService interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.UserResponse, error)
	Signin(ctx context.Context, req *dto.SigninRequest) (*dto.SigninResponse, error)
	ResendCode(ctx context.Context, req *dto.ResendCodeRequest) error
	GetUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
}

// AuthConfig holds verification code lifetimes
type AuthConfig struct {
	SignupCodeTTL time.Duration
	ResendCodeTTL time.Duration
}

type authServiceImpl struct {
	userRepo     repository.UserRepository
	tokens       TokenIssuer
	hasher       CodeHasher
	generateCode func() (string, error)
	email        client.EmailClient
	cfg          AuthConfig
	async        AsyncRunner
	logger       *zap.Logger
	now          func() time.Time
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(
	userRepo repository.UserRepository,
	tokens TokenIssuer,
	hasher CodeHasher,
	generateCode func() (string, error),
	email client.EmailClient,
	cfg AuthConfig,
	async AsyncRunner,
	logger *zap.Logger,
) AuthService {
	return &authServiceImpl{
		userRepo:     userRepo,
		tokens:       tokens,
		hasher:       hasher,
		generateCode: generateCode,
		email:        email,
		cfg:          cfg,
		async:        async,
		logger:       logger,
		now:          time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup registers the user and emails a verification code from a background task
func (s *authServiceImpl) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.UserResponse, error) {
	email := normalizeEmail(req.Email)

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, response.NewAppError(response.ErrCodeConflict, "Email already registered", "")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, internalError("Failed to check email", err)
	}

	code, hash, expiresAt, err := s.newCode(s.cfg.SignupCodeTTL)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:                email,
		FirstName:            strings.TrimSpace(req.FirstName),
		LastName:             strings.TrimSpace(req.LastName),
		VerificationCodeHash: hash,
		CodeExpiresAt:        &expiresAt,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, internalError("Failed to create user", err)
	}

	s.logger.Info("User signed up", zap.String("user_id", user.ID.String()))

	validFor := s.cfg.SignupCodeTTL.String()
	s.async(func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		s.sendCode(sendCtx, email, code, validFor)
	})

	return toUserResponse(user), nil
}

// Signin checks expiry before the code itself and consumes the code on success
func (s *authServiceImpl) Signin(ctx context.Context, req *dto.SigninRequest) (*dto.SigninResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeUnauthorized, "Invalid email or verification code", "")
		}
		return nil, internalError("Failed to load user", err)
	}

	now := s.now()
	if user.CodeExpiresAt == nil || now.After(*user.CodeExpiresAt) {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "Verification code expired", "")
	}
	if !s.hasher.Matches(user.VerificationCodeHash, req.VerificationCode) {
		return nil, response.NewAppError(response.ErrCodeUnauthorized, "Invalid email or verification code", "")
	}

	if err := s.userRepo.UpdateFields(ctx, user.ID, map[string]interface{}{
		"verified":               true,
		"last_login":             now,
		"verification_code_hash": "",
		"code_expires_at":        nil,
	}); err != nil {
		return nil, internalError("Failed to update user", err)
	}
	user.Verified = true
	user.LastLogin = &now
	user.VerificationCodeHash = ""
	user.CodeExpiresAt = nil

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, internalError("Failed to issue token", err)
	}

	s.logger.Info("User signed in", zap.String("user_id", user.ID.String()))

	return &dto.SigninResponse{AccessToken: token, User: toUserResponse(user)}, nil
}

// ResendCode replaces the code with a short-lived one. The email is sent inline; a send
// failure is logged and does not fail the request.
func (s *authServiceImpl) ResendCode(ctx context.Context, req *dto.ResendCodeRequest) error {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return lookupError(err, "User not found", "Failed to load user")
	}

	code, hash, expiresAt, err := s.newCode(s.cfg.ResendCodeTTL)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdateFields(ctx, user.ID, map[string]interface{}{
		"verification_code_hash": hash,
		"code_expires_at":        expiresAt,
	}); err != nil {
		return internalError("Failed to store verification code", err)
	}

	s.sendCode(ctx, user.Email, code, s.cfg.ResendCodeTTL.String())
	return nil
}

func (s *authServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, lookupError(err, "User not found", "Failed to load user")
	}
	return toUserResponse(user), nil
}

func (s *authServiceImpl) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	fields := map[string]interface{}{}
	if req.FirstName != nil {
		fields["first_name"] = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		fields["last_name"] = strings.TrimSpace(*req.LastName)
	}
	if len(fields) == 0 {
		return nil, response.NewAppError(response.ErrCodeValidation, "Nothing to update", "")
	}

	if err := s.userRepo.UpdateFields(ctx, userID, fields); err != nil {
		return nil, lookupError(err, "User not found", "Failed to update profile")
	}
	return s.GetUser(ctx, userID)
}

func (s *authServiceImpl) newCode(ttl time.Duration) (code, hash string, expiresAt time.Time, err error) {
	code, err = s.generateCode()
	if err != nil {
		return "", "", time.Time{}, internalError("Failed to generate verification code", err)
	}
	hash, err = s.hasher.Hash(code)
	if err != nil {
		return "", "", time.Time{}, internalError("Failed to hash verification code", err)
	}
	return code, hash, s.now().Add(ttl), nil
}

func (s *authServiceImpl) sendCode(ctx context.Context, to, code, validFor string) {
	msg, err := client.VerificationEmail(to, code, validFor)
	if err != nil {
		s.logger.Error("Failed to render verification email", zap.Error(err))
		return
	}
	if err := s.email.Send(ctx, msg); err != nil {
		s.logger.Warn("Failed to send verification email", zap.String("to", to), zap.Error(err))
	}
}
