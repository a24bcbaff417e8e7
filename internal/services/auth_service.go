package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/talakunchi/exam-portal-service/internal/cache"
	"github.com/talakunchi/exam-portal-service/internal/models"
	"github.com/talakunchi/exam-portal-service/internal/repositories"
	"github.com/talakunchi/exam-portal-service/internal/utils"
)

// otpTTL bounds how long an issued code stays valid.
const otpTTL = 10 * time.Minute

// AuthService handles admin registration and the two-step login: password
// first, then a one-time code delivered by email.
type AuthService interface {
	Register(ctx context.Context, req AdminRegisterRequest) (*models.Admin, error)
	Login(ctx context.Context, req AdminLoginRequest) (*OTPChallenge, error)
	VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*AdminSession, error)
	ResendOTP(ctx context.Context, adminID string) (*OTPChallenge, error)
}

type AdminRegisterRequest struct {
	AdminName string `json:"admin_name" validate:"required,notblank,max=200"`
	Email     string `json:"email" validate:"required,email"`
	Username  string `json:"username" validate:"required,notblank,min=4,max=50"`
	Password  string `json:"password" validate:"required,min=8"`
}

type AdminLoginRequest struct {
	Username string `json:"username" validate:"required,notblank"`
	Password string `json:"password" validate:"required,notblank"`
}

type VerifyOTPRequest struct {
	AdminID string `json:"admin_id" validate:"required,notblank"`
	Code    string `json:"code" validate:"required,len=4"`
}

// OTPChallenge is returned after a successful password check. The code
// itself travels by email, never in the response.
type OTPChallenge struct {
	AdminID   string    `json:"admin_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

type AdminSession struct {
	Token string        `json:"-"`
	Admin *models.Admin `json:"admin"`
}

type authService struct {
	repo      repositories.Repository
	otpStore  cache.OTPStore
	notifier  Notifier
	tokens    *utils.TokenManager
	logger    utils.Logger
	validator *utils.Validator
}

func NewAuthService(repo repositories.Repository, otpStore cache.OTPStore, notifier Notifier, tokens *utils.TokenManager, logger utils.Logger, validator *utils.Validator) AuthService {
	return &authService{
		repo:      repo,
		otpStore:  otpStore,
		notifier:  notifier,
		tokens:    tokens,
		logger:    logger,
		validator: validator,
	}
}

func (s *authService) Register(ctx context.Context, req AdminRegisterRequest) (*models.Admin, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	exists, err := s.repo.Admin().ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check admin existence: %w", err)
	}
	if exists {
		return nil, ErrAdminAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &models.Admin{
		ID:        uuid.NewString(),
		AdminName: req.AdminName,
		Email:     req.Email,
		Username:  req.Username,
		Password:  string(hash),
	}

	if err := s.repo.Admin().Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	s.logger.Info("Admin registered", "admin_id", admin.ID, "username", admin.Username)
	return admin, nil
}

func (s *authService) Login(ctx context.Context, req AdminLoginRequest) (*OTPChallenge, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	admin, err := s.repo.Admin().GetByUsername(ctx, req.Username)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueOTP(ctx, admin)
}

func (s *authService) VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*AdminSession, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	admin, err := s.repo.Admin().GetByID(ctx, req.AdminID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}

	stored, err := s.otpStore.Get(ctx, admin.ID)
	if err != nil {
		if errors.Is(err, cache.ErrOTPNotFound) {
			return nil, ErrOTPExpired
		}
		return nil, fmt.Errorf("failed to read otp: %w", err)
	}

	if stored != req.Code {
		return nil, ErrInvalidOTP
	}

	// One shot: a verified code cannot be replayed.
	if err := s.otpStore.Delete(ctx, admin.ID); err != nil {
		s.logger.Error("Failed to clear verified otp", "admin_id", admin.ID, "error", err)
	}

	token, err := s.tokens.Issue(admin.ID, admin.AdminName, admin.Email, utils.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("Admin logged in", "admin_id", admin.ID)
	return &AdminSession{Token: token, Admin: admin}, nil
}

func (s *authService) ResendOTP(ctx context.Context, adminID string) (*OTPChallenge, error) {
	admin, err := s.repo.Admin().GetByID(ctx, adminID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	return s.issueOTP(ctx, admin)
}

func (s *authService) issueOTP(ctx context.Context, admin *models.Admin) (*OTPChallenge, error) {
	code, err := utils.GenerateOTP()
	if err != nil {
		return nil, err
	}

	expiresAt := time.Now().Add(otpTTL)
	if err := s.otpStore.Put(ctx, admin.ID, code, otpTTL); err != nil {
		return nil, fmt.Errorf("failed to store otp: %w", err)
	}

	if err := s.notifier.NotifyOTPIssued(ctx, admin, code, expiresAt); err != nil {
		s.logger.Error("Failed to send otp notification", "admin_id", admin.ID, "error", err)
	}

	s.logger.Info("OTP issued", "admin_id", admin.ID, "expires_at", expiresAt)
	return &OTPChallenge{AdminID: admin.ID, ExpiresAt: expiresAt}, nil
}
