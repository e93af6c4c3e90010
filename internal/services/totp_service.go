package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image/png"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"github.com/surajbi2/secureIn-backend/internal/auth"
	"github.com/surajbi2/secureIn-backend/internal/models"
	"github.com/surajbi2/secureIn-backend/internal/repositories"
	"github.com/surajbi2/secureIn-backend/internal/timeutil"
)

const (
	totpIssuer        = "SecureIN"
	maxFailedAttempts = 5
)

var (
	ErrTooManyAttempts = errors.New("too many failed attempts, please try again later")
	ErrNoTOTPSecret    = errors.New("2FA setup not initiated")
	ErrInvalidTOTPCode = errors.New("invalid verification code")
	ErrTOTPNotEnabled  = errors.New("2FA is not enabled")
	ErrInvalidPassword = errors.New("invalid password")
)

type TOTPService struct {
	userRepo   *repositories.UserRepository
	totpRepo   *repositories.TOTPRepository
	jwtManager *auth.JWTManager
}

func NewTOTPService(userRepo *repositories.UserRepository, totpRepo *repositories.TOTPRepository, jwtManager *auth.JWTManager) *TOTPService {
	return &TOTPService{
		userRepo:   userRepo,
		totpRepo:   totpRepo,
		jwtManager: jwtManager,
	}
}

// GenerateSetup creates a new TOTP secret and provisioning QR for a user.
// The secret is stored immediately but 2FA stays off until a code verifies.
func (s *TOTPService) GenerateSetup(ctx context.Context, user *models.User) (*models.TOTPSetupResponse, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: user.Email,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.SetTOTPSecret(ctx, user.ID, key.Secret()); err != nil {
		return nil, err
	}

	qrImage, err := key.Image(200, 200)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, qrImage); err != nil {
		return nil, err
	}

	return &models.TOTPSetupResponse{
		Secret:      key.Secret(),
		QRCode:      "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
		Issuer:      totpIssuer,
		AccountName: user.Email,
	}, nil
}

// VerifyAndEnable checks a code against the stored secret and switches 2FA on.
func (s *TOTPService) VerifyAndEnable(ctx context.Context, userID int, code, ipAddress string) error {
	if limited, err := s.isRateLimited(ctx, userID); err != nil {
		return err
	} else if limited {
		return ErrTooManyAttempts
	}

	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return err
	}
	if user.TOTPSecret == "" {
		return ErrNoTOTPSecret
	}

	if !totp.Validate(code, user.TOTPSecret) {
		s.totpRepo.LogVerificationAttempt(ctx, userID, ipAddress, false)
		return ErrInvalidTOTPCode
	}
	s.totpRepo.LogVerificationAttempt(ctx, userID, ipAddress, true)

	return s.userRepo.EnableTOTP(ctx, userID, timeutil.Now())
}

// VerifyLogin completes the second login step: a temp token plus a valid code
// yields a full session token.
func (s *TOTPService) VerifyLogin(ctx context.Context, tempToken, code, ipAddress string) (*models.AuthResponse, error) {
	claims, err := s.jwtManager.ValidateTempToken(tempToken)
	if err != nil {
		return nil, err
	}

	if limited, err := s.isRateLimited(ctx, claims.UserID); err != nil {
		return nil, err
	} else if limited {
		return nil, ErrTooManyAttempts
	}

	user, err := s.userRepo.Get(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if !user.TOTPEnabled || user.TOTPSecret == "" {
		return nil, ErrTOTPNotEnabled
	}
	if !user.IsActive {
		return nil, ErrUserDisabled
	}

	if !totp.Validate(code, user.TOTPSecret) {
		s.totpRepo.LogVerificationAttempt(ctx, user.ID, ipAddress, false)
		return nil, ErrInvalidTOTPCode
	}
	s.totpRepo.LogVerificationAttempt(ctx, user.ID, ipAddress, true)

	token, err := s.jwtManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: user}, nil
}

// Disable switches 2FA off after re-verifying password and current code.
func (s *TOTPService) Disable(ctx context.Context, userID int, password, code string) error {
	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return err
	}

	if err := auth.VerifyPassword(user.PasswordHash, password); err != nil {
		return ErrInvalidPassword
	}
	if !totp.Validate(code, user.TOTPSecret) {
		return ErrInvalidTOTPCode
	}

	return s.userRepo.DisableTOTP(ctx, userID)
}

func (s *TOTPService) isRateLimited(ctx context.Context, userID int) (bool, error) {
	failures, err := s.totpRepo.CountRecentFailures(ctx, userID)
	if err != nil {
		return false, err
	}
	return failures >= maxFailedAttempts, nil
}
