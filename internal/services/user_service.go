package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/surajbi2/secureIn-backend/internal/auth"
	"github.com/surajbi2/secureIn-backend/internal/cache"
	"github.com/surajbi2/secureIn-backend/internal/models"
	"github.com/surajbi2/secureIn-backend/internal/repositories"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserDisabled       = errors.New("account is disabled")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidRole        = errors.New("role must be admin or staff")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
)

// LoginResult carries either a finished session or a pending 2FA challenge.
type LoginResult struct {
	Auth    *models.AuthResponse
	Pending *models.TwoFactorPendingResponse
}

type UserService struct {
	userRepo   *repositories.UserRepository
	jwtManager *auth.JWTManager
}

func NewUserService(userRepo *repositories.UserRepository, jwtManager *auth.JWTManager) *UserService {
	return &UserService{userRepo: userRepo, jwtManager: jwtManager}
}

// Login authenticates a user. Verified credentials are cached so repeat
// logins from scanners skip the bcrypt cost; admins with TOTP enabled get a
// temp token instead of a session and must complete the second factor.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*LoginResult, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	var user *models.User
	if userID, ok := cache.GetCachedAuth(ctx, email, req.Password); ok {
		cached, err := s.userRepo.Get(ctx, userID)
		if err == nil {
			user = cached
		} else {
			log.Printf("[Auth] Cached auth lookup failed for user %d: %v", userID, err)
		}
	}

	if user == nil {
		found, err := s.userRepo.GetByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, ErrInvalidCredentials
			}
			return nil, err
		}
		if err := auth.VerifyPassword(found.PasswordHash, req.Password); err != nil {
			return nil, ErrInvalidCredentials
		}
		cache.CacheAuth(ctx, email, req.Password, found.ID)
		user = found
	}

	if !user.IsActive {
		return nil, ErrUserDisabled
	}

	if user.TOTPEnabled {
		tempToken, err := s.jwtManager.GenerateTempToken(user)
		if err != nil {
			return nil, err
		}
		return &LoginResult{Pending: &models.TwoFactorPendingResponse{
			Requires2FA: true,
			TempToken:   tempToken,
		}}, nil
	}

	token, err := s.jwtManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Auth: &models.AuthResponse{Token: token, User: user}}, nil
}

func (s *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if name == "" || email == "" {
		return nil, ErrInvalidCredentials
	}
	if len(req.Password) < 8 {
		return nil, ErrWeakPassword
	}

	role := req.Role
	if role == "" {
		role = "staff"
	}
	if role != "admin" && role != "staff" {
		return nil, ErrInvalidRole
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return user, nil
}

func (s *UserService) Get(ctx context.Context, id int) (*models.User, error) {
	user, err := s.userRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.List(ctx)
}

func (s *UserService) Deactivate(ctx context.Context, id int) error {
	ok, err := s.userRepo.Deactivate(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUserNotFound
	}
	return nil
}
