package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/Deepanshumelkani77/Grievance-system/internal/config"
	"github.com/Deepanshumelkani77/Grievance-system/internal/dtos"
	"github.com/Deepanshumelkani77/Grievance-system/internal/middleware"
	"github.com/Deepanshumelkani77/Grievance-system/internal/models"
	"github.com/Deepanshumelkani77/Grievance-system/internal/repositories"
	"github.com/Deepanshumelkani77/Grievance-system/internal/utils"
)

// AuthService handles account registration and credential login.
// Authority accounts come from seeding; signup only creates submitters.
type AuthService struct {
	cfg      *config.Config
	userRepo repositories.UserRepository
}

func NewAuthService(cfg *config.Config, userRepo repositories.UserRepository) *AuthService {
	return &AuthService{cfg: cfg, userRepo: userRepo}
}

func (s *AuthService) Signup(ctx context.Context, req dtos.SignupRequest) (*models.User, error) {
	role, err := models.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, utils.ErrEmailExists
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		Department:   req.Department,
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}
	utils.Logger.Infof("New %s account registered: %s", role, u.Email)
	return u, nil
}

func (s *AuthService) Login(ctx context.Context, req dtos.LoginRequest) (*dtos.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	// Same error for unknown email and bad password.
	if user == nil {
		return nil, utils.ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, utils.ErrInvalidCredentials
	}

	token, err := middleware.IssueAccessToken(s.cfg.RSAPrivateKey, user.ID, user.Role, s.cfg.AccessTokenTTL)
	if err != nil {
		return nil, err
	}
	return &dtos.LoginResponse{AccessToken: token, User: user}, nil
}

func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}
	return user, nil
}
