// Package service implements the application's business logic on top of the
// repository, storage and diagnosis layers.
package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/cropportal/backend/internal/auth"
	"github.com/cropportal/backend/internal/models"
	"github.com/cropportal/backend/internal/repository"
	"github.com/cropportal/backend/internal/utils"
)

// AuthService handles registration and login. Both flows end by issuing a
// token for the resolved identity.
type AuthService struct {
	userRepo       repository.UserRepository
	jwtService     auth.TokenIssuer
	passwordHasher auth.PasswordHasher
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, jwtService auth.TokenIssuer, passwordHasher auth.PasswordHasher) *AuthService {
	return &AuthService{
		userRepo:       userRepo,
		jwtService:     jwtService,
		passwordHasher: passwordHasher,
	}
}

// RegisterUser creates a new user account and returns the user together
// with a freshly issued token. A duplicate email fails with a conflict
// error and leaves the existing row untouched.
func (s *AuthService) RegisterUser(ctx context.Context, reg *models.UserRegistration) (*models.User, string, error) {
	// The secret is opaque to this service; hashing is delegated so the
	// scheme stays swappable.
	passwordHash, err := s.passwordHasher.Hash(reg.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.NewUser(reg.Email, reg.Name)
	user.PasswordHash = passwordHash

	if err := s.userRepo.Create(ctx, user); err != nil {
		if utils.IsDuplicateError(err) {
			log.Warn().
				Str("email", reg.Email).
				Msg("Registration attempt with existing email")
		}
		return nil, "", err
	}

	token, err := s.jwtService.GenerateToken(user.Email, user.Name)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	utils.LogAuth("register", user.Email, true, "")

	return user, token, nil
}

// AuthenticateUser verifies a user's credentials and returns the user with
// a freshly issued token. Unknown email and wrong password fail with the
// same error so account existence is not leaked.
func (s *AuthService) AuthenticateUser(ctx context.Context, creds *models.UserCredentials) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, creds.Email)
	if err != nil {
		if utils.IsNotFoundError(err) {
			utils.LogAuth("login", creds.Email, false, "unknown email")
			return nil, "", utils.NewInvalidCredentialsError()
		}
		return nil, "", err
	}

	match, err := s.passwordHasher.Verify(creds.Password, user.PasswordHash)
	if err != nil {
		return nil, "", fmt.Errorf("failed to verify password: %w", err)
	}
	if !match {
		utils.LogAuth("login", creds.Email, false, "password mismatch")
		return nil, "", utils.NewInvalidCredentialsError()
	}

	token, err := s.jwtService.GenerateToken(user.Email, user.Name)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	utils.LogAuth("login", user.Email, true, "")

	return user, token, nil
}
