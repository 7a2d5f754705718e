package users

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	sharedauth "eventvault-backend/internal/shared/auth"
	"eventvault-backend/internal/shared/telemetry"
)

// Service implements registration, credential login and profile operations.
// The configured App Master email is granted the APP_MASTER role on every
// path that creates or refreshes an account.
type Service struct {
	Repo           Repo
	AppMasterEmail string
}

func NewService(repo Repo, appMasterEmail string) *Service {
	return &Service{Repo: repo, AppMasterEmail: appMasterEmail}
}

// Register creates a credentialed account.
func (s *Service) Register(ctx context.Context, name, email, password string) (User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if len(name) < 2 {
		return User{}, fmt.Errorf("%w: name must be at least 2 characters", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return User{}, fmt.Errorf("%w: invalid email address", ErrInvalidInput)
	}
	if len(password) < 6 {
		return User{}, fmt.Errorf("%w: password must be at least 6 characters", ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	now := time.Now().UTC()
	user := User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        strings.ToLower(email),
		PasswordHash: string(hash),
		Role:         s.roleFor(email),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, err
	}

	telemetry.Info("user.registered", map[string]any{
		"user_id": user.ID,
		"role":    user.Role,
	})
	return user, nil
}

// Login verifies credentials and issues a signed token carrying the user's
// role. Unknown emails and wrong passwords are indistinguishable to callers.
func (s *Service) Login(ctx context.Context, email, password string) (User, string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return User{}, "", ErrInvalidCredentials
	}

	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return User{}, "", ErrInvalidCredentials
	}
	if user.PasswordHash == "" {
		return User{}, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return User{}, "", ErrInvalidCredentials
	}

	// Role follows the current App Master configuration, not the stored row.
	if role := s.roleFor(user.Email); role != user.Role {
		user.Role = role
		user.UpdatedAt = time.Now().UTC()
		if err := s.Repo.Update(ctx, user); err != nil {
			return User{}, "", err
		}
	}

	token, err := sharedauth.SignJWT(sharedauth.Claims{
		Sub:   user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	})
	if err != nil {
		return User{}, "", err
	}
	return user, token, nil
}

// UpsertFromOAuth creates or refreshes an account for an external identity.
// No password is set; such accounts cannot log in with credentials.
func (s *Service) UpsertFromOAuth(ctx context.Context, name, email string) (User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return User{}, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	now := time.Now().UTC()
	user := User{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		Email:     strings.ToLower(email),
		Role:      s.roleFor(email),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Upsert(ctx, user); err != nil {
		return User{}, err
	}

	// The upsert may have kept an existing row's id.
	return s.Repo.GetByEmail(ctx, user.Email)
}

// CompleteOnboarding marks the user onboarded and records the workspace name.
func (s *Service) CompleteOnboarding(ctx context.Context, userID, workspaceName string) (User, error) {
	workspaceName = strings.TrimSpace(workspaceName)
	if workspaceName == "" {
		return User{}, fmt.Errorf("%w: workspace name is required", ErrInvalidInput)
	}

	user, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return User{}, err
	}
	user.HasCompletedOnboarding = true
	user.WorkspaceName = workspaceName
	user.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Update(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

// GetByID returns one user.
func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if strings.TrimSpace(userID) == "" {
		return User{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userID)
}

func (s *Service) roleFor(email string) string {
	if s.AppMasterEmail != "" && strings.EqualFold(strings.TrimSpace(email), s.AppMasterEmail) {
		return RoleAppMaster
	}
	return RoleUser
}
