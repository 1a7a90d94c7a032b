package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mkalens/sitehub/pkg"
)

const minPasswordLength = 6

type adminsRepo interface {
	Count(ctx context.Context) (int64, error)
	Add(ctx context.Context, admin Admin) (string, error)
	GetByUsername(ctx context.Context, username string) (*Admin, error)
	GetByID(ctx context.Context, id string) (*Admin, error)
	UpdatePasswordHash(ctx context.Context, id, passwordHash string) error
}

// Service drives the first-run setup state machine and authenticates
// against the single stored admin record. States: no admin yet (setup
// allowed, everything else locked out) -> admin exists.
type Service struct {
	repo   adminsRepo
	tokens *TokenService

	// ability to inject the password hashing funcs (bcrypt at cost 14 is
	// deliberately slow, unit tests swap these out)
	HashFunc  func(password string) (string, error)
	CheckFunc func(password, hash string) bool
}

func NewService(repo adminsRepo, tokens *TokenService) *Service {
	return &Service{
		repo:      repo,
		tokens:    tokens,
		HashFunc:  pkg.HashPassword,
		CheckFunc: pkg.CheckPasswordHash,
	}
}

// NeedsSetup is a pure read of the current state, no side effects
func (s *Service) NeedsSetup(ctx context.Context) (bool, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count admins: %w", err)
	}
	return count == 0, nil
}

// Setup creates the first (and only) admin account and logs it in right
// away. The count check and the insert are not atomic - two concurrent
// setup calls can both pass the guard; the unique username index created at
// repo bootstrap makes the second insert fail at the storage layer.
func (s *Service) Setup(ctx context.Context, username, email, password string) (*Admin, string, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("count admins: %w", err)
	}
	if count > 0 {
		return nil, "", ErrSetupAlreadyDone
	}

	passwordHash, err := s.HashFunc(password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	admin := Admin{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	admin.ID, err = s.repo.Add(ctx, admin)
	if err != nil {
		return nil, "", fmt.Errorf("add admin: %w", err)
	}

	token, err := s.tokens.Issue(Identity{ID: admin.ID, Username: admin.Username})
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return &admin, token, nil
}

func (s *Service) Login(ctx context.Context, username, password string) (*Admin, string, error) {
	admin, err := s.repo.GetByUsername(ctx, username)
	if errors.Is(err, ErrAdminNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", fmt.Errorf("get admin: %w", err)
	}

	if !s.CheckFunc(password, admin.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(Identity{ID: admin.ID, Username: admin.Username})
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return admin, token, nil
}

// ChangePassword re-reads the admin record instead of trusting anything
// cached - the backing record can vanish out-of-band
func (s *Service) ChangePassword(ctx context.Context, identity Identity, currentPassword, newPassword string) error {
	admin, err := s.repo.GetByID(ctx, identity.ID)
	if errors.Is(err, ErrAdminNotFound) {
		return ErrAdminNotFound
	}
	if err != nil {
		return fmt.Errorf("get admin: %w", err)
	}

	if !s.CheckFunc(currentPassword, admin.PasswordHash) {
		return ErrWrongPassword
	}

	if len(newPassword) < minPasswordLength {
		return ErrPasswordTooShort
	}

	passwordHash, err := s.HashFunc(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.repo.UpdatePasswordHash(ctx, admin.ID, passwordHash); err != nil {
		return fmt.Errorf("update password hash: %w", err)
	}

	return nil
}
