package user

import (
	"context"
	"errors"

	"github.com/playamar/beach-admin-backend/internal/auth"
	"github.com/playamar/beach-admin-backend/internal/pkg/apperror"
)

// CreateInput carries the fields of a new admin account.
type CreateInput struct {
	Email    string
	Password string
	Name     string
	Role     string
}

// UpdateInput carries a partial account update. Nil fields stay untouched.
type UpdateInput struct {
	Email    *string
	Password *string
	Name     *string
	Role     *string
}

// LoginResult is a successful authentication: the account plus its token.
type LoginResult struct {
	User        *User
	AccessToken string
}

// Service defines business logic for admin accounts.
type Service interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Create(ctx context.Context, input CreateInput) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context, filter Filter) ([]*User, int, error)
	Update(ctx context.Context, id string, input UpdateInput) (*User, error)
	Delete(ctx context.Context, id string) error
	// Directory methods used by other modules.
	Exists(ctx context.Context, id string) (bool, error)
	CountAdmins(ctx context.Context) (int, error)
}

type service struct {
	repo   Repository
	hasher auth.PasswordHasher
	jwt    *auth.JWTManager
}

func NewService(repo Repository, hasher auth.PasswordHasher, jwt *auth.JWTManager) Service {
	return &service{repo: repo, hasher: hasher, jwt: jwt}
}

func (s *service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateAccessToken(u.ID, u.Email, string(u.Role))
	if err != nil {
		return nil, err
	}
	if err := s.repo.TouchLastLogin(ctx, u.ID); err != nil {
		return nil, err
	}
	return &LoginResult{User: u, AccessToken: token}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*User, error) {
	if input.Email == "" || input.Password == "" {
		return nil, apperror.BadRequest("email and password are required")
	}
	role, err := NormalizeRole(input.Role)
	if err != nil {
		return nil, apperror.BadRequest("invalid role")
	}
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	u := &User{
		Email:        input.Email,
		Name:         input.Name,
		Role:         role,
		PasswordHash: hash,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*User, int, error) {
	if filter.Role != "" {
		role, err := NormalizeRole(filter.Role)
		if err != nil {
			return nil, 0, apperror.BadRequest("invalid role")
		}
		filter.Role = string(role)
	}
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, input UpdateInput) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Email != nil {
		if *input.Email == "" {
			return nil, apperror.BadRequest("email must not be empty")
		}
		u.Email = *input.Email
	}
	if input.Name != nil {
		u.Name = *input.Name
	}
	if input.Role != nil {
		role, err := NormalizeRole(*input.Role)
		if err != nil {
			return nil, apperror.BadRequest("invalid role")
		}
		u.Role = role
	}
	if input.Password != nil {
		if *input.Password == "" {
			return nil, apperror.BadRequest("password must not be empty")
		}
		hash, err := s.hasher.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Delete removes an admin account. Super admin accounts cannot be deleted
// through the API.
func (s *service) Delete(ctx context.Context, id string) error {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u.Role == RoleSuperAdmin {
		return apperror.Conflict("super admin accounts cannot be deleted")
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) Exists(ctx context.Context, id string) (bool, error) {
	return s.repo.Exists(ctx, id)
}

func (s *service) CountAdmins(ctx context.Context) (int, error) {
	return s.repo.CountByRole(ctx, RoleAdmin)
}
