package user

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/playamar/beach-admin-backend/internal/auth"
	"github.com/playamar/beach-admin-backend/internal/pkg/apperror"
)

func TestNormalizeRole(t *testing.T) {
	cases := []struct {
		in   string
		want Role
	}{
		{"admin", RoleAdmin},
		{"beach_admin", RoleAdmin},
		{"Admin", RoleAdmin},
		{"", RoleAdmin},
		{"super_admin", RoleSuperAdmin},
		{"superadmin", RoleSuperAdmin},
		{"super admin", RoleSuperAdmin},
		{"super-admin", RoleSuperAdmin},
		{"super", RoleSuperAdmin},
		{"  SUPER_ADMIN  ", RoleSuperAdmin},
	}
	for _, tc := range cases {
		got, err := NormalizeRole(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}

	_, err := NormalizeRole("manager")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

type fakeRepo struct {
	users map[string]*User
	seq   int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: map[string]*User{}}
}

func (r *fakeRepo) Create(_ context.Context, u *User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return ErrEmailTaken
		}
	}
	r.seq++
	u.ID = fmt.Sprintf("user-%d", r.seq)
	u.CreatedAt = time.Now()
	copied := *u
	r.users[u.ID] = &copied
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeRepo) List(_ context.Context, _ Filter) ([]*User, int, error) {
	var out []*User
	for _, u := range r.users {
		copied := *u
		out = append(out, &copied)
	}
	return out, len(out), nil
}

func (r *fakeRepo) Update(_ context.Context, u *User) error {
	if _, ok := r.users[u.ID]; !ok {
		return ErrNotFound
	}
	copied := *u
	r.users[u.ID] = &copied
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeRepo) TouchLastLogin(_ context.Context, id string) error {
	u, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	now := time.Now()
	u.LastLoginAt = &now
	return nil
}

func (r *fakeRepo) Exists(_ context.Context, id string) (bool, error) {
	_, ok := r.users[id]
	return ok, nil
}

func (r *fakeRepo) CountByRole(_ context.Context, role Role) (int, error) {
	n := 0
	for _, u := range r.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func newTestService(repo *fakeRepo) Service {
	hasher := auth.NewBcryptPasswordHasherWithCost(bcrypt.MinCost)
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	return NewService(repo, hasher, jwtManager)
}

func TestLogin(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	created, err := svc.Create(context.Background(), CreateInput{
		Email:    "ana@example.com",
		Password: "s3cret-pass",
		Name:     "Ana",
		Role:     "super_admin",
	})
	require.NoError(t, err)

	res, err := svc.Login(context.Background(), "ana@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, created.ID, res.User.ID)
	assert.NotEmpty(t, res.AccessToken)

	stored, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.LastLoginAt)

	_, err = svc.Login(context.Background(), "ana@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "ghost@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCreateNormalizesRoleAndHashesPassword(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	u, err := svc.Create(context.Background(), CreateInput{
		Email:    "ana@example.com",
		Password: "s3cret-pass",
		Role:     "superadmin",
	})
	require.NoError(t, err)
	assert.Equal(t, RoleSuperAdmin, u.Role)
	assert.NotEqual(t, "s3cret-pass", u.PasswordHash)

	var appErr *apperror.AppError
	_, err = svc.Create(context.Background(), CreateInput{Email: "x@example.com", Password: "pw", Role: "manager"})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)

	_, err = svc.Create(context.Background(), CreateInput{Email: "x@example.com"})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)

	// Duplicate email surfaces the sentinel.
	_, err = svc.Create(context.Background(), CreateInput{Email: "ana@example.com", Password: "pw"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestDeleteProtectsSuperAdmin(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	super, err := svc.Create(context.Background(), CreateInput{Email: "boss@example.com", Password: "pw", Role: "super_admin"})
	require.NoError(t, err)
	admin, err := svc.Create(context.Background(), CreateInput{Email: "staff@example.com", Password: "pw"})
	require.NoError(t, err)

	var appErr *apperror.AppError
	err = svc.Delete(context.Background(), super.ID)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.Code)

	require.NoError(t, svc.Delete(context.Background(), admin.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), admin.ID), ErrNotFound)
}

func TestCountAdminsCountsOnlyRegularAdmins(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	_, err := svc.Create(context.Background(), CreateInput{Email: "boss@example.com", Password: "pw", Role: "super_admin"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), CreateInput{Email: "a@example.com", Password: "pw"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), CreateInput{Email: "b@example.com", Password: "pw", Role: "beach_admin"})
	require.NoError(t, err)

	n, err := svc.CountAdmins(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}
