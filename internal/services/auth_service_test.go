package services

import (
	"testing"
	"time"

	"church-admin/internal/models"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users  map[int]*models.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int]*models.User{}, nextID: 1}
}

func (r *fakeUserRepo) Save(user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(id int) (*models.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func newAuthFixture(t *testing.T) (*AuthService, *fakeUserRepo) {
	t.Helper()
	repo := newFakeUserRepo()
	return NewAuthService(repo, "test-secret", time.Hour), repo
}

func parseClaims(t *testing.T, token string) jwt.MapClaims {
	t.Helper()
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	return claims
}

func TestLoginIssuesTokens(t *testing.T) {
	service, _ := newAuthFixture(t)

	user, err := service.CreateUser("admin@church.org", "s3cret", models.RoleSuperAdmin, true)
	require.NoError(t, err)

	access, refresh, err := service.Login("admin@church.org", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	claims := parseClaims(t, access)
	assert.Equal(t, "admin@church.org", claims["sub"])
	assert.Equal(t, float64(user.ID), claims["user_id"])
	assert.Equal(t, models.RoleSuperAdmin, claims["role"])
	assert.Equal(t, "access", claims["type"])

	refreshClaims := parseClaims(t, refresh)
	assert.Equal(t, "admin@church.org", refreshClaims["sub"])
	assert.Equal(t, "refresh", refreshClaims["type"])
}

func TestLoginWrongPassword(t *testing.T) {
	service, _ := newAuthFixture(t)
	_, err := service.CreateUser("admin@church.org", "s3cret", models.RoleSuperAdmin, true)
	require.NoError(t, err)

	_, _, err = service.Login("admin@church.org", "wrong")
	require.Error(t, err)
	assert.True(t, models.IsUnauthorized(err))
	assert.Equal(t, "Incorrect email or password", err.Error())
}

func TestLoginUnknownEmail(t *testing.T) {
	service, _ := newAuthFixture(t)

	_, _, err := service.Login("nobody@church.org", "s3cret")
	require.Error(t, err)
	assert.True(t, models.IsUnauthorized(err))
}

func TestLoginInactiveUser(t *testing.T) {
	service, repo := newAuthFixture(t)
	user, err := service.CreateUser("admin@church.org", "s3cret", models.RoleSecretary, true)
	require.NoError(t, err)
	repo.users[user.ID].IsActive = false

	_, _, err = service.Login("admin@church.org", "s3cret")
	require.Error(t, err)
	assert.True(t, models.IsValidation(err))
	assert.Equal(t, "Inactive user", err.Error())
}

func TestRefreshIssuesNewAccessToken(t *testing.T) {
	service, _ := newAuthFixture(t)
	_, err := service.CreateUser("admin@church.org", "s3cret", models.RoleSuperAdmin, true)
	require.NoError(t, err)

	_, refresh, err := service.Login("admin@church.org", "s3cret")
	require.NoError(t, err)

	access, err := service.Refresh(refresh)
	require.NoError(t, err)

	claims := parseClaims(t, access)
	assert.Equal(t, "admin@church.org", claims["sub"])
	assert.Equal(t, "access", claims["type"])
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	service, _ := newAuthFixture(t)
	user, err := service.CreateUser("admin@church.org", "s3cret", models.RoleSuperAdmin, true)
	require.NoError(t, err)

	access, err := service.GenerateToken(user)
	require.NoError(t, err)

	_, err = service.Refresh(access)
	require.Error(t, err)
	assert.True(t, models.IsUnauthorized(err))
	assert.Equal(t, "Could not validate credentials", err.Error())
}

func TestRefreshRejectsForgedToken(t *testing.T) {
	service, _ := newAuthFixture(t)
	_, err := service.CreateUser("admin@church.org", "s3cret", models.RoleSuperAdmin, true)
	require.NoError(t, err)

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "admin@church.org",
		"type": "refresh",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := forged.SignedString([]byte("wrong-secret"))
	require.NoError(t, err)

	_, err = service.Refresh(signed)
	require.Error(t, err)
	assert.True(t, models.IsUnauthorized(err))
}

func TestRefreshUnknownUser(t *testing.T) {
	service, repo := newAuthFixture(t)
	user, err := service.CreateUser("admin@church.org", "s3cret", models.RoleSuperAdmin, true)
	require.NoError(t, err)

	refresh, err := service.GenerateRefreshToken(user)
	require.NoError(t, err)
	delete(repo.users, user.ID)

	_, err = service.Refresh(refresh)
	require.Error(t, err)
	assert.True(t, models.IsUnauthorized(err))
}

func TestRegisterIssuesToken(t *testing.T) {
	service, _ := newAuthFixture(t)

	user, token, err := service.Register(&models.RegisterRequest{
		Email:    "secretary@church.org",
		Password: "s3cret",
		Role:     models.RoleSecretary,
	})
	require.NoError(t, err)
	assert.True(t, user.IsActive)
	assert.Equal(t, models.RoleSecretary, user.Role)

	claims := parseClaims(t, token)
	assert.Equal(t, "secretary@church.org", claims["sub"])
	assert.Equal(t, "access", claims["type"])
}

func TestRegisterInactiveFlag(t *testing.T) {
	service, _ := newAuthFixture(t)

	inactive := false
	user, _, err := service.Register(&models.RegisterRequest{
		Email:    "dormant@church.org",
		Password: "s3cret",
		Role:     models.RoleSecretary,
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.False(t, user.IsActive)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service, _ := newAuthFixture(t)
	_, err := service.CreateUser("admin@church.org", "s3cret", models.RoleSuperAdmin, true)
	require.NoError(t, err)

	_, _, err = service.Register(&models.RegisterRequest{
		Email:    "admin@church.org",
		Password: "other",
		Role:     models.RoleSecretary,
	})
	require.Error(t, err)
	assert.True(t, models.IsConflict(err))
	assert.Equal(t, "Email already registered", err.Error())
}

func TestEnsureAdminSeedsOnce(t *testing.T) {
	service, repo := newAuthFixture(t)

	require.NoError(t, service.EnsureAdmin("admin@church.org", "s3cret"))
	require.Len(t, repo.users, 1)

	user, err := repo.GetByEmail("admin@church.org")
	require.NoError(t, err)
	assert.Equal(t, models.RoleSuperAdmin, user.Role)

	// Second call is a no-op.
	require.NoError(t, service.EnsureAdmin("admin@church.org", "s3cret"))
	assert.Len(t, repo.users, 1)
}

func TestEnsureAdminSkippedWhenUnconfigured(t *testing.T) {
	service, repo := newAuthFixture(t)
	require.NoError(t, service.EnsureAdmin("", ""))
	assert.Empty(t, repo.users)
}
