package service

import (
	"testing"
	"time"

	"go-inventory-pos/internal/model"
	"go-inventory-pos/internal/repository"
	"go-inventory-pos/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type authFixture struct {
	db      *gorm.DB
	service AuthService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	db := setupTestDB(t)
	audit := NewAuditService(repository.NewAuditLogRepo(db))
	svc := NewAuthService(
		repository.NewUserRepo(db),
		repository.NewRefreshTokenRepo(db),
		audit,
	)
	return &authFixture{db: db, service: svc}
}

func TestRegisterAndLogin(t *testing.T) {
	f := newAuthFixture(t)

	user, err := f.service.Register(&RegisterRequest{
		Email:    "owner@shop.local",
		Password: "secret123",
		Name:     "Shop Owner",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.NotEqual(t, "secret123", user.Password) // stored as a hash

	loggedIn, pair, err := f.service.Login("owner@shop.local", "secret123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	claims, err := token.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, model.RoleUser, claims.Role)

	// Login persists the refresh token for server-side revocation.
	var stored model.RefreshToken
	require.NoError(t, f.db.First(&stored, "token = ?", pair.RefreshToken).Error)
	assert.Equal(t, user.ID, stored.UserID)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.service.Register(&RegisterRequest{Email: "a@b.local", Password: "secret123"})
	require.NoError(t, err)

	_, err = f.service.Register(&RegisterRequest{Email: "a@b.local", Password: "other-pass"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterRejectsWeakInput(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.service.Register(&RegisterRequest{Email: "not-an-email", Password: "secret123"})
	assert.Error(t, err)

	_, err = f.service.Register(&RegisterRequest{Email: "a@b.local", Password: "short"})
	assert.Error(t, err)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.service.Register(&RegisterRequest{Email: "a@b.local", Password: "secret123"})
	require.NoError(t, err)

	_, _, err = f.service.Login("a@b.local", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = f.service.Login("nobody@b.local", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshMintsNewAccessToken(t *testing.T) {
	f := newAuthFixture(t)

	user, err := f.service.Register(&RegisterRequest{Email: "a@b.local", Password: "secret123"})
	require.NoError(t, err)
	_, pair, err := f.service.Login("a@b.local", "secret123")
	require.NoError(t, err)

	access, err := f.service.Refresh(pair.RefreshToken)
	require.NoError(t, err)
	claims, err := token.ValidateAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestRefreshRejectsRevokedToken(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.service.Register(&RegisterRequest{Email: "a@b.local", Password: "secret123"})
	require.NoError(t, err)
	_, pair, err := f.service.Login("a@b.local", "secret123")
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(pair.RefreshToken))

	// Still validly signed, but no longer stored server-side.
	_, err = f.service.Refresh(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefresh)
}

func TestRefreshRejectsExpiredStoredToken(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.service.Register(&RegisterRequest{Email: "a@b.local", Password: "secret123"})
	require.NoError(t, err)
	_, pair, err := f.service.Login("a@b.local", "secret123")
	require.NoError(t, err)

	require.NoError(t, f.db.Model(&model.RefreshToken{}).
		Where("token = ?", pair.RefreshToken).
		Update("expires_at", time.Now().Add(-time.Hour)).Error)

	_, err = f.service.Refresh(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefresh)
}

func TestRefreshRejectsGarbage(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.service.Refresh("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidRefresh)
}

func TestMe(t *testing.T) {
	f := newAuthFixture(t)

	user, err := f.service.Register(&RegisterRequest{Email: "a@b.local", Password: "secret123"})
	require.NoError(t, err)

	found, err := f.service.Me(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, found.Email)
}
