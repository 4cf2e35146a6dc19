package services_test

import (
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"velofleet/internal/domain"
	"velofleet/internal/repos"
	"velofleet/internal/services"
)

func authSvc(t *testing.T, ttl time.Duration) (*services.AuthService, *sqlx.DB) {
	db := memdb(t)
	return services.NewAuthService(repos.NewAdminRepo(db), "test-secret", ttl), db
}

func mustCreateAdmin(t *testing.T, svc *services.AuthService, email, password string) *domain.Admin {
	t.Helper()
	a, err := svc.CreateAdmin(email, password, "Test Admin", domain.RoleAdmin, "")
	require.NoError(t, err)
	return a
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	svc, _ := authSvc(t, time.Hour)
	a := mustCreateAdmin(t, svc, "staff@veloluxury.my", "s3cret-pass")

	got, token, err := svc.Login("staff@veloluxury.my", "s3cret-pass")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, a.ID, got.ID)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, a.ID, claims.AdminID)
	assert.Equal(t, "staff@veloluxury.my", claims.Email)
	assert.Equal(t, domain.RoleAdmin, claims.Role)

	// Login stamps last_login_at.
	fresh, err := svc.Admins.ByID(a.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, fresh.LastLoginAt)
}

func TestLoginEmailCaseInsensitive(t *testing.T) {
	svc, _ := authSvc(t, time.Hour)
	mustCreateAdmin(t, svc, "staff@veloluxury.my", "s3cret-pass")

	_, _, err := svc.Login("STAFF@VeloLuxury.MY", "s3cret-pass")
	assert.NoError(t, err)
}

func TestLoginBadCredentials(t *testing.T) {
	svc, _ := authSvc(t, time.Hour)
	mustCreateAdmin(t, svc, "staff@veloluxury.my", "s3cret-pass")

	_, _, err := svc.Login("staff@veloluxury.my", "wrong-pass")
	assert.ErrorIs(t, err, services.ErrBadCreds)
	_, _, err = svc.Login("nobody@veloluxury.my", "s3cret-pass")
	assert.ErrorIs(t, err, services.ErrBadCreds)
}

func TestLoginInactiveAccount(t *testing.T) {
	svc, _ := authSvc(t, time.Hour)
	a := mustCreateAdmin(t, svc, "staff@veloluxury.my", "s3cret-pass")

	ok, err := svc.Admins.ToggleActive(a.ID)
	require.NoError(t, err)
	require.True(t, ok)

	_, _, err = svc.Login("staff@veloluxury.my", "s3cret-pass")
	assert.ErrorIs(t, err, services.ErrInactiveAdmin)
}

func TestVerifyExpiredToken(t *testing.T) {
	svc, _ := authSvc(t, -time.Minute)
	mustCreateAdmin(t, svc, "staff@veloluxury.my", "s3cret-pass")

	_, token, err := svc.Login("staff@veloluxury.my", "s3cret-pass")
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}

func TestVerifyRejectsGarbageAndWrongSecret(t *testing.T) {
	svc, db := authSvc(t, time.Hour)
	mustCreateAdmin(t, svc, "staff@veloluxury.my", "s3cret-pass")

	_, err := svc.Verify("not-a-token")
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	_, token, err := svc.Login("staff@veloluxury.my", "s3cret-pass")
	require.NoError(t, err)

	other := services.NewAuthService(repos.NewAdminRepo(db), "different-secret", time.Hour)
	_, err = other.Verify(token)
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}

// A deactivated admin loses access immediately, even with an unexpired token.
func TestCurrentAdminDeactivatedMidSession(t *testing.T) {
	svc, _ := authSvc(t, time.Hour)
	a := mustCreateAdmin(t, svc, "staff@veloluxury.my", "s3cret-pass")

	_, token, err := svc.Login("staff@veloluxury.my", "s3cret-pass")
	require.NoError(t, err)

	got, err := svc.CurrentAdmin(token)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	_, err = svc.Admins.ToggleActive(a.ID)
	require.NoError(t, err)

	_, err = svc.CurrentAdmin(token)
	assert.ErrorIs(t, err, services.ErrInactiveAdmin)
}

// A fresh database carries the bootstrap super admin.
func TestBootstrapAdminSeeded(t *testing.T) {
	svc, _ := authSvc(t, time.Hour)

	a, _, err := svc.Login("admin@veloluxury.my", "ChangeMe!2024")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleSuperAdmin, a.Role)
}
