package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// use TestMain(m *testing.M) for global set-up/tear-down
// for all the tests in a package
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// bcrypt at cost 14 would dominate unit test time, so the hashing funcs
// are swapped with cheap fakes here; pkg/password_hash_test.go covers the
// real thing
func newTestService(t *testing.T) (*Service, *repoMock) {
	t.Helper()

	repo := newRepoMock()
	tokens, err := NewTokenService([]byte("test-secret"), "HS256", 30*time.Minute)
	require.NoError(t, err)

	service := NewService(repo, tokens)
	service.HashFunc = func(password string) (string, error) {
		return "hashed::" + password, nil
	}
	service.CheckFunc = func(password, hash string) bool {
		return hash == "hashed::"+password
	}
	return service, repo
}

func TestService_NeedsSetup(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	needsSetup, err := service.NeedsSetup(ctx)
	require.NoError(t, err)
	assert.True(t, needsSetup)

	_, _, err = service.Setup(ctx, "admin", "admin@site.test", "secret123")
	require.NoError(t, err)

	needsSetup, err = service.NeedsSetup(ctx)
	require.NoError(t, err)
	assert.False(t, needsSetup)
}

func TestService_Setup(t *testing.T) {
	ctx := context.Background()
	service, repo := newTestService(t)

	admin, token, err := service.Setup(ctx, "admin", "admin@site.test", "secret123")
	require.NoError(t, err)
	require.NotNil(t, admin)
	require.NotEmpty(t, token)
	assert.NotEmpty(t, admin.ID)
	assert.Equal(t, "admin", admin.Username)
	assert.Equal(t, "admin@site.test", admin.Email)
	assert.False(t, admin.CreatedAt.IsZero())

	// issued token resolves back to the new admin
	identity, err := service.tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, identity.ID)
	assert.Equal(t, "admin", identity.Username)

	stored, err := repo.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "hashed::secret123", stored.PasswordHash)

	// second setup is rejected regardless of input
	_, _, err = service.Setup(ctx, "other", "other@site.test", "whatever1")
	assert.ErrorIs(t, err, ErrSetupAlreadyDone)
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	_, _, err := service.Setup(ctx, "admin", "admin@site.test", "secret123")
	require.NoError(t, err)

	admin, token, err := service.Login(ctx, "admin", "secret123")
	require.NoError(t, err)
	require.NotNil(t, admin)
	require.NotEmpty(t, token)

	identity, err := service.tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", identity.Username)
}

func TestService_Login_uniformFailure(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	_, _, err := service.Setup(ctx, "admin", "admin@site.test", "secret123")
	require.NoError(t, err)

	// unknown user and wrong password fail with the exact same error
	_, _, errNoUser := service.Login(ctx, "nouser", "anything")
	_, _, errWrongPass := service.Login(ctx, "admin", "wrongpass")

	assert.ErrorIs(t, errNoUser, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPass, ErrInvalidCredentials)
	assert.Equal(t, errNoUser, errWrongPass)
}

func TestService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	admin, _, err := service.Setup(ctx, "admin", "admin@site.test", "secret123")
	require.NoError(t, err)
	identity := Identity{ID: admin.ID, Username: admin.Username}

	// wrong current password
	err = service.ChangePassword(ctx, identity, "wrongpass", "abcdef")
	assert.ErrorIs(t, err, ErrWrongPassword)

	// new password too short
	err = service.ChangePassword(ctx, identity, "secret123", "ab")
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	// ok
	err = service.ChangePassword(ctx, identity, "secret123", "abcdef")
	require.NoError(t, err)

	_, _, err = service.Login(ctx, "admin", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = service.Login(ctx, "admin", "abcdef")
	assert.NoError(t, err)
}

func TestService_ChangePassword_adminGone(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	_, _, err := service.Setup(ctx, "admin", "admin@site.test", "secret123")
	require.NoError(t, err)

	// backing record deleted out-of-band
	err = service.ChangePassword(
		ctx,
		Identity{ID: "65f1c0ffee0ddba11ad0beef", Username: "admin"},
		"secret123",
		"abcdef",
	)
	assert.ErrorIs(t, err, ErrAdminNotFound)
}
