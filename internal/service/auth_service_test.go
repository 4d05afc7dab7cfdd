package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursehub/internal/domain"
)

func TestRegisterFirstUserIsAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.auth.Register(ctx, "Alice", "alice@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, first.User.Role)
	assert.NotEmpty(t, first.Token)

	second, err := f.auth.Register(ctx, "Bob", "bob@example.com", "secret2")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStudent, second.User.Role)

	third, err := f.auth.Register(ctx, "Carol", "carol@example.com", "secret3")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStudent, third.User.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, "Alice", "alice@example.com", "secret1")
	require.NoError(t, err)

	_, err = f.auth.Register(ctx, "Other Alice", "alice@example.com", "secret2")
	assert.ErrorIs(t, err, domain.ErrEmailTaken)

	// case-insensitive match; no second record either way
	_, err = f.auth.Register(ctx, "Shouty Alice", "ALICE@example.com", "secret3")
	assert.ErrorIs(t, err, domain.ErrEmailTaken)

	n, err := f.auth.users.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, "", "x@example.com", "secret")
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = f.auth.Register(ctx, "X", "x@example.com", "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, "Alice", "alice@example.com", "secret1")
	require.NoError(t, err)

	creds, err := f.auth.Login(ctx, "alice@example.com", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, creds.Token)

	// the issued token authenticates back to the same user
	u, err := f.auth.Authenticate(ctx, creds.Token)
	require.NoError(t, err)
	assert.Equal(t, creds.User.ID, u.ID)

	_, err = f.auth.Login(ctx, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = f.auth.Login(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthenticateRejectsGarbage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.Authenticate(ctx, "not-a-token")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthenticateUnknownIdentity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// valid signature over an identity that is not in the store
	tok, err := newJWTer().Issue("ghost-id", domain.RoleStudent)
	// same secret/issuer as the fixture jwter
	require.NoError(t, err)
	_, err = f.auth.Authenticate(ctx, tok)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestBootstrapAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.auth.BootstrapAdmin(ctx, "Ops", "ops@example.com", "secret1"))
	// idempotent
	require.NoError(t, f.auth.BootstrapAdmin(ctx, "Ops", "ops@example.com", "secret1"))

	creds, err := f.auth.Login(ctx, "ops@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, creds.User.Role)

	// seeded admin does not steal the first-registrant rule's slot:
	// the store is non-empty now, so the next registrant is a student
	reg, err := f.auth.Register(ctx, "Bob", "bob@example.com", "secret2")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleStudent, reg.User.Role)
}

func TestGrantRole(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, "Alice", "alice@example.com", "secret1")
	require.NoError(t, err)
	bob, err := f.auth.Register(ctx, "Bob", "bob@example.com", "secret2")
	require.NoError(t, err)

	require.NoError(t, f.admin.GrantRole(ctx, bob.User.ID, domain.RoleAdmin))

	// takes effect on next authenticate, roles come from the store
	u, err := f.auth.Authenticate(ctx, bob.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, u.Role)

	err = f.admin.GrantRole(ctx, "missing-id", domain.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = f.admin.GrantRole(ctx, bob.User.ID, "owner")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
