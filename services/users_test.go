package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	models "github.com/phillip/venturelink/models"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	user, err := f.users.Register(ctx, Registration{
		Name:     "Grace",
		Email:    "  Grace@Example.COM ",
		Password: "s3cret!",
		Role:     models.RoleInvestor,
		Company:  "Hopper Capital",
	})
	require.NoError(t, err)
	assert.Equal(t, "grace@example.com", user.Email)
	assert.NotEqual(t, "s3cret!", user.PasswordHash)
	assert.Empty(t, user.Sanitize().PasswordHash)

	got, err := f.users.Authenticate(ctx, "GRACE@example.com", "s3cret!")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = f.users.Authenticate(ctx, "grace@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.users.Authenticate(ctx, "nobody@example.com", "s3cret!")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	stored, ok := f.users.Get(ctx, user.ID)
	require.True(t, ok)
	assert.Equal(t, "Hopper Capital", stored.Company)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.users.Register(ctx, Registration{Name: "Ada", Email: "ADA@example.com", Password: "secret1", Role: models.RoleFounder})
	assert.ErrorIs(t, err, ErrConflict)
	assert.EqualError(t, err, "User with this email already exists")
}
