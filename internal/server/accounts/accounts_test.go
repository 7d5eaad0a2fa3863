package accounts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ymiyake/enquete/internal/common"
)

func TestSignUpThenSignIn(t *testing.T) {
	m := NewManager()
	ctx := context.Background()

	acc, err := m.SignUp(ctx, "Alice@Example.com", "pw123")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", acc.Email)
	assert.NotEmpty(t, acc.LocalID)

	got, err := m.SignIn(ctx, "alice@example.com", "pw123")
	require.NoError(t, err)
	assert.Equal(t, acc.LocalID, got.LocalID)
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	m := NewManager()
	ctx := context.Background()

	_, err := m.SignUp(ctx, "alice@example.com", "pw")
	require.NoError(t, err)

	_, err = m.SignUp(ctx, "alice@example.com", "other")
	assert.ErrorIs(t, err, common.ErrEmailExists)
}

func TestSignUp_Validation(t *testing.T) {
	m := NewManager()
	ctx := context.Background()

	_, err := m.SignUp(ctx, "", "pw")
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = m.SignUp(ctx, "a@b.c", "")
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestSignIn_InvalidCredentials(t *testing.T) {
	m := NewManager()
	ctx := context.Background()

	_, err := m.SignIn(ctx, "ghost@example.com", "pw")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)

	_, err = m.SignUp(ctx, "alice@example.com", "pw")
	require.NoError(t, err)

	_, err = m.SignIn(ctx, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}
