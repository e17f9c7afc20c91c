package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templui/goalnote/internal/apperror"
	"github.com/templui/goalnote/internal/repository"
)

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)

	user, err := s.users.Register(ctx, "  A@X.com ", "pw", "Alice")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)
	assert.NotEqual(t, "pw", user.PasswordHash)

	loggedIn, pair, err := s.auth.Login(ctx, "a@x.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	owner, err := s.auth.Authenticate("Bearer " + pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.Owner(), owner)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)
	s.register(t, "a@x.com")

	_, err := s.users.Register(ctx, "A@x.com", "pw", "")
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	assert.Equal(t, apperror.KindBadRequest, apperror.KindOf(err))
}

func TestLoginFailures(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)
	s.register(t, "a@x.com")

	_, _, err := s.auth.Login(ctx, "a@x.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = s.auth.Login(ctx, "nobody@x.com", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)
	owner := s.register(t, "a@x.com")

	_, pair, err := s.auth.Login(ctx, "a@x.com", "pw")
	require.NoError(t, err)

	refreshed, err := s.auth.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	got, err := s.auth.Authenticate("Bearer " + refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, owner, got)

	_, err = s.auth.Refresh(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidTokenType)
}

func TestRefreshForDeletedUser(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)

	ghost, err := s.tokens.Issue(999, TokenTypeRefresh)
	require.NoError(t, err)

	_, err = s.auth.Refresh(ctx, ghost)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestAuthenticateRejectsRefreshToken(t *testing.T) {
	s := newTestServices(t)
	token, err := s.tokens.Issue(1, TokenTypeRefresh)
	require.NoError(t, err)

	_, err = s.auth.Authenticate("Bearer " + token)
	assert.ErrorIs(t, err, ErrInvalidTokenType)
}
