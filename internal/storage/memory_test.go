package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vantagefin/vantage/internal/models"
)

func TestMemoryStorage_CreateAndGetUser(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	created, err := s.CreateUser(ctx, "Ann", "ann@x.com", "hashed")
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	byEmail, err := s.GetUserByEmail(ctx, "ann@x.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, created.ID, byEmail.ID)
	assert.Equal(t, "hashed", byEmail.PasswordHash)

	byID, err := s.GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Empty(t, byID.PasswordHash, "lookups by ID must not expose the hash")
}

func TestMemoryStorage_MissingUserIsNilNil(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	user, err := s.GetUserByEmail(ctx, "ghost@x.com")
	require.NoError(t, err)
	assert.Nil(t, user)

	user, err = s.GetUserByID(ctx, "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestMemoryStorage_UpdateUserPartial(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	created, err := s.CreateUser(ctx, "Ann", "ann@x.com", "hashed")
	require.NoError(t, err)

	updated, err := s.UpdateUser(ctx, created.ID, "Anna", "", "")
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Anna", updated.Name)
	assert.Equal(t, "ann@x.com", updated.Email, "empty fields must be left untouched")

	// Email change must move the email index too.
	_, err = s.UpdateUser(ctx, created.ID, "", "anna@x.com", "")
	require.NoError(t, err)

	stale, err := s.GetUserByEmail(ctx, "ann@x.com")
	require.NoError(t, err)
	assert.Nil(t, stale)

	fresh, err := s.GetUserByEmail(ctx, "anna@x.com")
	require.NoError(t, err)
	require.NotNil(t, fresh)
	assert.Equal(t, created.ID, fresh.ID)
}

func TestMemoryStorage_GetFirstByUserID_ReturnsEarliest(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	base := time.Now()
	require.NoError(t, s.CreatePortfolio(ctx, &models.Portfolio{
		ID: "p2", UserID: "u1", Name: "Second", CreatedAt: base.Add(time.Minute),
	}))
	require.NoError(t, s.CreatePortfolio(ctx, &models.Portfolio{
		ID: "p1", UserID: "u1", Name: "First", CreatedAt: base,
	}))
	require.NoError(t, s.CreatePortfolio(ctx, &models.Portfolio{
		ID: "p3", UserID: "u2", Name: "Other", CreatedAt: base.Add(-time.Hour),
	}))

	got, err := s.GetFirstByUserID(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "p1", got.ID)
}

func TestMemoryStorage_GetFirstByUserID_NoPortfolio(t *testing.T) {
	s := NewMemoryStorage()

	got, err := s.GetFirstByUserID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStorage_ReturnsCopies(t *testing.T) {
	s := NewMemoryStorage()
	ctx := context.Background()

	created, err := s.CreateUser(ctx, "Ann", "ann@x.com", "hashed")
	require.NoError(t, err)

	created.Name = "mutated"

	stored, err := s.GetUserByEmail(ctx, "ann@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Ann", stored.Name, "caller mutations must not leak into the store")
}
