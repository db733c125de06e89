package sqlite

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"ecell/internal/domain/entity"
	domainerrors "ecell/internal/domain/errors"
	"ecell/internal/domain/repository"
	"ecell/internal/errors"
)

func newTestCache(t *testing.T) repository.AccountCache {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&accountModel{}))

	return NewAccountCache(AccountCacheParams{
		DB:     db,
		Logger: slog.New(slog.DiscardHandler),
	})
}

func sampleAccount() *entity.Account {
	account := entity.NewAccount("uid-1", "Asha Rao", "asha@kiet.edu", "$2a$hash", "LIB-42", "9999999999")
	account.Designation = "Design Lead"
	account.CollegeEmail = "asha.rao@kiet.edu"
	account.DOB = time.Date(2004, 7, 21, 0, 0, 0, 0, time.UTC)

	return account
}

func TestAccountCache_UpsertThenGet(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()
	account := sampleAccount()

	require.NoError(t, cache.Upsert(ctx, account))

	got, err := cache.GetByKey(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, account.Email, got.Email)
	assert.Equal(t, account.LibraryID, got.LibraryID)
	assert.Equal(t, account.Designation, got.Designation)
	assert.Equal(t, account.CollegeEmail, got.CollegeEmail)
	assert.Equal(t, account.DOB.UnixMilli(), got.DOB.UnixMilli())
	assert.Equal(t, account.Status, got.Status)
}

func TestAccountCache_UpsertReplacesExistingRow(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Upsert(ctx, sampleAccount()))

	updated := sampleAccount()
	updated.City = "Ghaziabad"
	updated.Status = entity.StatusVerified
	require.NoError(t, cache.Upsert(ctx, updated))

	got, err := cache.GetByKey(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, "Ghaziabad", got.City)
	assert.Equal(t, entity.StatusVerified, got.Status)
}

func TestAccountCache_MissReturnsSentinel(t *testing.T) {
	cache := newTestCache(t)

	_, err := cache.GetByKey(context.Background(), "nobody")
	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrCacheMiss))
}

func TestAccountCache_UpdateExistingRow(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Upsert(ctx, sampleAccount()))

	edited := sampleAccount()
	edited.PhoneNumber = "8888888888"
	edited.ProfilePic = "" // cleared field must clear the column
	require.NoError(t, cache.Update(ctx, edited))

	got, err := cache.GetByKey(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, "8888888888", got.PhoneNumber)
	assert.Empty(t, got.ProfilePic)
}

func TestAccountCache_UpdateAbsentRowFails(t *testing.T) {
	cache := newTestCache(t)

	err := cache.Update(context.Background(), sampleAccount())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestAccountCache_DeleteByKey(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Upsert(ctx, sampleAccount()))
	require.NoError(t, cache.DeleteByKey(ctx, "uid-1"))

	_, err := cache.GetByKey(ctx, "uid-1")
	assert.True(t, errors.Is(err, repository.ErrCacheMiss))

	// deleting an absent row is a no-op
	assert.NoError(t, cache.DeleteByKey(ctx, "uid-1"))
}

func TestMapEngineError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"disk full", errors.New("database or disk is full (13)"), domainerrors.ErrDiskFull},
		{"constraint", errors.New("UNIQUE constraint failed: ecell_accounts.id"), domainerrors.ErrConstraintViolation},
		{"corrupted", errors.New("file is not a database (26)"), domainerrors.ErrCacheCorrupted},
		{"fallback", errors.New("i/o error"), domainerrors.ErrInsertFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapEngineError(tt.err, domainerrors.ErrInsertFailed)
			assert.True(t, errors.Is(got, tt.want))
		})
	}
}
