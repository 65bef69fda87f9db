package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/profiles/internal/profiles/domain"
	"github.com/aussiebroadwan/profiles/internal/profiles/store"
	"github.com/aussiebroadwan/profiles/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func newAccount(email string, joined time.Time) domain.Account {
	return domain.Account{
		ID:           idx.NewAt(joined).String(),
		Email:        email,
		Username:     "user",
		FirstName:    "Jane",
		LastName:     "Smith",
		PasswordHash: "!unusable",
		IsActive:     true,
		DateJoined:   joined,
		UpdatedAt:    joined,
	}
}

func TestAccountsInsertAndFind(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	acc := newAccount("jane@example.com", now)
	require.NoError(t, s.Accounts().Insert(ctx, acc))

	byEmail, err := s.Accounts().FindByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	require.Equal(t, acc.ID, byEmail.ID)
	require.Equal(t, "Smith", byEmail.LastName)
	require.True(t, byEmail.IsActive)
	require.False(t, byEmail.IsAdmin)
	require.Nil(t, byEmail.LastLogin)
	require.True(t, now.Equal(byEmail.DateJoined))

	byID, err := s.Accounts().FindByID(ctx, acc.ID)
	require.NoError(t, err)
	require.Equal(t, byEmail.Email, byID.Email)
}

func TestAccountsNotFound(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.Accounts().FindByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Accounts().FindByID(ctx, idx.New().String())
	require.ErrorIs(t, err, store.ErrNotFound)

	err = s.Accounts().Update(ctx, newAccount("ghost@example.com", time.Now().UTC()))
	require.ErrorIs(t, err, store.ErrNotFound)

	err = s.Accounts().UpdateLastLogin(ctx, idx.New().String(), time.Now().UTC())
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestAccountsEmailUniqueIgnoresCase(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	now := time.Now().UTC()

	require.NoError(t, s.Accounts().Insert(ctx, newAccount("alice@example.com", now)))

	err := s.Accounts().Insert(ctx, newAccount("Alice@Example.COM", now.Add(time.Millisecond)))
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	count, err := s.Accounts().Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestAccountsUpdate(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	joined := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	acc := newAccount("bob@example.com", joined)
	require.NoError(t, s.Accounts().Insert(ctx, acc))

	acc.IsStaff = true
	acc.IsAdmin = true
	acc.IsSuperuser = true
	acc.FirstName = "Bobby"
	acc.UpdatedAt = joined.Add(time.Hour)
	acc.DateJoined = joined.Add(48 * time.Hour) // ignored
	require.NoError(t, s.Accounts().Update(ctx, acc))

	got, err := s.Accounts().FindByID(ctx, acc.ID)
	require.NoError(t, err)
	require.True(t, got.IsStaff)
	require.True(t, got.IsAdmin)
	require.True(t, got.IsSuperuser)
	require.Equal(t, "Bobby", got.FirstName)
	require.True(t, joined.Equal(got.DateJoined))
	require.True(t, acc.UpdatedAt.Equal(got.UpdatedAt))
}

func TestAccountsUpdateLastLogin(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	joined := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	acc := newAccount("carol@example.com", joined)
	require.NoError(t, s.Accounts().Insert(ctx, acc))

	at := joined.Add(24 * time.Hour)
	require.NoError(t, s.Accounts().UpdateLastLogin(ctx, acc.ID, at))

	got, err := s.Accounts().FindByID(ctx, acc.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastLogin)
	require.True(t, at.Equal(*got.LastLogin))
}

func TestAccountsListAndCount(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	emails := []string{"a@example.com", "b@example.com", "c@example.com"}
	for i, email := range emails {
		require.NoError(t, s.Accounts().Insert(ctx, newAccount(email, base.Add(time.Duration(i)*time.Hour))))
	}

	count, err := s.Accounts().Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 3, count)

	page, err := s.Accounts().List(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, page, 2)
	require.Equal(t, "a@example.com", page[0].Email)
	require.Equal(t, "b@example.com", page[1].Email)

	page, err = s.Accounts().List(ctx, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	require.Equal(t, "c@example.com", page[0].Email)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	err := s.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Accounts().Insert(ctx, newAccount("dave@example.com", time.Now().UTC())); err != nil {
			return err
		}
		return store.ErrNotFound
	})
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Accounts().FindByEmail(ctx, "dave@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTxCommits(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	err := s.WithTx(ctx, func(tx store.Tx) error {
		return tx.Accounts().Insert(ctx, newAccount("erin@example.com", time.Now().UTC()))
	})
	require.NoError(t, err)

	_, err = s.Accounts().FindByEmail(ctx, "erin@example.com")
	require.NoError(t, err)
}

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Ping(context.Background()))
}
