package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/profiles/internal/profiles/domain"
	"github.com/aussiebroadwan/profiles/internal/profiles/store"
	"github.com/aussiebroadwan/profiles/internal/profiles/store/drivers/sqlite/gen"
)

type accountsRepo struct {
	q *gen.Queries
}

func (r *accountsRepo) Insert(ctx context.Context, a domain.Account) error {
	err := r.q.CreateAccount(ctx, gen.CreateAccountParams{
		ID:           a.ID,
		Email:        a.Email,
		Username:     a.Username,
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		PasswordHash: a.PasswordHash,
		IsActive:     a.IsActive,
		IsStaff:      a.IsStaff,
		IsAdmin:      a.IsAdmin,
		IsSuperuser:  a.IsSuperuser,
		DateJoined:   a.DateJoined,
		LastLogin:    mapOptionalTime(a.LastLogin),
		UpdatedAt:    a.UpdatedAt,
	})
	return mapConstraint(err)
}

func (r *accountsRepo) FindByEmail(ctx context.Context, email string) (domain.Account, error) {
	row, err := r.q.GetAccountByEmail(ctx, email)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return mapAccount(row), nil
}

func (r *accountsRepo) FindByID(ctx context.Context, id string) (domain.Account, error) {
	row, err := r.q.GetAccountByID(ctx, id)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return mapAccount(row), nil
}

func (r *accountsRepo) Update(ctx context.Context, a domain.Account) error {
	n, err := r.q.UpdateAccount(ctx, gen.UpdateAccountParams{
		Username:     a.Username,
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		PasswordHash: a.PasswordHash,
		IsActive:     a.IsActive,
		IsStaff:      a.IsStaff,
		IsAdmin:      a.IsAdmin,
		IsSuperuser:  a.IsSuperuser,
		LastLogin:    mapOptionalTime(a.LastLogin),
		UpdatedAt:    a.UpdatedAt,
		ID:           a.ID,
	})
	if err != nil {
		return mapConstraint(err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *accountsRepo) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	n, err := r.q.UpdateAccountLastLogin(ctx, gen.UpdateAccountLastLoginParams{
		LastLogin: sql.NullTime{Time: at, Valid: true},
		UpdatedAt: at,
		ID:        id,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *accountsRepo) List(ctx context.Context, limit, offset int) ([]domain.Account, error) {
	rows, err := r.q.ListAccounts(ctx, gen.ListAccountsParams{
		Limit:  int64(limit),
		Offset: int64(offset),
	})
	if err != nil {
		return nil, err
	}

	out := make([]domain.Account, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapAccount(row))
	}
	return out, nil
}

func (r *accountsRepo) Count(ctx context.Context) (int64, error) {
	return r.q.CountAccounts(ctx)
}
