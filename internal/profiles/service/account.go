package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/profiles/internal/profiles/domain"
	"github.com/aussiebroadwan/profiles/internal/profiles/store"
	"github.com/aussiebroadwan/profiles/pkg/idx"
	"github.com/aussiebroadwan/profiles/pkg/slogx"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// PermViewAccounts gates the admin account listing.
const PermViewAccounts = "accounts.view"

// AccountService creates, authenticates and looks up accounts. It is the only
// place that sets account timestamps.
type AccountService struct {
	Store store.Store
	Now   func() time.Time // defaults to time.Now
}

// AccountOption sets optional profile fields on a new account.
type AccountOption func(*domain.Account)

func WithName(first, last string) AccountOption {
	return func(a *domain.Account) {
		a.FirstName = first
		a.LastName = last
	}
}

func (s *AccountService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// CreateUser validates, canonicalizes and persists a regular account. An
// empty password leaves the account without a usable password. Nothing is
// written when validation fails.
func (s *AccountService) CreateUser(
	ctx context.Context,
	username, email, password string,
	opts ...AccountOption,
) (domain.Account, error) {
	return s.createUser(ctx, s.Store, username, email, password, opts...)
}

// CreateSuperuser creates an account with every privilege flag set. The
// account is created and then promoted in a single transaction.
func (s *AccountService) CreateSuperuser(
	ctx context.Context,
	username, email, password string,
	opts ...AccountOption,
) (domain.Account, error) {
	l := slogx.FromContext(ctx)

	if err := domain.ValidateSignup(map[string]string{
		domain.FieldEmail:    email,
		domain.FieldUsername: username,
	}); err != nil {
		l.Warn("superuser rejected", slog.Any("error", err))
		return domain.Account{}, err
	}
	if password == "" {
		l.Warn("superuser rejected", slog.Any("error", domain.ErrPasswordRequired))
		return domain.Account{}, domain.ErrPasswordRequired
	}

	var acc domain.Account
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		acc, err = s.createUser(ctx, tx, username, email, password, opts...)
		if err != nil {
			return err
		}

		acc.IsSuperuser = true
		acc.IsStaff = true
		acc.IsAdmin = true
		acc.UpdatedAt = s.now()
		return tx.Accounts().Update(ctx, acc)
	})
	if err != nil {
		return domain.Account{}, err
	}

	l.Info("superuser created", slog.String("account_id", acc.ID), slog.String("email", acc.Email))
	return acc, nil
}

func (s *AccountService) createUser(
	ctx context.Context,
	st store.Store,
	username, email, password string,
	opts ...AccountOption,
) (domain.Account, error) {
	l := slogx.FromContext(ctx)

	if err := domain.ValidateSignup(map[string]string{
		domain.FieldEmail:    email,
		domain.FieldUsername: username,
	}); err != nil {
		l.Warn("account rejected", slog.Any("error", err))
		return domain.Account{}, err
	}

	now := s.now()
	acc := domain.Account{
		ID:         idx.NewAt(now).String(),
		Email:      domain.NormalizeEmail(email),
		Username:   username,
		IsActive:   true,
		DateJoined: now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(&acc)
	}

	if err := acc.SetPassword(password); err != nil {
		l.Error("failed to hash password", slog.Any("error", err))
		return domain.Account{}, err
	}

	if err := st.Accounts().Insert(ctx, acc); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			l.Warn("account email already registered", slog.String("email", acc.Email))
		} else {
			l.Error("failed to insert account", slog.Any("error", err))
		}
		return domain.Account{}, err
	}

	l.Info("account created", slog.String("account_id", acc.ID))
	return acc, nil
}

// Authenticate checks email and password and records the login. Unknown
// emails, inactive accounts and wrong passwords all fail with
// ErrInvalidCredentials.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (domain.Account, error) {
	l := slogx.FromContext(ctx)

	acc, err := s.Store.Accounts().FindByEmail(ctx, domain.NormalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		l.Warn("login for unknown email")
		return domain.Account{}, ErrInvalidCredentials
	}
	if err != nil {
		l.Error("failed to load account", slog.Any("error", err))
		return domain.Account{}, err
	}

	if !acc.Active() {
		l.Warn("login for inactive account", slog.String("account_id", acc.ID))
		return domain.Account{}, ErrInvalidCredentials
	}
	if !acc.CheckPassword(password) {
		l.Warn("login with wrong password", slog.String("account_id", acc.ID))
		return domain.Account{}, ErrInvalidCredentials
	}

	now := s.now()
	if err := s.Store.Accounts().UpdateLastLogin(ctx, acc.ID, now); err != nil {
		l.Error("failed to record login", slog.String("account_id", acc.ID), slog.Any("error", err))
		return domain.Account{}, err
	}
	acc.LastLogin = &now
	acc.UpdatedAt = now

	return acc, nil
}

func (s *AccountService) GetByID(ctx context.Context, id string) (domain.Account, error) {
	return s.Store.Accounts().FindByID(ctx, id)
}

func (s *AccountService) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	return s.Store.Accounts().FindByEmail(ctx, domain.NormalizeEmail(email))
}

// List returns one page of accounts plus the total number of accounts.
func (s *AccountService) List(ctx context.Context, limit, offset int) ([]domain.Account, int64, error) {
	accounts, err := s.Store.Accounts().List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.Store.Accounts().Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return accounts, total, nil
}

// IsEmpty reports whether no account exists yet.
func (s *AccountService) IsEmpty(ctx context.Context) (bool, error) {
	n, err := s.Store.Accounts().Count(ctx)
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

// HasPermission loads the account behind subject and asks it about perm.
// Inactive or missing accounts hold nothing.
func (s *AccountService) HasPermission(ctx context.Context, subject, perm string) (bool, error) {
	acc, err := s.Store.Accounts().FindByID(ctx, subject)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return acc.Active() && acc.HasPerm(perm, nil), nil
}
