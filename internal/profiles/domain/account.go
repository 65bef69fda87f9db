package domain

import (
	"time"

	"github.com/aussiebroadwan/profiles/pkg/cryptox"
)

// Account is the persisted user identity. Email is the login identifier and
// is always stored in canonical form (see NormalizeEmail).
type Account struct {
	ID           string
	Email        string
	Username     string
	FirstName    string
	LastName     string
	PasswordHash string // argon2id PHC string, or an unusable marker

	IsActive    bool
	IsStaff     bool
	IsAdmin     bool
	IsSuperuser bool

	DateJoined time.Time  // set once when the account is created
	LastLogin  *time.Time // nil until the first successful login
	UpdatedAt  time.Time
}

var _ Identity = (*Account)(nil)

// HasPerm reports whether the account holds perm on target. Permissions are
// all-or-nothing: admins hold every permission, nobody else holds any.
func (a *Account) HasPerm(perm string, target any) bool {
	return a.IsAdmin
}

// HasModulePerms reports whether the account may see anything in the module
// with the given label. Only active accounts may.
func (a *Account) HasModulePerms(label string) bool {
	return a.IsActive
}

// FullName renders the surname first: "Smith Jane".
func (a *Account) FullName() string {
	return a.LastName + " " + a.FirstName
}

func (a *Account) String() string { return a.Email }

func (a *Account) Active() bool { return a.IsActive }

// SetPassword replaces the stored credential with the hash of raw. An empty
// raw password leaves the account without a usable password.
func (a *Account) SetPassword(raw string) error {
	var (
		hash string
		err  error
	)
	if raw == "" {
		hash, err = cryptox.UnusablePassword()
	} else {
		hash, err = cryptox.HashPassword(raw)
	}
	if err != nil {
		return err
	}
	a.PasswordHash = hash
	return nil
}

// CheckPassword reports whether raw matches the stored hash.
func (a *Account) CheckPassword(raw string) bool {
	return cryptox.VerifyPassword(raw, a.PasswordHash) == nil
}

func (a *Account) HasUsablePassword() bool {
	return cryptox.IsUsable(a.PasswordHash)
}
