package domain

import "fmt"

// Identity is what the authentication layer needs from an account.
type Identity interface {
	fmt.Stringer

	CheckPassword(raw string) bool
	SetPassword(raw string) error
	Active() bool
	HasPerm(perm string, target any) bool
	HasModulePerms(label string) bool
}

// IdentityConfig names the field used to log in and the extra fields that
// must be collected when an account is created.
type IdentityConfig struct {
	LoginField           string
	RequiredSignupFields []string
}

// AccountIdentity is the identity configuration for Account.
var AccountIdentity = IdentityConfig{
	LoginField:           FieldEmail,
	RequiredSignupFields: []string{FieldUsername},
}

// Field names as they appear in validation errors and signup payloads.
const (
	FieldEmail     = "email"
	FieldUsername  = "username"
	FieldPassword  = "password"
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
)
