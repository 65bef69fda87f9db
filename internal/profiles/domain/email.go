package domain

import "strings"

// NormalizeEmail returns the canonical form of an email address: surrounding
// whitespace removed and the whole address lowercased. Two addresses that
// differ only in case refer to the same account.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
