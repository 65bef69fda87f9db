// Package idx generates the surrogate identifiers used for account rows and
// request correlation. Identifiers are ULIDs, so they sort by creation time.
package idx

import (
	"crypto/rand"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

type ID string

// Zero is the empty ID. Rows are never stored with it.
const Zero ID = ""

var ErrInvalid = errors.New("idx: invalid ulid")

var (
	sourceOnce sync.Once
	sourceMu   sync.Mutex
	entropy    *ulid.MonotonicEntropy
)

func initSource() {
	entropy = ulid.Monotonic(rand.Reader, 0)
}

// New returns a fresh ID stamped with the current UTC time.
func New() ID {
	return NewAt(time.Now().UTC())
}

// NewAt returns an ID stamped with t. IDs minted within the same millisecond
// still increase monotonically.
func NewAt(t time.Time) ID {
	sourceOnce.Do(initSource)

	sourceMu.Lock()
	defer sourceMu.Unlock()

	return ID(ulid.MustNew(ulid.Timestamp(t), entropy).String())
}

// Parse validates s as a canonical ULID.
func Parse(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero, ErrInvalid
	}
	if _, err := ulid.ParseStrict(s); err != nil {
		return Zero, ErrInvalid
	}
	return ID(s), nil
}

func (id ID) IsZero() bool   { return id == Zero }
func (id ID) String() string { return string(id) }

// Time returns the timestamp embedded in the ID, or the zero time when the ID
// does not parse.
func (id ID) Time() time.Time {
	u, err := ulid.ParseStrict(id.String())
	if err != nil {
		return time.Time{}
	}
	return ulid.Time(u.Time())
}
