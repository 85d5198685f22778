package dispatch

import (
	"errors"
	"fmt"

	"github.com/mfulz/strategist/matchkey"
)

var (
	// ErrDuplicateKey indicates a rule key that is already owned by another
	// handler type. Use errors.As with *DuplicateKeyError for details.
	ErrDuplicateKey = errors.New("dispatch: duplicate rule key")
	// ErrSealed indicates a registration attempt on a sealed registry.
	ErrSealed = errors.New("dispatch: registry sealed")
	// ErrInvalidType indicates a malformed handler type descriptor.
	ErrInvalidType = errors.New("dispatch: invalid handler type")
	// ErrInheritanceCycle indicates a Parent chain that loops back on itself.
	ErrInheritanceCycle = errors.New("dispatch: inheritance cycle")
	// ErrKeyNotComparable indicates a rule key that cannot be used as a map key.
	ErrKeyNotComparable = errors.New("dispatch: rule key is not comparable")
)

// DuplicateKeyError is returned when a handler type is registered under a
// concrete key that another handler type already owns.
type DuplicateKeyError struct {
	Key      matchkey.Key
	Existing string
	Incoming string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("dispatch: duplicate key %s for %s and existing registered handler %s",
		matchkey.Format(e.Key), e.Incoming, e.Existing)
}

// Is makes errors.Is(err, ErrDuplicateKey) hold.
func (e *DuplicateKeyError) Is(target error) bool { return target == ErrDuplicateKey }
