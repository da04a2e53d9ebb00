package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jpl-au/darc/internal/store"
	"github.com/jpl-au/darc/internal/validate"
)

var (
	// ErrCycleDetected is returned when a tree render meets a parent loop.
	// The concrete error is a *CycleError naming the ids involved.
	ErrCycleDetected = errors.New("cycle detected in hierarchy")
	// ErrInvalidQuery is returned for blank search queries.
	ErrInvalidQuery = validate.ErrInvalidQuery
	// ErrUnauthenticated is returned when a lookup that requires an
	// identity is made without one.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrUnknownKind is returned for kinds an operation does not support.
	ErrUnknownKind = store.ErrUnknownKind
)

// CycleError reports the node ids that could not be placed in a tree.
// For a loop met during a walk, IDs is the loop in walk order; for a forest
// it is every node unreachable from a root.
type CycleError struct {
	Kind store.Kind
	IDs  []int64
}

func (e *CycleError) Error() string {
	ids := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		ids[i] = strconv.FormatInt(id, 10)
	}
	return fmt.Sprintf("%s: %s ids %s", ErrCycleDetected, e.Kind, strings.Join(ids, ", "))
}

// Is lets errors.Is(err, ErrCycleDetected) match.
func (e *CycleError) Is(target error) bool {
	return target == ErrCycleDetected
}

// Warning codes attached to detail results.
const (
	WarnDataIntegrity = "data_integrity"
	WarnMissing       = "missing_reference"
)

// Warning is a non-fatal problem found while assembling a detail view.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
