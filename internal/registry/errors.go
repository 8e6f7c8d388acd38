package registry

import (
	"errors"
	"fmt"

	"enterprise-registry/internal/gateway"
	"enterprise-registry/internal/store"
)

// Kind classifies why a registry operation failed.
type Kind int

const (
	// KindStoreError is any store failure not covered by a narrower kind.
	KindStoreError Kind = iota
	// KindValidation means the input was rejected before reaching the store.
	KindValidation
	// KindNotFound means the key matched no row.
	KindNotFound
	// KindConflict means a uniqueness rule would be broken.
	KindConflict
	// KindStoreUnavailable means there is no usable session.
	KindStoreUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not found"
	case KindConflict:
		return "conflict"
	case KindStoreUnavailable:
		return "store unavailable"
	default:
		return "store error"
	}
}

// Error is returned by every Service operation that fails.
type Error struct {
	Op   string
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Msg != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Msg, e.Err)
	case e.Msg != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Msg)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of the first *Error in err's chain. Errors that did
// not come from the registry are classified from their cause.
func KindOf(err error) Kind {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	return classify(err)
}

// IsKind reports whether err is a registry error of kind k.
func IsKind(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}

func classify(err error) Kind {
	switch {
	case errors.Is(err, gateway.ErrNotFound):
		return KindNotFound
	case store.IsUnavailable(err):
		return KindStoreUnavailable
	case store.IsUniqueViolation(err):
		return KindConflict
	default:
		return KindStoreError
	}
}

func invalid(op, msg string) error {
	return &Error{Op: op, Kind: KindValidation, Msg: msg}
}

func conflict(op, msg string) error {
	return &Error{Op: op, Kind: KindConflict, Msg: msg}
}

// wrap turns a store or gateway failure into an *Error. nil stays nil.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Kind: classify(err), Err: err}
}
