package finance

import (
	"errors"
	"fmt"
)

// Sentinel errors, compare with errors.Is.
var (
	// ErrNotFound reports a missing account, record or user.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate reports a registration collision.
	ErrDuplicate = errors.New("already exists")
	// ErrAuth is matched by every *AuthError.
	ErrAuth = errors.New("authentication failed")
	// ErrIO reports a record or index that could not be opened or written.
	ErrIO = errors.New("i/o failure")
	// ErrValidation reports an argument rejected before any change took place.
	ErrValidation = errors.New("invalid argument")
	// ErrCorruptRecord reports a record that could not be read back.
	ErrCorruptRecord = errors.New("corrupt record")
	// ErrSessionActive reports a login or registration while an account is open.
	ErrSessionActive = errors.New("an account is already open")
	// ErrNoSession reports an operation that needs an open account.
	ErrNoSession = errors.New("no account is open")
)

// AuthKind tells why a record refused to open.
type AuthKind int

const (
	// WrongPassword means the revealed password differs from the supplied one.
	WrongPassword AuthKind = iota
	// UsernameMismatch means the record belongs to somebody else.
	UsernameMismatch
)

func (k AuthKind) String() string {
	switch k {
	case WrongPassword:
		return "wrong password"
	case UsernameMismatch:
		return "username mismatch"
	default:
		return "unknown"
	}
}

// AuthError is returned by Store.Load when the credential gate refuses the record.
type AuthError struct {
	Kind     AuthKind
	Username string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s for %q: %s", ErrAuth, e.Username, e.Kind)
}

// Is makes errors.Is(err, ErrAuth) true.
func (e *AuthError) Is(target error) bool { return target == ErrAuth }

// IndexError is returned when an entry index is out of bounds.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("entry index %d out of range [0, %d)", e.Index, e.Len)
}

// IsAuthKind reports whether err is an *AuthError of the given kind.
func IsAuthKind(err error, kind AuthKind) bool {
	var ae *AuthError
	return errors.As(err, &ae) && ae.Kind == kind
}
