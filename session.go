package finance

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Session is the entry point of a caller: it registers, opens, closes and
// deletes accounts, with at most one account open at a time.
//
// A Session is not safe for concurrent use, and two processes must not use
// the same data folder at the same time.
type Session struct {
	dir    *Directory
	store  *Store
	active *Ledger
}

// NewSession returns a session over a directory and a store.
func NewSession(dir *Directory, store *Store) *Session {
	return &Session{dir: dir, store: store}
}

// OpenSession opens the users index and the records kept in the data folder.
func OpenSession(dataDir string) (*Session, error) {
	dir, err := OpenDirectory(filepath.Join(dataDir, IndexFile))
	if err != nil {
		return nil, err
	}
	return NewSession(dir, NewStore(dataDir)), nil
}

// Directory returns the users directory.
func (s *Session) Directory() *Directory { return s.dir }

// Active returns the open account, nil if none.
func (s *Session) Active() *Ledger { return s.active }

// ValidateCredentials checks that a username and password can be recorded.
func ValidateCredentials(username, password string) error {
	switch {
	case username == "":
		return fmt.Errorf("%w: empty username", ErrValidation)
	case strings.ContainsAny(username, `/\`+"\r\n\x00"):
		return fmt.Errorf("%w: username %q contains a forbidden character", ErrValidation, username)
	case strings.HasPrefix(username, "."):
		return fmt.Errorf("%w: username %q cannot start with a dot", ErrValidation, username)
	case username+recordExt == IndexFile:
		return fmt.Errorf("%w: username %q is reserved", ErrValidation, username)
	case password == "":
		return fmt.Errorf("%w: empty password", ErrValidation)
	case strings.ContainsAny(password, "\r\n"):
		return fmt.Errorf("%w: password must fit on a single line", ErrValidation)
	}
	return nil
}

// Register creates an account and opens it.
func (s *Session) Register(username, password string) (*Ledger, error) {
	if s.active != nil {
		return nil, ErrSessionActive
	}
	if err := ValidateCredentials(username, password); err != nil {
		return nil, err
	}
	if s.dir.Contains(username) {
		return nil, fmt.Errorf("user %q: %w", username, ErrDuplicate)
	}
	// The record is written first, a failure leaves the directory untouched.
	l, err := s.store.Create(username, password)
	if err != nil {
		return nil, fmt.Errorf("could not register %q: %w", username, err)
	}
	if err := s.dir.Register(username); err != nil {
		return nil, fmt.Errorf("could not register %q: %w", username, err)
	}
	s.active = l
	return l, nil
}

// Login opens the account of username if password matches.
func (s *Session) Login(username, password string) (*Ledger, error) {
	if s.active != nil {
		return nil, ErrSessionActive
	}
	if !s.dir.Contains(username) {
		return nil, fmt.Errorf("user %q: %w", username, ErrNotFound)
	}
	l, err := s.store.Load(username, password)
	if err != nil {
		return nil, err
	}
	s.active = l
	return l, nil
}

// Logout saves and closes the open account.
func (s *Session) Logout() error {
	if s.active == nil {
		return ErrNoSession
	}
	l := s.active
	s.active = nil
	if err := s.store.Save(l); err != nil {
		return fmt.Errorf("could not save %q on logout: %w", l.username, err)
	}
	return nil
}

// DeleteAccount removes the record and the directory entry of username once
// password is verified. Deleting the open account closes it without saving.
//
// A registered user whose record is missing can be deleted with any password.
// A record with corrupt entries can be deleted with its password.
func (s *Session) DeleteAccount(username, password string) error {
	if !s.dir.Contains(username) {
		return fmt.Errorf("user %q: %w", username, ErrNotFound)
	}
	switch {
	case s.active != nil && s.active.username != username:
		return ErrSessionActive
	case s.active != nil:
		if !s.active.CheckPassword(password) {
			return &AuthError{Kind: WrongPassword, Username: username}
		}
	default:
		// The password is checked before the entries are read: a record whose
		// entries are corrupt can still be deleted by its owner.
		_, err := s.store.Load(username, password)
		if err != nil && !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrCorruptRecord) {
			return err
		}
	}

	if err := s.store.Remove(username); err != nil {
		return err
	}
	s.active = nil
	return s.dir.Remove(username)
}

// Close saves the open account, if any. It is called when the process exits.
func (s *Session) Close() error {
	if s.active == nil {
		return nil
	}
	return s.Logout()
}
