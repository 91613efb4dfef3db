package finance

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/finance/date"
)

// recordExt is the extension of account records.
const recordExt = ".txt"

// maxRekey bounds the attempts to find a key whose obfuscated password fits on a line.
const maxRekey = 64

// Store reads and writes account records, one file per account in a folder.
//
// It is the only component that touches account records.
type Store struct {
	dir string
}

// NewStore returns a store keeping records in dir.
func NewStore(dir string) *Store { return &Store{dir: dir} }

// Dir returns the records folder.
func (s *Store) Dir() string { return s.dir }

// Path returns the record file of username.
func (s *Store) Path(username string) string {
	return filepath.Join(s.dir, username+recordExt)
}

// Exists reports whether username has a record.
func (s *Store) Exists(username string) bool {
	_, err := os.Stat(s.Path(username))
	return err == nil
}

// Create creates and saves an empty ledger for username. The ledger is
// persisted by this store from now on.
func (s *Store) Create(username, password string) (*Ledger, error) {
	l := NewLedger(username, password)
	l.store = s
	if err := s.Save(l); err != nil {
		return nil, err
	}
	return l, nil
}

// Save overwrites the record of l with its full state.
//
// A crash while writing leaves a truncated record, there is no recovery.
func (s *Store) Save(l *Ledger) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("%w: could not create records folder %q: %w", ErrIO, s.dir, err)
	}
	path := s.Path(l.username)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: could not open record %q for writing: %w", ErrIO, path, err)
	}
	if err := EncodeRecord(f, l); err != nil {
		f.Close()
		return fmt.Errorf("could not write record %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: could not close record %q: %w", ErrIO, path, err)
	}
	return nil
}

// Load opens the record of username and checks password against it.
//
// The balance is rebuilt by replaying the recorded entries, the stored
// balance is not trusted. The returned ledger is persisted by this store.
func (s *Store) Load(username, password string) (*Ledger, error) {
	path := s.Path(username)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("record of %q: %w", username, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: could not open record %q: %w", ErrIO, path, err)
	}
	defer f.Close()

	l, err := DecodeRecord(f, username, password)
	if err != nil {
		return nil, err
	}
	l.store = s
	return l, nil
}

// Remove deletes the record of username. A missing record is not an error.
func (s *Store) Remove(username string) error {
	path := s.Path(username)
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: could not remove record %q: %w", ErrIO, path, err)
	}
	return nil
}

// EncodeRecord writes the record of l to w.
//
// If the obfuscated password would contain a line break, l gets a new key first.
func EncodeRecord(w io.Writer, l *Ledger) error {
	obfuscated := Obfuscate(l.password, l.key)
	for i := 0; !fitsLine(obfuscated) || !fitsLine(l.key); i++ {
		if i == maxRekey {
			return fmt.Errorf("%w: the password of %q cannot be stored", ErrValidation, l.username)
		}
		l.key = NewKey(len(l.username))
		obfuscated = Obfuscate(l.password, l.key)
	}

	bw := bufio.NewWriter(w)
	lines := []string{l.key, obfuscated, l.username, l.balance.Text()}
	for _, e := range l.entries {
		lines = append(lines, string(e.Kind()), e.Amount().Text(), e.Description(), e.Date().String())
		if e.Kind() == Expense {
			lines = append(lines, e.Category())
		}
	}
	for _, line := range lines {
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return fmt.Errorf("%w: %w", ErrIO, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

// DecodeRecord reads a record from r, for username and password.
//
// Lines where a type tag is expected but that are not one are skipped. A
// malformed date is read as far as possible, see date.ParseLoose.
func DecodeRecord(r io.Reader, username, password string) (*Ledger, error) {
	lr := &lineReader{r: bufio.NewReader(r)}
	key := lr.next()
	obfuscated := lr.next()
	stored := lr.next()
	if lr.err != nil {
		return nil, lr.err
	}
	if stored != username {
		return nil, &AuthError{Kind: UsernameMismatch, Username: username}
	}
	if Reveal(obfuscated, key) != password {
		return nil, &AuthError{Kind: WrongPassword, Username: username}
	}
	lr.next() // the stored balance is rebuilt from the entries.

	l := &Ledger{username: username, password: password, key: key, entries: make([]Entry, 0)}
	for !lr.done() {
		tag := lr.next()
		kind, ok := ParseKind(tag)
		if !ok {
			continue
		}
		start := lr.line
		amount, err := ParseMoney(strings.TrimSpace(lr.next()))
		if err != nil {
			return nil, fmt.Errorf("%w: %q line %d: %w", ErrCorruptRecord, username, start+1, err)
		}
		description := lr.next()
		on := date.ParseLoose(lr.next())
		switch kind {
		case Income:
			l.apply(NewIncome(amount, description, on))
		case Expense:
			l.apply(NewExpense(amount, description, on, lr.next()))
		}
	}
	if lr.err != nil {
		return nil, lr.err
	}
	return l, nil
}

// lineReader reads newline terminated lines. Past the end it returns "".
type lineReader struct {
	r    *bufio.Reader
	line int // lines read so far
	eof  bool
	err  error
}

func (lr *lineReader) next() string {
	if lr.eof || lr.err != nil {
		return ""
	}
	s, err := lr.r.ReadString('\n')
	switch {
	case errors.Is(err, io.EOF):
		lr.eof = true
		if s == "" {
			return ""
		}
	case err != nil:
		lr.err = fmt.Errorf("%w: %w", ErrIO, err)
		return ""
	}
	lr.line++
	return strings.TrimSuffix(s, "\n")
}

// done reports whether no more line can be read.
func (lr *lineReader) done() bool {
	if lr.eof || lr.err != nil {
		return true
	}
	if _, err := lr.r.Peek(1); err != nil {
		lr.eof = errors.Is(err, io.EOF)
		if !lr.eof {
			lr.err = fmt.Errorf("%w: %w", ErrIO, err)
		}
		return true
	}
	return false
}
