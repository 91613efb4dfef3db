package finance

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/google/uuid"
)

// IndexFile is the name of the users index in the data folder.
const IndexFile = "users.txt"

// Directory is the set of registered usernames, in registration order, backed
// by an index file with one username per line.
type Directory struct {
	path  string
	users []string
	index map[string]struct{}
}

// OpenDirectory reads the index file at path. A missing file is an empty directory.
func OpenDirectory(path string) (*Directory, error) {
	d := &Directory{path: path, index: make(map[string]struct{})}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return d, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: could not open users index %q: %w", ErrIO, path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		name := scanner.Text()
		if name == "" {
			continue // Skip empty lines
		}
		d.insert(name)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: error reading users index %q: %w", ErrIO, path, err)
	}
	return d, nil
}

// insert adds name in memory, duplicates are ignored.
func (d *Directory) insert(name string) bool {
	if _, exists := d.index[name]; exists {
		return false
	}
	d.index[name] = struct{}{}
	d.users = append(d.users, name)
	return true
}

// Path returns the index file path.
func (d *Directory) Path() string { return d.path }

// Contains reports whether username is registered.
func (d *Directory) Contains(username string) bool {
	_, ok := d.index[username]
	return ok
}

// Users returns the usernames in registration order.
func (d *Directory) Users() []string { return slices.Clone(d.users) }

// Len returns the number of registered users.
func (d *Directory) Len() int { return len(d.users) }

// Register adds username and appends it to the index file.
func (d *Directory) Register(username string) error {
	if d.Contains(username) {
		return fmt.Errorf("user %q: %w", username, ErrDuplicate)
	}
	d.insert(username)

	if err := os.MkdirAll(filepath.Dir(d.path), 0755); err != nil {
		return fmt.Errorf("%w: could not create folder for users index %q: %w", ErrIO, d.path, err)
	}
	// Open the file in append mode, creating it if it doesn't exist.
	f, err := os.OpenFile(d.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("%w: could not open users index %q: %w", ErrIO, d.path, err)
	}
	if _, err := f.WriteString(username + "\n"); err != nil {
		f.Close()
		return fmt.Errorf("%w: could not append to users index %q: %w", ErrIO, d.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: could not close users index %q: %w", ErrIO, d.path, err)
	}
	return nil
}

// Remove removes username and rewrites the index file without it.
//
// The new index is written to a temporary file in the same folder, then renamed
// over the old one, so that an interruption leaves either index complete.
func (d *Directory) Remove(username string) error {
	if !d.Contains(username) {
		return fmt.Errorf("user %q: %w", username, ErrNotFound)
	}
	delete(d.index, username)
	d.users = slices.DeleteFunc(d.users, func(u string) bool { return u == username })
	return d.rewrite()
}

// rewrite replaces the index file with the in-memory users.
func (d *Directory) rewrite() error {
	dir := filepath.Dir(d.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: could not create folder for users index %q: %w", ErrIO, d.path, err)
	}
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(d.path), uuid.NewString()))

	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("%w: could not create temporary users index %q: %w", ErrIO, tmp, err)
	}
	w := bufio.NewWriter(f)
	for _, u := range d.users {
		w.WriteString(u + "\n")
	}
	err = errors.Join(w.Flush(), f.Sync(), f.Close())
	if err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: could not write temporary users index %q: %w", ErrIO, tmp, err)
	}
	if err := os.Rename(tmp, d.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: could not replace users index %q: %w", ErrIO, d.path, err)
	}
	return nil
}
