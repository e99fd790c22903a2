package papers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// Extension is appended to an identifier to form the document file name.
const Extension = ".json"

// Document is a paper exactly as stored: a single well-formed JSON value.
type Document json.RawMessage

// MarshalJSON returns d unchanged.
func (d Document) MarshalJSON() ([]byte, error) {
	if d == nil {
		return []byte("null"), nil
	}
	return d, nil
}

// Store looks up paper documents under a fixed storage root. It is safe for
// concurrent use.
type Store struct {
	fs   afero.Fs
	root string

	// canonical is set when root is a real directory on disk whose path has
	// had symlinks resolved. Lookups are then resolved the same way and must
	// stay inside root.
	canonical bool
}

// NewStore returns a Store that reads documents from fsys. fsys must already
// be rooted at the storage directory; root is only used for display.
func NewStore(fsys afero.Fs, root string) *Store {
	return &Store{fs: fsys, root: root}
}

// OpenDir returns a Store for the documents in dir. The directory is resolved
// to an absolute path with symlinks evaluated once, and the returned Store
// cannot read or modify anything outside it, including through symlinks
// placed inside the directory.
func OpenDir(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("papers directory is required")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("error resolving papers directory: %w", err)
	}
	root, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("error opening papers directory: %w", err)
	}

	osFs := afero.NewOsFs()
	info, err := osFs.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("error opening papers directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("papers directory %q is not a directory", root)
	}

	fsys := afero.NewReadOnlyFs(afero.NewBasePathFs(osFs, root))
	store := NewStore(fsys, root)
	store.canonical = true
	return store, nil
}

// Root returns the storage root.
func (s *Store) Root() string {
	return s.root
}

// Path returns the location a valid identifier maps to. It does not check
// that the file exists.
func (s *Store) Path(id string) string {
	return filepath.Join(s.root, fileName(id))
}

// Get returns the document stored for id.
func (s *Store) Get(ctx context.Context, id string) (Document, error) {
	const op = "Get"

	if err := ValidateIdentifier(id); err != nil {
		return nil, newError(op, id, ErrInvalidIdentifier, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name, err := s.resolve(op, id)
	if err != nil {
		return nil, err
	}

	info, err := s.fs.Stat(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, newError(op, id, ErrNotFound, nil)
		}
		return nil, newError(op, id, ErrIO, err)
	}
	if info.IsDir() {
		return nil, newError(op, id, ErrIO,
			fmt.Errorf("%s is a directory", name))
	}

	data, err := afero.ReadFile(s.fs, name)
	if err != nil {
		// The file may have been removed between Stat and ReadFile.
		if errors.Is(err, fs.ErrNotExist) {
			return nil, newError(op, id, ErrNotFound, nil)
		}
		return nil, newError(op, id, ErrIO, err)
	}

	if !json.Valid(data) {
		return nil, newError(op, id, ErrInvalidJSON, syntaxError(data))
	}

	return Document(data), nil
}

// List returns the identifiers of all documents directly inside the storage
// root, sorted. Entries that are not regular files are skipped.
func (s *Store) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := afero.ReadDir(s.fs, ".")
	if err != nil {
		return nil, fmt.Errorf("error listing papers directory: %w", err)
	}

	var ids []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), Extension) {
			continue
		}
		id := strings.TrimSuffix(e.Name(), Extension)
		if ValidateIdentifier(id) != nil {
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids, nil
}

// resolve returns the name, relative to the storage root, of the file that
// id maps to. For canonical stores symlinks are evaluated and a target
// outside the root fails with ErrIO.
func (s *Store) resolve(op, id string) (string, error) {
	name := fileName(id)
	if !s.canonical {
		return name, nil
	}

	target, err := filepath.EvalSymlinks(filepath.Join(s.root, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", newError(op, id, ErrNotFound, nil)
		}
		return "", newError(op, id, ErrIO, err)
	}

	rel, err := filepath.Rel(s.root, target)
	if err != nil || rel == ".." ||
		strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", newError(op, id, ErrIO,
			fmt.Errorf("%s resolves outside the papers directory", name))
	}

	return rel, nil
}

func fileName(id string) string {
	return id + Extension
}

// syntaxError returns the decoder's description of why data is not valid
// JSON.
func syntaxError(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	return errors.New("unexpected data after top-level value")
}
