// Package store implements a flat-file record store for ledger entries.
// One CSV file is the sole persistence boundary: writes append, updates
// rewrite the whole file, deletes stream into a temp file that atomically
// replaces the original.
package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/accountant-dev/accountant/internal/model"
)

// ErrNotFound reports that the backing ledger file does not exist.
var ErrNotFound = errors.New("ledger file not found")

// Result reports the outcome of a mutating store operation. Callers must
// check OK; Err carries the failure detail when OK is false. Matched is
// the number of rows written, updated, or removed.
type Result struct {
	OK      bool
	Matched int
	Err     error
}

// Store owns a single ledger CSV file. It is not safe for concurrent use:
// the design assumes exactly one process owns the file at a time.
type Store struct {
	path   string
	fields map[string]model.FieldSpec
	log    *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the diagnostic logger. The default discards everything,
// so logging is never required for correctness.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// New creates a Store over path. The file need not exist until a read or
// delete is attempted. The field set is derived once from the Entry
// schema, never hand-maintained.
func New(path string, opts ...Option) *Store {
	s := &Store{
		path:   path,
		fields: make(map[string]model.FieldSpec, len(model.Schema())),
		log:    slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)})),
	}
	for _, spec := range model.Schema() {
		s.fields[spec.Name] = spec
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log.Debug("initialized ledger store", "path", s.path, "fields", model.FieldNames())
	return s
}

// Path returns the backing file path fixed at construction.
func (s *Store) Path() string { return s.path }

// Exists reports whether the backing file is present and is a regular
// file. Side-effect free.
func (s *Store) Exists() bool {
	info, err := os.Stat(s.path)
	if err != nil {
		s.log.Debug("ledger file does not exist", "path", s.path)
		return false
	}
	return info.Mode().IsRegular()
}

// ReadAll parses every row of the backing file into entries, in file
// order. A file with no data rows yields an empty sequence; a missing
// file is an error wrapping ErrNotFound, so callers can tell "empty" from
// "missing".
func (s *Store) ReadAll() ([]model.Entry, error) {
	s.log.Info("reading all entries", "path", s.path)
	if !s.Exists() {
		s.log.Error("ledger file does not exist, cannot read", "path", s.path)
		return nil, fmt.Errorf("%w: %s", ErrNotFound, s.path)
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("opening ledger %s: %w", s.path, err)
	}
	defer f.Close()

	entries, err := ReadEntries(f)
	if err != nil {
		return nil, fmt.Errorf("reading ledger %s: %w", s.path, err)
	}
	if entries == nil {
		entries = []model.Entry{}
	}
	s.log.Info("read entries", "count", len(entries))
	return entries, nil
}

// Write appends entries to the end of the file, creating it if needed.
// The header row is written only when the file is empty at call time, so
// batched write calls produce exactly one header. Failures are logged and
// reported through the Result, never raised.
func (s *Store) Write(entries []model.Entry) Result {
	s.log.Info("writing entries", "count", len(entries))

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		s.log.Error("opening ledger for append", "path", s.path, "error", err)
		return Result{Err: fmt.Errorf("opening ledger %s: %w", s.path, err)}
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		s.log.Error("stat ledger", "path", s.path, "error", err)
		return Result{Err: fmt.Errorf("stat ledger %s: %w", s.path, err)}
	}
	if info.Size() == 0 {
		s.log.Debug("ledger is empty, writing header", "fields", model.FieldNames())
		if _, err := fmt.Fprintln(f, Header()); err != nil {
			f.Close()
			s.log.Error("writing header", "error", err)
			return Result{Err: fmt.Errorf("writing header: %w", err)}
		}
	}

	// Close errors count as append failures: data buffered by the OS may
	// still be rejected there.
	err = AppendEntries(f, entries)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		s.log.Error("appending entries", "error", err)
		return Result{Err: fmt.Errorf("appending entries: %w", err)}
	}
	s.log.Info("wrote entries", "count", len(entries))
	return Result{OK: true, Matched: len(entries)}
}

// GetBy returns the entries whose named field equals the query value, in
// file order. Zero matches on an existing file yields an empty sequence;
// only a failed read yields an error.
func (s *Store) GetBy(q model.Query) ([]model.Entry, error) {
	s.log.Info("querying entries", "query", q.String())
	entries, err := s.ReadAll()
	if err != nil {
		return nil, err
	}

	matched := []model.Entry{}
	for _, e := range entries {
		if s.matches(e, q.Where, q.Value) {
			matched = append(matched, e)
		}
	}
	s.log.Info("query matched entries", "count", len(matched))
	return matched, nil
}

// matches reports whether the entry's named field serializes to exactly
// value. Unknown field names never match, they are not an error.
func (s *Store) matches(e model.Entry, field, value string) bool {
	spec, ok := s.fields[field]
	if !ok {
		return false
	}
	return spec.Get(e) == value
}

// Update sets the named field to the replacement value on every entry the
// condition matches, then truncates and rewrites the whole file. Routing
// the rewrite through the append path would duplicate the header and
// every prior row, so Update never appends. OK is false when nothing
// matched or the rewrite failed.
func (s *Store) Update(c model.UpdateCondition) Result {
	s.log.Info("updating entries", "condition", c.String())
	entries, err := s.ReadAll()
	if err != nil {
		s.log.Error("reading ledger for update", "error", err)
		return Result{Err: err}
	}

	matched := 0
	if spec, ok := s.fields[c.Where]; ok {
		for i := range entries {
			if spec.Get(entries[i]) != c.Value {
				continue
			}
			if err := spec.Set(&entries[i], c.WithNewValue); err != nil {
				s.log.Error("applying update", "condition", c.String(), "error", err)
				return Result{Err: err}
			}
			matched++
		}
	}
	if matched == 0 {
		s.log.Info("no entries matched, nothing to update")
		return Result{}
	}

	if err := s.rewrite(entries); err != nil {
		s.log.Error("rewriting ledger", "error", err)
		return Result{Err: err}
	}
	s.log.Info("updated entries", "count", matched)
	return Result{OK: true, Matched: matched}
}

// rewrite replaces the file contents with a header and the given rows.
func (s *Store) rewrite(entries []model.Entry) error {
	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("opening ledger for rewrite: %w", err)
	}

	err = WriteEntries(f, entries)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("rewriting ledger: %w", err)
	}
	return nil
}

// Delete removes every entry the query matches and leaves all other rows
// intact. A missing file is a soft failure: nothing to delete from.
func (s *Store) Delete(q model.Query) Result {
	s.log.Info("deleting entries", "query", q.String())
	return s.deleteWhere(func(e model.Entry) bool {
		return s.matches(e, q.Where, q.Value)
	})
}

// DeleteEntry removes the entry with the same ID as target. An entry
// equal in every other field but with a different ID is left alone.
func (s *Store) DeleteEntry(target model.Entry) Result {
	s.log.Info("deleting entry by id", "id", target.ID)
	return s.deleteWhere(func(e model.Entry) bool {
		return e.ID == target.ID
	})
}

// deleteWhere streams the file row-by-row into a temp file in the same
// directory, skipping matching rows, then atomically replaces the
// original. Rename rather than copy-then-delete: there is never a window
// where the original is gone and the replacement is incomplete.
func (s *Store) deleteWhere(match func(model.Entry) bool) Result {
	if !s.Exists() {
		s.log.Error("ledger file does not exist, nothing to delete", "path", s.path)
		return Result{Err: fmt.Errorf("%w: %s", ErrNotFound, s.path)}
	}

	src, err := os.Open(s.path)
	if err != nil {
		s.log.Error("opening ledger", "path", s.path, "error", err)
		return Result{Err: fmt.Errorf("opening ledger %s: %w", s.path, err)}
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".rewrite-*")
	if err != nil {
		src.Close()
		s.log.Error("creating temp file", "error", err)
		return Result{Err: fmt.Errorf("creating temp file: %w", err)}
	}
	s.log.Debug("opened temp file", "path", tmp.Name())

	deleted, err := copySkipping(src, tmp, match)

	// Both handles must be closed before the rename: an open handle can
	// block replacement on some platforms.
	src.Close()
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmp.Name())
		s.log.Error("rewriting ledger", "error", err)
		return Result{Err: err}
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		s.log.Error("replacing ledger", "error", err)
		return Result{Err: fmt.Errorf("replacing ledger: %w", err)}
	}
	s.log.Info("deleted entries", "count", deleted)
	return Result{OK: true, Matched: deleted}
}

// copySkipping copies rows from src to dst (header first), skipping and
// counting rows the match function selects. Surviving rows are copied
// verbatim.
func copySkipping(src io.Reader, dst io.Writer, match func(model.Entry) bool) (int, error) {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = len(model.FieldNames())
	cw := csv.NewWriter(dst)

	if err := cw.Write(model.FieldNames()); err != nil {
		return 0, fmt.Errorf("writing header: %w", err)
	}

	deleted := 0
	row := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("row %d: %w", row, err)
		}
		if row > 1 { // row 1 is the source header, skip it
			e, err := UnmarshalEntry(rec)
			if err != nil {
				return 0, fmt.Errorf("row %d: %w", row, err)
			}
			if match(e) {
				deleted++
			} else if err := cw.Write(rec); err != nil {
				return 0, fmt.Errorf("writing row %d: %w", row, err)
			}
		}
		row++
	}

	cw.Flush()
	return deleted, cw.Error()
}
