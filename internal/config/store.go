package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/moby/sys/atomicwriter"
	"go.uber.org/zap"

	hqerrors "github.com/kostyay/basementhq/internal/errors"
)

// StoreFileName is the name of the dashboard config file inside the data dir.
const StoreFileName = "basementhq.env"

// Entry is one key=value pair of the store.
type Entry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Environment is the process-wide mirror of the store.
type Environment interface {
	Lookup(key string) (string, bool)
	Set(key, value string) error
}

type osEnv struct{}

func (osEnv) Lookup(key string) (string, bool) { return os.LookupEnv(key) }
func (osEnv) Set(key, value string) error      { return os.Setenv(key, value) }

// ProcessEnv returns the Environment backed by the real process environment.
func ProcessEnv() Environment {
	return osEnv{}
}

// MapEnv is an in-memory Environment for tests and isolated stores.
type MapEnv map[string]string

// Lookup implements Environment.
func (m MapEnv) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Set implements Environment.
func (m MapEnv) Set(key, value string) error {
	m[key] = value
	return nil
}

// line is one physical line of the store file. Lines that are not
// key=value pairs are kept verbatim in raw.
type line struct {
	key   string
	value string
	raw   string
	entry bool
}

// Store is the durable, ordered key=value configuration behind every
// operator-editable setting. Each write rewrites the whole file atomically
// and keeps unrelated lines byte-identical and in place.
type Store struct {
	mu   sync.RWMutex
	path string
	env  Environment
	log  *zap.Logger

	entries []Entry
	pinned  map[string]bool // keys whose environment value predates the store
	stat    os.FileInfo     // file as last read or written; nil if missing
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithEnvironment replaces the process environment mirror.
func WithEnvironment(env Environment) StoreOption {
	return func(s *Store) { s.env = env }
}

// WithLogger sets the store logger.
func WithLogger(log *zap.Logger) StoreOption {
	return func(s *Store) { s.log = log }
}

// OpenStore reads the store at path (a missing file is an empty store) and
// seeds the environment mirror. Keys already present in the environment
// keep their environment value.
func OpenStore(path string, opts ...StoreOption) (*Store, error) {
	s := &Store{
		path:   path,
		env:    ProcessEnv(),
		log:    zap.NewNop(),
		pinned: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(s)
	}

	lines, stat, err := s.readLines()
	if err != nil {
		return nil, readError(path, err)
	}
	s.entries = entriesOf(lines)
	s.stat = stat

	for _, e := range s.entries {
		if _, set := s.env.Lookup(e.Key); set {
			s.pinned[e.Key] = true
			continue
		}
		if err := s.env.Set(e.Key, e.Value); err != nil {
			return nil, fmt.Errorf("mirror %s: %w", e.Key, err)
		}
	}
	s.log.Debug("config store opened", zap.String("path", path), zap.Int("entries", len(s.entries)))
	return s, nil
}

// Reload picks up writes made to the file by another process. When the
// file changed since it was last read or written, every key whose value on
// disk differs from the one previously seen is mirrored again; keys pinned
// by the environment at open keep their environment value, and keys removed
// from the file keep their last mirrored value. It reports whether the file
// had changed.
func (s *Store) Reload() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := os.Stat(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, readError(s.path, err)
	}
	if s.stat != nil && os.SameFile(s.stat, cur) &&
		s.stat.ModTime().Equal(cur.ModTime()) && s.stat.Size() == cur.Size() {
		return false, nil
	}

	lines, stat, err := s.readLines()
	if err != nil {
		return false, readError(s.path, err)
	}
	prev := make(map[string]string, len(s.entries))
	for _, e := range s.entries {
		prev[e.Key] = e.Value
	}
	entries := entriesOf(lines)
	changed := 0
	for _, e := range entries {
		if s.pinned[e.Key] {
			continue
		}
		if old, ok := prev[e.Key]; ok && old == e.Value {
			continue
		}
		if err := s.env.Set(e.Key, e.Value); err != nil {
			return false, fmt.Errorf("mirror %s: %w", e.Key, err)
		}
		changed++
	}
	s.entries = entries
	s.stat = stat

	s.log.Info("config reloaded", zap.String("path", s.path), zap.Int("changed", changed))
	return true, nil
}

// Path returns the file backing the store.
func (s *Store) Path() string {
	return s.path
}

// Get returns the mirrored value for key, or def if the key is unset.
func (s *Store) Get(key, def string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.env.Lookup(key); ok {
		return v
	}
	return def
}

// Entries returns the stored entries in file order.
func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Upsert sets key to value on disk and in the mirror. An existing line for
// key is rewritten in place; otherwise a new line is appended.
func (s *Store) Upsert(key, value string) error {
	key = strings.TrimSpace(key)
	if err := ValidateEntry(key, value); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines, _, err := s.readLines()
	if err != nil {
		return readError(s.path, err)
	}

	found := false
	for i := range lines {
		if lines[i].entry && lines[i].key == key {
			lines[i].value = value
			lines[i].raw = key + "=" + value
			found = true
			break
		}
	}
	if !found {
		lines = append(lines, line{key: key, value: value, raw: key + "=" + value, entry: true})
	}

	if err := s.writeLines(lines); err != nil {
		return hqerrors.WrapWithCode(err, hqerrors.ErrConfig,
			"Failed to write config file "+s.path,
			"Check that the data directory exists and is writable")
	}
	if err := s.env.Set(key, value); err != nil {
		return fmt.Errorf("mirror %s: %w", key, err)
	}
	s.entries = entriesOf(lines)
	delete(s.pinned, key)
	if stat, err := os.Stat(s.path); err == nil {
		s.stat = stat
	}

	s.log.Info("config saved", zap.String("key", key), zap.Bool("appended", !found))
	return nil
}

// SaveBatch applies entries as independent upserts in order. A failure
// stops the batch; keys saved before it stay saved. With preserveBlank,
// entries with an empty value are skipped. It returns the keys written.
func (s *Store) SaveBatch(entries []Entry, preserveBlank bool) ([]string, error) {
	saved := make([]string, 0, len(entries))
	for _, e := range entries {
		if preserveBlank && e.Value == "" {
			continue
		}
		if err := s.Upsert(e.Key, e.Value); err != nil {
			return saved, err
		}
		saved = append(saved, e.Key)
	}
	return saved, nil
}

// ValidateEntry reports whether key and value can be stored as one line.
func ValidateEntry(key, value string) error {
	key = strings.TrimSpace(key)
	if key == "" || strings.ContainsAny(key, "=\n\r") {
		return hqerrors.New(hqerrors.ErrConfig,
			fmt.Sprintf("Invalid config key %q", key),
			"Keys must be non-empty and must not contain '=' or newlines")
	}
	if strings.ContainsAny(value, "\n\r") {
		return hqerrors.New(hqerrors.ErrConfig,
			fmt.Sprintf("Value for %s contains a newline", key),
			"Config values are stored one per line")
	}
	return nil
}

// readLines returns the parsed file and its FileInfo; a missing file is
// empty with a nil FileInfo.
func (s *Store) readLines() ([]line, os.FileInfo, error) {
	// #nosec G304 - path comes from the operator's data directory
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(f); err != nil {
		return nil, nil, err
	}
	return parseLines(buf.Bytes()), stat, nil
}

func readError(path string, err error) error {
	return hqerrors.WrapWithCode(err, hqerrors.ErrConfig,
		"Failed to read config file "+path,
		"Check the file is readable by the dashboard user")
}

func (s *Store) writeLines(lines []line) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0750); err != nil {
		return err
	}
	var buf bytes.Buffer
	for _, l := range lines {
		buf.WriteString(l.raw)
		buf.WriteByte('\n')
	}
	return atomicwriter.WriteFile(s.path, buf.Bytes(), 0600)
}

// parseLines splits file content into lines of any length. The first line
// for a key is the one that counts; later duplicates are kept verbatim but
// ignored. A CRLF line ending stays in raw so untouched lines are written
// back unchanged, but is not part of the value.
func parseLines(data []byte) []line {
	if len(data) == 0 {
		return nil
	}
	data = bytes.TrimSuffix(data, []byte("\n"))

	var lines []line
	seen := make(map[string]bool)
	for _, b := range bytes.Split(data, []byte("\n")) {
		raw := string(b)
		l := line{raw: raw}
		text := strings.TrimSuffix(raw, "\r")
		trimmed := strings.TrimSpace(text)
		if trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			if k, v, ok := strings.Cut(text, "="); ok {
				k = strings.TrimSpace(k)
				if k != "" && !seen[k] {
					l.key = k
					l.value = v
					l.entry = true
					seen[k] = true
				}
			}
		}
		lines = append(lines, l)
	}
	return lines
}

func entriesOf(lines []line) []Entry {
	out := make([]Entry, 0, len(lines))
	for _, l := range lines {
		if l.entry {
			out = append(out, Entry{Key: l.key, Value: l.value})
		}
	}
	return out
}
