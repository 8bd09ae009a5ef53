package metadata

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Store persists Records at a fixed module.prop path.
type Store struct {
	path string

	// lines holds the file content from the last Load so Save can rewrite
	// values in place, keeping comments, unknown keys, and ordering.
	lines []propLine
}

type propLine struct {
	raw   string
	key   string
	known bool
}

// NewStore creates a store for the given metadata file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the metadata record. A missing file is not an error; it returns
// a nil record so callers can distinguish "uninitialized" from I/O failure.
func (s *Store) Load() (*Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.lines = nil
			return nil, nil
		}
		return nil, fmt.Errorf("read metadata %s: %w", s.path, err)
	}

	record := &Record{}
	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	rawLines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	s.lines = make([]propLine, 0, len(rawLines))
	seen := make(map[string]struct{}, len(orderedKeys))

	for _, raw := range rawLines {
		key, value, ok := splitProp(raw)
		if !ok || !isRecognizedKey(key) {
			s.lines = append(s.lines, propLine{raw: raw})
			continue
		}
		// First occurrence wins; duplicates are preserved verbatim.
		if _, dup := seen[key]; dup {
			s.lines = append(s.lines, propLine{raw: raw})
			continue
		}
		seen[key] = struct{}{}
		record.setValue(key, value)
		s.lines = append(s.lines, propLine{raw: raw, key: key, known: true})
	}

	return record, nil
}

// Save writes the record back, updating recognized keys in place and
// appending any recognized keys the file did not carry yet.
func (s *Store) Save(record *Record) error {
	if record == nil {
		return errors.New("metadata record is required")
	}

	var out []string
	written := make(map[string]struct{}, len(orderedKeys))
	for _, line := range s.lines {
		if !line.known {
			out = append(out, line.raw)
			continue
		}
		out = append(out, line.key+"="+record.value(line.key))
		written[line.key] = struct{}{}
	}
	for _, key := range orderedKeys {
		if _, ok := written[key]; ok {
			continue
		}
		out = append(out, key+"="+record.value(key))
	}

	content := strings.Join(out, "\n") + "\n"
	if err := os.WriteFile(s.path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write metadata %s: %w", s.path, err)
	}
	return nil
}

// splitProp parses a single key=value line, tolerating surrounding
// whitespace. Lines without '=' are not properties.
func splitProp(raw string) (string, string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", "", false
	}
	key, value, found := strings.Cut(trimmed, "=")
	if !found {
		return "", "", false
	}
	return strings.TrimSpace(key), strings.TrimSpace(value), true
}

func parseCode(value string) int64 {
	code, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0
	}
	return code
}

func formatCode(code int64) string {
	return strconv.FormatInt(code, 10)
}
