// Package changelog manages the human-readable changelog document. The
// pipeline only writes it at initialization; later entries are authored by
// humans.
package changelog

import (
	"fmt"
	"os"
	"time"
)

// Exists reports whether a changelog document is already present.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// WriteInitial seeds the changelog with a dated first-release entry. It never
// overwrites an existing document, so repeated initialization attempts cannot
// duplicate history.
func WriteInitial(path, version string, now time.Time) error {
	if Exists(path) {
		return nil
	}
	entry := fmt.Sprintf("## %s (%s)\n\n- Initial release\n", version, now.Format("2006-01-02"))
	if err := os.WriteFile(path, []byte(entry), 0o644); err != nil {
		return fmt.Errorf("write changelog %s: %w", path, err)
	}
	return nil
}
