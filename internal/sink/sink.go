// Package sink implements the download directory collaborator (spec.md §6):
// create the output directory once, write each downloaded file under a
// derived name, read back its size, and optionally clean up at the end.
package sink

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
)

const maxFilenameLen = 255

// Sink writes downloaded payloads under a single output directory.
type Sink struct {
	dir string
}

// New creates dir (an already-existing directory is not an error) and
// returns a Sink rooted there.
func New(dir string) (*Sink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Sink{dir: dir}, nil
}

// filename derives an output filename from a selector: strip a leading
// "/", truncate to maxFilenameLen, and replace any remaining "/" with "-".
// Two distinct selectors whose derived names collide overwrite each other;
// this is accepted per spec.md §6.
func filename(selector string) string {
	name := strings.TrimPrefix(selector, "/")
	if len(name) > maxFilenameLen {
		name = name[:maxFilenameLen]
	}
	return strings.ReplaceAll(name, "/", "-")
}

// Write writes payload under a name derived from selector and returns the
// resulting file's size. Any OS-level failure along the write/close/stat
// path is a hard failure (spec.md §7); multierr combines every contributing
// error into one.
func (s *Sink) Write(selector string, payload []byte) (size uint64, err error) {
	path := filepath.Join(s.dir, filename(selector))

	f, createErr := os.Create(path)
	if createErr != nil {
		return 0, createErr
	}

	_, writeErr := f.Write(payload)
	closeErr := f.Close()
	if writeErr != nil || closeErr != nil {
		return 0, multierr.Combine(writeErr, closeErr)
	}

	info, statErr := os.Stat(path)
	if statErr != nil {
		return 0, statErr
	}
	return uint64(info.Size()), nil
}

// Close recursively deletes the output directory.
func (s *Sink) Close() error {
	return os.RemoveAll(s.dir)
}
