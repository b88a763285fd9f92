// Package attachments stores uploaded note files on disk and resolves the
// public references handed out for them.
package attachments

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"notesboard/internal/contextutil"
)

var (
	// ErrInvalidRef is returned for references outside the store.
	ErrInvalidRef = errors.New("invalid attachment reference")
)

// Store writes uploads into a single flat directory.
// References look like <prefix>/<unix millis>-<original name>.
type Store struct {
	dir    string
	prefix string
	now    func() time.Time
}

// NewStore creates a store rooted at dir whose references start with prefix.
// The directory is created on the first Save.
func NewStore(dir, prefix string) *Store {
	return &Store{
		dir:    filepath.Clean(dir),
		prefix: "/" + strings.Trim(prefix, "/"),
		now:    time.Now,
	}
}

// Dir returns the directory holding the stored files.
func (s *Store) Dir() string {
	return s.dir
}

// Prefix returns the public URL prefix of every reference.
func (s *Store) Prefix() string {
	return s.prefix
}

// Save copies r into a new file named after the upload time and filename and
// returns the public reference of the stored file.
func (s *Store) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	base := cleanFilename(filename)
	stamp := strconv.FormatInt(s.now().UnixMilli(), 10)

	name := stamp + "-" + base
	f, err := s.create(name)
	if errors.Is(err, fs.ErrExist) {
		// Same millisecond, same name: keep the original name as the suffix.
		name = stamp + "-" + uuid.NewString()[:8] + "-" + base
		logger.WarnContext(ctx, "attachment name collision", "filename", base, "renamed", name)
		f, err = s.create(name)
	}
	if err != nil {
		return "", fmt.Errorf("failed to create attachment file: %w", err)
	}

	dst := filepath.Join(s.dir, name)
	written, err := io.Copy(f, r)
	if err != nil {
		_ = f.Close()
		_ = os.Remove(dst)
		return "", fmt.Errorf("failed to write attachment: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(dst)
		return "", fmt.Errorf("failed to close attachment: %w", err)
	}

	logger.DebugContext(ctx, "attachment stored", "path", dst, "bytes", written)
	return s.prefix + "/" + name, nil
}

func (s *Store) create(name string) (*os.File, error) {
	return os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
}

// Remove deletes the file behind ref. A file that is already gone is not an error.
func (s *Store) Remove(ctx context.Context, ref string) error {
	p, err := s.Path(ref)
	if err != nil {
		return err
	}

	err = os.Remove(p)
	if errors.Is(err, fs.ErrNotExist) {
		contextutil.LoggerFromContext(ctx).DebugContext(ctx, "attachment already removed", "ref", ref)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to remove attachment: %w", err)
	}
	return nil
}

// Path returns the file system path for a reference.
func (s *Store) Path(ref string) (string, error) {
	name, ok := strings.CutPrefix(ref, s.prefix+"/")
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidRef, ref)
	}

	// Stored files live directly in the upload directory.
	if name == "" || name != path.Base(name) || name == "." || name == ".." || strings.ContainsRune(name, '\\') {
		return "", fmt.Errorf("%w: %q", ErrInvalidRef, ref)
	}

	abs := filepath.Join(s.dir, name)
	if !strings.HasPrefix(abs, s.dir+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: %q", ErrInvalidRef, ref)
	}
	return abs, nil
}

// unsafeNameChars replaces characters that break a reference: commas split the
// stored list, and '#', '?' and '%' change the meaning of the URL path.
var unsafeNameChars = strings.NewReplacer(",", "_", "#", "_", "?", "_", "%", "_")

// cleanFilename reduces a client supplied name to a safe base name.
func cleanFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(strings.TrimSpace(name))
	name = unsafeNameChars.Replace(name)
	if name == "" || name == "." || name == "/" || name == ".." {
		return "file"
	}
	return name
}
