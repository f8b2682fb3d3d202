// Package filesystem provides the file system storage backend for moby-mcp.
// Operations are sandboxed by os.Root, writes are atomic via temp file and
// rename, and content types are detected from file extensions.
package filesystem

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"mime"
	"os"
	"path"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"

	mobymcp "github.com/dylangroos/moby-mcp"
)

// Store implements mobymcp.FileStorage on the local file system. The os.Root
// sandbox is a second line of defense beneath the Authorizer: even a path
// that slipped past validation cannot follow a symlink out of the root.
type Store struct {
	root *os.Root
}

// NewStore creates a Store over the given root directory.
func NewStore(root *os.Root) *Store {
	return &Store{root: root}
}

// Read opens a file for reading. Returns mobymcp.ErrNotFound if the file
// does not exist and mobymcp.ErrInvalidInput if the target is a directory.
func (s *Store) Read(ctx context.Context, p string) (mobymcp.FileInfo, io.ReadSeekCloser, error) {
	if err := ctx.Err(); err != nil {
		return mobymcp.FileInfo{}, nil, err
	}

	f, err := s.root.Open(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return mobymcp.FileInfo{}, nil, fmt.Errorf("%w: %s", mobymcp.ErrNotFound, p)
		}
		return mobymcp.FileInfo{}, nil, fmt.Errorf("failed to open file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return mobymcp.FileInfo{}, nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		_ = f.Close()
		return mobymcp.FileInfo{}, nil, fmt.Errorf("%w: %q is not a file", mobymcp.ErrInvalidInput, p)
	}

	fi := mobymcp.FileInfo{
		Path:        p,
		Size:        info.Size(),
		ContentType: detectContentType(p),
		ModTime:     info.ModTime(),
	}
	return fi, f, nil
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (r *ctxReader) Read(p []byte) (n int, err error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}

// Write atomically writes content to p using a temp file and rename, and
// returns the byte count and SHA256-based etag. The immediate parent
// directory must already exist; a missing parent fails with
// mobymcp.ErrNotFound. The operation respects context cancellation.
func (s *Store) Write(ctx context.Context, p string, content io.Reader) (mobymcp.WriteResult, error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return mobymcp.WriteResult{}, ctxErr
	}

	if dir := path.Dir(p); dir != "." {
		info, statErr := s.root.Stat(dir)
		if statErr != nil {
			if errors.Is(statErr, fs.ErrNotExist) {
				return mobymcp.WriteResult{}, fmt.Errorf("parent directory %q: %w", dir, mobymcp.ErrNotFound)
			}
			return mobymcp.WriteResult{}, fmt.Errorf("stat parent directory: %w", statErr)
		}
		if !info.IsDir() {
			return mobymcp.WriteResult{}, fmt.Errorf("%w: parent %q is not a directory", mobymcp.ErrInvalidInput, dir)
		}
	}

	tmpFile := tmpFileName()
	t, createErr := s.root.Create(tmpFile)
	if createErr != nil {
		return mobymcp.WriteResult{}, fmt.Errorf("could not open temp file: %w", createErr)
	}

	success := false
	defer func() {
		if closeErr := t.Close(); closeErr != nil {
			slog.Warn("failed to close tmp file", "err", closeErr)
		}
		if !success {
			if rmErr := s.root.Remove(t.Name()); rmErr != nil {
				slog.Warn("failed to remove tmp file", "err", rmErr)
			}
		}
	}()

	h := sha256.New()
	w := io.MultiWriter(h, t)

	fileSizeBytes, err := io.Copy(w, &ctxReader{ctx: ctx, r: content})
	if err != nil {
		return mobymcp.WriteResult{}, fmt.Errorf("could not copy file contents: %w", err)
	}

	if err := t.Sync(); err != nil {
		return mobymcp.WriteResult{}, fmt.Errorf("could not sync written file: %w", err)
	}

	if renameErr := s.root.Rename(tmpFile, p); renameErr != nil {
		return mobymcp.WriteResult{}, fmt.Errorf("failed to rename file: %w", renameErr)
	}

	success = true

	return mobymcp.WriteResult{
		Path:         p,
		BytesWritten: fileSizeBytes,
		Etag:         hex.EncodeToString(h.Sum(nil)),
	}, nil
}

// Delete removes a file. Returns mobymcp.ErrNotFound if it does not exist
// and mobymcp.ErrInvalidInput if the target is a directory.
func (s *Store) Delete(ctx context.Context, p string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	info, err := s.root.Lstat(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", mobymcp.ErrNotFound, p)
		}
		return fmt.Errorf("could not stat file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %q is not a file", mobymcp.ErrInvalidInput, p)
	}

	if err := s.root.Remove(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", mobymcp.ErrNotFound, p)
		}
		return fmt.Errorf("could not delete file: %w", err)
	}
	return nil
}

// ListDir returns the entries of a directory sorted by name. Entry paths
// are relative to the storage root. An empty path lists the root itself.
func (s *Store) ListDir(ctx context.Context, p string) ([]mobymcp.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir := p
	if dir == "" {
		dir = "."
	}

	dirEntries, err := fs.ReadDir(s.root.FS(), dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", mobymcp.ErrNotFound, p)
		}
		if errors.Is(err, syscall.ENOTDIR) {
			return nil, fmt.Errorf("%w: %q is not a directory", mobymcp.ErrInvalidInput, p)
		}
		return nil, fmt.Errorf("failed to list directory: %w", err)
	}

	entries := make([]mobymcp.Entry, 0, len(dirEntries))
	for _, entry := range dirEntries {
		entryPath := entry.Name()
		if p != "" {
			entryPath = path.Join(p, entry.Name())
		}

		entryType := mobymcp.EntryTypeFile
		if entry.IsDir() {
			entryType = mobymcp.EntryTypeDir
		}

		entries = append(entries, mobymcp.Entry{Type: entryType, Path: entryPath})
	}

	return entries, nil
}

// Mkdir creates a single directory. Returns mobymcp.ErrAlreadyExists if the
// target exists and mobymcp.ErrNotFound if the parent is missing.
func (s *Store) Mkdir(ctx context.Context, p string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.root.Mkdir(p, 0o755); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", mobymcp.ErrAlreadyExists, p)
		}
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("parent directory of %q: %w", p, mobymcp.ErrNotFound)
		}
		return fmt.Errorf("could not create directory: %w", err)
	}
	return nil
}

func detectContentType(p string) string {
	ext := filepath.Ext(p)
	contentType := mime.TypeByExtension(ext)

	if contentType == "" {
		return "application/octet-stream"
	}

	return contentType
}

func tmpFileName() string {
	return fmt.Sprintf(".t%s", uuid.New().String())
}
