package mobymcp

import (
	"context"
	"fmt"
	"io"
	"path"
)

// FileStorage defines the file system primitives the service dispatches to.
// Implementations receive paths that already passed authorization and must
// not re-interpret them; paths are cleaned, forward-slashed, and relative to
// the storage root.
//
// All methods accept a context for cancellation. Implementations should
// return ErrNotFound, ErrAlreadyExists, and ErrInvalidInput where those
// conditions apply so callers can map them to protocol responses.
type FileStorage interface {
	// Read opens a file for reading. The caller closes the returned reader.
	Read(ctx context.Context, path string) (FileInfo, io.ReadSeekCloser, error)

	// Write stores content at path, overwriting any existing file. The
	// immediate parent directory must already exist.
	Write(ctx context.Context, path string, content io.Reader) (WriteResult, error)

	// Delete removes a file.
	Delete(ctx context.Context, path string) error

	// ListDir returns the entries of a directory sorted by name. An empty
	// path denotes the storage root.
	ListDir(ctx context.Context, path string) ([]Entry, error)

	// Mkdir creates a single directory. The parent must already exist.
	Mkdir(ctx context.Context, path string) error
}

// Service combines the Authorizer with a FileStorage backend. Every
// operation authorizes the caller-supplied path first and touches the file
// system only through the single resolved target, so concurrent requests
// share no mutable state.
type Service struct {
	auth    *Authorizer
	storage FileStorage
}

// NewService creates a Service from an Authorizer and a storage backend.
func NewService(auth *Authorizer, storage FileStorage) (*Service, error) {
	if auth == nil {
		return nil, fmt.Errorf("%w: authorizer is required", ErrInvalidInput)
	}
	if storage == nil {
		return nil, fmt.Errorf("%w: storage is required", ErrInvalidInput)
	}
	return &Service{auth: auth, storage: storage}, nil
}

// Read returns the contents of an authorized file. The caller is
// responsible for closing the returned reader.
func (s *Service) Read(ctx context.Context, rel string) (FileInfo, io.ReadSeekCloser, error) {
	rp, err := s.auth.Authorize(rel, OpRead)
	if err != nil {
		return FileInfo{}, nil, err
	}
	return s.storage.Read(ctx, rp.Rel)
}

// Write stores content at an authorized path, overwriting any existing
// file. Intermediate directories are not created; writing below a missing
// parent fails with ErrNotFound.
func (s *Service) Write(ctx context.Context, rel string, content io.Reader) (WriteResult, error) {
	rp, err := s.auth.Authorize(rel, OpWrite)
	if err != nil {
		return WriteResult{}, err
	}
	return s.storage.Write(ctx, rp.Rel, content)
}

// Delete removes an authorized file. Deleting an absent file returns
// ErrNotFound; repeating a delete is safe.
func (s *Service) Delete(ctx context.Context, rel string) error {
	rp, err := s.auth.Authorize(rel, OpDelete)
	if err != nil {
		return err
	}
	return s.storage.Delete(ctx, rp.Rel)
}

// List enumerates an authorized directory. Subdirectories are always
// included; files are filtered to the extension allow-list. An empty path
// lists the root directory.
func (s *Service) List(ctx context.Context, rel string) (ListResult, error) {
	rp, err := s.auth.Authorize(rel, OpList)
	if err != nil {
		return ListResult{}, err
	}

	entries, err := s.storage.ListDir(ctx, rp.Rel)
	if err != nil {
		return ListResult{}, err
	}

	allowed := s.auth.Allowed()
	items := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Type == EntryTypeFile && !allowed.Contains(path.Ext(e.Path)) {
			continue
		}
		items = append(items, e)
	}

	display := rp.Rel
	if display == "" {
		display = "/"
	}

	return ListResult{Path: display, Items: items, Count: len(items)}, nil
}

// Mkdir creates a single authorized directory. The parent must exist;
// an existing target fails with ErrAlreadyExists.
func (s *Service) Mkdir(ctx context.Context, rel string) error {
	rp, err := s.auth.Authorize(rel, OpMkdir)
	if err != nil {
		return err
	}
	return s.storage.Mkdir(ctx, rp.Rel)
}
