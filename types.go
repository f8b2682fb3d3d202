package mobymcp

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Operation is the closed set of file system operations the service can
// authorize. Each operation maps to exactly one file system primitive.
type Operation int

const (
	OpRead Operation = iota
	OpWrite
	OpList
	OpDelete
	OpMkdir
)

var operationNames = map[Operation]string{
	OpRead:   "read",
	OpWrite:  "write",
	OpList:   "list",
	OpDelete: "delete",
	OpMkdir:  "mkdir",
}

func (o Operation) String() string {
	if name, ok := operationNames[o]; ok {
		return name
	}
	return fmt.Sprintf("operation(%d)", int(o))
}

func (o Operation) IsValid() bool {
	_, ok := operationNames[o]
	return ok
}

// NeedsExtensionCheck reports whether the operation is subject to the
// extension allow-list. List and Mkdir target directories and are exempt,
// but remain subject to the containment check.
func (o Operation) NeedsExtensionCheck() bool {
	switch o {
	case OpRead, OpWrite, OpDelete:
		return true
	default:
		return false
	}
}

// ExtensionSet is the fixed set of file extensions permitted for read, write,
// and delete operations. Matching is case-sensitive.
type ExtensionSet map[string]struct{}

// NewExtensionSet builds an ExtensionSet from the given extensions.
// A missing leading dot is added, so "txt" and ".txt" are equivalent.
func NewExtensionSet(exts []string) ExtensionSet {
	s := make(ExtensionSet, len(exts))
	for _, ext := range exts {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		s[ext] = struct{}{}
	}
	return s
}

// Contains reports whether ext (including the leading dot) is in the set.
func (s ExtensionSet) Contains(ext string) bool {
	_, ok := s[ext]
	return ok
}

// List returns the extensions in sorted order.
func (s ExtensionSet) List() []string {
	exts := make([]string, 0, len(s))
	for ext := range s {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// EntryType distinguishes files from directories in listings.
type EntryType string

const (
	EntryTypeFile EntryType = "file"
	EntryTypeDir  EntryType = "dir"
)

// Entry is a single directory listing item. Path is relative to the root
// directory and uses forward slashes.
type Entry struct {
	Type EntryType `json:"type"`
	Path string    `json:"path"`
}

// ListResult holds the contents of a directory. Directories are always
// included; files are filtered to the extension allow-list.
type ListResult struct {
	Path  string  `json:"path"`
	Items []Entry `json:"items"`
	Count int     `json:"count"`
}

// FileInfo describes a readable file.
type FileInfo struct {
	Path        string    `json:"path"`
	Size        int64     `json:"size_bytes"`
	ContentType string    `json:"content_type"`
	ModTime     time.Time `json:"-"`
}

// WriteResult reports the outcome of a completed write.
type WriteResult struct {
	Path         string `json:"path"`
	BytesWritten int64  `json:"size_bytes"`
	Etag         string `json:"etag"`
}
