package mobymcp

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"syscall"
)

// ResolvedPath is a request path that passed the containment and extension
// checks. Rel is cleaned, forward-slashed, and relative to the root
// directory; Abs is the canonicalized absolute form. Rel is "" when the
// target is the root itself.
type ResolvedPath struct {
	Abs string
	Rel string
}

// Authorizer validates caller-supplied relative paths against a fixed root
// directory and an extension allow-list. It is safe for concurrent use: the
// root and allow-list are immutable after construction, and Authorize only
// reads the file system to resolve symbolic links for the containment check.
type Authorizer struct {
	root    string
	allowed ExtensionSet
}

// NewAuthorizer canonicalizes root (absolute, symlinks resolved) and returns
// an Authorizer enforcing the given allow-list. The root directory must
// exist.
func NewAuthorizer(root string, allowed ExtensionSet) (*Authorizer, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("absolute root path: %w", err)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("resolve root path: %w", err)
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, fmt.Errorf("stat root path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: root %q is not a directory", ErrInvalidInput, root)
	}

	return &Authorizer{root: resolved, allowed: allowed}, nil
}

// Root returns the canonicalized root directory.
func (a *Authorizer) Root() string {
	return a.root
}

// Allowed returns the extension allow-list.
func (a *Authorizer) Allowed() ExtensionSet {
	return a.allowed
}

// Authorize validates rel for the given operation and returns the resolved
// target. It rejects malformed input with ErrInvalidInput, escapes from the
// root (including through ".." segments and symbolic links) with
// ErrPathTraversal, and extensions outside the allow-list with
// ErrDisallowedType for read/write/delete. It performs no I/O on the target
// beyond resolving symbolic links.
func (a *Authorizer) Authorize(rel string, op Operation) (ResolvedPath, error) {
	if !op.IsValid() {
		return ResolvedPath{}, fmt.Errorf("%w: unknown operation", ErrInvalidInput)
	}

	if err := checkRawPath(rel, op); err != nil {
		return ResolvedPath{}, err
	}

	clean := path.Clean(rel)
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return ResolvedPath{}, fmt.Errorf("%w: %q", ErrPathTraversal, rel)
	}
	if clean == "." {
		clean = ""
	}

	joined := filepath.Join(a.root, filepath.FromSlash(clean))
	abs, err := resolveExisting(joined)
	if err != nil {
		return ResolvedPath{}, fmt.Errorf("canonicalize %q: %w", rel, err)
	}

	if !a.contains(abs) {
		return ResolvedPath{}, fmt.Errorf("%w: %q", ErrPathTraversal, rel)
	}

	if op.NeedsExtensionCheck() {
		if ext := path.Ext(clean); !a.allowed.Contains(ext) {
			return ResolvedPath{}, fmt.Errorf("%w: %q (allowed: %s)",
				ErrDisallowedType, ext, strings.Join(a.allowed.List(), ", "))
		}
		// The allow-list binds the resolved target too: a symlink named
		// notes.txt must not grant access to a secret.bin it points at.
		if ext := filepath.Ext(abs); !a.allowed.Contains(ext) {
			return ResolvedPath{}, fmt.Errorf("%w: %q (allowed: %s)",
				ErrDisallowedType, ext, strings.Join(a.allowed.List(), ", "))
		}
	}

	return ResolvedPath{Abs: abs, Rel: clean}, nil
}

// checkRawPath rejects input that must never reach path resolution. The
// empty path denotes the root directory and is accepted for List only.
func checkRawPath(rel string, op Operation) error {
	if rel == "" {
		if op == OpList {
			return nil
		}
		return fmt.Errorf("%w: empty path", ErrInvalidInput)
	}

	if strings.HasPrefix(rel, "/") || filepath.IsAbs(rel) {
		return fmt.Errorf("%w: path must be relative", ErrInvalidInput)
	}

	if strings.ContainsRune(rel, '\\') {
		return fmt.Errorf("%w: backslash in path", ErrInvalidInput)
	}

	for _, r := range rel {
		if r == 0 || r < 0x20 || r == 0x7f {
			return fmt.Errorf("%w: control character in path", ErrInvalidInput)
		}
	}

	return nil
}

// resolveExisting canonicalizes p even when its tail does not exist yet:
// symbolic links are resolved on the deepest existing ancestor and the
// remaining components are re-joined lexically.
func resolveExisting(p string) (string, error) {
	suffix := ""
	cur := p

	for {
		resolved, err := filepath.EvalSymlinks(cur)
		if err == nil {
			return filepath.Join(resolved, suffix), nil
		}
		if errors.Is(err, syscall.ENOTDIR) {
			return "", fmt.Errorf("%w: path passes through a file", ErrInvalidInput)
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return "", err
		}
		suffix = filepath.Join(filepath.Base(cur), suffix)
		cur = parent
	}
}

// contains reports whether abs lies within the root subtree. The comparison
// is segment-wise: /data2 does not count as inside /data.
func (a *Authorizer) contains(abs string) bool {
	rel, err := filepath.Rel(a.root, abs)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
