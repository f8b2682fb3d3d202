package mobymcp_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mobymcp "github.com/dylangroos/moby-mcp"
)

func newTestAuthorizer(t *testing.T) (*mobymcp.Authorizer, string) {
	t.Helper()
	root := t.TempDir()
	auth, err := mobymcp.NewAuthorizer(root, mobymcp.NewExtensionSet([]string{".txt", ".json"}))
	require.NoError(t, err)
	return auth, auth.Root()
}

func TestNewAuthorizer_RootMustExist(t *testing.T) {
	_, err := mobymcp.NewAuthorizer("/nonexistent/path/for/sure", mobymcp.NewExtensionSet([]string{".txt"}))

	assert.Error(t, err)
}

func TestNewAuthorizer_RootMustBeDirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	_, err := mobymcp.NewAuthorizer(file, mobymcp.NewExtensionSet([]string{".txt"}))

	assert.Error(t, err)
	assert.ErrorIs(t, err, mobymcp.ErrInvalidInput)
}

func TestAuthorizer_Authorize_Success(t *testing.T) {
	auth, root := newTestAuthorizer(t)

	rp, err := auth.Authorize("notes/today.txt", mobymcp.OpWrite)

	assert.NoError(t, err)
	assert.Equal(t, "notes/today.txt", rp.Rel)
	assert.Equal(t, filepath.Join(root, "notes", "today.txt"), rp.Abs)
}

func TestAuthorizer_Authorize_CleansRedundantSegments(t *testing.T) {
	auth, _ := newTestAuthorizer(t)

	rp, err := auth.Authorize("a/./b//c.txt", mobymcp.OpRead)

	assert.NoError(t, err)
	assert.Equal(t, "a/b/c.txt", rp.Rel)
}

func TestAuthorizer_Authorize_Traversal(t *testing.T) {
	auth, _ := newTestAuthorizer(t)

	tests := []struct {
		name string
		path string
	}{
		{"parent escape", "../outside.txt"},
		{"deep escape", "../../etc/passwd"},
		{"escape after segment", "a/../../outside.txt"},
		{"bare dotdot", ".."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := auth.Authorize(tt.path, mobymcp.OpRead)
			assert.ErrorIs(t, err, mobymcp.ErrPathTraversal)
		})
	}
}

func TestAuthorizer_Authorize_DotDotInsideRootIsFine(t *testing.T) {
	auth, _ := newTestAuthorizer(t)

	// Resolves to b.txt, still inside the root.
	rp, err := auth.Authorize("a/../b.txt", mobymcp.OpRead)

	assert.NoError(t, err)
	assert.Equal(t, "b.txt", rp.Rel)
}

func TestAuthorizer_Authorize_InvalidInput(t *testing.T) {
	auth, _ := newTestAuthorizer(t)

	tests := []struct {
		name string
		path string
	}{
		{"absolute path", "/etc/passwd.txt"},
		{"backslash", `a\b.txt`},
		{"null byte", "a\x00b.txt"},
		{"control character", "a\nb.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := auth.Authorize(tt.path, mobymcp.OpRead)
			assert.ErrorIs(t, err, mobymcp.ErrInvalidInput)
		})
	}
}

func TestAuthorizer_Authorize_EmptyPathOnlyForList(t *testing.T) {
	auth, root := newTestAuthorizer(t)

	rp, err := auth.Authorize("", mobymcp.OpList)
	assert.NoError(t, err)
	assert.Equal(t, "", rp.Rel)
	assert.Equal(t, root, rp.Abs)

	for _, op := range []mobymcp.Operation{mobymcp.OpRead, mobymcp.OpWrite, mobymcp.OpDelete, mobymcp.OpMkdir} {
		_, err := auth.Authorize("", op)
		assert.ErrorIs(t, err, mobymcp.ErrInvalidInput, op.String())
	}
}

func TestAuthorizer_Authorize_DisallowedExtension(t *testing.T) {
	auth, _ := newTestAuthorizer(t)

	for _, op := range []mobymcp.Operation{mobymcp.OpRead, mobymcp.OpWrite, mobymcp.OpDelete} {
		_, err := auth.Authorize("image.png", op)
		assert.ErrorIs(t, err, mobymcp.ErrDisallowedType, op.String())
	}
}

func TestAuthorizer_Authorize_NoExtension(t *testing.T) {
	auth, _ := newTestAuthorizer(t)

	_, err := auth.Authorize("README", mobymcp.OpRead)

	assert.ErrorIs(t, err, mobymcp.ErrDisallowedType)
}

func TestAuthorizer_Authorize_ExtensionCaseSensitive(t *testing.T) {
	auth, _ := newTestAuthorizer(t)

	_, err := auth.Authorize("notes.TXT", mobymcp.OpRead)

	assert.ErrorIs(t, err, mobymcp.ErrDisallowedType)
}

func TestAuthorizer_Authorize_ListAndMkdirSkipExtensionCheck(t *testing.T) {
	auth, _ := newTestAuthorizer(t)

	_, err := auth.Authorize("archive", mobymcp.OpList)
	assert.NoError(t, err)

	_, err = auth.Authorize("archive", mobymcp.OpMkdir)
	assert.NoError(t, err)
}

func TestAuthorizer_Authorize_NonexistentTargetAllowed(t *testing.T) {
	auth, root := newTestAuthorizer(t)

	// Write targets do not exist yet; resolution must still succeed.
	rp, err := auth.Authorize("brand/new/file.txt", mobymcp.OpWrite)

	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "brand", "new", "file.txt"), rp.Abs)
}

func TestAuthorizer_Authorize_SymlinkEscape(t *testing.T) {
	auth, root := newTestAuthorizer(t)
	outside := t.TempDir()

	link := filepath.Join(root, "link")
	if err := os.Symlink(outside, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	_, err := auth.Authorize("link/file.txt", mobymcp.OpRead)

	assert.ErrorIs(t, err, mobymcp.ErrPathTraversal)
}

func TestAuthorizer_Authorize_SymlinkInsideRoot(t *testing.T) {
	auth, root := newTestAuthorizer(t)

	require.NoError(t, os.MkdirAll(filepath.Join(root, "real"), 0o755))
	link := filepath.Join(root, "alias")
	if err := os.Symlink(filepath.Join(root, "real"), link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	_, err := auth.Authorize("alias/file.txt", mobymcp.OpRead)

	assert.NoError(t, err)
}

func TestAuthorizer_Authorize_SymlinkChangesExtension(t *testing.T) {
	auth, root := newTestAuthorizer(t)

	require.NoError(t, os.WriteFile(filepath.Join(root, "secret.bin"), []byte("classified"), 0o644))
	link := filepath.Join(root, "notes.txt")
	if err := os.Symlink(filepath.Join(root, "secret.bin"), link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	// The link name carries an allowed extension but resolves to a .bin file.
	_, err := auth.Authorize("notes.txt", mobymcp.OpRead)

	assert.ErrorIs(t, err, mobymcp.ErrDisallowedType)
}

func TestAuthorizer_Authorize_SymlinkKeepsAllowedExtension(t *testing.T) {
	auth, root := newTestAuthorizer(t)

	require.NoError(t, os.WriteFile(filepath.Join(root, "real.txt"), []byte("x"), 0o644))
	link := filepath.Join(root, "alias.txt")
	if err := os.Symlink(filepath.Join(root, "real.txt"), link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	rp, err := auth.Authorize("alias.txt", mobymcp.OpRead)

	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "real.txt"), rp.Abs)
}

func TestAuthorizer_Authorize_PathThroughFile(t *testing.T) {
	auth, root := newTestAuthorizer(t)

	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644))

	_, err := auth.Authorize("notes.txt/child.txt", mobymcp.OpRead)

	assert.ErrorIs(t, err, mobymcp.ErrInvalidInput)
}

func TestAuthorizer_Authorize_UnknownOperation(t *testing.T) {
	auth, _ := newTestAuthorizer(t)

	_, err := auth.Authorize("file.txt", mobymcp.Operation(99))

	assert.ErrorIs(t, err, mobymcp.ErrInvalidInput)
}
