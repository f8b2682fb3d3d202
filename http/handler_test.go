package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mobymcp "github.com/dylangroos/moby-mcp"
	"github.com/dylangroos/moby-mcp/filesystem"
	mobyhttp "github.com/dylangroos/moby-mcp/http"
)

const testToken = "test-token"

func newTestRouter(t *testing.T) (http.Handler, string) {
	t.Helper()
	dir := t.TempDir()

	auth, err := mobymcp.NewAuthorizer(dir, mobymcp.NewExtensionSet([]string{".txt", ".json"}))
	require.NoError(t, err)

	osRoot, err := os.OpenRoot(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = osRoot.Close() })

	svc, err := mobymcp.NewService(auth, filesystem.NewStore(osRoot))
	require.NoError(t, err)

	cfg := &mobyhttp.HandlerConfig{
		Gate: mobymcp.NewGate(testToken),
	}
	return mobyhttp.NewHandler(cfg, svc).Router(), dir
}

func doRequest(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Authorization", "Bearer "+testToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Health(t *testing.T) {
	router, _ := newTestRouter(t)

	// No Authorization header: /healthz is exempt.
	req := httptest.NewRequest("GET", "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHandler_Write_BodyTooLarge(t *testing.T) {
	dir := t.TempDir()

	auth, err := mobymcp.NewAuthorizer(dir, mobymcp.NewExtensionSet([]string{".txt"}))
	require.NoError(t, err)

	osRoot, err := os.OpenRoot(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = osRoot.Close() })

	svc, err := mobymcp.NewService(auth, filesystem.NewStore(osRoot))
	require.NoError(t, err)

	cfg := &mobyhttp.HandlerConfig{
		Gate:          mobymcp.NewGate(testToken),
		MaxUploadSize: 8,
	}
	router := mobyhttp.NewHandler(cfg, svc).Router()

	rec := doRequest(router, "PUT", "/files/big.txt", strings.Repeat("x", 64))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Contains(t, rec.Body.String(), "too_large")

	// The rejected body leaves nothing on disk.
	_, statErr := os.Stat(filepath.Join(dir, "big.txt"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestHandler_Unauthenticated(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest("GET", "/files/test.txt", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "unauthorized")
}

func TestHandler_WriteThenRead(t *testing.T) {
	router, dir := newTestRouter(t)

	rec := doRequest(router, "PUT", "/files/notes.txt", "hello world")
	assert.Equal(t, http.StatusOK, rec.Code)

	var result mobymcp.WriteResult
	err := json.Unmarshal(rec.Body.Bytes(), &result)
	assert.NoError(t, err)
	assert.Equal(t, "notes.txt", result.Path)
	assert.Equal(t, int64(11), result.BytesWritten)
	assert.Len(t, result.Etag, 64)

	data, err := os.ReadFile(filepath.Join(dir, "notes.txt"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("hello world"), data)

	rec = doRequest(router, "GET", "/files/notes.txt", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hello world", rec.Body.String())
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
}

func TestHandler_Read_NotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(router, "GET", "/files/missing.txt", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_found")
}

func TestHandler_Read_DisallowedExtension(t *testing.T) {
	router, dir := newTestRouter(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "image.png"), []byte("x"), 0o644))

	rec := doRequest(router, "GET", "/files/image.png", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "disallowed_type")
}

func TestHandler_Read_Traversal(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(router, "GET", "/files/..%2F..%2Fetc%2Fpasswd.txt", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Write_MissingParent(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(router, "PUT", "/files/missing/dir/file.txt", "content")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_Delete(t *testing.T) {
	router, dir := newTestRouter(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "gone.txt"), []byte("x"), 0o644))

	rec := doRequest(router, "DELETE", "/files/gone.txt", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	_, err := os.Stat(filepath.Join(dir, "gone.txt"))
	assert.True(t, os.IsNotExist(err))

	rec = doRequest(router, "DELETE", "/files/gone.txt", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_List_Root(t *testing.T) {
	router, dir := newTestRouter(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.png"), []byte("b"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))

	rec := doRequest(router, "GET", "/dirs", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var result mobymcp.ListResult
	err := json.Unmarshal(rec.Body.Bytes(), &result)
	assert.NoError(t, err)
	assert.Equal(t, "/", result.Path)
	assert.Equal(t, 2, result.Count)
	assert.Equal(t, []mobymcp.Entry{
		{Type: mobymcp.EntryTypeFile, Path: "a.txt"},
		{Type: mobymcp.EntryTypeDir, Path: "sub"},
	}, result.Items)
}

func TestHandler_List_Subdirectory(t *testing.T) {
	router, dir := newTestRouter(t)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "x.json"), []byte("{}"), 0o644))

	rec := doRequest(router, "GET", "/dirs/sub", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var result mobymcp.ListResult
	err := json.Unmarshal(rec.Body.Bytes(), &result)
	assert.NoError(t, err)
	assert.Equal(t, "sub", result.Path)
	assert.Equal(t, []mobymcp.Entry{{Type: mobymcp.EntryTypeFile, Path: "sub/x.json"}}, result.Items)
}

func TestHandler_List_NotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doRequest(router, "GET", "/dirs/missing", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_Mkdir(t *testing.T) {
	router, dir := newTestRouter(t)

	rec := doRequest(router, "POST", "/dirs/archive", "")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"path":"archive"}`, rec.Body.String())

	info, err := os.Stat(filepath.Join(dir, "archive"))
	assert.NoError(t, err)
	assert.True(t, info.IsDir())

	rec = doRequest(router, "POST", "/dirs/archive", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "already_exists")
}

func TestHandler_CORSDisabledByDefault(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest("OPTIONS", "/files/test.txt", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
