package clientcli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultTimeout is the default HTTP client timeout.
const DefaultTimeout = 30 * time.Second

// Client performs operations against a moby-mcp server using bearer-token
// authentication.
type Client struct {
	config     *Config
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// New creates a new Client with the given config and options.
func New(cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, ErrConfigRequired
	}

	cfg = cfg.WithDefaults()

	c := &Client{
		config: &Config{
			Endpoint: strings.TrimSuffix(cfg.Endpoint, "/"),
			Token:    cfg.Token,
		},
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// newRequest builds a request against the server with the bearer credential
// attached. kind is "files" or "dirs"; remotePath may be empty for the root
// directory listing.
func (c *Client) newRequest(ctx context.Context, method, kind, remotePath string, body io.Reader) (*http.Request, error) {
	endpoint := c.config.Endpoint + "/" + kind
	if remotePath != "" {
		segments := strings.Split(remotePath, "/")
		for i, s := range segments {
			segments[i] = url.PathEscape(s)
		}
		endpoint += "/" + strings.Join(segments, "/")
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if c.config.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.Token)
	}

	return req, nil
}

// Upload uploads file(s) to the server.
// For recursive uploads, walks directory and preserves relative paths.
func (c *Client) Upload(ctx context.Context, opts UploadOptions) ([]UploadResult, error) {
	if opts.LocalPath == "" {
		return nil, fmt.Errorf("upload: %w", ErrEmptyPath)
	}
	if opts.Recursive {
		return c.uploadRecursive(ctx, opts)
	}
	result, err := c.uploadSingle(ctx, opts.LocalPath, opts.RemotePath, opts.ContentType)
	if err != nil {
		return nil, err
	}
	return []UploadResult{result}, nil
}

// uploadRecursive walks a directory and uploads all files.
func (c *Client) uploadRecursive(ctx context.Context, opts UploadOptions) ([]UploadResult, error) {
	info, err := os.Stat(opts.LocalPath)
	if err != nil {
		return nil, fmt.Errorf("stat local path: %w", err)
	}

	if !info.IsDir() {
		result, uploadErr := c.uploadSingle(ctx, opts.LocalPath, opts.RemotePath, opts.ContentType)
		if uploadErr != nil {
			return nil, uploadErr
		}
		return []UploadResult{result}, nil
	}

	var results []UploadResult
	baseDir := opts.LocalPath
	remotePrefix := strings.TrimSuffix(opts.RemotePath, "/")

	walkErr := filepath.WalkDir(baseDir, func(path string, d fs.DirEntry, fileErr error) error {
		if fileErr != nil {
			return fileErr
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if d.IsDir() {
			return nil
		}

		relPath, relErr := filepath.Rel(baseDir, path)
		if relErr != nil {
			results = append(results, UploadResult{
				LocalPath: path,
				Err:       fmt.Errorf("calculate relative path: %w", relErr),
			})
			return nil
		}

		relPath = filepath.ToSlash(relPath)
		remotePath := relPath
		if remotePrefix != "" {
			remotePath = remotePrefix + "/" + relPath
		}

		result, uploadErr := c.uploadSingle(ctx, path, remotePath, "")
		if uploadErr != nil {
			result = UploadResult{
				LocalPath:  path,
				RemotePath: remotePath,
				Err:        uploadErr,
			}
		}
		results = append(results, result)
		return nil
	})

	if walkErr != nil {
		return results, fmt.Errorf("walk directory: %w", walkErr)
	}

	return results, nil
}

// uploadSingle uploads a single file to the server.
func (c *Client) uploadSingle(ctx context.Context, localPath, remotePath, contentType string) (UploadResult, error) {
	file, err := os.Open(localPath) //#nosec G304 -- localPath is user-provided input
	if err != nil {
		return UploadResult{}, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return UploadResult{}, fmt.Errorf("stat file: %w", err)
	}

	if contentType == "" {
		contentType = detectContentType(localPath)
	}

	remotePath = normalizePath(remotePath)

	req, err := c.newRequest(ctx, http.MethodPut, "files", remotePath, file)
	if err != nil {
		return UploadResult{}, err
	}
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = info.Size()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return UploadResult{}, fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return UploadResult{}, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return UploadResult{}, parseServerError(resp.StatusCode, body)
	}

	var result serverWriteResult
	if err := json.Unmarshal(body, &result); err != nil {
		return UploadResult{}, fmt.Errorf("parse response: %w", err)
	}

	return UploadResult{
		LocalPath:  localPath,
		RemotePath: result.Path,
		ETag:       result.ETag,
		Size:       result.FileSizeBytes,
	}, nil
}

// Download downloads a file from the server.
// If opts.LocalPath is "-", the content is returned via the io.ReadCloser and must be closed by the caller.
// Otherwise, the content is written to the file and the io.ReadCloser is nil.
func (c *Client) Download(ctx context.Context, opts DownloadOptions) (*DownloadResult, io.ReadCloser, error) {
	if opts.RemotePath == "" {
		return nil, nil, fmt.Errorf("download: %w", ErrEmptyPath)
	}
	remotePath := normalizePath(opts.RemotePath)

	req, err := c.newRequest(ctx, http.MethodGet, "files", remotePath, http.NoBody)
	if err != nil {
		return nil, nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("do request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		return nil, nil, parseServerError(resp.StatusCode, body)
	}

	result := &DownloadResult{
		RemotePath:  remotePath,
		ContentType: resp.Header.Get("Content-Type"),
		Size:        resp.ContentLength,
	}

	if opts.LocalPath == "-" {
		result.LocalPath = "-"
		return result, resp.Body, nil
	}

	localPath := opts.LocalPath
	if localPath == "" {
		localPath = filepath.Base(remotePath)
	}
	result.LocalPath = localPath

	dir := filepath.Dir(localPath)
	if dir != "" && dir != "." {
		if mkdirErr := os.MkdirAll(dir, 0o750); mkdirErr != nil {
			_ = resp.Body.Close()
			return nil, nil, fmt.Errorf("create directory: %w", mkdirErr)
		}
	}

	file, createErr := os.Create(localPath) //#nosec G304 -- localPath is user-provided input
	if createErr != nil {
		_ = resp.Body.Close()
		return nil, nil, fmt.Errorf("create file: %w", createErr)
	}

	written, copyErr := io.Copy(file, resp.Body)
	_ = resp.Body.Close()
	if copyErr != nil {
		_ = file.Close()
		return nil, nil, fmt.Errorf("write file: %w", copyErr)
	}

	if closeErr := file.Close(); closeErr != nil {
		return nil, nil, fmt.Errorf("close file: %w", closeErr)
	}

	result.Size = written
	return result, nil, nil
}

// Delete deletes one or more files from the server.
// Continues on error, collecting results for all paths.
func (c *Client) Delete(ctx context.Context, opts DeleteOptions) ([]DeleteResult, error) {
	if len(opts.Paths) == 0 {
		return nil, ErrNoPaths
	}

	results := make([]DeleteResult, 0, len(opts.Paths))

	for _, path := range opts.Paths {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		results = append(results, c.deleteSingle(ctx, path))
	}

	return results, nil
}

// deleteSingle deletes a single file from the server.
func (c *Client) deleteSingle(ctx context.Context, path string) DeleteResult {
	remotePath := normalizePath(path)

	req, err := c.newRequest(ctx, http.MethodDelete, "files", remotePath, http.NoBody)
	if err != nil {
		return DeleteResult{Path: path, Deleted: false, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return DeleteResult{
			Path:    path,
			Deleted: false,
			Err:     fmt.Errorf("do request: %w", err),
		}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusOK {
		return DeleteResult{Path: path, Deleted: true}
	}

	body, _ := io.ReadAll(resp.Body)
	return DeleteResult{
		Path:    path,
		Deleted: false,
		Err:     parseServerError(resp.StatusCode, body),
	}
}

// HasDeleteErrors returns true if any delete operation failed.
func HasDeleteErrors(results []DeleteResult) bool {
	for _, r := range results {
		if r.Err != nil {
			return true
		}
	}
	return false
}

// List lists a directory on the server. An empty remotePath lists the
// server's root directory.
func (c *Client) List(ctx context.Context, remotePath string) (*ListResult, error) {
	remotePath = normalizePath(remotePath)

	req, err := c.newRequest(ctx, http.MethodGet, "dirs", remotePath, http.NoBody)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, parseServerError(resp.StatusCode, body)
	}

	var result ListResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	return &result, nil
}

// Mkdir creates a directory on the server.
func (c *Client) Mkdir(ctx context.Context, remotePath string) error {
	remotePath = normalizePath(remotePath)
	if remotePath == "" {
		return fmt.Errorf("mkdir: %w", ErrEmptyPath)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "dirs", remotePath, http.NoBody)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusCreated || resp.StatusCode == http.StatusOK {
		return nil
	}

	body, _ := io.ReadAll(resp.Body)
	return parseServerError(resp.StatusCode, body)
}

// normalizePath trims leading and trailing slashes from a remote path.
func normalizePath(p string) string {
	return strings.Trim(p, "/")
}

// detectContentType returns the MIME type for a local file based on its
// extension.
func detectContentType(p string) string {
	contentType := mime.TypeByExtension(filepath.Ext(p))
	if contentType == "" {
		return "application/octet-stream"
	}
	return contentType
}

// serverErrorBody mirrors the server's JSON error response.
type serverErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// parseServerError converts a non-success response into an error.
func parseServerError(status int, body []byte) error {
	var se serverErrorBody
	if err := json.Unmarshal(body, &se); err == nil && se.Message != "" {
		return fmt.Errorf("server error (%d %s): %s", status, se.Error, se.Message)
	}
	return fmt.Errorf("server error (%d): %s", status, strings.TrimSpace(string(body)))
}
