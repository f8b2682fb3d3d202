package clientcli

// UploadOptions configures an upload operation.
type UploadOptions struct {
	LocalPath   string
	RemotePath  string
	ContentType string // optional, auto-detect if empty
	Recursive   bool
}

// UploadResult represents the result of uploading a single file.
type UploadResult struct {
	LocalPath  string `json:"local_path"`
	RemotePath string `json:"remote_path"`
	ETag       string `json:"etag"`
	Size       int64  `json:"size_bytes"`
	Err        error  `json:"-"` // nil on success
}

// DownloadOptions configures a download operation.
type DownloadOptions struct {
	RemotePath string
	LocalPath  string // empty = derive from remote, "-" = stdout
}

// DownloadResult represents the result of downloading a file.
type DownloadResult struct {
	RemotePath  string `json:"remote_path"`
	LocalPath   string `json:"local_path"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size_bytes"`
}

// DeleteOptions configures a delete operation.
type DeleteOptions struct {
	Paths []string
}

// DeleteResult represents the result of deleting a single file.
type DeleteResult struct {
	Path    string `json:"path"`
	Deleted bool   `json:"deleted"`
	Err     error  `json:"-"` // nil on success
}

// EntryInfo is a single directory listing item as reported by the server.
type EntryInfo struct {
	Type string `json:"type"`
	Path string `json:"path"`
}

// ListResult mirrors the server's directory listing response.
type ListResult struct {
	Path  string      `json:"path"`
	Items []EntryInfo `json:"items"`
	Count int         `json:"count"`
}

// serverWriteResult mirrors the JSON response from the server for writes.
type serverWriteResult struct {
	Path          string `json:"path"`
	FileSizeBytes int64  `json:"size_bytes"`
	ETag          string `json:"etag"`
}
