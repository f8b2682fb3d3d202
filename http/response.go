package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	mobymcp "github.com/dylangroos/moby-mcp"
)

// ErrorResponse represents a JSON error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteError writes a JSON error response
func WriteError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(ErrorResponse{
		Error:   errCode,
		Message: message,
	}); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// HandleError writes the appropriate error response based on error type.
// Credential failures map to 401, validation failures (traversal,
// disallowed extension, malformed path) to 400, file system outcomes to
// 404/409, and oversized upload bodies to 413. Nothing here is treated as
// fatal for the process.
func HandleError(w http.ResponseWriter, err error) {
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.Is(err, mobymcp.ErrUnauthorized):
		WriteError(w, http.StatusUnauthorized, "unauthorized", "Missing or invalid bearer token")
	case errors.Is(err, mobymcp.ErrPathTraversal):
		WriteError(w, http.StatusBadRequest, "path_traversal", "Path resolves outside the root directory")
	case errors.Is(err, mobymcp.ErrDisallowedType):
		WriteError(w, http.StatusBadRequest, "disallowed_type", "File type not allowed")
	case errors.Is(err, mobymcp.ErrInvalidInput):
		WriteError(w, http.StatusBadRequest, "invalid_path", "Invalid path")
	case errors.Is(err, mobymcp.ErrNotFound):
		WriteError(w, http.StatusNotFound, "not_found", "File or directory not found")
	case errors.Is(err, mobymcp.ErrAlreadyExists):
		WriteError(w, http.StatusConflict, "already_exists", "Target already exists")
	case errors.As(err, &maxBytesErr):
		WriteError(w, http.StatusRequestEntityTooLarge, "too_large", "Request body exceeds the upload size limit")
	default:
		slog.Error("request error", "error", err)
		WriteError(w, http.StatusInternalServerError, "internal_error", "Internal server error")
	}
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, code int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(data)
}
