package http

import (
	"context"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	mobymcp "github.com/dylangroos/moby-mcp"
)

type Service interface {
	Read(ctx context.Context, path string) (mobymcp.FileInfo, io.ReadSeekCloser, error)
	Write(ctx context.Context, path string, content io.Reader) (mobymcp.WriteResult, error)
	Delete(ctx context.Context, path string) error
	List(ctx context.Context, path string) (mobymcp.ListResult, error)
	Mkdir(ctx context.Context, path string) error
}

type CORSConfig struct {
	Enabled          bool
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

type HandlerConfig struct {
	Gate          *mobymcp.Gate
	ExemptPaths   []string
	MaxUploadSize int64
	CORS          CORSConfig
}

// Handler provides HTTP handlers for the file system operations.
type Handler struct {
	config  HandlerConfig
	service Service
}

// NewHandler creates a new Handler with the given configuration and service.
func NewHandler(config *HandlerConfig, service Service) *Handler {
	return &Handler{
		config:  *config,
		service: service,
	}
}

// Router returns an http.Handler with all routes configured. Every route
// except the exempt paths sits behind the credential gate. File operations
// live under /files/, directory operations under /dirs/.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	if h.config.CORS.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.config.CORS.AllowedOrigins,
			AllowedMethods:   h.config.CORS.AllowedMethods,
			AllowedHeaders:   h.config.CORS.AllowedHeaders,
			ExposedHeaders:   h.config.CORS.ExposedHeaders,
			AllowCredentials: h.config.CORS.AllowCredentials,
			MaxAge:           h.config.CORS.MaxAge,
		}))
	}

	exempt := h.config.ExemptPaths
	if exempt == nil {
		exempt = DefaultExemptPaths
	}
	r.Use(AuthMiddleware(h.config.Gate, exempt))

	r.Get("/healthz", h.handleHealth)

	r.Get("/files/*", h.handleRead)
	r.Put("/files/*", h.handleWrite)
	r.Delete("/files/*", h.handleDelete)

	r.Get("/dirs", h.handleList)
	r.Get("/dirs/*", h.handleList)
	r.Post("/dirs/*", h.handleMkdir)

	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleRead(w http.ResponseWriter, r *http.Request) {
	p := filePath(r)

	info, content, err := h.service.Read(r.Context(), p)
	if err != nil {
		HandleError(w, err)
		return
	}
	defer func() { _ = content.Close() }()

	w.Header().Set("Content-Type", info.ContentType)

	http.ServeContent(w, r, path.Base(p), info.ModTime, content)
}

func (h *Handler) handleWrite(w http.ResponseWriter, r *http.Request) {
	p := filePath(r)

	body := r.Body
	if h.config.MaxUploadSize > 0 {
		body = http.MaxBytesReader(w, r.Body, h.config.MaxUploadSize)
	}

	result, err := h.service.Write(r.Context(), p, body)
	if err != nil {
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	p := filePath(r)

	if err := h.service.Delete(r.Context(), p); err != nil {
		HandleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	p := dirPath(r)

	result, err := h.service.List(r.Context(), p)
	if err != nil {
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleMkdir(w http.ResponseWriter, r *http.Request) {
	p := dirPath(r)

	if err := h.service.Mkdir(r.Context(), p); err != nil {
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusCreated, map[string]string{"path": p})
}

// filePath extracts the caller-supplied relative path from a /files/ route.
// No validation happens here; the Authorizer owns path checking.
func filePath(r *http.Request) string {
	return strings.TrimPrefix(r.URL.Path, "/files/")
}

// dirPath extracts the relative path from a /dirs route. The bare /dirs
// route yields the empty path, which denotes the root directory.
func dirPath(r *http.Request) string {
	p := strings.TrimPrefix(r.URL.Path, "/dirs")
	return strings.TrimPrefix(p, "/")
}
