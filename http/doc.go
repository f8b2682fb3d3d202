// Package http provides the HTTP surface for the moby-mcp file system
// service.
//
// The package implements a small REST API in front of the access-control
// core: bearer-token authentication, path authorization, and a fixed set of
// file system operations.
//
// # Routes
//
//	GET    /healthz      liveness probe, exempt from authentication
//	GET    /files/{path} read a file (raw bytes)
//	PUT    /files/{path} write a file (request body is the content)
//	DELETE /files/{path} delete a file
//	GET    /dirs         list the root directory
//	GET    /dirs/{path}  list a directory
//	POST   /dirs/{path}  create a directory
//
// # Authentication
//
// Every request except the exempt paths must carry an
// "Authorization: Bearer <token>" header. Pass a gate to AuthMiddleware, or
// nil for public access:
//
//	gate := mobymcp.NewGate(token)
//	router.Use(http.AuthMiddleware(gate, http.DefaultExemptPaths))
//
// A rejected request never reaches the file system.
//
// # Usage
//
//	handlerCfg := http.HandlerConfig{
//	    Gate:        mobymcp.NewGate(token), // nil for public access
//	    ExemptPaths: http.DefaultExemptPaths,
//	}
//	handler := http.NewHandler(&handlerCfg, service)
//	http.ListenAndServe(":8000", handler.Router())
//
// The service parameter must implement the Service interface with Read,
// Write, Delete, List, and Mkdir methods.
//
// # Errors
//
// Errors are returned as JSON bodies {"error", "message"}. Credential
// failures map to 401, validation failures (path traversal, disallowed
// extension, malformed path) to 400, missing targets to 404, existing
// targets on create to 409, and upload bodies over the configured size
// limit to 413.
package http
