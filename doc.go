// Package mobymcp exposes a restricted slice of the local file system to
// remote clients over HTTP, gated by a bearer token and confined to a single
// root directory and a fixed allow-list of file extensions.
//
// The core of the package is the access-control layer that sits between an
// incoming request and the raw file system call:
//
//   - Gate: validates the bearer credential on every request in constant time
//   - Authorizer: resolves a caller-supplied relative path against the root
//     directory and rejects anything that escapes it or carries an extension
//     outside the allow-list
//   - Service: dispatches an authorized path to exactly one file system
//     primitive (read, write, list, delete, create directory)
//
// # Example Usage
//
//	root, err := os.OpenRoot("/data")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	allowed := mobymcp.NewExtensionSet([]string{".txt", ".json"})
//	auth, err := mobymcp.NewAuthorizer("/data", allowed)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	service, err := mobymcp.NewService(auth, filesystem.NewStore(root))
//	gate := mobymcp.NewGate(os.Getenv("MOBY_AUTH_TOKEN"))
//
// See the http package for the REST surface, the filesystem package for the
// storage backend, and cmd/moby-mcp for the server binary.
package mobymcp
