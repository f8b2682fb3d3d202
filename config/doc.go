// Package config provides configuration loading and validation for moby-mcp.
//
// The package handles YAML configuration files, environment variables, and CLI flags
// with automatic merging and validation using go-playground/validator.
//
// # Configuration Precedence
//
// Values are loaded in this order (later sources override earlier ones):
//
//  1. Default values
//  2. Configuration file(s) - multiple files merged left-to-right
//  3. Environment variables (MOBY_ prefix)
//  4. CLI flags
//
// # Usage
//
//	cfg, err := config.Load([]string{"config.yaml"}, cmd.Flags())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Store in context for subcommands
//	ctx = config.WithContext(ctx, cfg)
//
//	// Retrieve later
//	cfg, err = config.FromContext(ctx)
//
// # Environment Variables
//
// All config keys map to environment variables with MOBY_ prefix:
//   - server.port → MOBY_SERVER_PORT
//   - storage.root → MOBY_STORAGE_ROOT
//   - auth.token → MOBY_AUTH_TOKEN
//
// # Configuration Structure
//
// The Config struct contains:
//   - Server: port and max_upload_size
//   - Storage: root directory and extension allow-list
//   - Auth: bearer token (empty disables authentication)
//   - CORS: cross-origin resource sharing settings
//   - Log: logging level
//
// # Validation
//
// Configuration is validated using struct tags:
//   - Port must be 1-65535
//   - The extension allow-list must be non-empty; every entry starts with a dot
//   - Log level must be debug, info, warn, or error
package config
