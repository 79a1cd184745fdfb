// Package config provides configuration loading and validation for docshelf.
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
//  3. Environment variables (DOCSHELF_ prefix, plus PORT for server.port)
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
// All config keys map to environment variables with DOCSHELF_ prefix:
//   - server.port → DOCSHELF_SERVER_PORT (or PORT)
//   - storage.driver → DOCSHELF_STORAGE_DRIVER
//   - auth.users.allowed → DOCSHELF_AUTH_USERS_ALLOWED (comma separated)
//
// # Configuration Structure
//
// The Config struct contains:
//   - Server: port, max_upload_size, scratch_dir for staged downloads, cookie_secure
//   - Storage: driver (s3/minio/filesystem), bucket and the driver's connection settings
//   - Auth: the user allow-list, the shared password and the token signing secret
//   - CORS: optional cross-origin settings for the router
//   - Log: level (debug/info/warn/error)
//   - Env: "prod" or "production" switches logging to JSON
package config
