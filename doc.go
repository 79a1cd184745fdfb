// Package docshelf provides the core of a small document-sharing web
// application: users sign in with a cookie token and keep PDF files in a
// single object-storage bucket, one key prefix per user.
//
// # Key Components
//
//   - Authenticator: issues and verifies login tokens against a CredentialStore
//   - DocumentStore: per-user document operations on top of an ObjectBackend
//   - ObjectBackend: raw bucket operations (AWS S3, MinIO, local filesystem)
//
// # Object Keys
//
// Every document is stored under "<user>/<filename>". The user segment always
// comes from the authenticated session and a filename can never contain a
// slash, so one user can never address another user's documents.
//
// # Example Usage
//
//	store, err := docshelf.NewDocumentStore(backend, "apt-pdf-browser")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if _, err := store.EnsureBucket(ctx); err != nil {
//	    slog.Warn("bucket not ready", "err", err)
//	}
//
//	location, err := store.Put(ctx, "user1", "report.pdf", file, size)
//
//	names, err := store.List(ctx, "user1")
//
// See the http package for the web front end and the s3store, miniostore and
// filesystem packages for backend implementations.
package docshelf
