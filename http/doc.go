// Package http provides the web interface of docshelf.
//
// Routes are registered on a chi router by Handler.Router:
//
//	GET  /                         main page: the user's documents
//	POST /files/upload             upload (multipart field "pdf", .pdf only)
//	GET  /files/delete/{filename}  delete a document
//	GET  /files/{filename}         download a document as an attachment
//	GET  /users                    login form
//	POST /users                    login (form fields "username", "password")
//	GET  /users/logout             logout
//	GET  /static/*                 embedded stylesheet
//
// # Sessions
//
// A successful login stores the token issued by docshelf.Authenticator in the
// "auth" cookie. SessionMiddleware verifies it on every request outside
// /users and /static and puts the username in the request context, where
// handlers read it with UserFromContext. Requests without a valid token are
// redirected to /users.
//
// # Failures
//
// Handlers never answer with an error status for storage or input failures.
// They log the error and redirect to the main page; a failed upload leaves a
// one-shot message in the "flash" cookie that the next main page render
// shows. All redirects are 303 See Other.
//
// # Usage
//
//	handler := http.NewHandler(&http.HandlerConfig{ScratchDir: "data"}, store, authenticator)
//	srv := &nethttp.Server{Addr: ":8000", Handler: handler.Router()}
package http
