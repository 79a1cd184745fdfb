package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Service is the document storage used by the handlers. It is satisfied by
// *docshelf.DocumentStore.
type Service interface {
	List(ctx context.Context, user string) ([]string, error)
	Put(ctx context.Context, user, filename string, content io.Reader, size int64) (string, error)
	Get(ctx context.Context, user, filename string) (io.ReadCloser, error)
	Delete(ctx context.Context, user, filename string) error
}

// Authenticator checks credentials and session tokens. It is satisfied by
// *docshelf.Authenticator.
type Authenticator interface {
	VerifyToken(token string) bool
	CheckCredentials(username, password string) (string, bool)
}

type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled" yaml:"enabled"`
	AllowedOrigins   []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods" yaml:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers" yaml:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers" yaml:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials" yaml:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age" yaml:"max_age"`
}

type HandlerConfig struct {
	// ScratchDir is where downloads are staged, one subdirectory per user.
	ScratchDir string
	// MaxUploadSize caps the upload request body in bytes. Zero disables the cap.
	MaxUploadSize int64
	// CookieSecure sets the Secure attribute on the auth cookie.
	CookieSecure bool
	CORS         CORSConfig
	// DownloadTimeout is the write deadline of a document download, counted
	// from the start of the request. Zero keeps the server write timeout.
	DownloadTimeout time.Duration
}

// Handler provides the HTTP handlers of the document browser.
type Handler struct {
	config  HandlerConfig
	service Service
	auth    Authenticator
	scratch scratchArea
}

// NewHandler creates a new Handler with the given configuration, document
// service and authenticator.
func NewHandler(config *HandlerConfig, service Service, auth Authenticator) *Handler {
	return &Handler{
		config:  *config,
		service: service,
		auth:    auth,
		scratch: scratchArea{dir: config.ScratchDir},
	}
}

// Router returns an http.Handler with every route registered. Static assets
// and the /users pages are public; everything else passes through
// SessionMiddleware.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(SecurityHeaders)

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

	r.Use(SessionMiddleware(h.auth))

	r.NotFound(writeDefaultNotFound)

	r.Handle("/static/*", staticHandler())

	r.Get("/", h.handleMain)
	r.Post("/files/upload", h.handleUpload)
	r.Get("/files/delete/{filename}", h.handleDelete)
	r.Get("/files/{filename}", h.handleView)

	r.Get("/users", h.handleLoginPage)
	r.Post("/users", h.handleLogin)
	r.Get("/users/logout", h.handleLogout)

	return r
}
