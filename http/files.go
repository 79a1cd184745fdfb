package http

import (
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sagarc03/docshelf"
)

const (
	msgInvalidUpload = "Invalid file when uploading.  Please retry."
	msgUploadFailed  = "Could not store the file.  Please retry."
	msgListFailed    = "Could not list your documents.  Please retry later."
)

func (h *Handler) handleMain(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	data := mainPageData{
		User:  user,
		Files: []string{},
		Error: popFlash(w, r),
	}

	files, err := h.service.List(r.Context(), user)
	if err != nil {
		slog.Error("list documents", "user", user, "err", err)
		if data.Error == "" {
			data.Error = msgListFailed
		}
	} else {
		data.Files = files
	}

	renderPage(w, mainTemplate, data)
}

func (h *Handler) handleView(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	filename, ok := filenameParam(r)
	if !ok {
		redirect(w, r, "/")
		return
	}

	h.extendWriteDeadline(w)

	content, err := h.service.Get(r.Context(), user, filename)
	if err != nil {
		slog.Error("fetch document", "user", user, "filename", filename, "err", err)
		redirect(w, r, "/")
		return
	}
	defer func() { _ = content.Close() }()

	f, err := h.scratch.stage(user, content)
	if err != nil {
		slog.Error("stage download", "user", user, "filename", filename, "err", err)
		redirect(w, r, "/")
		return
	}
	defer h.scratch.release(f)

	w.Header().Set("Content-Type", docshelf.PDFContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))

	http.ServeContent(w, r, filename, time.Time{}, f)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	if filename, ok := filenameParam(r); ok {
		if err := h.service.Delete(r.Context(), user, filename); err != nil {
			slog.Error("delete document", "user", user, "filename", filename, "err", err)
		}
	}

	redirect(w, r, "/")
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())

	if h.config.MaxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.config.MaxUploadSize)
	}

	file, header, err := r.FormFile("pdf")
	if err != nil {
		if !errors.Is(err, http.ErrMissingFile) {
			slog.Warn("read upload", "user", user, "err", err)
		}
		setFlash(w, msgInvalidUpload)
		redirect(w, r, "/")
		return
	}
	defer func() { _ = file.Close() }()

	if !docshelf.IsValidFilename(header.Filename) || !docshelf.HasPDFExtension(header.Filename) {
		setFlash(w, msgInvalidUpload)
		redirect(w, r, "/")
		return
	}

	location, err := h.service.Put(r.Context(), user, header.Filename, file, header.Size)
	if err != nil {
		slog.Error("upload document", "user", user, "filename", header.Filename, "err", err)
		setFlash(w, msgUploadFailed)
		redirect(w, r, "/")
		return
	}

	slog.Info("document uploaded", "user", user, "filename", header.Filename, "location", location)
	redirect(w, r, "/")
}

// extendWriteDeadline lets a download outlive the server write timeout.
func (h *Handler) extendWriteDeadline(w http.ResponseWriter) {
	if h.config.DownloadTimeout <= 0 {
		return
	}

	rc := http.NewResponseController(w)
	if err := rc.SetWriteDeadline(time.Now().Add(h.config.DownloadTimeout)); err != nil && !errors.Is(err, http.ErrNotSupported) {
		slog.Warn("extend download write deadline", "err", err)
	}
}

// filenameParam returns the decoded {filename} route parameter and whether it
// names a valid document.
func filenameParam(r *http.Request) (string, bool) {
	filename := chi.URLParam(r, "filename")

	// chi routes on RawPath when the request carried escapes it could not
	// represent in Path, so the parameter is still encoded in that case.
	if r.URL.RawPath != "" {
		decoded, err := url.PathUnescape(filename)
		if err != nil {
			return "", false
		}
		filename = decoded
	}

	return filename, docshelf.IsValidFilename(filename)
}
