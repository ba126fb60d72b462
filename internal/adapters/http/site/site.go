// Package site serves the analyzer form and the background image.
package site

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"html/template"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/wellguard/internal/adapters/assets"
	"github.com/okian/wellguard/internal/adapters/http/api"
	app "github.com/okian/wellguard/internal/app"
	"github.com/okian/wellguard/pkg/logger"
)

// Error constants
var (
	ErrTemplate = errors.New("page template failed")
	ErrForm     = errors.New("form could not be read")
)

// Routes served by this package.
const (
	RootPath       = "/"
	BackgroundPath = app.DefaultBackgroundURL
)

const (
	maxFormBytes  = 64 << 10
	passcodeField = "passcode"
	pngDataPrefix = "data:image/png;base64,"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

var pageTemplate = template.Must(template.New("").Funcs(template.FuncMap{
	"pngURI": pngURI,
}).ParseFS(templateFS, "templates/index.gohtml"))

// pngURI marks an inline chart as safe for src. Anything that is not an
// inline PNG is dropped.
func pngURI(s string) template.URL {
	if !strings.HasPrefix(s, pngDataPrefix) {
		return ""
	}
	return template.URL(s) //nolint:gosec // produced by chart.DataURI, base64 only
}

// Analyzer is what the handlers need from the application layer.
type Analyzer interface {
	Render(ctx context.Context, s app.Session) (app.Page, error)
	Assets() assets.Store
	BackgroundKey() string
}

// Handler serves the page and the background image.
type Handler struct {
	analyzer Analyzer
	logger   logger.Logger
}

// NewHandler creates a handler over the given analyzer.
func NewHandler(a Analyzer, l logger.Logger) *Handler {
	if l == nil {
		l = logger.Get()
	}
	return &Handler{analyzer: a, logger: l}
}

// Register attaches the page routes to mux.
func Register(_ context.Context, mux *http.ServeMux, h *Handler) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc(RootPath, api.MetricsMiddleware(h.HandleRoot, "root"))
	mux.HandleFunc(BackgroundPath, api.MetricsMiddleware(h.HandleBackground, "background"))
}

// HandleRoot renders the form. GET reads widget values from the query
// string, POST from the body.
func (h *Handler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != RootPath {
		http.NotFound(w, r)
		return
	}

	var values func(string) string
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		values = r.URL.Query().Get
	case http.MethodPost:
		r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
		if err := r.ParseForm(); err != nil {
			h.logger.Warn(r.Context(), "bad form submission", logger.Error(err))
			http.Error(w, ErrForm.Error(), http.StatusBadRequest)
			return
		}
		values = r.PostForm.Get
	default:
		w.Header().Set("Allow", "GET, HEAD, POST")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	page, err := h.analyzer.Render(r.Context(), app.Session{
		Values:   values,
		Passcode: values(passcodeField),
	})
	if err != nil {
		h.logger.Warn(r.Context(), "render aborted", logger.Error(err))
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return
	}

	var buf bytes.Buffer
	if err := pageTemplate.ExecuteTemplate(&buf, "index.gohtml", page); err != nil {
		h.logger.Error(r.Context(), "page template failed", logger.Error(err))
		http.Error(w, ErrTemplate.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		_, _ = w.Write(buf.Bytes())
	}
}

// HandleBackground streams the background image from the asset store.
func (h *Handler) HandleBackground(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	key := h.analyzer.BackgroundKey()
	info, body, err := h.analyzer.Assets().Get(ctx, key)
	if err != nil {
		if errors.Is(err, assets.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		h.logger.Error(ctx, "background read failed", logger.String("key", key), logger.Error(err))
		http.Error(w, http.StatusText(http.StatusBadGateway), http.StatusBadGateway)
		return
	}
	defer func() { _ = body.Close() }()

	contentType := info.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	if info.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(info.Size, 10))
	}
	// The page re-checks the image on every render, so the browser should too.
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := io.Copy(w, body); err != nil {
		h.logger.Warn(ctx, "background stream interrupted", logger.Error(err))
	}
}
