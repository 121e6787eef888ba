package http

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"loan-calculator/logger"
	"loan-calculator/service"
	"loan-calculator/web"
)

type pageData struct {
	Title                string
	MaxPrincipal         float64
	MaxAnnualRatePercent float64
	MinTermYears         int
	MaxTermYears         int
}

type PageHandler struct {
	templates *template.Template
	static    http.Handler
}

func NewPageHandler() (*PageHandler, error) {
	tmpl, err := template.ParseFS(web.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	staticFS, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("open static assets: %w", err)
	}

	return &PageHandler{
		templates: tmpl,
		static:    http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))),
	}, nil
}

// Index serves GET /.
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		Title:                "Loan Amortization Calculator",
		MaxPrincipal:         service.MaxPrincipal,
		MaxAnnualRatePercent: service.MaxAnnualRatePercent,
		MinTermYears:         service.MinTermYears,
		MaxTermYears:         service.MaxTermYears,
	}

	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, "index.html", data); err != nil {
		logger.FromContext(r.Context()).ErrorContext(r.Context(), "Error rendering index", logger.FieldError, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// Static serves the embedded assets under /static/.
func (h *PageHandler) Static(w http.ResponseWriter, r *http.Request) {
	h.static.ServeHTTP(w, r)
}
