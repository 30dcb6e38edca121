// File: internal/handlers/page_handlers.go
package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strconv"
	"sync"
)

//go:embed templates/*.html
var templateFS embed.FS

// Template cache to avoid parsing templates on every request
var (
	templateCache     map[string]*template.Template
	templateCacheOnce sync.Once
)

// loadTemplateCache creates separate template sets for each page
func loadTemplateCache() {
	templateCache = make(map[string]*template.Template)

	pages := []string{"submission_sent.html", "verify_form.html", "verify_result.html", "error.html"}
	for _, page := range pages {
		templateCache[page] = template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/"+page))
	}
}

// renderTemplate renders page inside the layout. Nothing is written if execution fails.
func renderTemplate(w http.ResponseWriter, status int, page string, data map[string]interface{}) {
	templateCacheOnce.Do(loadTemplateCache)
	addSecurityHeaders(w)

	t, ok := templateCache[page]
	if !ok {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		http.Error(w, "Error rendering page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func addSecurityHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Security-Policy", "default-src 'self'")
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
}

// renderError shows the error page with the given status.
func renderError(w http.ResponseWriter, status int, message, description, backURL string) {
	renderTemplate(w, status, "error.html", map[string]interface{}{
		"Code":        strconv.Itoa(status),
		"Message":     message,
		"Description": description,
		"BackURL":     backURL,
	})
}

// NotFoundPage is the router's fallback for unknown paths.
func NotFoundPage(w http.ResponseWriter, r *http.Request) {
	renderError(w, http.StatusNotFound, "Page Not Found", "The page you are looking for does not exist.", "")
}

// MethodNotAllowedPage is the router's fallback for unsupported methods.
func MethodNotAllowedPage(w http.ResponseWriter, r *http.Request) {
	renderError(w, http.StatusMethodNotAllowed, "Method Not Allowed", "The method is not allowed for this resource.", "")
}
