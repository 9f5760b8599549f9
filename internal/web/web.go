// Package web renders the dashboard pages. Templates are embedded in the
// binary; the pages are static shells whose data arrives through the JSON
// API, so the HTML never needs per-request store state.
package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/adrialopez/woocommerce-orders/app/models"
	"github.com/adrialopez/woocommerce-orders/pkg/logger"
	"github.com/adrialopez/woocommerce-orders/pkg/middleware"
)

//go:embed templates/*.html
var templateFS embed.FS

// Pages serves the three HTML views of the dashboard.
type Pages struct {
	tpl *template.Template
}

// NewPages parses the embedded templates. Parse failures are a build
// defect, so this panics rather than returning an error.
func NewPages() *Pages {
	tpl := template.Must(template.ParseFS(templateFS, "templates/*.html"))
	return &Pages{tpl: tpl}
}

type pageData struct {
	Title        string
	Username     string
	Role         string
	StatusLabels map[string]string
}

func (p *Pages) render(w http.ResponseWriter, r *http.Request, name, title string) {
	data := pageData{
		Title:        title,
		StatusLabels: models.StatusLabels,
	}
	if claims, ok := middleware.ClaimsFromCtx(r.Context()); ok {
		data.Username = claims.Username
		data.Role = claims.Role
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := p.tpl.ExecuteTemplate(w, name, data); err != nil {
		logger.WithCtx(r.Context()).Error("web: fallo al renderizar", "template", name, "error", err)
	}
}

// Login serves the sign-in form. The session gate lists it as public.
func (p *Pages) Login(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, "login.html", "Iniciar Sesión")
}

// Dashboard serves the order list shell.
func (p *Pages) Dashboard(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, "dashboard.html", "Gestión de Pedidos")
}

// Diagnostics serves the connection test page.
func (p *Pages) Diagnostics(w http.ResponseWriter, r *http.Request) {
	p.render(w, r, "diagnostics.html", "Prueba de Conexión")
}
