package web_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/adrialopez/woocommerce-orders/internal/web"
)

func renderPage(t *testing.T, handler http.HandlerFunc, path string) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()

	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content-type = %q", ct)
	}
	return rec.Body.String()
}

func TestDashboardShellHasOrderControls(t *testing.T) {
	body := renderPage(t, web.NewPages().Dashboard, "/")

	// Sort controls feed orderby/order into the list query.
	for _, marker := range []string{
		`id="sort-by"`, `id="sort-dir"`,
		`value="date"`, `value="id"`, `value="total"`,
		`value="asc"`, `value="desc"`,
		"orderby:", "order:",
	} {
		if !strings.Contains(body, marker) {
			t.Errorf("dashboard missing sort control marker %q", marker)
		}
	}

	// Row expansion renders the order's line items.
	for _, marker := range []string{
		"data-toggle", "data-items", "line_items",
		"Artículo", "SKU", "Cantidad", "Precio",
	} {
		if !strings.Contains(body, marker) {
			t.Errorf("dashboard missing line-items marker %q", marker)
		}
	}

	// Status filter and badge labels stay in place.
	if !strings.Contains(body, `id="status-filter"`) {
		t.Error("dashboard missing status filter")
	}
	if !strings.Contains(body, "Procesando") {
		t.Error("dashboard missing status labels")
	}
}

func TestLoginPageRenders(t *testing.T) {
	body := renderPage(t, web.NewPages().Login, "/login")

	if !strings.Contains(body, "Iniciar Sesión") {
		t.Error("login page missing title")
	}
}
