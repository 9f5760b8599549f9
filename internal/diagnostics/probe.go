// Package diagnostics runs the store connectivity probe behind the
// "Probar Conexión" button. It checks configuration, basic reachability and
// per-endpoint permissions in that order, and accumulates remediation advice
// for the operator along the way.
package diagnostics

import (
	"context"
	"fmt"

	"github.com/adrialopez/woocommerce-orders/internal/woocommerce"
	"github.com/adrialopez/woocommerce-orders/pkg/logger"
)

// Check statuses. A probe result is never an error value; failures are
// reported inside the Result so the page always renders.
const (
	StatusSuccess = "success"
	StatusWarning = "warning"
	StatusError   = "error"
)

// endpointChecks are the four permission probes, run in declaration order.
// The PUT uses an empty payload so no real order is modified.
var endpointChecks = []struct {
	Name   string
	Path   string
	Method string
}{
	{"Listar Pedidos", "orders", "get"},
	{"Actualizar Pedido", "orders/1", "put"},
	{"Listar Productos", "products", "get"},
	{"Listar Clientes", "customers", "get"},
}

// Result is the full probe report returned to the diagnostics page.
type Result struct {
	EnvironmentVars EnvCheck        `json:"environmentVars"`
	Connection      ConnectionCheck `json:"connection"`
	Permissions     PermissionCheck `json:"permissions"`
	Recommendations []string        `json:"recommendations"`
}

// EnvCheck reports which of the three required store settings are present.
type EnvCheck struct {
	Status         string `json:"status"`
	URL            bool   `json:"url"`
	ConsumerKey    bool   `json:"consumerKey"`
	ConsumerSecret bool   `json:"consumerSecret"`
}

// ConnectionCheck reports the basic reachability test against the store's
// system status report.
type ConnectionCheck struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Details interface{} `json:"details"`
}

// PermissionCheck aggregates the per-endpoint probes.
type PermissionCheck struct {
	Status    string           `json:"status"`
	Message   string           `json:"message"`
	Endpoints []EndpointResult `json:"endpoints"`
}

// EndpointResult is the outcome of one permission probe.
type EndpointResult struct {
	Name    string `json:"name"`
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Prober runs the full diagnostic sequence against one store configuration.
type Prober struct {
	cfg woocommerce.Config
}

// New returns a Prober for the given store configuration.
func New(cfg woocommerce.Config) *Prober {
	return &Prober{cfg: cfg}
}

// Run executes the probe. Stages short-circuit: a missing configuration
// skips the connection test, a failed connection skips the permission
// probes. The four permission probes are independent; one failing does not
// stop the rest.
func (p *Prober) Run(ctx context.Context) *Result {
	res := &Result{
		EnvironmentVars: EnvCheck{Status: StatusError},
		Connection: ConnectionCheck{
			Status:  StatusError,
			Message: "No se ha intentado la conexión",
		},
		Permissions: PermissionCheck{
			Status:    StatusError,
			Message:   "No se han verificado los permisos",
			Endpoints: []EndpointResult{},
		},
		Recommendations: []string{},
	}

	if !p.checkEnvironment(res) {
		return res
	}

	client := woocommerce.New(p.cfg)
	if !p.checkConnection(ctx, client, res) {
		return res
	}

	p.checkPermissions(ctx, client, res)
	return res
}

// checkEnvironment verifies the three required settings and reports which
// are missing. Returns false when the probe cannot continue.
func (p *Prober) checkEnvironment(res *Result) bool {
	res.EnvironmentVars.URL = p.cfg.URL != ""
	res.EnvironmentVars.ConsumerKey = p.cfg.ConsumerKey != ""
	res.EnvironmentVars.ConsumerSecret = p.cfg.ConsumerSecret != ""

	if p.cfg.Complete() {
		res.EnvironmentVars.Status = StatusSuccess
		return true
	}

	res.Recommendations = append(res.Recommendations,
		"Configura todas las variables de entorno necesarias: WOOCOMMERCE_URL, WOOCOMMERCE_CONSUMER_KEY y WOOCOMMERCE_CONSUMER_SECRET")
	return false
}

// checkConnection fetches the store's system report. On failure it records
// the transport details and a remediation hint matched to the error class.
func (p *Prober) checkConnection(ctx context.Context, client *woocommerce.Client, res *Result) bool {
	info, apiErr := client.SystemStatus(ctx)
	if apiErr == nil {
		res.Connection.Status = StatusSuccess
		res.Connection.Message = "Conexión exitosa a la API de WooCommerce"
		res.Connection.Details = map[string]string{
			"environment":         orUnknown(info.Environment.Version),
			"woocommerce_version": orUnknown(info.Environment.WCVersion),
		}
		return true
	}

	logger.WithCtx(ctx).Warn("diagnostics: fallo de conexión",
		"code", apiErr.Code, "status", apiErr.StatusCode, "error", apiErr.Message)

	res.Connection.Status = StatusError
	res.Connection.Message = "Error de conexión: " + apiErr.Message
	res.Connection.Details = map[string]interface{}{
		"code":       apiErr.Code,
		"statusCode": apiErr.StatusCode,
		"data":       apiErr.Body,
	}

	switch {
	case apiErr.StatusCode == 401:
		res.Recommendations = append(res.Recommendations,
			"Las credenciales de API son incorrectas. Verifica tu Consumer Key y Consumer Secret.")
	case apiErr.Code == woocommerce.CodeHostNotFound:
		res.Recommendations = append(res.Recommendations,
			"No se pudo encontrar el dominio. Verifica que la URL de WooCommerce es correcta.")
	case apiErr.Code == woocommerce.CodeConnectionRefused:
		res.Recommendations = append(res.Recommendations,
			"Conexión rechazada. Verifica que la tienda WooCommerce es accesible desde el servidor.")
	}
	return false
}

// checkPermissions runs every endpoint probe and aggregates the outcome
// into success, partial warning or full error.
func (p *Prober) checkPermissions(ctx context.Context, client *woocommerce.Client, res *Result) {
	allOK := true

	for _, check := range endpointChecks {
		var apiErr *woocommerce.APIError
		if check.Method == "put" {
			apiErr = client.ProbePut(ctx, check.Path)
		} else {
			apiErr = client.ProbeGet(ctx, check.Path)
		}

		if apiErr == nil {
			res.Permissions.Endpoints = append(res.Permissions.Endpoints, EndpointResult{
				Name:    check.Name,
				Success: true,
				Message: "Acceso permitido",
			})
			continue
		}

		allOK = false
		res.Permissions.Endpoints = append(res.Permissions.Endpoints, EndpointResult{
			Name:    check.Name,
			Success: false,
			Message: endpointFailureMessage(apiErr),
		})

		if check.Name == "Listar Pedidos" {
			res.Recommendations = append(res.Recommendations,
				"La API no tiene permisos para acceder a los pedidos. Verifica que las claves API tienen permisos de lectura para pedidos.")
		}
	}

	if allOK {
		res.Permissions.Status = StatusSuccess
		res.Permissions.Message = "Todos los endpoints son accesibles"
		return
	}

	accessible := 0
	for _, ep := range res.Permissions.Endpoints {
		if ep.Success {
			accessible++
		}
	}

	if accessible > 0 {
		res.Permissions.Status = StatusWarning
		res.Permissions.Message = fmt.Sprintf("%d de %d endpoints son accesibles",
			accessible, len(endpointChecks))
		return
	}

	res.Permissions.Status = StatusError
	res.Permissions.Message = "No se pudo acceder a ningún endpoint"
	res.Recommendations = append(res.Recommendations,
		"Las claves API no tienen los permisos necesarios. Crea nuevas claves con permisos de Lectura/Escritura.")
}

func endpointFailureMessage(apiErr *woocommerce.APIError) string {
	switch apiErr.StatusCode {
	case 401:
		return "Error de autenticación"
	case 403:
		return "Permiso denegado"
	case 404:
		return "Endpoint no encontrado"
	}
	return "Error: " + apiErr.Message
}

func orUnknown(s string) string {
	if s == "" {
		return "Desconocido"
	}
	return s
}
