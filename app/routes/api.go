// Package routes wires every HTTP surface of the dashboard: the JSON API,
// the HTML pages, the WebSocket refresh channel and the operational
// endpoints (metrics, health, GraphQL).
package routes

import (
	"net/http"
	"time"

	"github.com/adrialopez/woocommerce-orders/app/controllers"
	"github.com/adrialopez/woocommerce-orders/app/repositories"
	"github.com/adrialopez/woocommerce-orders/app/services"
	"github.com/adrialopez/woocommerce-orders/internal/web"
	"github.com/adrialopez/woocommerce-orders/internal/woocommerce"
	gql "github.com/adrialopez/woocommerce-orders/pkg/graphql"
	"github.com/adrialopez/woocommerce-orders/pkg/logger"
	"github.com/adrialopez/woocommerce-orders/pkg/metrics"
	"github.com/adrialopez/woocommerce-orders/pkg/middleware"
	"github.com/adrialopez/woocommerce-orders/pkg/reqid"
	"github.com/adrialopez/woocommerce-orders/pkg/response"
	"github.com/adrialopez/woocommerce-orders/pkg/router"
	"github.com/adrialopez/woocommerce-orders/pkg/ws"
)

// Deps carries the shared singletons the route tree needs.
type Deps struct {
	Store  repositories.UserStore
	Client *woocommerce.Client
	Hub    *ws.Hub
}

// Register mounts every route on r. The middleware order matters: metrics
// first so rejected requests are still counted, the session gate last so it
// sees the request logger's context.
func Register(r *router.Router, deps Deps) {
	r.Use(
		metrics.Middleware(),
		middleware.Recovery,
		reqid.Middleware(),
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(120, time.Minute),
		middleware.SessionGate,
	)

	authService := services.NewAuthService(deps.Store)
	orderService := services.NewOrderService(deps.Client, deps.Hub)
	diagService := services.NewDiagnosticsService()

	authController := controllers.NewAuthController(authService)
	ordersController := controllers.NewOrdersController(orderService)
	diagController := controllers.NewDiagnosticsController(diagService)
	pages := web.NewPages()

	// HTML pages
	r.Get("/", "pages.dashboard", pages.Dashboard)
	r.Get("/login", "pages.login", pages.Login)
	r.Get("/api-test", "pages.diagnostics", pages.Diagnostics)

	// JSON API
	api := r.Group("/api")
	api.Post("/auth/login", "auth.login", authController.Login)
	api.Post("/auth/logout", "auth.logout", authController.Logout)

	api.Get("/woocommerce", "orders.list", ordersController.List)
	api.Put("/woocommerce", "orders.update", ordersController.Update)
	api.Get("/woocommerce/orders/{id}/notes", "orders.notes", ordersController.Notes)
	api.Post("/woocommerce/export", "orders.export", ordersController.Export)

	api.Get("/test-connection", "diagnostics.run", diagController.TestConnection)

	// Session info for the navbar
	api.Get("/auth/me", "auth.me", func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromCtx(r.Context())
		if !ok {
			response.Unauthorized(w)
			return
		}
		response.Success(w, map[string]interface{}{
			"id":       claims.UserID,
			"username": claims.Username,
			"role":     claims.Role,
		})
	})

	// Live refresh channel
	r.Get("/ws", "ws.connect", deps.Hub.Upgrade)

	// GraphQL read surface
	schema, err := gql.NewSchema(deps.Client)
	if err != nil {
		logger.Error("routes: esquema graphql no válido", "error", err)
	} else {
		api.Post("/graphql", "graphql.query", gql.Handler(schema))
	}

	// Operational endpoints (public: scrapers and probes carry no session)
	r.Get("/metrics", "ops.metrics", metrics.Handler())
	r.Get("/health", "ops.health", func(w http.ResponseWriter, _ *http.Request) {
		response.Message(w, "ok")
	})
}
