package controllers

import (
	"net/http"

	"github.com/adrialopez/woocommerce-orders/app/services"
	"github.com/adrialopez/woocommerce-orders/pkg/response"
)

type DiagnosticsController struct {
	service *services.DiagnosticsService
}

func NewDiagnosticsController(service *services.DiagnosticsService) *DiagnosticsController {
	return &DiagnosticsController{service: service}
}

// TestConnection serves GET /api/test-connection. The probe itself never
// fails as an HTTP error; every outcome renders 200 with the report inside.
func (c *DiagnosticsController) TestConnection(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, c.service.Run(r.Context()))
}
