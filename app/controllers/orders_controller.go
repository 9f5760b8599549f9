package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/adrialopez/woocommerce-orders/app/models"
	"github.com/adrialopez/woocommerce-orders/app/services"
	"github.com/adrialopez/woocommerce-orders/config"
	"github.com/adrialopez/woocommerce-orders/pkg/bind"
	"github.com/adrialopez/woocommerce-orders/pkg/logger"
	"github.com/adrialopez/woocommerce-orders/pkg/response"
)

type OrdersController struct {
	service *services.OrderService
}

func NewOrdersController(service *services.OrderService) *OrdersController {
	return &OrdersController{service: service}
}

// debugInfo tells the operator whether the store is configured without ever
// echoing the credentials themselves.
type debugInfo struct {
	URL            string            `json:"url"`
	HasCredentials bool              `json:"hasCredentials"`
	Params         map[string]string `json:"params"`
}

func buildDebug(filter models.OrderFilter) debugInfo {
	urlState := "No configurada"
	if config.WooURL() != "" {
		urlState = "Configurada"
	}
	return debugInfo{
		URL:            urlState,
		HasCredentials: config.HasWooCredentials(),
		Params: map[string]string{
			"status":  filter.Statuses,
			"page":    strconv.Itoa(filter.Page),
			"perPage": strconv.Itoa(filter.PerPage),
			"search":  filter.Search,
			"orderby": filter.OrderBy,
			"order":   filter.Order,
		},
	}
}

// List serves GET /api/woocommerce. The response always carries a data
// array, even on failure, so the table renders instead of breaking.
func (c *OrdersController) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := models.OrderFilter{
		Statuses: q.Get("status"),
		Search:   q.Get("search"),
		OrderBy:  q.Get("orderby"),
		Order:    q.Get("order"),
	}
	if !q.Has("status") {
		filter.Statuses = models.DefaultStatusFilter
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		filter.Page = page
	}
	if perPage, err := strconv.Atoi(q.Get("per_page")); err == nil {
		filter.PerPage = perPage
	}
	filter = filter.Normalize()

	if !models.ValidStatusSet(filter.Statuses) {
		response.Error(w, http.StatusBadRequest, "Estado no válido")
		return
	}

	list, apiErr := c.service.List(r.Context(), filter)
	if apiErr != nil {
		logger.WithCtx(r.Context()).Error("error al obtener pedidos",
			"code", apiErr.Code, "status", apiErr.StatusCode, "error", apiErr.Message)
		response.JSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Error al obtener datos",
			"error":   apiErr,
			"debug":   buildDebug(filter),
			"data":    []models.Order{},
		})
		return
	}

	response.JSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"data":       list.Orders,
		"totalPages": list.TotalPages,
		"total":      list.Total,
		"debug":      buildDebug(filter),
	})
}

type updateOrderRequest struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status" validate:"required"`
}

// Update serves PUT /api/woocommerce and moves one order to a new status.
func (c *OrdersController) Update(w http.ResponseWriter, r *http.Request) {
	var body updateOrderRequest
	if _, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, "Solicitud no válida")
		return
	}

	if body.OrderID == "" {
		response.Error(w, http.StatusBadRequest, "ID de pedido no proporcionado")
		return
	}
	if !models.ValidStatus(body.Status) {
		response.Error(w, http.StatusBadRequest, "Estado no válido")
		return
	}

	order, apiErr := c.service.UpdateStatus(r.Context(), body.OrderID, body.Status)
	if apiErr != nil {
		if apiErr.IsValidation() {
			response.Error(w, http.StatusBadRequest, apiErr.Message)
			return
		}
		logger.WithCtx(r.Context()).Error("error al actualizar pedido",
			"order_id", body.OrderID, "error", apiErr.Message)
		response.JSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Error al actualizar pedido",
			"error":   apiErr,
		})
		return
	}

	response.Success(w, order)
}

// Notes serves GET /api/woocommerce/orders/{id}/notes.
func (c *OrdersController) Notes(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	notes, apiErr := c.service.Notes(r.Context(), orderID)
	if apiErr != nil {
		if apiErr.IsValidation() {
			response.Error(w, http.StatusBadRequest, apiErr.Message)
			return
		}
		response.JSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Error al obtener notas",
			"error":   apiErr,
		})
		return
	}
	response.Success(w, notes)
}

// Export serves POST /api/woocommerce/export: it writes a CSV snapshot of
// the current filter to the export disk and returns its download URL.
func (c *OrdersController) Export(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := models.OrderFilter{
		Statuses: q.Get("status"),
		Search:   q.Get("search"),
	}
	if !q.Has("status") {
		filter.Statuses = models.DefaultStatusFilter
	}
	if !models.ValidStatusSet(filter.Statuses) {
		response.Error(w, http.StatusBadRequest, "Estado no válido")
		return
	}

	path, url, err := c.service.ExportCSV(r.Context(), filter)
	if err != nil {
		logger.WithCtx(r.Context()).Error("error al exportar pedidos", "error", err)
		response.Error(w, http.StatusInternalServerError, "Error al generar la exportación")
		return
	}

	response.Success(w, map[string]string{
		"path": path,
		"url":  url,
	})
}
