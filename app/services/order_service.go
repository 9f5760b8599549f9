package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/adrialopez/woocommerce-orders/app/models"
	"github.com/adrialopez/woocommerce-orders/internal/woocommerce"
	"github.com/adrialopez/woocommerce-orders/pkg/event"
	"github.com/adrialopez/woocommerce-orders/pkg/logger"
	"github.com/adrialopez/woocommerce-orders/pkg/storage"
	"github.com/adrialopez/woocommerce-orders/pkg/ws"
)

// OrderList is one page of orders plus the store's pagination totals.
type OrderList struct {
	Orders     []models.Order `json:"orders"`
	Total      int            `json:"total"`
	TotalPages int            `json:"totalPages"`
}

// OrderService sits between the HTTP layer and the order gateway. Status
// changes fan out to the notification hub so every open dashboard refreshes.
type OrderService struct {
	client *woocommerce.Client
	hub    *ws.Hub
}

// NewOrderService wires the service. hub may be nil in tests and CLI runs;
// notifications are then skipped.
func NewOrderService(client *woocommerce.Client, hub *ws.Hub) *OrderService {
	return &OrderService{client: client, hub: hub}
}

// List fetches one page of orders for the given filter.
func (s *OrderService) List(ctx context.Context, filter models.OrderFilter) (*OrderList, *woocommerce.APIError) {
	orders, total, totalPages, apiErr := s.client.ListOrders(ctx, filter)
	if apiErr != nil {
		return nil, apiErr
	}
	return &OrderList{Orders: orders, Total: total, TotalPages: totalPages}, nil
}

// UpdateStatus asks the store to move the order to a new status and, on
// success, notifies every connected dashboard.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID, status string) (*models.Order, *woocommerce.APIError) {
	order, apiErr := s.client.UpdateOrderStatus(ctx, orderID, status)
	if apiErr != nil {
		return nil, apiErr
	}

	logger.WithCtx(ctx).Info("pedido actualizado",
		"order_id", orderID, "status", status)

	event.FireAsync(event.OrdersUpdated, orderID)
	if s.hub != nil {
		s.hub.Notify(ws.Notification{
			Event:   event.OrdersUpdated,
			OrderID: orderID,
			Status:  status,
		})
	}
	return order, nil
}

// Notes lists the notes attached to one order.
func (s *OrderService) Notes(ctx context.Context, orderID string) ([]models.OrderNote, *woocommerce.APIError) {
	return s.client.GetOrderNotes(ctx, orderID)
}

// ExportCSV writes every page matching the filter to a CSV snapshot on the
// configured storage disk and returns the file's path and download URL.
func (s *OrderService) ExportCSV(ctx context.Context, filter models.OrderFilter) (string, string, error) {
	filter = filter.Normalize()
	filter.PerPage = 100

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{"id", "numero", "fecha", "estado", "cliente", "total", "moneda"})

	for page := 1; ; page++ {
		filter.Page = page
		orders, _, totalPages, apiErr := s.client.ListOrders(ctx, filter)
		if apiErr != nil {
			return "", "", apiErr
		}
		for _, o := range orders {
			w.Write([]string{
				strconv.Itoa(o.ID),
				o.Number,
				o.DateCreated,
				models.StatusLabels[o.Status],
				o.Billing.FirstName + " " + o.Billing.LastName,
				o.Total,
				o.Currency,
			})
		}
		if page >= totalPages || len(orders) == 0 {
			break
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", "", fmt.Errorf("services: write csv: %w", err)
	}

	path := fmt.Sprintf("exports/pedidos-%s.csv", time.Now().Format("2006-01-02-150405"))
	if err := storage.Put(path, buf.Bytes()); err != nil {
		return "", "", fmt.Errorf("services: store export: %w", err)
	}

	logger.WithCtx(ctx).Info("exportación generada", "path", path)
	return path, storage.URL(path), nil
}
