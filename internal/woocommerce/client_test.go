package woocommerce_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adrialopez/woocommerce-orders/app/models"
	"github.com/adrialopez/woocommerce-orders/internal/woocommerce"
	"github.com/adrialopez/woocommerce-orders/pkg/testkit"
)

var testCfg = woocommerce.Config{
	URL:            "https://tienda.example.com",
	ConsumerKey:    "ck_test",
	ConsumerSecret: "cs_test",
}

const ordersBody = `[
  {"id": 101, "number": "101", "status": "processing", "total": "49.90", "currency": "EUR",
   "billing": {"first_name": "Ana", "last_name": "García"},
   "line_items": [{"id": 1, "name": "Camiseta", "quantity": 2, "price": 19.95, "total": "39.90"}]},
  {"id": 102, "number": "102", "status": "pending", "total": "15.00", "currency": "EUR",
   "billing": {"first_name": "Luis", "last_name": "Pérez"},
   "line_items": []}
]`

func TestListOrdersForwardsFilterAndParsesPagination(t *testing.T) {
	mt := testkit.NewMockTransport(testkit.Stub{
		Method:      "GET",
		URLContains: "/wp-json/wc/v3/orders",
		Body:        ordersBody,
		Headers:     map[string]string{"X-WP-Total": "120", "X-WP-TotalPages": "3"},
	})
	defer mt.Install()()

	client := woocommerce.New(testCfg)
	orders, total, totalPages, apiErr := client.ListOrders(context.Background(), models.OrderFilter{
		Statuses: "pending,processing",
		Search:   "camiseta",
		Page:     2,
	})

	require.Nil(t, apiErr)
	require.Len(t, orders, 2)
	assert.Equal(t, 101, orders[0].ID)
	assert.Equal(t, "processing", orders[0].Status)
	assert.Equal(t, "Ana", orders[0].Billing.FirstName)
	assert.Equal(t, 120, total)
	assert.Equal(t, 3, totalPages)

	require.Equal(t, 1, mt.CallCount())
	q := mt.Calls()[0].URL.Query()
	assert.Equal(t, "pending,processing", q.Get("status"))
	assert.Equal(t, "camiseta", q.Get("search"))
	assert.Equal(t, "2", q.Get("page"))
	assert.Equal(t, "50", q.Get("per_page"))
	assert.Equal(t, "date", q.Get("orderby"))
	assert.Equal(t, "desc", q.Get("order"))
	assert.Equal(t, "ck_test", q.Get("consumer_key"))
	assert.Equal(t, "cs_test", q.Get("consumer_secret"))
}

func TestListOrdersDefaultsPaginationWhenHeadersMissing(t *testing.T) {
	mt := testkit.NewMockTransport(testkit.Stub{
		Method:      "GET",
		URLContains: "/orders",
		Body:        "[]",
	})
	defer mt.Install()()

	client := woocommerce.New(testCfg)
	orders, total, totalPages, apiErr := client.ListOrders(context.Background(), models.OrderFilter{})

	require.Nil(t, apiErr)
	assert.Empty(t, orders)
	assert.NotNil(t, orders)
	assert.Equal(t, 0, total)
	assert.Equal(t, 1, totalPages)
}

func TestListOrdersStatusErrorKeepsEmptySliceAndBody(t *testing.T) {
	mt := testkit.NewMockTransport(testkit.Stub{
		Method:      "GET",
		URLContains: "/orders",
		Status:      401,
		Body:        `{"code":"woocommerce_rest_cannot_view","message":"Lo siento, no puedes ver este recurso."}`,
	})
	defer mt.Install()()

	client := woocommerce.New(testCfg)
	orders, total, totalPages, apiErr := client.ListOrders(context.Background(), models.OrderFilter{})

	require.NotNil(t, apiErr)
	assert.Equal(t, 401, apiErr.StatusCode)
	assert.Equal(t, "Lo siento, no puedes ver este recurso.", apiErr.Message)
	assert.Contains(t, string(apiErr.Body), "woocommerce_rest_cannot_view")

	assert.Empty(t, orders)
	assert.Equal(t, 0, total)
	assert.Equal(t, 1, totalPages)
}

func TestStatusErrorFallbackMessage(t *testing.T) {
	mt := testkit.NewMockTransport(testkit.Stub{
		Method:      "GET",
		URLContains: "/orders",
		Status:      500,
		Body:        "not json at all",
	})
	defer mt.Install()()

	client := woocommerce.New(testCfg)
	_, _, _, apiErr := client.ListOrders(context.Background(), models.OrderFilter{})

	require.NotNil(t, apiErr)
	assert.Equal(t, "Request failed with status code 500", apiErr.Message)
}

func TestUpdateOrderStatusRejectsEmptyIDBeforeNetwork(t *testing.T) {
	mt := testkit.NewMockTransport()
	defer mt.Install()()

	client := woocommerce.New(testCfg)
	order, apiErr := client.UpdateOrderStatus(context.Background(), "  ", "completed")

	require.NotNil(t, apiErr)
	assert.Nil(t, order)
	assert.True(t, apiErr.IsValidation())
	assert.Equal(t, "ID de pedido no proporcionado", apiErr.Message)
	assert.Equal(t, 0, mt.CallCount(), "no network call should be made")
}

func TestUpdateOrderStatusSuccess(t *testing.T) {
	mt := testkit.NewMockTransport(testkit.Stub{
		Method:      "PUT",
		URLContains: "/wp-json/wc/v3/orders/101",
		Body:        `{"id": 101, "number": "101", "status": "completed"}`,
	})
	defer mt.Install()()

	client := woocommerce.New(testCfg)
	order, apiErr := client.UpdateOrderStatus(context.Background(), "101", "completed")

	require.Nil(t, apiErr)
	require.NotNil(t, order)
	assert.Equal(t, 101, order.ID)
	assert.Equal(t, "completed", order.Status)
}

func TestGetOrderNotes(t *testing.T) {
	mt := testkit.NewMockTransport(testkit.Stub{
		Method:      "GET",
		URLContains: "/orders/101/notes",
		Body:        `[{"id": 7, "author": "sistema", "note": "Pedido enviado", "customer_note": false}]`,
	})
	defer mt.Install()()

	client := woocommerce.New(testCfg)
	notes, apiErr := client.GetOrderNotes(context.Background(), "101")

	require.Nil(t, apiErr)
	require.Len(t, notes, 1)
	assert.Equal(t, "Pedido enviado", notes[0].Note)
}

func TestEndpointJoinsPathsAndVersion(t *testing.T) {
	client := woocommerce.New(woocommerce.Config{URL: "https://tienda.example.com/"})
	assert.Equal(t,
		"https://tienda.example.com/wp-json/wc/v3/orders",
		client.Endpoint("/orders"))
}

func TestConfigComplete(t *testing.T) {
	assert.True(t, testCfg.Complete())
	assert.False(t, woocommerce.Config{URL: "https://x"}.Complete())
	assert.False(t, woocommerce.Config{}.Complete())
}
