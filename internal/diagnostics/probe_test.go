package diagnostics_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adrialopez/woocommerce-orders/internal/diagnostics"
	"github.com/adrialopez/woocommerce-orders/internal/woocommerce"
	"github.com/adrialopez/woocommerce-orders/pkg/testkit"
)

var probeCfg = woocommerce.Config{
	URL:            "https://tienda.example.com",
	ConsumerKey:    "ck_test",
	ConsumerSecret: "cs_test",
}

const systemStatusBody = `{"environment": {"version": "6.4.2", "wc_version": "8.5.1"}}`

func okStubs() []testkit.Stub {
	return []testkit.Stub{
		{Method: "GET", URLContains: "system_status", Body: systemStatusBody},
		{Method: "PUT", URLContains: "orders/1", Body: `{}`},
		{Method: "GET", URLContains: "orders", Body: `[]`},
		{Method: "GET", URLContains: "products", Body: `[]`},
		{Method: "GET", URLContains: "customers", Body: `[]`},
	}
}

func TestMissingConfigShortCircuits(t *testing.T) {
	mt := testkit.NewMockTransport()
	defer mt.Install()()

	res := diagnostics.New(woocommerce.Config{URL: "https://tienda.example.com"}).Run(context.Background())

	assert.Equal(t, "error", res.EnvironmentVars.Status)
	assert.True(t, res.EnvironmentVars.URL)
	assert.False(t, res.EnvironmentVars.ConsumerKey)
	assert.False(t, res.EnvironmentVars.ConsumerSecret)

	assert.Equal(t, "No se ha intentado la conexión", res.Connection.Message)
	assert.Equal(t, "No se han verificado los permisos", res.Permissions.Message)
	assert.Empty(t, res.Permissions.Endpoints)

	require.Len(t, res.Recommendations, 1)
	assert.Contains(t, res.Recommendations[0], "WOOCOMMERCE_URL")
	assert.Equal(t, 0, mt.CallCount(), "no network call should be made")
}

func TestConnectionFailureSkipsPermissionProbes(t *testing.T) {
	mt := testkit.NewMockTransport(testkit.Stub{
		Method:      "GET",
		URLContains: "system_status",
		Status:      401,
		Body:        `{"message": "Consumer key inválida"}`,
	})
	defer mt.Install()()

	res := diagnostics.New(probeCfg).Run(context.Background())

	assert.Equal(t, "success", res.EnvironmentVars.Status)
	assert.Equal(t, "error", res.Connection.Status)
	assert.Contains(t, res.Connection.Message, "Error de conexión")
	assert.Contains(t, res.Connection.Message, "Consumer key inválida")

	assert.Empty(t, res.Permissions.Endpoints)
	assert.Equal(t, "No se han verificado los permisos", res.Permissions.Message)

	require.Len(t, res.Recommendations, 1)
	assert.Contains(t, res.Recommendations[0], "Consumer Key y Consumer Secret")
	assert.Equal(t, 1, mt.CallCount(), "only the connection check should run")
}

func TestAllEndpointsAccessible(t *testing.T) {
	mt := testkit.NewMockTransport(okStubs()...)
	defer mt.Install()()

	res := diagnostics.New(probeCfg).Run(context.Background())

	assert.Equal(t, "success", res.EnvironmentVars.Status)
	assert.Equal(t, "success", res.Connection.Status)
	assert.Equal(t, "Conexión exitosa a la API de WooCommerce", res.Connection.Message)

	details, ok := res.Connection.Details.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "6.4.2", details["environment"])
	assert.Equal(t, "8.5.1", details["woocommerce_version"])

	assert.Equal(t, "success", res.Permissions.Status)
	assert.Equal(t, "Todos los endpoints son accesibles", res.Permissions.Message)
	require.Len(t, res.Permissions.Endpoints, 4)

	wantOrder := []string{"Listar Pedidos", "Actualizar Pedido", "Listar Productos", "Listar Clientes"}
	for i, ep := range res.Permissions.Endpoints {
		assert.Equal(t, wantOrder[i], ep.Name)
		assert.True(t, ep.Success)
		assert.Equal(t, "Acceso permitido", ep.Message)
	}
	assert.Empty(t, res.Recommendations)
}

func TestPartialAccessProducesWarning(t *testing.T) {
	mt := testkit.NewMockTransport(
		testkit.Stub{Method: "GET", URLContains: "system_status", Body: systemStatusBody},
		testkit.Stub{Method: "PUT", URLContains: "orders/1", Status: 403, Body: `{"message": "forbidden"}`},
		testkit.Stub{Method: "GET", URLContains: "orders", Body: `[]`},
		testkit.Stub{Method: "GET", URLContains: "products", Body: `[]`},
		testkit.Stub{Method: "GET", URLContains: "customers", Status: 404, Body: `{"message": "not found"}`},
	)
	defer mt.Install()()

	res := diagnostics.New(probeCfg).Run(context.Background())

	assert.Equal(t, "warning", res.Permissions.Status)
	assert.Equal(t, "2 de 4 endpoints son accesibles", res.Permissions.Message)

	byName := map[string]diagnostics.EndpointResult{}
	for _, ep := range res.Permissions.Endpoints {
		byName[ep.Name] = ep
	}
	assert.True(t, byName["Listar Pedidos"].Success)
	assert.False(t, byName["Actualizar Pedido"].Success)
	assert.Equal(t, "Permiso denegado", byName["Actualizar Pedido"].Message)
	assert.False(t, byName["Listar Clientes"].Success)
	assert.Equal(t, "Endpoint no encontrado", byName["Listar Clientes"].Message)
}

func TestNoEndpointAccessibleProducesError(t *testing.T) {
	mt := testkit.NewMockTransport(
		testkit.Stub{Method: "GET", URLContains: "system_status", Body: systemStatusBody},
		testkit.Stub{Method: "PUT", URLContains: "orders/1", Status: 401, Body: `{}`},
		testkit.Stub{Method: "GET", URLContains: "orders", Status: 401, Body: `{}`},
		testkit.Stub{Method: "GET", URLContains: "products", Status: 401, Body: `{}`},
		testkit.Stub{Method: "GET", URLContains: "customers", Status: 401, Body: `{}`},
	)
	defer mt.Install()()

	res := diagnostics.New(probeCfg).Run(context.Background())

	assert.Equal(t, "error", res.Permissions.Status)
	assert.Equal(t, "No se pudo acceder a ningún endpoint", res.Permissions.Message)
	for _, ep := range res.Permissions.Endpoints {
		assert.False(t, ep.Success)
		assert.Equal(t, "Error de autenticación", ep.Message)
	}

	var hasOrdersRec, hasKeysRec bool
	for _, rec := range res.Recommendations {
		if rec == "La API no tiene permisos para acceder a los pedidos. Verifica que las claves API tienen permisos de lectura para pedidos." {
			hasOrdersRec = true
		}
		if rec == "Las claves API no tienen los permisos necesarios. Crea nuevas claves con permisos de Lectura/Escritura." {
			hasKeysRec = true
		}
	}
	assert.True(t, hasOrdersRec)
	assert.True(t, hasKeysRec)
}

func TestOneFailureDoesNotStopRemainingProbes(t *testing.T) {
	mt := testkit.NewMockTransport(
		testkit.Stub{Method: "GET", URLContains: "system_status", Body: systemStatusBody},
		testkit.Stub{Method: "PUT", URLContains: "orders/1", Body: `{}`},
		testkit.Stub{Method: "GET", URLContains: "orders", Status: 403, Body: `{}`},
		testkit.Stub{Method: "GET", URLContains: "products", Body: `[]`},
		testkit.Stub{Method: "GET", URLContains: "customers", Body: `[]`},
	)
	defer mt.Install()()

	res := diagnostics.New(probeCfg).Run(context.Background())

	require.Len(t, res.Permissions.Endpoints, 4, "every probe runs even after a failure")
	assert.Equal(t, "3 de 4 endpoints son accesibles", res.Permissions.Message)
	assert.Equal(t, 5, mt.CallCount(), "system_status plus four probes")
}

func TestConnectionDetailsUnknownWhenBodyOdd(t *testing.T) {
	stubs := okStubs()
	stubs[0].Body = `{"environment": {}}`
	mt := testkit.NewMockTransport(stubs...)
	defer mt.Install()()

	res := diagnostics.New(probeCfg).Run(context.Background())

	details, ok := res.Connection.Details.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "Desconocido", details["environment"])
	assert.Equal(t, "Desconocido", details["woocommerce_version"])
}
