package services_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adrialopez/woocommerce-orders/app/models"
	"github.com/adrialopez/woocommerce-orders/app/services"
	"github.com/adrialopez/woocommerce-orders/internal/woocommerce"
	"github.com/adrialopez/woocommerce-orders/pkg/storage"
	"github.com/adrialopez/woocommerce-orders/pkg/testkit"
)

// memDisk captures export writes in memory.
type memDisk struct {
	files map[string][]byte
}

func newMemDisk() *memDisk { return &memDisk{files: map[string][]byte{}} }

func (d *memDisk) Put(path string, content []byte) error {
	d.files[path] = content
	return nil
}

func (d *memDisk) PutStream(path string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return d.Put(path, data)
}

func (d *memDisk) Get(path string) ([]byte, error) { return d.files[path], nil }
func (d *memDisk) Exists(path string) bool         { _, ok := d.files[path]; return ok }
func (d *memDisk) Delete(path string) error        { delete(d.files, path); return nil }
func (d *memDisk) URL(path string) string          { return "mem://" + path }
func (d *memDisk) Files(string) ([]string, error) {
	var out []string
	for p := range d.files {
		out = append(out, p)
	}
	return out, nil
}

func newTestService() *services.OrderService {
	client := woocommerce.New(woocommerce.Config{
		URL:            "https://tienda.example.com",
		ConsumerKey:    "ck_test",
		ConsumerSecret: "cs_test",
	})
	return services.NewOrderService(client, nil)
}

func TestExportCSVWritesSnapshotToDisk(t *testing.T) {
	disk := newMemDisk()
	storage.RegisterDisk("local", disk)

	mt := testkit.NewMockTransport(testkit.Stub{
		Method:      "GET",
		URLContains: "/orders",
		Body: `[{"id": 9, "number": "9", "status": "processing", "date_created": "2025-01-15T10:00:00",
		         "total": "20.00", "currency": "EUR",
		         "billing": {"first_name": "Ana", "last_name": "García"}, "line_items": []}]`,
		Headers: map[string]string{"X-WP-Total": "1", "X-WP-TotalPages": "1"},
	})
	defer mt.Install()()

	path, url, err := newTestService().ExportCSV(context.Background(), models.OrderFilter{})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(path, "exports/pedidos-"))
	assert.True(t, strings.HasSuffix(path, ".csv"))
	assert.Equal(t, "mem://"+path, url)

	content := string(disk.files[path])
	assert.Contains(t, content, "id,numero,fecha,estado,cliente,total,moneda")
	assert.Contains(t, content, "9,9,2025-01-15T10:00:00,Procesando,Ana García,20.00,EUR")
}

func TestExportCSVPropagatesStoreFailure(t *testing.T) {
	storage.RegisterDisk("local", newMemDisk())

	mt := testkit.NewMockTransport(testkit.Stub{
		Method:      "GET",
		URLContains: "/orders",
		Status:      401,
		Body:        `{"message": "denegado"}`,
	})
	defer mt.Install()()

	_, _, err := newTestService().ExportCSV(context.Background(), models.OrderFilter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "denegado")
}

func TestListWrapsGateway(t *testing.T) {
	mt := testkit.NewMockTransport(testkit.Stub{
		Method:      "GET",
		URLContains: "/orders",
		Body:        `[]`,
		Headers:     map[string]string{"X-WP-Total": "0", "X-WP-TotalPages": "1"},
	})
	defer mt.Install()()

	list, apiErr := newTestService().List(context.Background(), models.OrderFilter{})
	require.Nil(t, apiErr)
	assert.Empty(t, list.Orders)
	assert.Equal(t, 0, list.Total)
	assert.Equal(t, 1, list.TotalPages)
}
