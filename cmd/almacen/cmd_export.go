package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adrialopez/woocommerce-orders/app/models"
	"github.com/adrialopez/woocommerce-orders/app/services"
	"github.com/adrialopez/woocommerce-orders/config"
	"github.com/adrialopez/woocommerce-orders/internal/woocommerce"
	"github.com/adrialopez/woocommerce-orders/pkg/cache"
	"github.com/adrialopez/woocommerce-orders/pkg/storage"
)

var (
	exportStatus string
	exportSearch string
)

// almacen export
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Exporta los pedidos filtrados a un CSV en el disco configurado",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}
		if err := cache.Connect(); err != nil {
			// Without redis the export still works; only throttling is lost.
			fmt.Println("aviso: redis no disponible")
		}
		storage.Connect()

		if !models.ValidStatusSet(exportStatus) {
			return fmt.Errorf("estado no válido: %s", exportStatus)
		}

		svc := services.NewOrderService(woocommerce.New(woocommerce.ConfigFromEnv()), nil)
		path, url, err := svc.ExportCSV(cmd.Context(), models.OrderFilter{
			Statuses: exportStatus,
			Search:   exportSearch,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Exportación generada: %s\n", path)
		fmt.Printf("URL de descarga:      %s\n", url)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportStatus, "status", models.DefaultStatusFilter,
		"estados separados por comas (vacío = todos)")
	exportCmd.Flags().StringVar(&exportSearch, "search", "", "texto de búsqueda")
}
