package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/adrialopez/woocommerce-orders/app/services"
	"github.com/adrialopez/woocommerce-orders/config"
)

var diagnoseJSON bool

// almacen diagnose
var diagnoseCmd = &cobra.Command{
	Use:   "diagnose",
	Short: "Ejecuta la prueba de conexión con la tienda",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}

		result := services.NewDiagnosticsService().Run(cmd.Context())

		if diagnoseJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}

		fmt.Printf("Variables de entorno: %s\n", result.EnvironmentVars.Status)
		fmt.Printf("Conexión:             %s (%s)\n", result.Connection.Status, result.Connection.Message)
		fmt.Printf("Permisos:             %s (%s)\n", result.Permissions.Status, result.Permissions.Message)
		for _, ep := range result.Permissions.Endpoints {
			mark := "✗"
			if ep.Success {
				mark = "✓"
			}
			fmt.Printf("  %s %s: %s\n", mark, ep.Name, ep.Message)
		}
		if len(result.Recommendations) > 0 {
			fmt.Println("Recomendaciones:")
			for _, rec := range result.Recommendations {
				fmt.Printf("  - %s\n", rec)
			}
		}
		return nil
	},
}

func init() {
	diagnoseCmd.Flags().BoolVar(&diagnoseJSON, "json", false, "imprime el informe completo en JSON")
}
