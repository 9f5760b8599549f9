// Command almacen is the warehouse dashboard CLI: it serves the web
// application and offers the same diagnostics and export operations from
// the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "almacen",
	Short: "Panel de gestión de pedidos de almacén",
	Long:  "almacen sirve el panel de pedidos conectado a una tienda WooCommerce y ofrece diagnóstico y exportación desde la terminal.",
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(diagnoseCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(routeListCmd)
}
