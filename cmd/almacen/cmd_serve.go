package main

import (
	"github.com/spf13/cobra"

	"github.com/adrialopez/woocommerce-orders/internal/server"
)

// almacen serve
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Inicia el servidor del panel",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start()
	},
}
