package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/adrialopez/woocommerce-orders/app/repositories"
	"github.com/adrialopez/woocommerce-orders/app/routes"
	"github.com/adrialopez/woocommerce-orders/config"
	"github.com/adrialopez/woocommerce-orders/internal/woocommerce"
	"github.com/adrialopez/woocommerce-orders/pkg/router"
	"github.com/adrialopez/woocommerce-orders/pkg/ws"
)

// almacen route:list
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "Lista todas las rutas registradas",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}

		r := router.New()
		routes.Register(r, routes.Deps{
			Store:  repositories.NewMemoryStore(),
			Client: woocommerce.New(woocommerce.ConfigFromEnv()),
			Hub:    ws.NewHub(),
		})

		infos := r.Routes()
		sort.Slice(infos, func(i, j int) bool {
			if infos[i].Path != infos[j].Path {
				return infos[i].Path < infos[j].Path
			}
			return infos[i].Method < infos[j].Method
		})

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "MÉTODO\tRUTA\tNOMBRE")
		for _, info := range infos {
			fmt.Fprintf(w, "%s\t%s\t%s\n", info.Method, info.Path, info.Name)
		}
		return w.Flush()
	},
}
