// Package graphql exposes a read-only query surface over the order gateway,
// for reporting tools that want a single order or a filtered slice without
// the dashboard's REST envelope.
package graphql

import (
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/adrialopez/woocommerce-orders/app/models"
	"github.com/adrialopez/woocommerce-orders/internal/woocommerce"
	"github.com/adrialopez/woocommerce-orders/pkg/response"
)

var lineItemType = graphql.NewObject(graphql.ObjectConfig{
	Name: "LineItem",
	Fields: graphql.Fields{
		"id":       &graphql.Field{Type: graphql.Int},
		"name":     &graphql.Field{Type: graphql.String},
		"sku":      &graphql.Field{Type: graphql.String},
		"quantity": &graphql.Field{Type: graphql.Int},
		"price":    &graphql.Field{Type: graphql.Float},
		"total":    &graphql.Field{Type: graphql.String},
	},
})

var orderType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Order",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.Int},
		"number":      &graphql.Field{Type: graphql.String},
		"status":      &graphql.Field{Type: graphql.String},
		"dateCreated": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if o, ok := p.Source.(models.Order); ok {
					return o.DateCreated, nil
				}
				return nil, nil
			},
		},
		"total":     &graphql.Field{Type: graphql.String},
		"currency":  &graphql.Field{Type: graphql.String},
		"lineItems": &graphql.Field{
			Type: graphql.NewList(lineItemType),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if o, ok := p.Source.(models.Order); ok {
					return o.LineItems, nil
				}
				return nil, nil
			},
		},
	},
})

// NewSchema builds the query schema over the given gateway. Only reads are
// exposed; status changes go through the REST endpoint so they keep firing
// the refresh notifications.
func NewSchema(client *woocommerce.Client) (graphql.Schema, error) {
	rootQuery := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"orders": &graphql.Field{
				Type: graphql.NewList(orderType),
				Args: graphql.FieldConfigArgument{
					"status":  &graphql.ArgumentConfig{Type: graphql.String},
					"search":  &graphql.ArgumentConfig{Type: graphql.String},
					"page":    &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 1},
					"perPage": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 50},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					filter := models.OrderFilter{
						Statuses: stringArg(p, "status"),
						Search:   stringArg(p, "search"),
						Page:     intArg(p, "page"),
						PerPage:  intArg(p, "perPage"),
					}
					orders, _, _, apiErr := client.ListOrders(p.Context, filter)
					if apiErr != nil {
						return nil, apiErr
					}
					return orders, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: rootQuery})
}

// Handler serves POST /api/graphql with a {"query": ..., "variables": ...}
// body, the shape every GraphQL client sends.
func Handler(schema graphql.Schema) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Query     string                 `json:"query"`
			Variables map[string]interface{} `json:"variables"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			response.Error(w, http.StatusBadRequest, "Consulta no válida")
			return
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  body.Query,
			VariableValues: body.Variables,
			Context:        r.Context(),
		})

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
	}
}

func stringArg(p graphql.ResolveParams, name string) string {
	if v, ok := p.Args[name].(string); ok {
		return v
	}
	return ""
}

func intArg(p graphql.ResolveParams, name string) int {
	if v, ok := p.Args[name].(int); ok {
		return v
	}
	return 0
}
