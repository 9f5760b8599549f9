// Package models holds the data shapes exchanged with the WooCommerce store
// and the dashboard UI. Orders are externally owned: the store creates and
// deletes them, this system only reads them and requests status transitions.
package models

import "strings"

// Order statuses recognised by the store.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusOnHold     = "on-hold"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
	StatusRefunded   = "refunded"
	StatusFailed     = "failed"
)

// DefaultStatusFilter is the status set shown when the dashboard opens.
const DefaultStatusFilter = StatusPending + "," + StatusProcessing + "," + StatusOnHold

// StatusLabels maps each status to the Spanish badge label shown in the UI.
var StatusLabels = map[string]string{
	StatusPending:    "Pendiente",
	StatusProcessing: "Procesando",
	StatusOnHold:     "En espera",
	StatusCompleted:  "Completado",
	StatusCancelled:  "Cancelado",
	StatusRefunded:   "Reembolsado",
	StatusFailed:     "Fallido",
}

// ValidStatus reports whether s is one of the store's order statuses.
func ValidStatus(s string) bool {
	_, ok := StatusLabels[s]
	return ok
}

// ValidStatusSet reports whether every entry of a comma-joined status set is
// valid. The empty set means "all" and is accepted.
func ValidStatusSet(set string) bool {
	if set == "" {
		return true
	}
	for _, s := range strings.Split(set, ",") {
		if !ValidStatus(strings.TrimSpace(s)) {
			return false
		}
	}
	return true
}

// Order is a customer purchase record owned by the external store.
// Monetary fields arrive as strings from the wc/v3 API and are passed
// through unchanged.
type Order struct {
	ID           int        `json:"id"`
	Number       string     `json:"number"`
	Status       string     `json:"status"`
	DateCreated  string     `json:"date_created"`
	Total        string     `json:"total"`
	Currency     string     `json:"currency"`
	CustomerNote string     `json:"customer_note,omitempty"`
	Billing      Address    `json:"billing"`
	Shipping     Address    `json:"shipping"`
	LineItems    []LineItem `json:"line_items"`
}

// LineItem is one product entry within an order.
type LineItem struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	SKU      string  `json:"sku,omitempty"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Subtotal string  `json:"subtotal"`
	Total    string  `json:"total"`
	MetaData []Meta  `json:"meta_data,omitempty"`
}

// Meta is a key/value attribute on a line item (e.g. variant options).
type Meta struct {
	ID           int         `json:"id,omitempty"`
	Key          string      `json:"key"`
	Value        interface{} `json:"value"`
	DisplayKey   string      `json:"display_key,omitempty"`
	DisplayValue interface{} `json:"display_value,omitempty"`
}

// Address is a billing or shipping block.
type Address struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Company   string `json:"company,omitempty"`
	Address1  string `json:"address_1"`
	Address2  string `json:"address_2,omitempty"`
	City      string `json:"city"`
	State     string `json:"state"`
	Postcode  string `json:"postcode"`
	Country   string `json:"country"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// OrderNote is a comment attached to an order in the store.
type OrderNote struct {
	ID           int    `json:"id"`
	Author       string `json:"author"`
	DateCreated  string `json:"date_created"`
	Note         string `json:"note"`
	CustomerNote bool   `json:"customer_note"`
}

// OrderFilter is the transient, client-constructed value behind one list
// request. It has no persisted identity.
type OrderFilter struct {
	// Statuses is a comma-joined status set; empty means all.
	Statuses string
	Search   string
	OrderBy  string // date | id | total
	Order    string // asc | desc
	Page     int
	PerPage  int
}

// Normalize fills the defaults the original dashboard used.
func (f OrderFilter) Normalize() OrderFilter {
	if f.OrderBy == "" {
		f.OrderBy = "date"
	}
	if f.Order == "" {
		f.Order = "desc"
	}
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.PerPage <= 0 {
		f.PerPage = 50
	}
	return f
}
