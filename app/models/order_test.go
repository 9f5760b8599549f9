package models_test

import (
	"testing"

	"github.com/adrialopez/woocommerce-orders/app/models"
)

func TestNormalizeFillsDefaults(t *testing.T) {
	f := models.OrderFilter{}.Normalize()

	if f.OrderBy != "date" {
		t.Errorf("OrderBy = %q, want date", f.OrderBy)
	}
	if f.Order != "desc" {
		t.Errorf("Order = %q, want desc", f.Order)
	}
	if f.Page != 1 {
		t.Errorf("Page = %d, want 1", f.Page)
	}
	if f.PerPage != 50 {
		t.Errorf("PerPage = %d, want 50", f.PerPage)
	}
}

func TestNormalizeKeepsExplicitValues(t *testing.T) {
	f := models.OrderFilter{OrderBy: "total", Order: "asc", Page: 3, PerPage: 25}.Normalize()

	if f.OrderBy != "total" || f.Order != "asc" || f.Page != 3 || f.PerPage != 25 {
		t.Errorf("explicit values were overwritten: %+v", f)
	}
}

func TestValidStatusSet(t *testing.T) {
	cases := []struct {
		set  string
		want bool
	}{
		{"", true}, // empty means all
		{"pending", true},
		{"pending,processing,on-hold", true},
		{"pending, processing", true}, // spaces tolerated
		{"shipped", false},
		{"pending,enviado", false},
	}

	for _, c := range cases {
		if got := models.ValidStatusSet(c.set); got != c.want {
			t.Errorf("ValidStatusSet(%q) = %v, want %v", c.set, got, c.want)
		}
	}
}

func TestStatusLabelsCoverEveryStatus(t *testing.T) {
	for _, s := range []string{
		models.StatusPending, models.StatusProcessing, models.StatusOnHold,
		models.StatusCompleted, models.StatusCancelled, models.StatusRefunded,
		models.StatusFailed,
	} {
		if _, ok := models.StatusLabels[s]; !ok {
			t.Errorf("missing label for status %q", s)
		}
	}
}
