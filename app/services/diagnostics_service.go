package services

import (
	"context"

	"github.com/adrialopez/woocommerce-orders/internal/diagnostics"
	"github.com/adrialopez/woocommerce-orders/internal/woocommerce"
)

// DiagnosticsService runs the store connectivity probe. It re-reads the
// configuration on every run so an operator can fix the environment and
// re-test without restarting.
type DiagnosticsService struct {
	// cfgFn lets tests inject a fixed configuration.
	cfgFn func() woocommerce.Config
}

// NewDiagnosticsService returns a service probing the configured store.
func NewDiagnosticsService() *DiagnosticsService {
	return &DiagnosticsService{cfgFn: woocommerce.ConfigFromEnv}
}

// NewDiagnosticsServiceWith probes a fixed configuration.
func NewDiagnosticsServiceWith(cfg woocommerce.Config) *DiagnosticsService {
	return &DiagnosticsService{cfgFn: func() woocommerce.Config { return cfg }}
}

// Run executes the full probe sequence.
func (s *DiagnosticsService) Run(ctx context.Context) *diagnostics.Result {
	return diagnostics.New(s.cfgFn()).Run(ctx)
}
