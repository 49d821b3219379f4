package observability

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"gorm.io/gorm"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/tbourn/warri-apartment-hunt/internal/config"
)

// InstrumentGORM registers the OpenTelemetry tracing plugin on db so every
// collection read and write produces a span under the request's trace.
// A nil db (memory driver) or disabled tracing is a no-op.
func InstrumentGORM(db *gorm.DB, cfg config.OTELConfig) error {
	if db == nil || !cfg.Enabled {
		return nil
	}
	if err := db.Use(tracing.NewPlugin(
		tracing.WithTracerProvider(otel.GetTracerProvider()),
		tracing.WithoutMetrics(),
	)); err != nil {
		return fmt.Errorf("gorm tracing: %w", err)
	}
	return nil
}
