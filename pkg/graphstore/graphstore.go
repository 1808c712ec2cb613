package graphstore

import (
	"context"
	"time"

	"github.com/wayfarer/wayfarer/pkg/tdf"
)

// GraphStore is the read-only query surface over the static transit graph.
// The schedule ingestion pipeline that fills it lives elsewhere.
type GraphStore interface {
	FindNearbyStops(ctx context.Context, location *tdf.Location, radiusMeters float64, count int) ([]*tdf.Stop, error)
	GetConnectionsFromStop(ctx context.Context, stopID string, afterTime time.Time) ([]*tdf.Connection, error)
	GetStopInfo(ctx context.Context, stopID string) (*tdf.Stop, error)
}
