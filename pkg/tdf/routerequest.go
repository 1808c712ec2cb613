package tdf

import (
	"math"
	"time"

	"github.com/go-playground/validator/v10"
)

type BudgetPreference string

const (
	BudgetPreferenceBudget   BudgetPreference = "budget"
	BudgetPreferencePremium  BudgetPreference = "premium"
	BudgetPreferenceBalanced BudgetPreference = "balanced"
)

type RouteRequest struct {
	OriginLatitude       float64 `validate:"gte=-90,lte=90"`
	OriginLongitude      float64 `validate:"gte=-180,lte=180"`
	DestinationLatitude  float64 `validate:"gte=-90,lte=90"`
	DestinationLongitude float64 `validate:"gte=-180,lte=180"`

	DepartureTime time.Time

	MaxTransfers          int     `validate:"gte=0"`
	MaxWalkDistanceMeters float64 `validate:"gt=0"`

	Modes  []TransportMode
	Budget BudgetPreference
}

var requestValidator = validator.New()

// Validate checks the request before any network calls are made. This is the
// only failure that propagates to the caller as a hard error.
func (r *RouteRequest) Validate() error {
	if math.IsNaN(r.OriginLatitude) || math.IsNaN(r.OriginLongitude) ||
		math.IsNaN(r.DestinationLatitude) || math.IsNaN(r.DestinationLongitude) {
		return ErrInvalidRequest
	}

	if err := requestValidator.Struct(r); err != nil {
		return ErrInvalidRequest
	}

	return nil
}

func (r *RouteRequest) Origin() *Location {
	return NewLocation(r.OriginLatitude, r.OriginLongitude)
}

func (r *RouteRequest) Destination() *Location {
	return NewLocation(r.DestinationLatitude, r.DestinationLongitude)
}
