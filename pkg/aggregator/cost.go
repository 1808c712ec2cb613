package aggregator

import (
	"strconv"
	"time"

	"github.com/wayfarer/wayfarer/pkg/tdf"
	"github.com/wayfarer/wayfarer/pkg/util"
)

// Illustrative cost heuristics - good enough for ranking, not a fare engine.
const (
	fuelLitresPer100Km     = 7.0
	defaultFuelPricePerL   = 1.80
	transitBaseFarePerLeg  = 2.00
	transitFarePerKm       = 0.15
	transitTransferCharge  = 0.50
	transitMinimumFare     = 2.50
	escooterUnlockFee      = 1.00
	escooterPricePerMinute = 0.25
)

func fuelPricePerLitre() float64 {
	env := util.GetEnvironmentVariables()

	if env["WAYFARER_FUEL_PRICE"] != "" {
		if price, err := strconv.ParseFloat(env["WAYFARER_FUEL_PRICE"], 64); err == nil {
			return price
		}
	}

	return defaultFuelPricePerL
}

func EstimateDrivingCost(distanceMeters float64) float64 {
	litres := distanceMeters / 1000 / 100 * fuelLitresPer100Km

	return litres * fuelPricePerLitre()
}

// EstimateTransitCost charges a base fare per transit leg, a per-kilometre
// rate and a transfer surcharge, floored at the minimum fare when any
// transit leg exists.
func EstimateTransitCost(journey *tdf.Journey) float64 {
	cost := 0.0
	transitLegs := 0

	for _, leg := range journey.Legs {
		if leg.Type != tdf.JourneyLegTypeTransit {
			continue
		}

		transitLegs += 1
		cost += transitBaseFarePerLeg
		cost += leg.DistanceMeters / 1000 * transitFarePerKm
	}

	if transitLegs == 0 {
		return 0
	}

	cost += float64(journey.Transfers) * transitTransferCharge

	if cost < transitMinimumFare {
		cost = transitMinimumFare
	}

	return cost
}

func EstimateEscooterCost(duration time.Duration) float64 {
	return escooterUnlockFee + duration.Minutes()*escooterPricePerMinute
}
