package global

import (
	"github.com/wayfarer/wayfarer/pkg/aggregator"
	"github.com/wayfarer/wayfarer/pkg/graphstore"
	"github.com/wayfarer/wayfarer/pkg/planner"
	"github.com/wayfarer/wayfarer/pkg/providers/directionsapi"
	"github.com/wayfarer/wayfarer/pkg/providers/geocoder"
	"github.com/wayfarer/wayfarer/pkg/providers/osrm"
	"github.com/wayfarer/wayfarer/pkg/realtime"
)

var GlobalAggregator *aggregator.Aggregator

func Setup() {
	GlobalAggregator = &aggregator.Aggregator{
		Geocoder: geocoder.NewClient(),
	}

	osrmClient := osrm.NewClient()

	journeyPlanner := &planner.Planner{
		Store: graphstore.MongoSource{},
	}

	GlobalAggregator.RegisterSource(aggregator.TransitSource{
		Planner:    journeyPlanner,
		Snapshots:  realtime.GlobalSnapshots,
		Directions: directionsapi.NewClient(),
	})

	GlobalAggregator.RegisterSource(aggregator.StreetSource{
		Client: osrmClient,
	})

	GlobalAggregator.RegisterSource(aggregator.EscooterSource{
		Client: osrmClient,
	})
}
