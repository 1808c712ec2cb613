package aggregator

import (
	"testing"
	"time"

	"github.com/wayfarer/wayfarer/pkg/realtime"
	"github.com/wayfarer/wayfarer/pkg/tdf"
)

func delayTestJourney() *tdf.Journey {
	departure := time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC)

	return &tdf.Journey{
		Legs: []tdf.JourneyLeg{
			{
				Type:          tdf.JourneyLegTypeWalk,
				DepartureTime: departure,
				ArrivalTime:   departure.Add(5 * time.Minute),
			},
			{
				Type:          tdf.JourneyLegTypeTransit,
				TripID:        "trip-1",
				DepartureTime: departure.Add(5 * time.Minute),
				ArrivalTime:   departure.Add(25 * time.Minute),
			},
		},
		DepartureTime: departure,
		ArrivalTime:   departure.Add(25 * time.Minute),
		TotalDuration: 25 * time.Minute,
	}
}

func TestEnrichWithDelaysAppliesFreshDelay(t *testing.T) {
	snapshots := realtime.NewSnapshotStore()
	snapshots.ReplaceTripUpdates([]realtime.TripUpdate{
		{
			TripID: "trip-1",
			StopDeltas: []realtime.StopTimeDelta{
				{StopID: "stop-a", DepartureDelaySeconds: 300},
			},
			RecordedAt: time.Now(),
		},
	}, time.Now())

	source := &TransitSource{Snapshots: snapshots}

	journey := delayTestJourney()
	originalArrival := journey.ArrivalTime

	source.enrichWithDelays(journey)

	if journey.Legs[1].DelaySeconds != 300 {
		t.Errorf("transit leg DelaySeconds = %d, want 300", journey.Legs[1].DelaySeconds)
	}
	if journey.Legs[0].DelaySeconds != 0 {
		t.Errorf("walk leg DelaySeconds = %d, want 0", journey.Legs[0].DelaySeconds)
	}
	if got, want := journey.ArrivalTime, originalArrival.Add(5*time.Minute); !got.Equal(want) {
		t.Errorf("ArrivalTime = %s, want %s", got, want)
	}
	if journey.TotalDuration != 30*time.Minute {
		t.Errorf("TotalDuration = %s, want 30m", journey.TotalDuration)
	}
}

func TestEnrichWithDelaysIgnoresUnknownTrip(t *testing.T) {
	source := &TransitSource{Snapshots: realtime.NewSnapshotStore()}

	journey := delayTestJourney()
	originalArrival := journey.ArrivalTime

	source.enrichWithDelays(journey)

	if journey.Legs[1].DelaySeconds != 0 {
		t.Errorf("DelaySeconds = %d, want 0 with no realtime data", journey.Legs[1].DelaySeconds)
	}
	if !journey.ArrivalTime.Equal(originalArrival) {
		t.Error("arrival time should be untouched with no realtime data")
	}
}

func TestJourneyToOptionBuildsSteps(t *testing.T) {
	journey := delayTestJourney()
	journey.Legs[0].OriginName = "Origin"
	journey.Legs[0].DestinationName = "Alpha"
	journey.Legs[1].OriginName = "Alpha"
	journey.Legs[1].DestinationName = "Delta"
	journey.Legs[1].RouteName = "42"
	journey.Legs[1].DistanceMeters = 8_000
	journey.TotalDistanceMeters = 8_400

	source := &TransitSource{}
	option := source.journeyToOption(journey)

	if option.Mode != tdf.TransportModeTransit {
		t.Errorf("Mode = %s, want transit", option.Mode)
	}
	if option.Provider != tdf.ProviderGTFSRaptor {
		t.Errorf("Provider = %s, want %s", option.Provider, tdf.ProviderGTFSRaptor)
	}
	if len(option.Steps) != 2 {
		t.Fatalf("len(Steps) = %d, want 2", len(option.Steps))
	}
	if option.Steps[0].Instruction != "Walk from Origin to Alpha" {
		t.Errorf("walk instruction = %q", option.Steps[0].Instruction)
	}
	if option.Steps[1].Instruction != "Take 42 from Alpha to Delta" {
		t.Errorf("ride instruction = %q", option.Steps[1].Instruction)
	}
	if option.Steps[1].LineName != "42" {
		t.Errorf("LineName = %s, want 42", option.Steps[1].LineName)
	}
	if option.EstimatedCostUSD < transitMinimumFare {
		t.Errorf("EstimatedCostUSD = %.2f, want at least the minimum fare", option.EstimatedCostUSD)
	}
}
