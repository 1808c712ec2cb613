package tdf

import (
	"strings"
	"time"
)

type TransportMode string

const (
	TransportModeWalking  TransportMode = "walking"
	TransportModeCycling  TransportMode = "cycling"
	TransportModeDriving  TransportMode = "driving"
	TransportModeTransit  TransportMode = "transit"
	TransportModeEscooter TransportMode = "escooter"
)

const (
	ProviderGTFSRaptor        = "gtfs-raptor"
	ProviderGoogleDirections  = "google-directions"
	ProviderHaversineFallback = "haversine-fallback"

	providerUnrealisticSuffix = "-UNREALISTIC"
)

type TransportOptionStep struct {
	Instruction string `groups:"basic"`

	DistanceMeters  float64       `groups:"basic"`
	Duration        time.Duration `groups:"basic"`
	EncodedPolyline string        `groups:"detailed"`

	// Transit steps only
	LineName      string `groups:"basic"`
	LineColour    string `groups:"basic"`
	VehicleType   string `groups:"basic"`
	NumStops      int    `groups:"basic"`
	DepartureText string `groups:"basic"`
	ArrivalText   string `groups:"basic"`
	DelaySeconds  int    `groups:"basic"`
}

// TransportOption is one routed alternative for a single mode. Ephemeral,
// ranked and returned, never persisted.
type TransportOption struct {
	Mode TransportMode `groups:"basic"`

	TotalDistanceMeters float64       `groups:"basic"`
	TotalDuration       time.Duration `groups:"basic"`

	EstimatedCostUSD float64 `groups:"basic"`

	Steps []TransportOptionStep `groups:"basic"`

	Provider string `groups:"basic"`

	IsRealistic bool   `groups:"basic"`
	Warning     string `groups:"basic"`

	OriginName      string `groups:"basic"`
	DestinationName string `groups:"basic"`
}

func (t *TransportOption) IsFallback() bool {
	return strings.HasPrefix(t.Provider, ProviderHaversineFallback)
}

// MarkUnrealistic tags a fallback option whose implied mode is implausible
// for the distance.
func (t *TransportOption) MarkUnrealistic(warning string) {
	t.IsRealistic = false
	t.Warning = warning
	t.Provider = t.Provider + providerUnrealisticSuffix
}
