package aggregator

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/wayfarer/wayfarer/pkg/providers/geocoder"
	"github.com/wayfarer/wayfarer/pkg/tdf"
	"golang.org/x/exp/slices"
)

const defaultModeTimeout = 10 * time.Second

// Aggregator fans a routing request out across its registered mode sources,
// collects whatever survives, and guarantees at least one ranked option.
type Aggregator struct {
	Sources []ModeSource

	Geocoder *geocoder.Client

	ModeTimeout time.Duration
}

func (a *Aggregator) RegisterSource(source ModeSource) {
	a.Sources = append(a.Sources, source)

	log.Debug().Str("name", source.GetName()).Msg("Registering new Mode Source")
}

// Route returns a ranked, never-empty list of transport options. The only
// hard failure is an invalid request, raised before any network calls.
func (a *Aggregator) Route(ctx context.Context, request *tdf.RouteRequest) ([]tdf.TransportOption, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	modes := a.requestedModes(request)

	timeout := a.ModeTimeout
	if timeout == 0 {
		timeout = defaultModeTimeout
	}

	p := pool.NewWithResults[*tdf.TransportOption]()

	for _, mode := range modes {
		source := a.sourceFor(mode)
		if source == nil {
			continue
		}

		p.Go(func() *tdf.TransportOption {
			modeContext, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			option, err := source.Lookup(modeContext, mode, request)
			if err != nil {
				// Best-effort: a failed or slow mode is dropped, never fatal
				log.Debug().Err(err).Str("mode", string(mode)).Str("source", source.GetName()).Msg("Mode lookup failed")
				return nil
			}

			return option
		})
	}

	var options []tdf.TransportOption
	for _, option := range p.Wait() {
		if option != nil {
			options = append(options, *option)
		}
	}

	if len(options) == 0 {
		options = append(options, a.fallbackOption(request))
	}

	a.labelOptions(ctx, request, options)

	RankOptions(options, request.Budget)

	return options, nil
}

// requestedModes resolves the mode set. Driving is always attempted as a
// safety-net for long distances even when not asked for.
func (a *Aggregator) requestedModes(request *tdf.RouteRequest) []tdf.TransportMode {
	modes := request.Modes
	if len(modes) == 0 {
		modes = []tdf.TransportMode{tdf.TransportModeTransit, tdf.TransportModeWalking, tdf.TransportModeDriving}
	}

	if !slices.Contains(modes, tdf.TransportModeDriving) {
		modes = append(modes, tdf.TransportModeDriving)
	}

	return modes
}

func (a *Aggregator) sourceFor(mode tdf.TransportMode) ModeSource {
	for _, source := range a.Sources {
		if slices.Contains(source.Supports(), mode) {
			return source
		}
	}

	return nil
}

// labelOptions attaches display names for the endpoints, degrading to a
// formatted coordinate when no geocoder is configured or it fails.
func (a *Aggregator) labelOptions(ctx context.Context, request *tdf.RouteRequest, options []tdf.TransportOption) {
	originName := geocoder.FormatCoordinate(request.Origin())
	destinationName := geocoder.FormatCoordinate(request.Destination())

	if a.Geocoder != nil {
		originName = a.Geocoder.ReverseGeocode(ctx, request.Origin())
		destinationName = a.Geocoder.ReverseGeocode(ctx, request.Destination())
	}

	for i := range options {
		options[i].OriginName = originName
		options[i].DestinationName = destinationName
	}
}
