package tdf

import (
	"errors"
	"math"
	"testing"
)

func validRequest() *RouteRequest {
	return &RouteRequest{
		OriginLatitude:        51.5,
		OriginLongitude:       -0.12,
		DestinationLatitude:   51.52,
		DestinationLongitude:  -0.10,
		MaxTransfers:          3,
		MaxWalkDistanceMeters: 1000,
	}
}

func TestRouteRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *RouteRequest)
		wantErr bool
	}{
		{"valid request", func(r *RouteRequest) {}, false},
		{"latitude out of range", func(r *RouteRequest) { r.OriginLatitude = 91 }, true},
		{"longitude out of range", func(r *RouteRequest) { r.DestinationLongitude = -181 }, true},
		{"NaN coordinate", func(r *RouteRequest) { r.OriginLongitude = math.NaN() }, true},
		{"negative transfer budget", func(r *RouteRequest) { r.MaxTransfers = -1 }, true},
		{"zero walk distance", func(r *RouteRequest) { r.MaxWalkDistanceMeters = 0 }, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			request := validRequest()
			test.mutate(request)

			err := request.Validate()

			if test.wantErr && !errors.Is(err, ErrInvalidRequest) {
				t.Errorf("err = %v, want ErrInvalidRequest", err)
			}
			if !test.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestRouteRequestEndpoints(t *testing.T) {
	request := validRequest()

	origin := request.Origin()
	if origin.Coordinates[1] != 51.5 || origin.Coordinates[0] != -0.12 {
		t.Errorf("Origin coordinates = %v", origin.Coordinates)
	}

	destination := request.Destination()
	if destination.Coordinates[1] != 51.52 || destination.Coordinates[0] != -0.10 {
		t.Errorf("Destination coordinates = %v", destination.Coordinates)
	}
}
