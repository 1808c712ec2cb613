package directionsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/wayfarer/wayfarer/pkg/tdf"
	"github.com/wayfarer/wayfarer/pkg/util"
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api/directions/json"
const requestTimeout = 8 * time.Second

var ErrNoRoute = errors.New("directions api returned no route")

// Client talks to a Google Directions compatible multi-modal routing API.
// Used as the transit fallback when the local planner finds nothing.
type Client struct {
	BaseURL    string
	APIKey     string
	httpClient *http.Client
}

// NewClient returns nil when no API key is configured - the transit
// fallback is then simply unavailable.
func NewClient() *Client {
	env := util.GetEnvironmentVariables()

	if env["WAYFARER_DIRECTIONS_API_KEY"] == "" {
		return nil
	}

	baseURL := defaultBaseURL
	if env["WAYFARER_DIRECTIONS_API_URL"] != "" {
		baseURL = env["WAYFARER_DIRECTIONS_API_URL"]
	}

	return &Client{
		BaseURL:    baseURL,
		APIKey:     env["WAYFARER_DIRECTIONS_API_KEY"],
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

type Step struct {
	Instruction     string
	DistanceMeters  float64
	Duration        time.Duration
	EncodedPolyline string

	TravelMode string

	LineName      string
	LineColour    string
	VehicleType   string
	NumStops      int
	DepartureText string
	ArrivalText   string
}

type RouteResult struct {
	DistanceMeters float64
	Duration       time.Duration
	Steps          []Step
}

type directionsResponse struct {
	Status string `json:"status"`
	Routes []struct {
		Legs []struct {
			Distance struct {
				Value float64 `json:"value"`
			} `json:"distance"`
			Duration struct {
				Value float64 `json:"value"`
			} `json:"duration"`
			Steps []struct {
				HTMLInstructions string `json:"html_instructions"`
				TravelMode       string `json:"travel_mode"`
				Distance         struct {
					Value float64 `json:"value"`
				} `json:"distance"`
				Duration struct {
					Value float64 `json:"value"`
				} `json:"duration"`
				Polyline struct {
					Points string `json:"points"`
				} `json:"polyline"`
				TransitDetails *struct {
					Line struct {
						ShortName string `json:"short_name"`
						Name      string `json:"name"`
						Color     string `json:"color"`
						Vehicle   struct {
							Type string `json:"type"`
						} `json:"vehicle"`
					} `json:"line"`
					NumStops      int `json:"num_stops"`
					DepartureTime struct {
						Text string `json:"text"`
					} `json:"departure_time"`
					ArrivalTime struct {
						Text string `json:"text"`
					} `json:"arrival_time"`
				} `json:"transit_details"`
			} `json:"steps"`
		} `json:"legs"`
	} `json:"routes"`
}

func (c *Client) Route(ctx context.Context, mode string, origin *tdf.Location, destination *tdf.Location) (*RouteResult, error) {
	query := url.Values{}
	query.Set("origin", fmt.Sprintf("%f,%f", origin.Latitude(), origin.Longitude()))
	query.Set("destination", fmt.Sprintf("%f,%f", destination.Latitude(), destination.Longitude()))
	query.Set("mode", mode)
	query.Set("key", c.APIKey)

	req, err := http.NewRequestWithContext(ctx, "GET", c.BaseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var response directionsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, err
	}

	if response.Status != "OK" || len(response.Routes) == 0 || len(response.Routes[0].Legs) == 0 {
		return nil, ErrNoRoute
	}

	leg := response.Routes[0].Legs[0]

	result := &RouteResult{
		DistanceMeters: leg.Distance.Value,
		Duration:       time.Duration(leg.Duration.Value * float64(time.Second)),
	}

	for _, step := range leg.Steps {
		resultStep := Step{
			Instruction:     step.HTMLInstructions,
			DistanceMeters:  step.Distance.Value,
			Duration:        time.Duration(step.Duration.Value * float64(time.Second)),
			EncodedPolyline: step.Polyline.Points,
			TravelMode:      step.TravelMode,
		}

		if step.TransitDetails != nil {
			resultStep.LineName = step.TransitDetails.Line.ShortName
			if resultStep.LineName == "" {
				resultStep.LineName = step.TransitDetails.Line.Name
			}
			resultStep.LineColour = step.TransitDetails.Line.Color
			resultStep.VehicleType = step.TransitDetails.Line.Vehicle.Type
			resultStep.NumStops = step.TransitDetails.NumStops
			resultStep.DepartureText = step.TransitDetails.DepartureTime.Text
			resultStep.ArrivalText = step.TransitDetails.ArrivalTime.Text
		}

		result.Steps = append(result.Steps, resultStep)
	}

	return result, nil
}
