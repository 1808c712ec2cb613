package osrm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/wayfarer/wayfarer/pkg/tdf"
	"github.com/wayfarer/wayfarer/pkg/util"
)

const defaultBaseURL = "https://router.project-osrm.org"
const requestTimeout = 5 * time.Second

type Profile string

const (
	ProfileWalking Profile = "foot"
	ProfileCycling Profile = "bike"
	ProfileDriving Profile = "driving"
)

var ErrNoRoute = errors.New("osrm returned no route")

// Client talks to an OSRM-compatible turn-by-turn routing engine.
type Client struct {
	BaseURL    string
	httpClient *http.Client
}

func NewClient() *Client {
	baseURL := defaultBaseURL

	env := util.GetEnvironmentVariables()
	if env["WAYFARER_OSRM_URL"] != "" {
		baseURL = env["WAYFARER_OSRM_URL"]
	}

	return &Client{
		BaseURL:    baseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

type RouteResult struct {
	DistanceMeters  float64
	Duration        time.Duration
	EncodedPolyline string
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Geometry string  `json:"geometry"`
	} `json:"routes"`
}

func (c *Client) Route(ctx context.Context, profile Profile, origin *tdf.Location, destination *tdf.Location) (*RouteResult, error) {
	requestURL := fmt.Sprintf("%s/route/v1/%s/%f,%f;%f,%f?overview=full",
		c.BaseURL, profile,
		origin.Longitude(), origin.Latitude(),
		destination.Longitude(), destination.Latitude(),
	)

	var body []byte

	retryBackoff := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 2), ctx)

	err := backoff.Retry(func() error {
		req, err := http.NewRequestWithContext(ctx, "GET", requestURL, nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("osrm request failed with status %d", resp.StatusCode)
		}

		body, err = io.ReadAll(resp.Body)
		return err
	}, retryBackoff)
	if err != nil {
		return nil, err
	}

	var response osrmResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, err
	}

	if response.Code != "Ok" || len(response.Routes) == 0 {
		return nil, ErrNoRoute
	}

	route := response.Routes[0]

	return &RouteResult{
		DistanceMeters:  route.Distance,
		Duration:        time.Duration(route.Duration * float64(time.Second)),
		EncodedPolyline: route.Geometry,
	}, nil
}
