package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/wayfarer/wayfarer/pkg/tdf"
	"github.com/wayfarer/wayfarer/pkg/util"
)

const defaultBaseURL = "https://nominatim.openstreetmap.org/reverse"
const requestTimeout = 3 * time.Second

// Client reverse-geocodes a coordinate to a short place name for display
// labelling only. Every failure degrades to a formatted coordinate string.
type Client struct {
	BaseURL    string
	httpClient *http.Client
}

func NewClient() *Client {
	baseURL := defaultBaseURL

	env := util.GetEnvironmentVariables()
	if env["WAYFARER_GEOCODER_URL"] != "" {
		baseURL = env["WAYFARER_GEOCODER_URL"]
	}

	return &Client{
		BaseURL:    baseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

type reverseResponse struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

func (c *Client) ReverseGeocode(ctx context.Context, location *tdf.Location) string {
	fallback := FormatCoordinate(location)

	query := url.Values{}
	query.Set("format", "jsonv2")
	query.Set("lat", fmt.Sprintf("%f", location.Latitude()))
	query.Set("lon", fmt.Sprintf("%f", location.Longitude()))

	req, err := http.NewRequestWithContext(ctx, "GET", c.BaseURL+"?"+query.Encode(), nil)
	if err != nil {
		return fallback
	}
	req.Header.Set("User-Agent", "wayfarer")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fallback
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fallback
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fallback
	}

	var response reverseResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return fallback
	}

	if response.Name != "" {
		return response.Name
	}
	if response.DisplayName != "" {
		return response.DisplayName
	}

	return fallback
}

func FormatCoordinate(location *tdf.Location) string {
	return fmt.Sprintf("%.5f, %.5f", location.Latitude(), location.Longitude())
}
