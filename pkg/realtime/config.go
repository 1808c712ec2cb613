package realtime

import (
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/wayfarer/wayfarer/pkg/util"
	"gopkg.in/yaml.v3"
)

const defaultPollInterval = 30 * time.Second

type FeedConfig struct {
	VehiclePositionsURL string `yaml:"vehiclePositionsURL" validate:"omitempty,url"`
	TripUpdatesURL      string `yaml:"tripUpdatesURL" validate:"omitempty,url"`
	IntervalSeconds     int    `yaml:"intervalSeconds" validate:"gte=0"`
}

func (c *FeedConfig) Interval() time.Duration {
	if c.IntervalSeconds <= 0 {
		return defaultPollInterval
	}

	return time.Duration(c.IntervalSeconds) * time.Second
}

// LoadFeedConfig reads the feed set from a YAML file when one is given,
// otherwise from the environment.
func LoadFeedConfig(path string) (*FeedConfig, error) {
	config := &FeedConfig{}

	if path != "" {
		contents, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		if err := yaml.Unmarshal(contents, config); err != nil {
			return nil, err
		}
	} else {
		env := util.GetEnvironmentVariables()

		config.VehiclePositionsURL = env["WAYFARER_GTFSRT_VEHICLE_POSITIONS_URL"]
		config.TripUpdatesURL = env["WAYFARER_GTFSRT_TRIP_UPDATES_URL"]
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, err
	}

	return config, nil
}
