package realtime

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "feeds.yaml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	return path
}

func TestLoadFeedConfigFromFile(t *testing.T) {
	path := writeConfigFile(t, `
vehiclePositionsURL: https://example.com/gtfsrt/vehicles
tripUpdatesURL: https://example.com/gtfsrt/trips
intervalSeconds: 15
`)

	config, err := LoadFeedConfig(path)
	if err != nil {
		t.Fatalf("LoadFeedConfig returned error: %v", err)
	}

	if config.VehiclePositionsURL != "https://example.com/gtfsrt/vehicles" {
		t.Errorf("VehiclePositionsURL = %s", config.VehiclePositionsURL)
	}
	if config.TripUpdatesURL != "https://example.com/gtfsrt/trips" {
		t.Errorf("TripUpdatesURL = %s", config.TripUpdatesURL)
	}
	if config.Interval() != 15*time.Second {
		t.Errorf("Interval = %s, want 15s", config.Interval())
	}
}

func TestLoadFeedConfigDefaultInterval(t *testing.T) {
	path := writeConfigFile(t, `
tripUpdatesURL: https://example.com/gtfsrt/trips
`)

	config, err := LoadFeedConfig(path)
	if err != nil {
		t.Fatalf("LoadFeedConfig returned error: %v", err)
	}

	if config.Interval() != defaultPollInterval {
		t.Errorf("Interval = %s, want the %s default", config.Interval(), defaultPollInterval)
	}
}

func TestLoadFeedConfigRejectsBadURL(t *testing.T) {
	path := writeConfigFile(t, `
vehiclePositionsURL: "not a url"
`)

	if _, err := LoadFeedConfig(path); err == nil {
		t.Error("expected validation error for malformed feed URL")
	}
}

func TestLoadFeedConfigMissingFile(t *testing.T) {
	if _, err := LoadFeedConfig("/nonexistent/feeds.yaml"); err == nil {
		t.Error("expected error for missing config file")
	}
}
