package routes

import "testing"

func TestParseCoordinate(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantLat   float64
		wantLng   float64
		wantError bool
	}{
		{"plain pair", "51.5,-0.12", 51.5, -0.12, false},
		{"spaced pair", "51.5, -0.12", 51.5, -0.12, false},
		{"missing longitude", "51.5", 0, 0, true},
		{"too many parts", "51.5,-0.12,7", 0, 0, true},
		{"not numbers", "here,there", 0, 0, true},
		{"empty", "", 0, 0, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			lat, lng, err := parseCoordinate(test.query)

			if test.wantError {
				if err == nil {
					t.Errorf("parseCoordinate(%q) expected error", test.query)
				}
				return
			}

			if err != nil {
				t.Fatalf("parseCoordinate(%q) returned error: %v", test.query, err)
			}
			if lat != test.wantLat || lng != test.wantLng {
				t.Errorf("parseCoordinate(%q) = %f, %f, want %f, %f", test.query, lat, lng, test.wantLat, test.wantLng)
			}
		})
	}
}
