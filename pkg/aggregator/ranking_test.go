package aggregator

import (
	"testing"
	"time"

	"github.com/wayfarer/wayfarer/pkg/tdf"
)

func minuteOption(mode tdf.TransportMode, minutes int, costUSD float64) tdf.TransportOption {
	return tdf.TransportOption{
		Mode:             mode,
		TotalDuration:    time.Duration(minutes) * time.Minute,
		EstimatedCostUSD: costUSD,
	}
}

func TestRankOptionsPremiumPrefersFastest(t *testing.T) {
	options := []tdf.TransportOption{
		minuteOption(tdf.TransportModeTransit, 10, 3.00),
		minuteOption(tdf.TransportModeWalking, 30, 0),
		minuteOption(tdf.TransportModeDriving, 5, 12.00),
	}

	RankOptions(options, tdf.BudgetPreferencePremium)

	if options[0].TotalDuration != 5*time.Minute {
		t.Errorf("first option duration = %s, want 5m", options[0].TotalDuration)
	}
	if options[2].TotalDuration != 30*time.Minute {
		t.Errorf("last option duration = %s, want 30m", options[2].TotalDuration)
	}
}

func TestRankOptionsBudgetPrefersCheapest(t *testing.T) {
	options := []tdf.TransportOption{
		minuteOption(tdf.TransportModeDriving, 5, 12.00),
		minuteOption(tdf.TransportModeTransit, 10, 3.00),
		minuteOption(tdf.TransportModeWalking, 30, 0),
	}

	RankOptions(options, tdf.BudgetPreferenceBudget)

	if options[0].Mode != tdf.TransportModeWalking {
		t.Errorf("first option = %s, want walking", options[0].Mode)
	}
	if options[2].Mode != tdf.TransportModeDriving {
		t.Errorf("last option = %s, want driving", options[2].Mode)
	}
}

func TestRankOptionsBudgetBreaksCostTiesOnDuration(t *testing.T) {
	// Costs within $1 of each other count as equal, so duration decides
	options := []tdf.TransportOption{
		minuteOption(tdf.TransportModeTransit, 25, 2.80),
		minuteOption(tdf.TransportModeEscooter, 12, 2.20),
	}

	RankOptions(options, tdf.BudgetPreferenceBudget)

	if options[0].Mode != tdf.TransportModeEscooter {
		t.Errorf("first option = %s, want escooter on the duration tie-break", options[0].Mode)
	}
}

func TestRankOptionsBalancedBlendsCostAndDuration(t *testing.T) {
	// 60 min free walk scores 60; 10 min $12 drive scores 130; 20 min $3
	// transit scores 50 and should win
	options := []tdf.TransportOption{
		minuteOption(tdf.TransportModeWalking, 60, 0),
		minuteOption(tdf.TransportModeDriving, 10, 12.00),
		minuteOption(tdf.TransportModeTransit, 20, 3.00),
	}

	RankOptions(options, tdf.BudgetPreferenceBalanced)

	if options[0].Mode != tdf.TransportModeTransit {
		t.Errorf("first option = %s, want transit", options[0].Mode)
	}
}

func TestRankOptionsIsDeterministic(t *testing.T) {
	build := func() []tdf.TransportOption {
		return []tdf.TransportOption{
			minuteOption(tdf.TransportModeTransit, 20, 3.00),
			minuteOption(tdf.TransportModeWalking, 20, 3.00),
			minuteOption(tdf.TransportModeDriving, 20, 3.00),
		}
	}

	first := build()
	second := build()

	RankOptions(first, tdf.BudgetPreferenceBalanced)
	RankOptions(second, tdf.BudgetPreferenceBalanced)

	for i := range first {
		if first[i].Mode != second[i].Mode {
			t.Errorf("position %d differs between identical rankings: %s vs %s", i, first[i].Mode, second[i].Mode)
		}
	}
}
