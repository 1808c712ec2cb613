package realtime

import (
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
)

const feedHTTPTimeout = 30 * time.Second

// Poller owns the periodic feed refresh tasks. Zero, one or two loops run
// depending on which URLs are configured; each is independently scheduled
// and cancelled together through StopPolling.
type Poller struct {
	VehiclePositionsURL string
	TripUpdatesURL      string
	Interval            time.Duration

	Snapshots *SnapshotStore
	Persister *Persister

	httpClient *http.Client

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewPoller(vehiclePositionsURL string, tripUpdatesURL string, interval time.Duration, snapshots *SnapshotStore) *Poller {
	return &Poller{
		VehiclePositionsURL: vehiclePositionsURL,
		TripUpdatesURL:      tripUpdatesURL,
		Interval:            interval,
		Snapshots:           snapshots,
		httpClient:          &http.Client{Timeout: feedHTTPTimeout},
	}
}

// StartPolling launches the configured feed loops. Each loop runs its first
// tick immediately.
func (p *Poller) StartPolling() {
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel

	if p.VehiclePositionsURL != "" {
		p.wg.Add(1)
		go p.runFeedLoop(ctx, "vehicle-positions", p.VehiclePositionsURL, p.pollVehiclePositions)
	}

	if p.TripUpdatesURL != "" {
		p.wg.Add(1)
		go p.runFeedLoop(ctx, "trip-updates", p.TripUpdatesURL, p.pollTripUpdates)
	}
}

// StopPolling cancels the feed loops and waits for them to wind down.
func (p *Poller) StopPolling() {
	if p.cancel == nil {
		return
	}

	p.cancel()
	p.wg.Wait()
}

func (p *Poller) runFeedLoop(ctx context.Context, name string, url string, tick func(context.Context, string) error) {
	defer p.wg.Done()

	log.Info().Str("feed", name).Str("url", url).Dur("interval", p.Interval).Msg("Starting realtime feed poller")

	for {
		startTime := time.Now()

		if err := tick(ctx, url); err != nil {
			// Tick skipped. The previous snapshot generation stays
			// authoritative until the next successful poll.
			log.Error().Err(err).Str("feed", name).Msg("Feed refresh failed")
		}

		executionDuration := time.Since(startTime)
		waitTime := p.Interval - executionDuration
		if waitTime <= 0 {
			// An overrunning tick must not push the schedule back forever
			waitTime = time.Millisecond
		}

		select {
		case <-ctx.Done():
			log.Info().Str("feed", name).Msg("Stopping realtime feed poller")
			return
		case <-time.After(waitTime):
		}
	}
}

func (p *Poller) pollVehiclePositions(ctx context.Context, url string) error {
	payload, err := p.fetchFeed(ctx, url)
	if err != nil {
		return err
	}

	updates, err := DecodeVehiclePositions(payload)
	if err != nil {
		return err
	}

	now := time.Now()
	p.Snapshots.ReplaceVehiclePositions(updates, now)

	if p.Persister != nil {
		if err := p.Persister.PersistVehiclePositions(ctx, p.Snapshots.VehiclePositions()); err != nil {
			log.Error().Err(err).Msg("Failed to persist vehicle positions")
		}
	}

	log.Info().Int("records", len(p.Snapshots.VehiclePositions().Positions)).Msg("Refreshed vehicle positions")

	return nil
}

func (p *Poller) pollTripUpdates(ctx context.Context, url string) error {
	payload, err := p.fetchFeed(ctx, url)
	if err != nil {
		return err
	}

	updates, err := DecodeTripUpdates(payload)
	if err != nil {
		return err
	}

	now := time.Now()
	p.Snapshots.ReplaceTripUpdates(updates, now)

	if p.Persister != nil {
		if err := p.Persister.PersistTripUpdates(ctx, p.Snapshots.TripUpdates()); err != nil {
			log.Error().Err(err).Msg("Failed to persist trip updates")
		}
	}

	log.Info().Int("records", len(p.Snapshots.TripUpdates().Updates)).Msg("Refreshed trip updates")

	return nil
}

func (p *Poller) fetchFeed(ctx context.Context, url string) ([]byte, error) {
	var payload []byte

	retryBackoff := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)

	err := backoff.Retry(func() error {
		req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := p.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return &FeedStatusError{StatusCode: resp.StatusCode}
		}

		payload, err = io.ReadAll(resp.Body)
		return err
	}, retryBackoff)

	if err != nil {
		return nil, err
	}

	return payload, nil
}

type FeedStatusError struct {
	StatusCode int
}

func (e *FeedStatusError) Error() string {
	return http.StatusText(e.StatusCode)
}
