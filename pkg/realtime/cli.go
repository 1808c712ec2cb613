package realtime

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"github.com/wayfarer/wayfarer/pkg/database"
	"github.com/wayfarer/wayfarer/pkg/redis_client"
)

// GlobalSnapshots is the process-wide realtime state read by the routing
// path. The poller is its only writer.
var GlobalSnapshots = NewSnapshotStore()

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "realtime",
		Usage: "Realtime feed polling",
		Subcommands: []*cli.Command{
			{
				Name:  "poller",
				Usage: "run the GTFS-RT feed poller",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "config",
						Usage: "path to a feeds YAML file (falls back to environment)",
					},
				},
				Action: func(c *cli.Context) error {
					config, err := LoadFeedConfig(c.String("config"))
					if err != nil {
						return err
					}

					if config.VehiclePositionsURL == "" && config.TripUpdatesURL == "" {
						log.Fatal().Msg("No realtime feed URLs configured")
					}

					if err := database.Connect(); err != nil {
						return err
					}

					if err := redis_client.Connect(); err != nil {
						log.Error().Err(err).Msg("Failed to connect to Redis, snapshot caching disabled")
					}

					poller := NewPoller(config.VehiclePositionsURL, config.TripUpdatesURL, config.Interval(), GlobalSnapshots)
					poller.Persister = NewPersister()
					poller.StartPolling()

					signals := make(chan os.Signal, 1)
					signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
					<-signals

					poller.StopPolling()

					return nil
				},
			},
		},
	}
}
