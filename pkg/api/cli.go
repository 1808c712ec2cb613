package api

import (
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"github.com/wayfarer/wayfarer/pkg/aggregator/global"
	"github.com/wayfarer/wayfarer/pkg/database"
	"github.com/wayfarer/wayfarer/pkg/realtime"
	"github.com/wayfarer/wayfarer/pkg/redis_client"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the core web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
					&cli.StringFlag{
						Name:  "feeds-config",
						Usage: "path to a realtime feeds YAML file (falls back to environment)",
					},
				},
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}

					if err := redis_client.Connect(); err != nil {
						log.Error().Err(err).Msg("Failed to connect to Redis, snapshot caching disabled")
					}

					global.Setup()

					// Run the realtime poller in-process when feeds are
					// configured so routed journeys carry live delays
					feedConfig, err := realtime.LoadFeedConfig(c.String("feeds-config"))
					if err != nil {
						return err
					}

					if feedConfig.VehiclePositionsURL != "" || feedConfig.TripUpdatesURL != "" {
						poller := realtime.NewPoller(
							feedConfig.VehiclePositionsURL,
							feedConfig.TripUpdatesURL,
							feedConfig.Interval(),
							realtime.GlobalSnapshots,
						)
						poller.Persister = realtime.NewPersister()
						poller.StartPolling()
						defer poller.StopPolling()
					}

					return SetupServer(c.String("listen"))
				},
			},
		},
	}
}
