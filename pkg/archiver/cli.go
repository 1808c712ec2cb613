package archiver

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
	"github.com/wayfarer/wayfarer/pkg/database"
	"github.com/wayfarer/wayfarer/pkg/redis_client"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "archiver",
		Usage: "Vehicle event archiving",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "archive realtime vehicle events from the queue",
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}
					if err := redis_client.Connect(); err != nil {
						return err
					}

					StartConsumers()

					signals := make(chan os.Signal, 1)
					signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
					<-signals

					return nil
				},
			},
		},
	}
}
