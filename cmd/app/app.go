package app

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"fabplan.dev/backend/cmd/app/server"
	"fabplan.dev/backend/internal/pkg/bininfo"
)

func Run() {
	app := &cli.App{
		Name:        "fabplan",
		Description: "Production planning backend for a metal fabrication shop. Built with Go, fiber, bun and go.uber.org/fx. Uses NATS as MQ and Redis as plan cache.",
		Version:     bininfo.Version,
		Commands: []*cli.Command{
			server.Command(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run app")
	}
}
