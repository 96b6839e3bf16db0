package server

import (
	"go.uber.org/fx"

	"fabplan.dev/backend/internal/server/httpserver"
	"fabplan.dev/backend/internal/server/svr"
)

func Module() fx.Option {
	return fx.Module("server",
		fx.Provide(httpserver.Create),
		fx.Provide(svr.CreateEndpointGroups),
		fx.Invoke(listen))
}
