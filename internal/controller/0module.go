package controller

import (
	"go.uber.org/fx"

	controllerv1 "fabplan.dev/backend/internal/controller/v1"
)

func Module() fx.Option {
	return fx.Module("controller",
		// Controllers (v1)
		controllerv1.Module(),
	)
}
