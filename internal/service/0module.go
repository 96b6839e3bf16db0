package service

import "go.uber.org/fx"

func Module() fx.Option {
	return fx.Module("service", fx.Provide(
		NewHealth,
		NewMark,
		NewOrder,
		NewResource,
		NewRoute,
		NewSchedule,
	))
}
