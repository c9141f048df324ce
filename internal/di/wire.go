//go:build wireinject
// +build wireinject

package di

import (
	"pulsefeed/internal/config"
	"pulsefeed/internal/notif"
	"pulsefeed/internal/notifdb"
	"pulsefeed/internal/worker"

	"github.com/google/wire"
)

// InitializeApplication wires the worker application. Wire generates the real
// body in wire_gen.go.
func InitializeApplication() (*Application, error) {
	wire.Build(
		config.LoadConfig,
		notifdb.NewMySQL,
		notifdb.NewStorage,
		ProvideURLs,
		notif.NewAssembler,
		notif.NewEngine,
		worker.NewLoader,
		worker.NewRedis,
		worker.NewDispatcher,
		worker.NewConsumer,
		wire.Struct(new(Application), "*"),
	)
	return &Application{}, nil
}
