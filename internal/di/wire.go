//go:build wireinject
// +build wireinject

package di

import (
	"EstatePulse/pkg/config"
	"EstatePulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure
		ProvideCache,
		ProvideHistoryStore,
		ProvidePublisher,

		// Domain services
		ProvideModelClient,
		ProvideEstimator,

		// View state
		ProvideMapView,
		ProvideRenderer,
		ProvideHub,

		// Use cases
		ProvidePredictor,
		ProvideLocationLoader,

		// HTTP surface
		ProvideHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
