//go:build wireinject
// +build wireinject

package di

import (
	"github.com/DanBrus/IB-frontend/application/ports"
	"github.com/DanBrus/IB-frontend/infrastructure/config"
	"github.com/DanBrus/IB-frontend/infrastructure/filestore"
	"github.com/DanBrus/IB-frontend/infrastructure/graphstore"
	"github.com/DanBrus/IB-frontend/infrastructure/persistence/memory"
	"github.com/google/wire"
)

// CommonSet provides logging and metrics
var CommonSet = wire.NewSet(
	ProvideLogger,
	ProvideMetrics,
)

// ClientSet wires the board client
var ClientSet = wire.NewSet(
	CommonSet,
	ProvideDomainConfig,
	ProvideTracerProvider,
	ProvideGraphStore,
	wire.Bind(new(ports.GraphStore), new(*graphstore.Client)),
	ProvideImageUploader,
	wire.Bind(new(ports.ImageUploader), new(*filestore.Client)),
	ProvideBoardSession,
	ProvideInspector,
	ProvideLayout,
	wire.Struct(new(ClientContainer), "*"),
)

// ServerSet wires the stand-in graph and file services
var ServerSet = wire.NewSet(
	CommonSet,
	ProvideBoardStore,
	wire.Bind(new(ports.BoardRepository), new(*memory.BoardStore)),
	ProvideImageStore,
	wire.Bind(new(ports.ImageRepository), new(*memory.ImageStore)),
	ProvideErrorHandler,
	ProvideRouter,
	wire.Struct(new(ServerContainer), "*"),
)

// InitializeClient creates a fully wired board client
func InitializeClient(cfg *config.Config) (*ClientContainer, func(), error) {
	wire.Build(ClientSet)
	return nil, nil, nil // Wire will replace this
}

// InitializeServer creates fully wired stand-in services
func InitializeServer(cfg *config.Config) (*ServerContainer, func(), error) {
	wire.Build(ServerSet)
	return nil, nil, nil // Wire will replace this
}
