package di

import (
	"github.com/DanBrus/IB-frontend/application/ports"
	"github.com/DanBrus/IB-frontend/application/services"
	"github.com/DanBrus/IB-frontend/domain/layout"
	"github.com/DanBrus/IB-frontend/infrastructure/config"
	"github.com/DanBrus/IB-frontend/interfaces/http/rest"
	"github.com/DanBrus/IB-frontend/pkg/observability"
	"go.uber.org/zap"
)

// ClientContainer holds the board client dependencies
type ClientContainer struct {
	Config    *config.Config
	Logger    *zap.Logger
	Metrics   *observability.Collector
	Tracing   *observability.TracerProvider
	Graph     ports.GraphStore
	Images    ports.ImageUploader
	Session   *services.BoardSession
	Inspector *services.Inspector
	Layout    *layout.Layout
}

// ServerContainer holds the stand-in service dependencies
type ServerContainer struct {
	Config *config.Config
	Logger *zap.Logger
	Router *rest.Router
}
