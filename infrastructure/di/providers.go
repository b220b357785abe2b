package di

import (
	"context"
	"time"

	"github.com/DanBrus/IB-frontend/application/ports"
	"github.com/DanBrus/IB-frontend/application/services"
	domainconfig "github.com/DanBrus/IB-frontend/domain/config"
	"github.com/DanBrus/IB-frontend/domain/layout"
	"github.com/DanBrus/IB-frontend/infrastructure/config"
	"github.com/DanBrus/IB-frontend/infrastructure/filestore"
	"github.com/DanBrus/IB-frontend/infrastructure/graphstore"
	"github.com/DanBrus/IB-frontend/infrastructure/persistence/memory"
	"github.com/DanBrus/IB-frontend/infrastructure/remote"
	"github.com/DanBrus/IB-frontend/interfaces/http/rest"
	"github.com/DanBrus/IB-frontend/pkg/errors"
	"github.com/DanBrus/IB-frontend/pkg/observability"
	"go.uber.org/zap"
)

// ProvideLogger creates a new logger instance. Production gets JSON output,
// everything else the development console encoder.
func ProvideLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	var zcfg zap.Config
	if cfg.IsProduction() {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}
	if level, err := zap.ParseAtomicLevel(cfg.LogLevel); err == nil {
		zcfg.Level = level
	}

	logger, err := zcfg.Build()
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		_ = logger.Sync()
	}
	return logger, cleanup, nil
}

// ProvideDomainConfig returns the board limits and card geometry
func ProvideDomainConfig() *domainconfig.DomainConfig {
	return domainconfig.DefaultDomainConfig()
}

// ProvideMetrics creates the Prometheus collector
func ProvideMetrics() *observability.Collector {
	return observability.NewCollector("ib_board")
}

// ProvideTracerProvider sets up tracing and shuts it down on cleanup
func ProvideTracerProvider(cfg *config.Config, logger *zap.Logger) (*observability.TracerProvider, func(), error) {
	tp, err := observability.InitTracing(observability.TracingConfig{
		Enabled:     cfg.EnableTracing,
		Environment: cfg.Environment,
		Endpoint:    cfg.OTLPEndpoint,
		SampleRate:  cfg.SampleRate,
	})
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			logger.Warn("Tracer shutdown failed", zap.Error(err))
		}
	}
	return tp, cleanup, nil
}

// ProvideGraphStore creates the graph service client
func ProvideGraphStore(
	cfg *config.Config,
	tp *observability.TracerProvider,
	metrics *observability.Collector,
	logger *zap.Logger,
) *graphstore.Client {
	rc := remote.NewClient("graph", cfg.GraphAPIBaseURL, nil, tp.Tracer(), metrics, logger.Named("graph"))
	return graphstore.NewClient(rc)
}

// ProvideImageUploader creates the file service client
func ProvideImageUploader(
	cfg *config.Config,
	tp *observability.TracerProvider,
	metrics *observability.Collector,
	logger *zap.Logger,
) *filestore.Client {
	rc := remote.NewClient("file", cfg.FileAPIBaseURL, nil, tp.Tracer(), metrics, logger.Named("file"))
	return filestore.NewClient(rc)
}

// ProvideBoardSession creates the board session
func ProvideBoardSession(store ports.GraphStore, metrics *observability.Collector, logger *zap.Logger) *services.BoardSession {
	return services.NewBoardSession(store, metrics, logger.Named("board"))
}

// ProvideInspector creates the node inspector and attaches it to the session
func ProvideInspector(
	uploader ports.ImageUploader,
	session *services.BoardSession,
	domainCfg *domainconfig.DomainConfig,
	metrics *observability.Collector,
	logger *zap.Logger,
) *services.Inspector {
	inspector := services.NewInspector(uploader, session, domainCfg, metrics, logger.Named("inspector"))
	session.AttachInspector(inspector)
	return inspector
}

// ProvideLayout creates the card geometry helper
func ProvideLayout(domainCfg *domainconfig.DomainConfig) *layout.Layout {
	return layout.New(domainCfg)
}

// ProvideBoardStore creates the stand-in board store
func ProvideBoardStore() *memory.BoardStore {
	return memory.NewBoardStore(memory.DefaultVersion)
}

// ProvideImageStore creates the stand-in image store
func ProvideImageStore() *memory.ImageStore {
	return memory.NewImageStore()
}

// ProvideErrorHandler creates the HTTP error handler
func ProvideErrorHandler(cfg *config.Config, logger *zap.Logger) *errors.ErrorHandler {
	return errors.NewErrorHandler(logger, cfg.IsDevelopment())
}

// ProvideRouter creates the stand-in service router. /metrics is only
// mounted when metrics are enabled.
func ProvideRouter(
	cfg *config.Config,
	boards ports.BoardRepository,
	images ports.ImageRepository,
	metrics *observability.Collector,
	errorHandler *errors.ErrorHandler,
	logger *zap.Logger,
) *rest.Router {
	if !cfg.EnableMetrics {
		metrics = nil
	}
	return rest.NewRouter(boards, images, "", metrics, errorHandler, logger.Named("http"))
}
