package di

import (
	"fmt"

	domrepo "EstatePulse/internal/domain/repository"
	domsvc "EstatePulse/internal/domain/service"
	"EstatePulse/internal/handler/api"
	"EstatePulse/internal/mapview"
	"EstatePulse/internal/render"
	internalrepo "EstatePulse/internal/repository"
	"EstatePulse/internal/service/estimator"
	"EstatePulse/internal/service/modelserver"
	"EstatePulse/internal/service/ws"
	"EstatePulse/internal/usecase"
	"EstatePulse/pkg/cache"
	pkgch "EstatePulse/pkg/clickhouse"
	"EstatePulse/pkg/config"
	xhttp "EstatePulse/pkg/http"
	pkgkafka "EstatePulse/pkg/kafka"
	applogger "EstatePulse/pkg/logger"
	"EstatePulse/pkg/metrics"
	"EstatePulse/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Logger.Level,
		Format: cfg.Logger.Format,
		Output: cfg.Logger.Output,
	})
}

// ProvideMetrics creates the Prometheus metrics recorder.
func ProvideMetrics() domrepo.Metrics {
	return metrics.New()
}

// ProvideModelClient creates the upstream model-server client.
func ProvideModelClient(cfg *config.Config) domsvc.ModelClient {
	return modelserver.New(
		cfg.ModelServer.BaseURL,
		cfg.ModelServer.Timeout,
		cfg.ModelServer.RetryAttempts,
	)
}

// ProvideEstimator creates the mock estimator used for fallback.
func ProvideEstimator(cfg *config.Config) domsvc.Estimator {
	return estimator.NewMock(cfg.Estimator.Seed)
}

// ProvideCache creates the cache service. With redis enabled the memory
// layer fronts it; otherwise memory alone.
func ProvideCache(cfg *config.Config, logger *applogger.Logger) (cache.Service, error) {
	if !cfg.Cache.Redis.Enabled {
		return cache.NewMemoryCache(), nil
	}

	rc, err := cache.NewRedisCache(
		cache.WithRedisHost(cfg.Cache.Redis.Host),
		cache.WithRedisPort(cfg.Cache.Redis.Port),
		cache.WithRedisPassword(cfg.Cache.Redis.Password),
		cache.WithRedisDB(cfg.Cache.Redis.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	logger.Info("redis cache connected", applogger.String("host", cfg.Cache.Redis.Host))
	return cache.NewLayeredCache(rc), nil
}

// ProvideHistoryStore creates the ClickHouse history store, or nil when
// history is disabled.
func ProvideHistoryStore(cfg *config.Config, logger *applogger.Logger) (domrepo.HistoryStore, error) {
	if !cfg.History.Enabled {
		return nil, nil
	}

	ch := cfg.History.ClickHouse
	client, err := pkgch.NewClient(
		pkgch.WithHost(ch.Host),
		pkgch.WithPort(ch.Port),
		pkgch.WithDatabase(ch.Database),
		pkgch.WithCredentials(ch.User, ch.Password),
		pkgch.WithTimeouts(ch.DialTimeout, ch.ReadTimeout, ch.WriteTimeout),
		pkgch.WithAsyncInsert(ch.AsyncInsert, false),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	store, err := internalrepo.NewClickHouseHistory(client, logger)
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	logger.Info("prediction history enabled", applogger.String("host", ch.Host))
	return store, nil
}

// ProvidePublisher creates the Kafka event publisher, or nil when events
// are disabled.
func ProvidePublisher(cfg *config.Config, logger *applogger.Logger) (domrepo.Publisher, error) {
	if !cfg.Events.Enabled {
		return nil, nil
	}

	p := cfg.Events.Producer
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Events.Brokers),
		pkgkafka.WithCompression(p.Compression),
		pkgkafka.WithRequiredAcks(p.RequiredAcks),
		pkgkafka.WithMaxAttempts(p.MaxAttempts),
		pkgkafka.WithBatchSize(p.BatchSize),
		pkgkafka.WithBatchTimeout(p.Linger),
		pkgkafka.WithTimeouts(p.WriteTimeout, 0),
		pkgkafka.WithAsync(p.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	logger.Info("prediction events enabled", applogger.Strings("brokers", cfg.Events.Brokers))
	return internalrepo.NewKafkaPublisher(producer, cfg.Events.Topic), nil
}

// ProvideMapView creates the shared map view state.
func ProvideMapView() *mapview.View {
	return mapview.New()
}

// ProvideRenderer creates the result renderer bound to the map view.
func ProvideRenderer(view *mapview.View) *render.Renderer {
	return render.NewRenderer(view)
}

// ProvideHub creates the websocket broadcast hub.
func ProvideHub(logger *applogger.Logger) *ws.Hub {
	return ws.NewHub(logger)
}

// ProvidePredictor creates the prediction usecase.
func ProvidePredictor(
	client domsvc.ModelClient,
	mock domsvc.Estimator,
	history domrepo.HistoryStore,
	events domrepo.Publisher,
	c cache.Service,
	m domrepo.Metrics,
	cfg *config.Config,
	logger *applogger.Logger,
) *usecase.Predictor {
	return usecase.NewPredictor(client, mock, history, events, c, cfg.Cache.PredictionsTTL, m, logger)
}

// ProvideLocationLoader creates the location usecase.
func ProvideLocationLoader(
	client domsvc.ModelClient,
	c cache.Service,
	m domrepo.Metrics,
	cfg *config.Config,
	logger *applogger.Logger,
) *usecase.LocationLoader {
	return usecase.NewLocationLoader(client, c, cfg.Cache.LocationsTTL, m, logger)
}

// ProvideHandler creates the HTTP handler.
func ProvideHandler(
	predictor *usecase.Predictor,
	locations *usecase.LocationLoader,
	renderer *render.Renderer,
	view *mapview.View,
	history domrepo.HistoryStore,
	hub *ws.Hub,
	cfg *config.Config,
	logger *applogger.Logger,
) xhttp.Handler {
	return api.NewPredictionHandler(predictor, locations, renderer, view, history, hub, cfg, logger)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	handler xhttp.Handler,
	hub *ws.Hub,
	history domrepo.HistoryStore,
	events domrepo.Publisher,
	c cache.Service,
	logger *applogger.Logger,
) *server.App {
	return server.New(cfg, handler, hub, history, events, c, logger)
}
