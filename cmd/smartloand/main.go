package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"
	"golang.org/x/crypto/bcrypt"

	"github.com/NimalpudiAshrita/smartloan/internal/application/usecase"
	"github.com/NimalpudiAshrita/smartloan/internal/domain/port"
	"github.com/NimalpudiAshrita/smartloan/internal/domain/service"
	"github.com/NimalpudiAshrita/smartloan/internal/infrastructure/catalog"
	"github.com/NimalpudiAshrita/smartloan/internal/infrastructure/config"
	"github.com/NimalpudiAshrita/smartloan/internal/infrastructure/credentials"
	"github.com/NimalpudiAshrita/smartloan/internal/infrastructure/kafka"
	"github.com/NimalpudiAshrita/smartloan/internal/infrastructure/metrics"
	grpcPresentation "github.com/NimalpudiAshrita/smartloan/internal/presentation/grpc"
	"github.com/NimalpudiAshrita/smartloan/internal/presentation/middleware"
	"github.com/NimalpudiAshrita/smartloan/internal/presentation/rest"
	"github.com/NimalpudiAshrita/smartloan/pkg/auth"
	pkgkafka "github.com/NimalpudiAshrita/smartloan/pkg/kafka"
	"github.com/NimalpudiAshrita/smartloan/pkg/observability"
	"github.com/NimalpudiAshrita/smartloan/pkg/tlsutil"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: cfg.ServiceName,
	})

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("starting smartloan",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	// Initialize tracing.
	shutdownTracer, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName: cfg.ServiceName,
		Endpoint:    cfg.Tracing.Endpoint,
		Insecure:    cfg.Tracing.Insecure,
		SampleRatio: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer func() { _ = shutdownTracer(context.Background()) }() //nolint:errcheck // best-effort tracer shutdown
	}

	// Metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{ServiceName: cfg.ServiceName})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }() //nolint:errcheck // best-effort flush
	recorder, err := metrics.NewRecorder(otel.Meter("github.com/NimalpudiAshrita/smartloan"))
	if err != nil {
		logger.Error("failed to create metric instruments", "error", err)
		os.Exit(1)
	}

	// Offer catalog.
	offers, err := catalog.Load(cfg.OfferCatalogFile)
	if err != nil {
		logger.Error("failed to load offer catalog", "file", cfg.OfferCatalogFile, "error", err)
		os.Exit(1)
	}
	logger.Info("offer catalog loaded", "offers", offers.Len())

	// Event publisher: Kafka when brokers are configured, otherwise the log.
	var publisher port.EventPublisher
	if cfg.Kafka.Enabled() {
		producer, perr := pkgkafka.NewProducer(pkgkafka.Config{
			ClientID:      cfg.ServiceName,
			Brokers:       cfg.Kafka.Brokers,
			TLS:           cfg.Kafka.TLS,
			SASLEnabled:   cfg.Kafka.SASLEnabled,
			SASLMechanism: cfg.Kafka.SASLMechanism,
			SASLUsername:  cfg.Kafka.SASLUsername,
			SASLPassword:  cfg.Kafka.SASLPassword,
		})
		if perr != nil {
			logger.Error("failed to create kafka producer", "error", perr)
			os.Exit(1)
		}
		defer producer.Close() //nolint:errcheck // best-effort flush
		publisher = kafka.NewKafkaEventPublisher(producer, cfg.Kafka.Topic, logger)
		logger.Info("publishing events to kafka", "topic", cfg.Kafka.Topic, "brokers", cfg.Kafka.Brokers)
	} else {
		publisher = kafka.NewLogEventPublisher(logger)
	}

	// JWT service: RSA private key preferred, HMAC secret as fallback.
	jwtCfg := auth.JWTConfig{
		Issuer:     cfg.JWT.Issuer,
		Expiration: cfg.JWT.Expiration,
	}
	if cfg.JWT.PrivateKeyFile != "" {
		keyData, loadErr := auth.LoadKeyFromFile(cfg.JWT.PrivateKeyFile)
		if loadErr != nil {
			logger.Error("failed to load JWT private key file", "error", loadErr)
			os.Exit(1)
		}
		jwtCfg.PrivateKeyPEM = string(keyData)
	} else {
		jwtCfg.Secret = cfg.JWT.Secret
	}
	jwtSvc, err := auth.NewJWTService(jwtCfg)
	if err != nil {
		logger.Error("failed to initialize JWT service", "error", err)
		os.Exit(1)
	}

	// Credentials.
	var accounts []credentials.Account
	if cfg.DemoUsers {
		accounts, err = credentials.DemoAccounts(bcrypt.DefaultCost)
		if err != nil {
			logger.Error("failed to create demo accounts", "error", err)
			os.Exit(1)
		}
		logger.Warn("demo accounts enabled; disable with DEMO_USERS_ENABLED=false")
	}
	verifier, err := credentials.NewVerifier(accounts)
	if err != nil {
		logger.Error("failed to build credential verifier", "error", err)
		os.Exit(1)
	}

	// Wire use cases.
	engine := service.NewEligibilityEngine(cfg.Policy)
	evaluateUC := usecase.NewEvaluateEligibilityUseCase(offers, publisher, recorder, engine, logger)
	scheduleUC := usecase.NewGenerateScheduleUseCase()
	listOffersUC := usecase.NewListOffersUseCase(offers)
	loginUC := usecase.NewLoginUseCase(verifier, credentials.NewJWTIssuer(jwtSvc), logger)

	// TLS, shared by both listeners.
	var grpcOpts grpcPresentation.ServerOptions
	grpcOpts.Roles = []string{auth.RoleAnalyst, auth.RoleAdmin}
	grpcOpts.Reflection = cfg.GRPCReflection
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	if cfg.TLS.Enabled() {
		tlsCfg, tlsErr := tlsutil.LoadServerConfig(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		if tlsErr != nil {
			logger.Error("failed to load TLS credentials", "error", tlsErr)
			os.Exit(1)
		}
		httpServer.TLSConfig = tlsCfg
		grpcOpts.Creds = tlsutil.ServerCredentials(tlsCfg)
	}

	// gRPC server.
	grpcHandler := grpcPresentation.NewEligibilityHandler(evaluateUC, scheduleUC, listOffersUC, logger)
	grpcServer := grpcPresentation.NewServer(grpcHandler, logger, jwtSvc, grpcOpts)

	// HTTP server.
	mux := http.NewServeMux()
	rest.NewHealthHandler(cfg.ServiceName, map[string]rest.ReadinessCheck{
		"catalog": func(context.Context) error {
			if offers.Len() == 0 {
				return errors.New("offer catalog is empty")
			}
			return nil
		},
	}, logger).RegisterRoutes(mux)
	mux.Handle("GET /metrics", metricsHandler)
	rest.NewHandler(evaluateUC, scheduleUC, listOffersUC, loginUC, logger).
		RegisterRoutes(mux, middleware.AuthMiddleware(jwtSvc, auth.RoleAnalyst, auth.RoleAdmin))

	var h http.Handler = mux
	h = middleware.RecoveryMiddleware(logger)(h)
	h = middleware.PerClientRateLimitMiddleware(
		middleware.NewPerClientRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst),
	)(h)
	h = middleware.LoggingMiddleware(logger, recorder)(h)
	httpServer.Handler = h

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort, "tls", cfg.TLS.Enabled())
		var err error
		if cfg.TLS.Enabled() {
			err = httpServer.ListenAndServeTLS("", "")
		} else {
			err = httpServer.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("smartloan stopped")
}

// Compile-time checks that the adapters satisfy their ports.
var (
	_ port.OfferCatalog       = (*catalog.Catalog)(nil)
	_ port.CredentialVerifier = (*credentials.Verifier)(nil)
	_ port.TokenIssuer        = (*credentials.JWTIssuer)(nil)
	_ port.EventPublisher     = (*kafka.KafkaEventPublisher)(nil)
	_ port.EventPublisher     = (*kafka.LogEventPublisher)(nil)
	_ port.EvaluationRecorder = (*metrics.Recorder)(nil)
)
