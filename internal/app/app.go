package app

import (
	"context"
	"fmt"
	"time"

	"github.com/haguru/shisui/config"
	"github.com/haguru/shisui/internal/generator"
	"github.com/haguru/shisui/internal/hasher"
	"github.com/haguru/shisui/internal/interfaces"
	"github.com/haguru/shisui/internal/management"
	"github.com/haguru/shisui/internal/models"
	mongoLedger "github.com/haguru/shisui/internal/runledger/mongo"
	postgresLedger "github.com/haguru/shisui/internal/runledger/postgres"
	"github.com/haguru/shisui/internal/seeder"
	"github.com/haguru/shisui/internal/server"
	"github.com/haguru/shisui/pkg/databases/mongo"
	"github.com/haguru/shisui/pkg/databases/postgres"
	"github.com/haguru/shisui/pkg/metrics"
	"github.com/haguru/shisui/pkg/zerolog"

	structValidator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	// MetricsRouteAPI is the path the optional metrics endpoint is
	// served on.
	MetricsRouteAPI = "/metrics"

	// ShutdownTimeout bounds the graceful stop of the metrics server.
	ShutdownTimeout = 5 * time.Second
)

// App wires the seeding pipeline together from configuration: logger,
// metrics, management client, optional run ledger and optional metrics
// endpoint.
type App struct {
	Config  *config.ServiceConfig
	Logger  interfaces.Logger
	Metrics interfaces.Metrics
	Seeder  *seeder.Seeder

	ledger        interfaces.RunLedger
	metricsServer interfaces.Server
}

// NewApp creates and configures a new App instance.
func NewApp(configPath string) (*App, error) {
	cfg, err := config.ReadLocalConfig(configPath)
	if err != nil {
		return nil, err
	}

	validator := structValidator.New()
	if err := validator.Struct(cfg); err != nil {
		errors := err.(structValidator.ValidationErrors)
		return nil, fmt.Errorf("validation error: %s", errors)
	}

	logger := zerolog.NewZerologLogger(cfg.ServiceName)
	logger.SetLevel(cfg.LogLevel)

	app := &App{
		Config: cfg,
		Logger: logger,
	}

	app.Metrics = app.initializeMetrics()

	ledger, err := app.initializeLedger()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize run ledger: %v", err)
	}
	app.ledger = ledger

	if cfg.Metrics.Enabled {
		if err := app.initializeMetricsServer(); err != nil {
			return nil, fmt.Errorf("failed to initialize metrics server: %v", err)
		}
	}

	directory := management.NewClient(&cfg.Tenant, logger, app.Metrics)
	userGenerator := generator.NewGenerator(hasher.NewBcryptHasher(), cfg.Seed.AllowUsernamePasswords)

	app.Seeder = seeder.NewSeeder(userGenerator, directory, ledger, logger, app.Metrics, validator)

	return app, nil
}

// Run executes one seeding run to its terminal state and reports
// whether the import completed.
func (app *App) Run(ctx context.Context) error {
	defer app.shutdown()

	if app.metricsServer != nil {
		go func() {
			if err := app.metricsServer.ListenAndServe(); err != nil {
				app.Logger.Error("Metrics server stopped", "error", err)
			}
		}()
	}

	result, err := app.Seeder.Run(ctx, app.buildRequest())
	if err != nil {
		return err
	}

	if result.Job.Status != models.JobStatusCompleted {
		return fmt.Errorf("import job %s ended with status %q (failed records: %d)",
			result.Job.ID, result.Job.Status, result.Summary.Failed)
	}

	return nil
}

// buildRequest maps configuration onto a single seeding request.
func (app *App) buildRequest() seeder.Request {
	cfg := app.Config

	externalID := cfg.Import.ExternalID
	if externalID == "" && cfg.Import.GenerateExternalID {
		externalID = uuid.NewString()
		app.Logger.Info("Generated external id for this run", "external_id", externalID)
	}

	return seeder.Request{
		Prefix:         cfg.Seed.Prefix,
		EmailDomain:    cfg.Seed.EmailDomain,
		Count:          cfg.Seed.Count,
		Password:       cfg.Seed.Password,
		ConnectionName: cfg.Tenant.ConnectionName,
		Token:          cfg.Tenant.Token,
		PollInterval:   cfg.Import.PollInterval,
		MaxWait:        cfg.Import.MaxWait,
		ExternalID:     externalID,
		PayloadDir:     cfg.Import.PayloadDir,
	}
}

func (app *App) initializeMetrics() interfaces.Metrics {
	appMetrics := metrics.NewMetrics(app.Config.ServiceName)

	appMetrics.RegisterCounterVec(
		management.APIRequestsTotal,
		management.APIRequestsTotalHelp,
		[]string{"operation", "outcome"})
	appMetrics.RegisterCounter(management.PollAttemptsTotal, management.PollAttemptsTotalHelp)
	appMetrics.RegisterHistogram(
		management.SubmitDurationSeconds,
		management.SubmitDurationSecondsHelp,
		management.SubmitDurationSecondsBuckets)

	appMetrics.RegisterGauge(seeder.RecordsGenerated, seeder.RecordsGeneratedHelp)
	appMetrics.RegisterCounterVec(
		seeder.ImportRunsTotal,
		seeder.ImportRunsTotalHelp,
		[]string{"status"})
	appMetrics.RegisterHistogram(
		seeder.RunDurationSeconds,
		seeder.RunDurationSecondsHelp,
		seeder.RunDurationSecondsBuckets)

	return appMetrics
}

// initializeLedger builds the configured run ledger backend. An empty
// type leaves the ledger disabled.
func (app *App) initializeLedger() (interfaces.RunLedger, error) {
	var ledger interfaces.RunLedger

	switch app.Config.Ledger.Type {
	case "":
		return nil, nil

	case "mongo":
		dbClient, err := mongo.NewMongoDB(&app.Config.Ledger.MongoDB)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize MongoDB client: %v", err)
		}
		if err := dbClient.Connect(context.Background(), app.Config.Ledger.MongoDB.DSN); err != nil {
			return nil, fmt.Errorf("failed to connect to MongoDB: %v", err)
		}
		ledger, err = mongoLedger.NewMongoRunLedger(dbClient)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize MongoDB ledger: %v", err)
		}

	case "postgres":
		dbClient := postgres.NewPostgresDatabaseClient(&app.Config.Ledger.Postgres)
		if err := dbClient.Connect(context.Background(), app.Config.Ledger.Postgres.DSN); err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %v", err)
		}
		ledger = postgresLedger.NewPostgresRunLedger(dbClient)

	default:
		return nil, fmt.Errorf("unsupported ledger type: %s", app.Config.Ledger.Type)
	}

	if err := ledger.EnsureIndices(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ensure ledger indices: %v", err)
	}

	return ledger, nil
}

func (app *App) initializeMetricsServer() error {
	app.metricsServer = server.NewServer(app.Config.Metrics.Host, app.Config.Metrics.Port, app.Logger)

	metricsHandler := promhttp.HandlerFor(
		app.Metrics.GetRegistry(),
		promhttp.HandlerOpts{})

	tracedMetricsHandler := otelhttp.NewHandler(metricsHandler, MetricsRouteAPI)

	if err := app.metricsServer.AddRoute(MetricsRouteAPI, tracedMetricsHandler.ServeHTTP); err != nil {
		return fmt.Errorf("failed to add metrics route: %v", err)
	}

	return nil
}

// shutdown releases the run-scoped resources: the metrics listener and
// the ledger connection.
func (app *App) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	if app.metricsServer != nil {
		if err := app.metricsServer.Shutdown(ctx); err != nil {
			app.Logger.Error("Failed to shut down metrics server", "error", err)
		}
	}

	if app.ledger != nil {
		if err := app.ledger.Close(ctx); err != nil {
			app.Logger.Error("Failed to close run ledger", "error", err)
		}
	}
}
