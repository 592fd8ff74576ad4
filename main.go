// main.go
package main

import (
	"context"
	"log"

	"kino-booking/cmd"
	"kino-booking/internal/adaptor"
	"kino-booking/internal/data/repository"
	"kino-booking/internal/usecase"
	"kino-booking/internal/wire"
	"kino-booking/internal/worker"
	"kino-booking/pkg/cache"
	"kino-booking/pkg/database"
	"kino-booking/pkg/metrics"
	"kino-booking/pkg/mq"
	"kino-booking/pkg/navigation"
	"kino-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	if config.Database.Migrate {
		if err := database.RunMigrations(config.Database); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
		logger.Info("Migrations applied")
	}

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	codec, err := navigation.NewCodec([]byte(config.Navigation.CodecKey))
	if err != nil {
		logger.Fatal("Failed to create navigation codec", zap.Error(err))
	}

	deps := usecase.Dependencies{
		IDs:     utils.NewReservationIDGenerator(utils.SystemClock, config.Reservation.Epoch, utils.SystemRandom),
		Clock:   utils.SystemClock,
		Tx:      database.NewTransactor(db, logger),
		Metrics: metrics.New(),
	}
	checks := map[string]adaptor.HealthCheck{
		"postgres": db.Ping,
	}

	if config.Redis.Enabled() {
		client := cache.NewClient(config.Redis)
		defer client.Close()

		if err := cache.Ping(context.Background(), client); err != nil {
			logger.Warn("Redis unreachable, running without cache and lock", zap.Error(err))
		} else {
			deps.Cache = cache.NewJSONCache(client, config.App.Name)
			deps.Locker = cache.NewLockManager(client)
			checks["redis"] = func(ctx context.Context) error { return cache.Ping(ctx, client) }
			logger.Info("Redis connected", zap.String("addr", config.Redis.Addr))
		}
	}

	if config.AMQP.Enabled() {
		publisher, err := mq.NewPublisher(config.AMQP.URL, logger)
		if err != nil {
			logger.Warn("RabbitMQ unreachable, ticket events disabled", zap.Error(err))
		} else {
			defer publisher.Close()

			tickets, err := mq.NewTicketPublisher(publisher, config.AMQP.TicketQueue)
			if err != nil {
				logger.Fatal("Failed to declare ticket queue", zap.Error(err))
			}
			deps.Publisher = tickets
			logger.Info("RabbitMQ connected", zap.String("queue", config.AMQP.TicketQueue))
		}
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, deps, codec, checks, config, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cleaner := worker.NewExpiredReservationCleaner(app.Service.Maintenance, config.Worker.CleanInterval, logger)
	scheduler := worker.NewDailyShowScheduler(app.Service.Maintenance, config.Worker.ScheduleInterval, logger)
	go cleaner.Start(ctx)
	go scheduler.Start(ctx)
	defer cleaner.Stop()
	defer scheduler.Stop()

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server error", zap.Error(err))
	}
}
