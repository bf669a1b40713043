package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"home_energy_audit/internal/engine"
	"home_energy_audit/internal/handlers"
	"home_energy_audit/internal/logger"
	"home_energy_audit/internal/repository"
	"home_energy_audit/internal/repository/db"
	"home_energy_audit/internal/server"
	"home_energy_audit/internal/service"

	"github.com/spf13/viper"
)

// defaultRetentionTick is how often stale audit runs are pruned.
const defaultRetentionTick = 1 * time.Hour

func main() {
	// load config.yml first so the log level is configurable
	if err := loadConfig(); err != nil {
		fallbackLog := logger.Get(logger.InfoLevel)
		fallbackLog.Fatalw("error reading config", "err", err)
	}

	log := logger.Get(viper.GetString("log.level"))

	// open DB
	sqlDB, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(sqlDB)
	services := service.NewService(repos, serviceOptions())
	apiHandler := handlers.NewHandler(services, log)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// start run-history pruning (via composed service)
	go services.Retention.Run(ctx, retentionTick())

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

// serviceOptions maps config keys onto service knobs. Absent keys read as
// zero values, which fall back to built-in defaults downstream.
func serviceOptions() service.Options {
	return service.Options{
		SigningKey: viper.GetString("auth.signing_key"),
		Thresholds: engine.Thresholds{
			MinDollars: viper.GetFloat64("recommend.min_dollars"),
			MinCO2Kg:   viper.GetFloat64("recommend.min_co2_kg"),
			TopN:       viper.GetInt("recommend.top_n"),
		},
		RetentionAge: time.Duration(viper.GetInt("retention.max_age_days")) * 24 * time.Hour,
	}
}

func retentionTick() time.Duration {
	if d := viper.GetDuration("retention.tick"); d > 0 {
		return d
	}
	return defaultRetentionTick
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "audit.db")
		dbPath = "audit.db"
	}
	return db.InitDB(dbPath)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
