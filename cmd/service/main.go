package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mkalens/sitehub/internal"
	"github.com/mkalens/sitehub/internal/config"
	"github.com/mkalens/sitehub/internal/logging"
	"github.com/mkalens/sitehub/pkg"

	log "github.com/sirupsen/logrus"
)

// set via ldflags on build
var version = "dev"

func main() {
	fmt.Println("starting ...")

	env := flag.String("env", "development", "environment: development or production")
	configPath := flag.String("config", "config.toml", "path to the config file")
	logFormatJSON := flag.Bool("log-format-json", false, "use JSON log format")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    *logFormatJSON,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        os.Getenv("SENTRY_DSN"),
		SentryServerName: "sitehub-backend",
	})

	if mongoURI := os.Getenv("SITEHUB_MONGO_URI"); mongoURI != "" {
		cfg.MongoURI = mongoURI
	}

	jwtSecret := os.Getenv("SITEHUB_JWT_SECRET")
	if jwtSecret == "" {
		if cfg.Environment == "production" {
			log.Fatal("jwt secret not set, use SITEHUB_JWT_SECRET env var to set it")
		}
		// dev convenience only, tokens die with the process
		jwtSecret, err = pkg.GenerateRandomString(48)
		if err != nil {
			log.Fatalf("generate fallback jwt secret: %s", err)
		}
		log.Warn("SITEHUB_JWT_SECRET not set, using a random one-off secret")
	}

	honeycombTracingEnabled := os.Getenv("HONEYCOMB_ENABLED") == "true"

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server, err := internal.NewServer(ctx, internal.NewServerParams{
		Config:                  cfg,
		JWTSecret:               []byte(jwtSecret),
		VersionInfo:             version,
		HoneycombTracingEnabled: honeycombTracingEnabled,
	})
	if err != nil {
		log.Fatalf("create server: %s", err)
	}

	server.Serve(ctx, cfg.Host, cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	receivedSig := <-quit

	log.Warnf("signal [%s] received ...", receivedSig)

	cancel()
	server.GracefulShutdown()
}
