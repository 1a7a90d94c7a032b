package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/mkalens/sitehub/internal/about"
	"github.com/mkalens/sitehub/internal/auth"
	"github.com/mkalens/sitehub/internal/blog"
	"github.com/mkalens/sitehub/internal/config"
	"github.com/mkalens/sitehub/internal/db"
	"github.com/mkalens/sitehub/internal/events"
	"github.com/mkalens/sitehub/internal/middleware"
	"github.com/mkalens/sitehub/internal/misc"
	"github.com/mkalens/sitehub/internal/seed"
	"github.com/mkalens/sitehub/internal/services"
	"github.com/mkalens/sitehub/internal/settings"
	"github.com/mkalens/sitehub/internal/telemetry/metrics"
	"github.com/mkalens/sitehub/internal/telemetry/tracing"

	"github.com/getsentry/sentry-go"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config      *config.Config
	mongoClient *mongo.Client
	mongoDB     *mongo.Database

	authService  *auth.Service
	tokenService *auth.TokenService

	// telemetry
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	JWTSecret               []byte
	VersionInfo             string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	mongoClient, mongoDB, err := db.NewMongoDatabase(ctx, db.NewMongoDatabaseParams{
		URI:    params.Config.MongoURI,
		DBName: params.Config.MongoDBName,
	})
	if err != nil {
		return nil, fmt.Errorf("new mongo database: %w", err)
	}

	promRegistry := metrics.SetupPrometheus()
	metricsManager := metrics.NewManager("sitehub", "backend", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	tokenService, err := auth.NewTokenService(
		params.JWTSecret,
		params.Config.SigningAlgorithm,
		time.Duration(params.Config.TokenTTLMinutes)*time.Minute,
	)
	if err != nil {
		return nil, fmt.Errorf("new token service: %w", err)
	}

	adminsRepo, err := auth.NewRepo(ctx, mongoDB)
	if err != nil {
		return nil, fmt.Errorf("new admins repo: %w", err)
	}
	authService := auth.NewService(adminsRepo, tokenService)

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "sitehub-backend")
	if err != nil {
		return nil, err
	}

	if params.Config.SeedDemoData {
		if err := seed.DemoData(ctx, mongoDB); err != nil {
			log.Errorf("failed to seed demo data: %s", err)
		}
	}

	return &Server{
		config:      params.Config,
		mongoClient: mongoClient,
		mongoDB:     mongoDB,
		versionInfo: params.VersionInfo,

		authService:  authService,
		tokenService: tokenService,

		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) routerSetup(ctx context.Context) (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	authHandler := auth.NewHandler(s.authService, s.metricsManager)
	authHandler.SetupRoutes(r)

	blogHandler := blog.NewHandler(blog.NewRepo(s.mongoDB))
	blogHandler.SetupRoutes(r)

	servicesHandler := services.NewHandler(services.NewRepo(s.mongoDB))
	servicesHandler.SetupRoutes(r)

	eventsHandler := events.NewHandler(events.NewRepo(s.mongoDB))
	eventsHandler.SetupRoutes(r)

	aboutHandler := about.NewHandler(about.NewRepo(s.mongoDB))
	aboutHandler.SetupRoutes(r)

	settingsRepo, err := settings.NewRepo(ctx, s.mongoDB)
	if err != nil {
		return nil, fmt.Errorf("new settings repo: %w", err)
	}
	settingsHandler := settings.NewHandler(settingsRepo)
	settingsHandler.SetupRoutes(r)

	miscHandler := misc.NewHandler(s.versionInfo)
	miscHandler.SetupRoutes(r)

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.tokenService)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r, nil
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	router, err := s.routerSetup(ctx)
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	s.otelShutdown()
	log.Trace("otel shut down ...")

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.mongoClient != nil {
		log.Debugln("disconnecting mongo client ...")
		if err := s.mongoClient.Disconnect(ctx); err != nil {
			log.Errorf("failed to disconnect mongo client: %s", err)
		}
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
