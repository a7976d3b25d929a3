package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/entrenoapp/datasync/internal/config"
	"github.com/entrenoapp/datasync/internal/datasync"
	"github.com/entrenoapp/datasync/internal/logstore"
	"github.com/entrenoapp/datasync/internal/middleware"
	"github.com/entrenoapp/datasync/internal/routines"
	"github.com/entrenoapp/datasync/internal/telemetry/metrics"
	"github.com/entrenoapp/datasync/internal/workoutapi"

	"github.com/getsentry/sentry-go"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// Server wires the sync engine behind the localhost HTTP trigger API.
type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server

	config         *config.Config
	slotKV         logstore.KV
	logRepo        *logstore.Log
	syncService    *datasync.Service
	routineSyncer  *routines.Syncer
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
}

func NewServer(cfg *config.Config) (*Server, error) {
	slotKV, err := newSlotKV(cfg)
	if err != nil {
		return nil, err
	}

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metricsManager := metrics.NewManager("datasync", "service", promRegistry)

	apiClient := workoutapi.NewClient(cfg.APIBaseURL, nil)
	logRepo := logstore.NewLog(slotKV)

	return &Server{
		config:         cfg,
		slotKV:         slotKV,
		logRepo:        logRepo,
		syncService:    datasync.NewService(logRepo, apiClient, metricsManager, cfg.WorkoutsListLimit),
		routineSyncer:  routines.NewSyncer(slotKV, apiClient),
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
	}, nil
}

func newSlotKV(cfg *config.Config) (logstore.KV, error) {
	switch cfg.StorageBackend {
	case "sqlite":
		return logstore.NewSqliteKV(cfg.StoragePath)
	case "dir":
		return logstore.NewFileKV(cfg.StoragePath)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.StorageBackend)
	}
}

func (s *Server) routerSetup() *mux.Router {
	handler := datasync.NewHandler(s.syncService, s.routineSyncer, s.logRepo, s.metricsManager)

	r := mux.NewRouter()
	r.HandleFunc("/api/sync/transition", handler.HandleTransition).Methods("POST")
	r.HandleFunc("/api/sync/routines", handler.HandleRoutineSync).Methods("POST")
	r.HandleFunc("/api/sync/log/size", handler.HandleLogSize).Methods("GET")

	r.Use(
		middleware.PanicRecovery(s.metricsManager),
		middleware.LogRequest(),
	)

	return r
}

func (s *Server) Serve(host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
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
			log.Fatalf("sync service, listen and serve: %s", err)
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

	if closer, ok := s.slotKV.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			log.Errorf("failed to close slot storage: %s", err)
		}
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown http server")
	}
	log.Warnln("server shut down")

	if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown metrics http server")
	}
	log.Warnln("metrics server shut down")
}
