package server

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/betterscore/scoreboard-service/internal/broadcast"
	"github.com/betterscore/scoreboard-service/internal/clock"
	"github.com/betterscore/scoreboard-service/internal/config"
	"github.com/betterscore/scoreboard-service/internal/domain/game"
	"github.com/betterscore/scoreboard-service/internal/filesync"
	httpserver "github.com/betterscore/scoreboard-service/internal/http"
	"github.com/betterscore/scoreboard-service/internal/http/handlers"
	"github.com/betterscore/scoreboard-service/internal/logging"
	"github.com/betterscore/scoreboard-service/internal/metrics"
	"github.com/betterscore/scoreboard-service/internal/publish"
	"github.com/betterscore/scoreboard-service/internal/scoreboard"
)

var (
	metricsSetup = metrics.Setup
	natsConnect  = publish.Connect
)

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	files         *filesync.Writer
	ctrl          *scoreboard.Controller
	hub           *broadcast.Hub
	publisher     *publish.Publisher
	httpServer    httpServer
	metricsServer httpServer
	metricsStop   func(context.Context) error
}

// New wires the file writer, controller, websocket hub, optional NATS publisher and HTTP server.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithMetrics(cfg, logger, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) *Server {
	rec, metricsSrv, metricsStop := buildMetrics(cfg, logger, recorder)

	files := filesync.NewWriter(cfg.Output.Dir,
		filesync.WithStateSnapshot(cfg.Output.StateSnapshot),
		filesync.WithRecorder(rec),
	)

	hubCfg := broadcast.DefaultConfig()
	if len(cfg.HTTP.TrustedOrigins) > 0 {
		hubCfg.AllowedOrigins = cfg.HTTP.TrustedOrigins
	}
	hub := broadcast.NewHub(hubCfg, logger, rec)

	opts := []scoreboard.Option{
		scoreboard.WithLogger(logger),
		scoreboard.WithRecorder(rec),
		scoreboard.WithNotifier(hub),
		scoreboard.WithClockOptions(clock.WithInterval(cfg.TickInterval)),
	}

	publisher := buildPublisher(cfg, logger)
	if publisher != nil {
		opts = append(opts, scoreboard.WithNotifier(publisher))
	}

	if state, ok := restoreState(cfg, logger); ok {
		opts = append(opts, scoreboard.WithInitialState(state))
	}

	ctrl := scoreboard.New(cfg.Rules, files, opts...)
	hub.Publish(ctrl.State())

	s := newServerWithDeps(cfg, logger, ctrl, buildHTTPServer(cfg, ctrl, files, hub, logger, rec))
	s.metrics = rec
	s.metricsServer = metricsSrv
	s.metricsStop = metricsStop
	s.files = files
	s.hub = hub
	s.publisher = publisher
	return s
}

func newServerWithDeps(cfg config.Config, logger *slog.Logger, ctrl *scoreboard.Controller, httpSrv httpServer) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		metrics:    metrics.NewRecorder(),
		ctrl:       ctrl,
		httpServer: httpSrv,
	}
}

func buildHTTPServer(cfg config.Config, ctrl *scoreboard.Controller, files *filesync.Writer, hub *broadcast.Hub, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	h := handlers.NewHandler(ctrl, logger, files.Status)
	router := httpserver.NewRouter(h, httpserver.RouterConfig{
		Logger:  logger,
		Metrics: recorder,
		HTTP:    cfg.HTTP,
		Stream:  hub,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		IdleTimeout:       idleTimeout,
	}
	return netHTTPServer{srv: srv}
}

func buildPublisher(cfg config.Config, logger *slog.Logger) *publish.Publisher {
	if cfg.NATS.URL == "" {
		return nil
	}
	publisher, err := natsConnect(cfg.NATS.URL, cfg.NATS.Subject, logger)
	if err != nil {
		logging.Warn(logger, "nats unavailable, continuing without publishing", "url", cfg.NATS.URL, "error", err)
		return nil
	}
	logging.Info(logger, "publishing state to nats", "subject", publisher.Subject())
	return publisher
}

func restoreState(cfg config.Config, logger *slog.Logger) (game.State, bool) {
	if !cfg.Output.Restore {
		return game.State{}, false
	}
	state, err := filesync.LoadState(cfg.Output.Dir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logging.Warn(logger, "ignoring saved state", "dir", cfg.Output.Dir, "error", err)
		}
		return game.State{}, false
	}
	logging.Info(logger, "restored saved state", "period", state.Period, "seconds", state.Seconds)
	return state, true
}

// Run prepares the output directory, writes the initial files, then serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.prepareOutput(ctx)
	s.startMetrics()
	s.startServer(stop)

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) prepareOutput(ctx context.Context) {
	if s.files != nil {
		created, err := s.files.EnsureDir()
		if err != nil {
			logging.Error(s.logger, "failed to create output directory", err, "dir", s.files.Dir())
		} else if created {
			logging.Info(s.logger, "created output directory", "dir", s.files.Dir())
		}
	}
	if res := s.ctrl.Sync(ctx); res.SyncErr != nil {
		logging.Warn(s.logger, "initial sync failed", "error", res.SyncErr)
	}
}

func (s *Server) startServer(stop context.CancelFunc) {
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Stop the clock first so no tick lands after the final files are written.
	s.ctrl.Close()
	if s.hub != nil {
		s.hub.Close()
	}
	if err := s.publisher.Close(); err != nil {
		logging.Warn(s.logger, "nats drain failed", "error", err)
	}

	g, gctx := errgroup.WithContext(shutdownCtx)
	g.Go(func() error {
		if err := s.httpServer.Shutdown(gctx); err != nil {
			logging.Error(s.logger, "graceful shutdown failed", err)
			return err
		}
		return nil
	})
	if s.metricsServer != nil {
		g.Go(func() error {
			if err := s.metricsServer.Shutdown(gctx); err != nil {
				logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
				return err
			}
			return nil
		})
	}
	_ = g.Wait()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "error", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readHeaderTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		logging.Info(logger, "starting "+name+" server", slog.String("addr", srv.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Warn(logger, name+" server failed", "error", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}

// Controller exposes the scoreboard controller (useful for tests).
func (s *Server) Controller() *scoreboard.Controller {
	return s.ctrl
}
