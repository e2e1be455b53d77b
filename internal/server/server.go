package server

import (
	"context"
	"net/http"
	"time"

	accountdomain "github.com/creatorpulse/creatorpulse/internal/account/domain"
	activitydomain "github.com/creatorpulse/creatorpulse/internal/activity/domain"
	"github.com/creatorpulse/creatorpulse/internal/config"
	obsmetrics "github.com/creatorpulse/creatorpulse/internal/observability/metrics"
	rollupdomain "github.com/creatorpulse/creatorpulse/internal/rollup/domain"
	syncerdomain "github.com/creatorpulse/creatorpulse/internal/syncer/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, registry *prometheus.Registry) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(UserContext())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	return r
}

func registerGin(log *zap.Logger, registry *prometheus.Registry) *gin.Engine {
	return NewEngine(log, registry)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine      *gin.Engine
	cfg         config.Config
	accountSvc  accountdomain.Service
	activitySvc activitydomain.Service
	rollupSvc   rollupdomain.Service
	syncerSvc   syncerdomain.Service
	obsMetrics  *obsmetrics.Metrics
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	AccountSvc  accountdomain.Service
	ActivitySvc activitydomain.Service
	RollupSvc   rollupdomain.Service
	SyncerSvc   syncerdomain.Service
	ObsMetrics  *obsmetrics.Metrics `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		accountSvc:  p.AccountSvc,
		activitySvc: p.ActivitySvc,
		rollupSvc:   p.RollupSvc,
		syncerSvc:   p.SyncerSvc,
		obsMetrics:  p.ObsMetrics,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	v1 := s.engine.Group("/v1")

	v1.POST("/sync", s.Sync)
	v1.POST("/aggregate", s.Aggregate)

	v1.POST("/activity", s.RecordActivity)
	v1.GET("/activity", s.ListActivity)

	v1.GET("/metrics/daily", s.ListDailyMetrics)
	v1.GET("/metrics/totals", s.ListTotalMetrics)

	v1.POST("/accounts", s.LinkAccount)
	v1.GET("/accounts", s.ListAccounts)
	v1.DELETE("/accounts/:platform", s.DisconnectAccount)
}
