package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"productivity/internal/config"
	"productivity/internal/middleware"
	"productivity/internal/modules/catalog"
	"productivity/internal/modules/favorite"
	"productivity/internal/modules/live"
	"productivity/internal/modules/stats"
	"productivity/internal/modules/tips"
	"productivity/internal/pkg/cron"
	"productivity/internal/repository"
)

// App is the wired application: one store shared by every module.
type App struct {
	Router  *gin.Engine
	Hub     *live.Hub
	CronMgr *cron.Manager
	Stats   *stats.Service
}

type Options struct {
	CORSOrigins    []string
	DailyResetCron string
	TipOptions     []tips.Option
}

func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		CORSOrigins:    cfg.CORSOrigins,
		DailyResetCron: cfg.DailyResetCron,
	}
}

func BuildApplication(store repository.Store, opts Options) *App {
	hub := live.NewHub()

	tipService := tips.NewService(store, hub, opts.TipOptions...)
	favoriteService := favorite.NewService(store, hub)
	catalogService := catalog.NewService(store, hub)
	statsService := stats.NewService(store, hub)

	cronMgr := cron.NewCronManager()
	cronMgr.Add("daily_stats_reset", opts.DailyResetCron, stats.NewDailyResetJob(statsService))

	r := gin.New()
	// Match on the escaped path so %2F stays inside a single path parameter.
	r.UseRawPath = true
	r.UnescapePathValues = true
	r.Use(
		middleware.Trace(),
		middleware.RequestLogger(),
		middleware.ErrorLogger(),
		middleware.CORS(opts.CORSOrigins),
	)

	api := r.Group("/api")
	{
		api.GET("/health", health(store))

		tips.NewHandler(tipService).RegisterRoutes(api)
		favorite.NewHandler(favoriteService).RegisterRoutes(api)
		catalog.NewHandler(catalogService).RegisterRoutes(api)
		stats.NewHandler(statsService).RegisterRoutes(api)
		live.NewHandler(hub).RegisterRoutes(api)
	}

	return &App{Router: r, Hub: hub, CronMgr: cronMgr, Stats: statsService}
}

func health(store repository.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := store.GetStats(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
