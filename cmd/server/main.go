package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "lintang/campusnav/docs"
	"lintang/campusnav/pkg/builder"
	"lintang/campusnav/pkg/campus"
	"lintang/campusnav/pkg/config"
	"lintang/campusnav/pkg/engine/routingalgorithm"
	"lintang/campusnav/pkg/engine/snapping"
	"lintang/campusnav/pkg/kv"
	"lintang/campusnav/pkg/logger"
	"lintang/campusnav/pkg/server/rest"
	"lintang/campusnav/pkg/server/rest/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

//	@title			campusnav API
//	@version		1.0
//	@description	campus walking route engine in go

//	@contact.name	lintang birda saputra
//	@description 	campus walking route engine in go. Dijkstra over a stitched walkway graph, road snapping and walking time estimates.

//	@license.name	GNU Affero General Public License v3.0
//	@license.url	https://www.gnu.org/licenses/gpl-3.0.en.html

// @host		localhost:5000
// @BasePath	/api
// @schemes	http
func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.AppEnv, "campusnav")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dataset, err := campus.LoadFile(ctx, cfg.Dataset, cfg.DatasetFormat)
	if err != nil {
		log.Fatal("failed to load campus dataset", zap.String("path", cfg.Dataset), zap.Error(err))
	}
	log.Info("campus dataset loaded", zap.Int("features", len(dataset.Features)))

	graph := builder.Build(dataset.Features,
		builder.WithStitchThreshold(cfg.StitchThreshold),
		builder.WithLogger(log),
	)

	kvDB, err := kv.OpenKVDB(cfg.PlaceDB, log, cfg.AppEnv != "production")
	if err != nil {
		log.Fatal("failed to open place index", zap.Error(err))
	}
	defer kvDB.Close()
	if err := kvDB.CreatePlaceKV(dataset.Places()); err != nil {
		log.Fatal("failed to build place index", zap.Error(err))
	}

	routingAlgorithm := routingalgorithm.NewRouteAlgorithm(graph)
	roadSnapper := snapping.NewRoadSnapper(graph, cfg.SnapTolerance)
	navigatorSvc := service.NewNavigationService(graph, routingAlgorithm, roadSnapper, dataset, kvDB, log)

	reg := prometheus.NewRegistry()
	m := rest.NewMetrics(reg)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(rest.ZapLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(rest.PromeHttpMiddleware(m)) // prometheus http middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Mount("/debug", middleware.Profiler())

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"), //The url pointing to API definition
	))

	rest.NavigatorRouter(r, navigatorSvc, m)

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.ListenAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down campusnav...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("campusnav stopped")
}
