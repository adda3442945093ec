package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"github.com/andreamilli9/portfolio-oracle-gpt/internal/bot"
	"github.com/andreamilli9/portfolio-oracle-gpt/internal/cache"
	"github.com/andreamilli9/portfolio-oracle-gpt/internal/config"
	"github.com/andreamilli9/portfolio-oracle-gpt/internal/db"
	"github.com/andreamilli9/portfolio-oracle-gpt/internal/domain"
	"github.com/andreamilli9/portfolio-oracle-gpt/internal/forecast"
	"github.com/andreamilli9/portfolio-oracle-gpt/internal/handler"
	"github.com/andreamilli9/portfolio-oracle-gpt/internal/job"
	"github.com/andreamilli9/portfolio-oracle-gpt/internal/provider"
	"github.com/andreamilli9/portfolio-oracle-gpt/internal/ratelimit"
	"github.com/andreamilli9/portfolio-oracle-gpt/internal/rates"
	"github.com/andreamilli9/portfolio-oracle-gpt/internal/recommend"
	"github.com/andreamilli9/portfolio-oracle-gpt/internal/repository"
	"github.com/andreamilli9/portfolio-oracle-gpt/internal/sentiment"
	"github.com/andreamilli9/portfolio-oracle-gpt/internal/service"
	"github.com/andreamilli9/portfolio-oracle-gpt/internal/ws"
	"github.com/andreamilli9/portfolio-oracle-gpt/pkg/tracing"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"

	_ "github.com/andreamilli9/portfolio-oracle-gpt/docs"
)

var (
	loadEnvFunc          = godotenv.Load
	loadConfigFunc       = config.Load
	initPostgresFunc     = db.InitPostgres
	initRedisFunc        = cache.InitRedis
	initTracerFunc       = tracing.InitTracer
	newWatchlistRepoFunc = repository.NewWatchlistRepository
	newClassifierFunc    = newClassifier
	newEstimatorFunc     = func(closes forecast.ClosesFetcher, tracer trace.Tracer) forecast.Estimator {
		return forecast.NewHeuristicEstimator(closes, tracer, nil)
	}
	newStockServiceFunc     = service.NewStockService
	newWatchlistServiceFunc = service.NewWatchlistService
	newRankerFunc           = recommend.NewRanker
	startRefreshPollerFunc  = func(p *job.RefreshPoller, ctx context.Context) { go p.Start(ctx) }
	startAlertPollerFunc    = func(p *job.AlertPoller, ctx context.Context) { go p.Start(ctx) }
	startTelegramBotFunc    = bot.StartTelegramBot
	newHandlerFunc          = handler.New
	newRouterFunc           = gin.Default
	setupSignalNotify       = ossignal.Notify
	waitForSignalFunc       = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc     = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc  = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           Portfolio Oracle API
// @version         1.0
// @description     Stock watchlist dashboard backend with quotes, news sentiment and heuristic forecasts.

// @host      localhost:8080
// @BasePath  /
func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool := initPostgresFunc(ctx, cfg.DatabaseURL)
	redisClient := initRedisFunc(ctx, cfg.RedisURL)

	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	watchlistRepo := newWatchlistRepoFunc(pool, tracer)
	if pool != nil {
		if err := watchlistRepo.RunMigrations(ctx); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	quoteProvider := provider.NewQuoteProvider(cfg.QuoteBaseURL, cfg.QuoteAPIKey, tracer)
	newsProvider := provider.NewNewsProvider(cfg.NewsBaseURL, cfg.NewsAPIKey, tracer)
	ratesProvider := provider.NewRatesProvider(cfg.RatesBaseURL, tracer)
	ratesService := rates.NewService(ratesProvider, tracer)

	classifier := newClassifierFunc(cfg, tracer)
	estimator := newEstimatorFunc(quoteProvider, tracer)
	pacer := ratelimit.NewPacer(cfg.QuoteRatePerMin)

	stockService := newStockServiceFunc(
		tracer, quoteProvider, newsProvider, classifier, estimator, pacer,
		redisClient, time.Duration(cfg.QuoteCacheSecs)*time.Second,
	)
	watchlistService := newWatchlistServiceFunc(tracer, watchlistRepo, stockService, ratesService)
	ranker := newRankerFunc(tracer, stockService, domain.TrendingSymbols)

	hub := ws.NewHub()

	refreshPoller := job.NewRefreshPoller(tracer, watchlistService, hub, time.Duration(cfg.RefreshPollSecs)*time.Second)
	startRefreshPollerFunc(refreshPoller, ctx)

	dispatcher := startTelegramBotFunc(cfg.TelegramBotToken, stockService, ranker)
	if dispatcher != nil {
		alertPoller := job.NewAlertPoller(tracer, ranker, dispatcher, time.Hour)
		startAlertPollerFunc(alertPoller, ctx)
	}

	h := newHandlerFunc(tracer, stockService, watchlistService, ranker, hub)

	r := newRouterFunc()
	r.Use(otelgin.Middleware("portfolio-oracle"))
	r.Use(cors.Default())

	h.RegisterRoutes(r)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: r,
	}

	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}

func newClassifier(cfg *config.Config, tracer trace.Tracer) sentiment.Classifier {
	switch cfg.SentimentStrategy {
	case "openai":
		return sentiment.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	case "inference":
		return sentiment.NewInference(provider.NewInferenceProvider(cfg.SentimentBaseURL, cfg.SentimentAPIKey, tracer))
	default:
		return sentiment.NewKeyword()
	}
}
