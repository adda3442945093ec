package handler

import (
	"context"

	"github.com/andreamilli9/portfolio-oracle-gpt/internal/domain"
	"github.com/andreamilli9/portfolio-oracle-gpt/internal/ws"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

type StockReader interface {
	GetQuote(ctx context.Context, symbol string) (*domain.Quote, error)
	GetStockDetail(ctx context.Context, symbol string) (*domain.StockDetail, error)
}

type WatchlistManager interface {
	Add(ctx context.Context, symbol, name string) (*domain.WatchlistEntry, error)
	Remove(ctx context.Context, symbol string) error
	Entries(ctx context.Context) ([]domain.WatchlistEntry, error)
	Quotes(ctx context.Context) ([]domain.Quote, error)
	Portfolio(ctx context.Context, currency string) (*domain.PortfolioSummary, error)
}

type Recommender interface {
	Rank(ctx context.Context, maxPrice float64) []domain.Recommendation
}

type Handler struct {
	tracer    trace.Tracer
	stocks    StockReader
	watchlist WatchlistManager
	ranker    Recommender
	hub       *ws.Hub
}

func New(
	tracer trace.Tracer,
	stocks StockReader,
	watchlist WatchlistManager,
	ranker Recommender,
	hub *ws.Hub,
) *Handler {
	return &Handler{
		tracer:    tracer,
		stocks:    stocks,
		watchlist: watchlist,
		ranker:    ranker,
		hub:       hub,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.GET("/api/stocks", h.GetStocks)
	r.GET("/api/stocks/:symbol", h.GetStockDetail)
	r.POST("/api/watchlist", h.AddToWatchlist)
	r.DELETE("/api/watchlist/:symbol", h.RemoveFromWatchlist)
	r.GET("/api/recommendations", h.GetRecommendations)
	r.GET("/api/portfolio", h.GetPortfolio)
	r.GET("/ws", h.StreamQuotes)
}

// Health godoc
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}
