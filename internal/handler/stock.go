package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/andreamilli9/portfolio-oracle-gpt/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// GetStocks godoc
// @Summary      Get the active watchlist with fresh quotes
// @Description  Returns the user's watchlist entries, their current quotes and the aggregated portfolio summary
// @Tags         stocks
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /api/stocks [get]
func (h *Handler) GetStocks(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-stocks")
	defer span.End()

	entries, err := h.watchlist.Entries(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	quotes, err := h.watchlist.Quotes(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	summary, err := h.watchlist.Portfolio(ctx, c.Query("currency"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"watchlist": entries,
		"quotes":    quotes,
		"portfolio": summary,
	})
}

// GetStockDetail godoc
// @Summary      Get the merged per-symbol record
// @Description  Quote, analyzed news and three forecast horizons for one symbol
// @Tags         stocks
// @Produce      json
// @Param        symbol  path  string  true  "Ticker symbol (e.g., AAPL)"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      502  {object}  map[string]interface{}
// @Router       /api/stocks/{symbol} [get]
func (h *Handler) GetStockDetail(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-stock-detail")
	defer span.End()

	symbol := strings.ToUpper(strings.TrimSpace(c.Param("symbol")))
	span.SetAttributes(attribute.String("symbol", symbol))

	detail, err := h.stocks.GetStockDetail(ctx, symbol)
	if err != nil {
		status, payload := stockErrorResponse(err)
		c.JSON(status, payload)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// stockErrorResponse maps a classified error onto an HTTP status and a body
// carrying the remediation hint and retry flag the dashboard renders.
func stockErrorResponse(err error) (int, gin.H) {
	var se *domain.StockError
	if !errors.As(err, &se) {
		se = domain.ClassifyError(err, "handling the request")
	}

	status := http.StatusBadGateway
	switch se.Type {
	case domain.ErrInvalidSymbol:
		status = http.StatusBadRequest
	case domain.ErrNoData:
		status = http.StatusNotFound
	case domain.ErrAPILimit:
		status = http.StatusTooManyRequests
	}

	return status, gin.H{"error": se}
}
