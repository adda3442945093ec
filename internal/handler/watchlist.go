package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/andreamilli9/portfolio-oracle-gpt/internal/repository"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

type addRequest struct {
	Symbol string `json:"symbol" binding:"required"`
	Name   string `json:"name"`
}

// AddToWatchlist godoc
// @Summary      Add a symbol to the watchlist
// @Tags         watchlist
// @Accept       json
// @Produce      json
// @Param        body  body  addRequest  true  "Symbol to add"
// @Success      201  {object}  domain.WatchlistEntry
// @Failure      400  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]string
// @Router       /api/watchlist [post]
func (h *Handler) AddToWatchlist(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.add-watchlist")
	defer span.End()

	var req addRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbol is required"})
		return
	}
	span.SetAttributes(attribute.String("symbol", req.Symbol))

	entry, err := h.watchlist.Add(ctx, req.Symbol, req.Name)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "symbol already on watchlist"})
			return
		}
		status, payload := stockErrorResponse(err)
		c.JSON(status, payload)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// RemoveFromWatchlist godoc
// @Summary      Remove a symbol from the watchlist
// @Description  Soft delete; the symbol can be re-added later
// @Tags         watchlist
// @Produce      json
// @Param        symbol  path  string  true  "Ticker symbol"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/watchlist/{symbol} [delete]
func (h *Handler) RemoveFromWatchlist(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.remove-watchlist")
	defer span.End()

	symbol := strings.TrimSpace(c.Param("symbol"))
	if err := h.watchlist.Remove(ctx, symbol); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "symbol not on watchlist"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// GetPortfolio godoc
// @Summary      Get aggregated portfolio totals
// @Tags         portfolio
// @Produce      json
// @Param        currency  query  string  false  "Display currency (usd or eur)"  default(usd)
// @Success      200  {object}  domain.PortfolioSummary
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/portfolio [get]
func (h *Handler) GetPortfolio(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-portfolio")
	defer span.End()

	currency := strings.ToLower(strings.TrimSpace(c.Query("currency")))
	if currency != "" && currency != "usd" && currency != "eur" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "currency must be usd or eur"})
		return
	}

	summary, err := h.watchlist.Portfolio(ctx, currency)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}
