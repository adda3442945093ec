package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// GetRecommendations godoc
// @Summary      Rank trending symbols for a budget
// @Description  Scores a fixed set of trending symbols and returns BUY/SELL/HOLD calls
// @Tags         recommendations
// @Produce      json
// @Param        max_price  query  number  false  "Maximum price per share in USD"
// @Success      200  {array}  domain.Recommendation
// @Failure      400  {object}  map[string]string
// @Router       /api/recommendations [get]
func (h *Handler) GetRecommendations(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-recommendations")
	defer span.End()

	maxPrice := 0.0
	if raw := strings.TrimSpace(c.Query("max_price")); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "max_price must be a non-negative number"})
			return
		}
		maxPrice = parsed
	}
	span.SetAttributes(attribute.Float64("max_price", maxPrice))

	recs := h.ranker.Rank(ctx, maxPrice)
	c.JSON(http.StatusOK, recs)
}
