package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"realtorai/internal/model"
	"realtorai/internal/service"
)

// MarketHandler serves market-level information
type MarketHandler struct {
	market *service.MarketService
}

// NewMarketHandler creates a market handler
func NewMarketHandler(market *service.MarketService) *MarketHandler {
	return &MarketHandler{market: market}
}

// Overview handles GET /api/market-overview
func (h *MarketHandler) Overview(c *gin.Context) {
	row, err := h.market.Overview(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

// Policy handles GET /api/property-policy
func (h *MarketHandler) Policy(c *gin.Context) {
	row, err := h.market.Policy(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

// Stats handles GET /api/market-stats
func (h *MarketHandler) Stats(c *gin.Context) {
	data, err := h.market.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.MarketStatsResponse{Data: data})
}

// Trend handles GET /api/market-trend
func (h *MarketHandler) Trend(c *gin.Context) {
	data, err := h.market.Trend(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.MarketTrendResponse{Data: data})
}
