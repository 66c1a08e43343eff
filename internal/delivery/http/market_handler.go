package http

import (
	"github.com/labstack/echo/v4"

	"tradejournal/internal/domain"
)

// MarketHandler serves the current market snapshot.
type MarketHandler struct {
	market domain.MarketData
}

// NewMarketHandler creates a new MarketHandler
func NewMarketHandler(market domain.MarketData) *MarketHandler {
	return &MarketHandler{market: market}
}

// Snapshot returns the cached market snapshot, refreshing if stale.
// GET /api/market-data
func (h *MarketHandler) Snapshot(c echo.Context) error {
	snap, err := h.market.Snapshot(c.Request().Context())
	if err != nil {
		return InternalServerErrorResponse(c, "Could not fetch market data", err)
	}
	return SuccessResponse(c, snap)
}
