package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rustyeddy/backview/market"
)

// getOHLCV serves raw candle history for charting outside any run.
// start and end accept epoch seconds or any of the supported date
// forms; both are optional.
func (s *Server) getOHLCV(c *gin.Context) {
	symbol := c.Param("symbol")
	interval := c.DefaultQuery("interval", "1d")
	if _, err := market.IntervalSeconds(interval); err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}

	var start, end market.UnixTime
	var err error
	if raw := c.Query("start"); raw != "" {
		start, err = market.ParseTime(raw)
		if err != nil {
			s.fail(c, http.StatusBadRequest, fmt.Errorf("bad start: %w", err))
			return
		}
	}
	if raw := c.Query("end"); raw != "" {
		end, err = market.ParseTime(raw)
		if err != nil {
			s.fail(c, http.StatusBadRequest, fmt.Errorf("bad end: %w", err))
			return
		}
	}

	candles, err := s.store.GetCandles(c.Request.Context(), symbol, interval, start, end)
	if err != nil {
		s.failStore(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"symbol":   symbol,
		"interval": interval,
		"candles":  candles,
	})
}
