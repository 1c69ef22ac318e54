package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rustyeddy/backview/backtest"
	"github.com/rustyeddy/backview/metrics"
	"github.com/rustyeddy/backview/pkg/id"
	"github.com/rustyeddy/backview/replay"
	"github.com/rustyeddy/backview/store"
)

func (s *Server) fail(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{"error": err.Error()})
}

// failStore maps store errors onto API statuses.
func (s *Server) failStore(c *gin.Context, err error) {
	if errors.Is(err, store.ErrNotFound) {
		s.fail(c, http.StatusNotFound, err)
		return
	}
	if errors.Is(err, store.ErrConflict) {
		s.fail(c, http.StatusConflict, err)
		return
	}
	s.log.Error("store error", "err", err)
	s.fail(c, http.StatusInternalServerError, err)
}

// ingestRun accepts an exported backtest result and files it under a
// fresh run ID.
func (s *Server) ingestRun(c *gin.Context) {
	res, err := backtest.Decode(c.Request.Body)
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}
	if err := res.Validate(); err != nil {
		s.fail(c, http.StatusUnprocessableEntity, err)
		return
	}

	runID := id.New()
	if err := s.store.RecordRun(c.Request.Context(), runID, res); err != nil {
		s.failStore(c, err)
		return
	}
	metrics.RunIngested()
	s.log.Info("run ingested", "run_id", runID, "symbol", res.Symbol,
		"candles", len(res.Candles), "trades", len(res.Trades))

	c.JSON(http.StatusCreated, gin.H{
		"run_id":  runID,
		"symbol":  res.Symbol,
		"candles": len(res.Candles),
		"trades":  len(res.Trades),
	})
}

func (s *Server) listRuns(c *gin.Context) {
	runs, err := s.store.ListRuns(c.Request.Context())
	if err != nil {
		s.failStore(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

func (s *Server) getRun(c *gin.Context) {
	res, err := s.store.GetRun(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.failStore(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) deleteRun(c *gin.Context) {
	runID := c.Param("id")
	if err := s.store.DeleteRun(c.Request.Context(), runID); err != nil {
		s.failStore(c, err)
		return
	}
	metrics.RunDeleted()
	s.log.Info("run deleted", "run_id", runID)
	c.Status(http.StatusNoContent)
}

// getFrame composes a single replay frame without a session: the same
// view a websocket client would see at the given cursor. Useful for
// deep links and for diffing against the live stream.
func (s *Server) getFrame(c *gin.Context) {
	res, err := s.store.GetRun(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.failStore(c, err)
		return
	}
	comp := replay.NewCompositor(res)

	cursor := comp.Len()
	if raw := c.Query("cursor"); raw != "" {
		cursor, err = strconv.Atoi(raw)
		if err != nil {
			s.fail(c, http.StatusBadRequest, errors.New("cursor must be an integer"))
			return
		}
	}

	playing := false
	if raw := c.Query("playing"); raw != "" {
		playing, err = strconv.ParseBool(raw)
		if err != nil {
			s.fail(c, http.StatusBadRequest, errors.New("playing must be a boolean"))
			return
		}
	}

	hidden, err := parseHidden(c.Query("hide"))
	if err != nil {
		s.fail(c, http.StatusBadRequest, err)
		return
	}

	state := replay.State{Status: replay.Idle, Cursor: cursor}
	if playing {
		state.Status = replay.Playing
	}

	metrics.FrameComposed("http")
	c.JSON(http.StatusOK, comp.Compose(state, hidden))
}

// parseHidden turns "sma_short,ema_fast" into a hidden-overlay set.
func parseHidden(raw string) (map[backtest.OverlayID]bool, error) {
	hidden := map[backtest.OverlayID]bool{}
	if raw == "" {
		return hidden, nil
	}
	for _, part := range strings.Split(raw, ",") {
		ov := backtest.OverlayID(strings.TrimSpace(part))
		if !ov.Valid() {
			return nil, errors.New("unknown overlay " + strconv.Quote(string(ov)))
		}
		hidden[ov] = true
	}
	return hidden, nil
}
