package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/MichalMitros/crm-console/internal/dashboard"
	"github.com/gin-gonic/gin"
)

func (s *Server) getDashboard(c *gin.Context) {
	respond(c, http.StatusOK, s.dashboard.Snapshot())
}

// refreshDashboard reloads dashboard. Parts which loaded are returned even when others failed.
func (s *Server) refreshDashboard(c *gin.Context) {
	if err := s.dashboard.Refresh(c.Request.Context()); err != nil {
		snapshot := s.dashboard.Snapshot()
		respondError(c, err, dashboard.ErrorMessage(err), snapshot)
		return
	}

	respond(c, http.StatusOK, s.dashboard.Snapshot())
}

func (s *Server) updateStats(c *gin.Context) {
	var update dashboard.StatsUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		respondError(c, fmt.Errorf("%w: %w", errBadRequest, err), "Invalid stats", nil)
		return
	}

	respond(c, http.StatusOK, s.dashboard.UpdateStats(update))
}

func (s *Server) getHistory(c *gin.Context) {
	limit := s.historyLimit
	if raw, ok := c.GetQuery("limit"); ok {
		var err error
		if limit, err = strconv.Atoi(raw); err != nil || limit <= 0 {
			respondError(c, fmt.Errorf("%w: limit %q", errBadRequest, raw), "Invalid limit", nil)
			return
		}
	}

	history, err := s.dashboard.History(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err, "", nil)
		return
	}

	respond(c, http.StatusOK, history)
}
