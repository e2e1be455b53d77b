package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
)

func (s *Server) queryUser(c *gin.Context) (snowflake.ID, bool) {
	raw := strings.TrimSpace(c.Query("user_id"))
	if raw != "" {
		userID, err := snowflake.ParseString(raw)
		if err != nil || userID == 0 {
			return 0, false
		}
		return userID, true
	}
	return s.currentUser(c)
}

func (s *Server) ListDailyMetrics(c *gin.Context) {
	userID, ok := s.queryUser(c)
	if !ok {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	rows, err := s.rollupSvc.ListDaily(c.Request.Context(), userID, strings.TrimSpace(c.Query("platform")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"daily": rows})
}

func (s *Server) ListTotalMetrics(c *gin.Context) {
	userID, ok := s.queryUser(c)
	if !ok {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	rows, err := s.rollupSvc.ListTotals(c.Request.Context(), userID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"totals": rows})
}
