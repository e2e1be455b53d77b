package server

import (
	"net/http"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
)

type aggregateRequest struct {
	UserID string `json:"user_id"`
}

func (s *Server) Aggregate(c *gin.Context) {
	var req aggregateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	userID, err := snowflake.ParseString(strings.TrimSpace(req.UserID))
	if err != nil || userID == 0 {
		if fromCtx, ok := s.currentUser(c); ok && strings.TrimSpace(req.UserID) == "" {
			userID = fromCtx
		} else {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
	}

	if err := s.rollupSvc.Aggregate(c.Request.Context(), userID); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "aggregated"})
}
