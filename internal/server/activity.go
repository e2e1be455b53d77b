package server

import (
	"net/http"

	activitydomain "github.com/creatorpulse/creatorpulse/internal/activity/domain"
	"github.com/gin-gonic/gin"
)

// RecordActivity appends a batch of raw events. The batch is all-or-nothing:
// one malformed event rejects the request before anything is written.
func (s *Server) RecordActivity(c *gin.Context) {
	var req activitydomain.RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	recorded, err := s.activitySvc.Record(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "recorded": recorded})
}

func (s *Server) ListActivity(c *gin.Context) {
	var req activitydomain.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	if req.UserID == "" {
		if userID, ok := s.currentUser(c); ok {
			req.UserID = userID.String()
		}
	}

	resp, err := s.activitySvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
