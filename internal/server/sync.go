package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Sync runs a full refresh for every account connected by the current user.
// Per-platform failures come back inside the synced array; the call itself
// only fails when the user cannot be resolved or the account list cannot be
// read.
func (s *Server) Sync(c *gin.Context) {
	userID, ok := s.currentUser(c)
	if !ok {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	report, err := s.syncerSvc.SyncAllAccounts(c.Request.Context(), userID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
