package server

import (
	"net/http"

	accountdomain "github.com/creatorpulse/creatorpulse/internal/account/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) LinkAccount(c *gin.Context) {
	userID, ok := s.currentUser(c)
	if !ok {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	var req accountdomain.LinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	account, err := s.accountSvc.Link(c.Request.Context(), userID, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, account)
}

func (s *Server) ListAccounts(c *gin.Context) {
	userID, ok := s.currentUser(c)
	if !ok {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	accounts, err := s.accountSvc.List(c.Request.Context(), userID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"accounts": accounts})
}

func (s *Server) DisconnectAccount(c *gin.Context) {
	userID, ok := s.currentUser(c)
	if !ok {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	if err := s.accountSvc.Disconnect(c.Request.Context(), userID, c.Param("platform")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "disconnected"})
}
