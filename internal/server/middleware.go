package server

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/creatorpulse/creatorpulse/internal/usercontext"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HeaderUser identifies the acting user. Authentication itself happens
// upstream; the gateway strips and re-sets this header.
const HeaderUser = "X-User-ID"

// UserContext copies the user header into the request context so services
// below the handler layer never touch gin.
func UserContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(HeaderUser))
		if raw != "" {
			if userID, err := snowflake.ParseString(raw); err == nil {
				ctx := usercontext.WithUserID(c.Request.Context(), userID)
				c.Request = c.Request.WithContext(ctx)
			}
		}
		c.Next()
	}
}

func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	log = log.Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
		}
		if lastErr := c.Errors.Last(); lastErr != nil {
			fields = append(fields, zap.Error(lastErr.Err))
		}
		if c.Writer.Status() >= 500 {
			log.Error("request", fields...)
			return
		}
		log.Info("request", fields...)
	}
}

func (s *Server) currentUser(c *gin.Context) (snowflake.ID, bool) {
	return usercontext.UserIDFromContext(c.Request.Context())
}
