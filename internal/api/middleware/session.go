package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	SessionContextKey = "cart_session_id"
	// SessionHeader lets non-browser clients carry their session without cookies
	SessionHeader = "X-Cart-Session"

	sessionMaxAge = 30 * 24 * 60 * 60
)

// SessionMiddleware resolves the cart session from the header or cookie and issues a
// new one when neither holds a valid uuid
func SessionMiddleware(cookieName string, secure bool, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := ""
		if h := c.GetHeader(SessionHeader); h != "" {
			if id, err := uuid.Parse(h); err == nil {
				sessionID = id.String()
			}
		}
		if sessionID == "" {
			if v, err := c.Cookie(cookieName); err == nil {
				if id, err := uuid.Parse(v); err == nil {
					sessionID = id.String()
				}
			}
		}
		if sessionID == "" {
			sessionID = uuid.New().String()
			logger.Debug("Issued cart session", zap.String("session_id", sessionID))
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cookieName, sessionID, sessionMaxAge, "/", "", secure, true)
		c.Header(SessionHeader, sessionID)
		c.Set(SessionContextKey, sessionID)
		c.Next()
	}
}

// GetSessionID retrieves the cart session id from the Gin context
func GetSessionID(c *gin.Context) (string, bool) {
	v, exists := c.Get(SessionContextKey)
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
