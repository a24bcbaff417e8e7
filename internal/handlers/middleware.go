package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/talakunchi/exam-portal-service/internal/utils"
)

const (
	adminCookieName     = "adminToken"
	candidateCookieName = "candidateToken"
)

// AuthMiddleware verifies the session cookie for the given role and puts
// the caller's identity on the gin context.
func AuthMiddleware(tokens *utils.TokenManager, role string) gin.HandlerFunc {
	cookieName := candidateCookieName
	if role == utils.RoleAdmin {
		cookieName = adminCookieName
	}

	return func(c *gin.Context) {
		tokenString, err := c.Cookie(cookieName)
		if err != nil || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Authentication required",
			})
			return
		}

		claims, err := tokens.Verify(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Invalid or expired session",
			})
			return
		}
		if claims.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
				Message: "Insufficient permissions",
			})
			return
		}

		c.Set("user_id", claims.Subject)
		c.Set("user_role", claims.Role)
		c.Next()
	}
}

func setSessionCookie(c *gin.Context, name, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, token, maxAge, "/", "", false, true)
}

func clearSessionCookie(c *gin.Context, name string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, "", -1, "/", "", false, true)
}
