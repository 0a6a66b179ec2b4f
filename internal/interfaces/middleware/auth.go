package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/alertmgr/backend/pkg/auth"
	"github.com/alertmgr/backend/pkg/constants"
)

// TokenValidator turns a bearer token into claims
type TokenValidator func(tokenString string) (*auth.Claims, error)

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		constants.ResponseError:   "Unauthorized",
		constants.ResponseMessage: message,
		constants.ResponseCode:    "UNAUTHORIZED",
		constants.ResponseData:    nil,
	})
}

// RequireAuth validates the bearer token and stores the user in the context.
// A nil validator uses auth.ValidateToken.
func RequireAuth(validate TokenValidator) gin.HandlerFunc {
	if validate == nil {
		validate = auth.ValidateToken
	}
	return func(c *gin.Context) {
		authHeader := c.GetHeader(constants.HeaderAuthorization)
		if authHeader == "" {
			unauthorized(c, "No authorization token provided")
			return
		}

		// format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != strings.TrimSpace(constants.BearerPrefix) || parts[1] == "" {
			unauthorized(c, "Invalid authorization header format")
			return
		}

		claims, err := validate(parts[1])
		if err != nil {
			unauthorized(c, err.Error())
			return
		}

		c.Set(constants.ContextKeyUser, claims.User)
		c.Set(constants.ContextKeyToken, parts[1])
		c.Next()
	}
}
