package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alertmgr/backend/pkg/auth"
	"github.com/alertmgr/backend/pkg/constants"
	"github.com/alertmgr/backend/pkg/errors"
)

// GetUserFromContext extracts the authenticated user set by RequireAuth
func GetUserFromContext(c *gin.Context) *auth.UserSession {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil
	}
	user, ok := value.(auth.UserSession)
	if !ok {
		return nil
	}
	return &user
}

// requireUser returns the current user, or responds 401 and returns nil
func requireUser(c *gin.Context) *auth.UserSession {
	user := GetUserFromContext(c)
	if user == nil {
		RespondAppError(c, errors.NewUnauthorizedError("user not authenticated"))
	}
	return user
}

// RespondAppError sends a standardised JSON error response using pkg/errors.
// Server-side failures are attached to the context for the request logger.
func RespondAppError(c *gin.Context, err error) {
	code := errors.GetHTTPStatus(err)
	if code >= 500 {
		_ = c.Error(err)
	}

	message := err.Error()
	c.JSON(code, gin.H{
		constants.ResponseError:   message,
		constants.ResponseMessage: message,
		constants.ResponseCode:    errors.GetErrorCode(err),
		constants.ResponseData:    nil,
	})
}

// BindJSON binds JSON and returns true if successful. If failed, it sends bad request error.
func BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		RespondAppError(c, errors.NewValidationError("body", err.Error()))
		return false
	}
	return true
}

// HandleGetEnvelope executes a read action and returns the result wrapped in a JSON key
// Response: { [key]: result }
func HandleGetEnvelope[T any](c *gin.Context, key string, action func() (T, error)) {
	result, err := action()
	if err != nil {
		RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{key: result})
}
