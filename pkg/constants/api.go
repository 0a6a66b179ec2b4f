package constants

// HTTP and API constants
const (
	ContentTypeJSON = "application/json"

	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"

	BearerPrefix = "Bearer "

	// Response Keys
	ResponseError   = "error"
	ResponseMessage = "message"
	ResponseData    = "data"
	ResponseCode    = "code"
)

// Context Keys
const (
	ContextKeyUser  = "user"
	ContextKeyToken = "token"
)
