package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error type names carried on the wire in the "errorType" field.
const (
	TypeValidation    = "ValidationError"
	TypeUnauthorized  = "UnauthorizedError"
	TypeForbidden     = "ForbiddenError"
	TypeNotFound      = "NotFoundError"
	TypeConfiguration = "ConfigurationError"
	TypeInternal      = "InternalError"
	TypeEmail         = "EmailError"
)

// ErrorBody is the JSON shape every error response uses.
type ErrorBody struct {
	Error     string `json:"error"`
	ErrorType string `json:"errorType"`
}

func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

func Fail(c *gin.Context, status int, errorType, message string) {
	c.AbortWithStatusJSON(status, ErrorBody{
		Error:     message,
		ErrorType: errorType,
	})
}

func ValidationError(c *gin.Context, message string) {
	Fail(c, http.StatusBadRequest, TypeValidation, message)
}

func Unauthorized(c *gin.Context, message string) {
	Fail(c, http.StatusUnauthorized, TypeUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	Fail(c, http.StatusForbidden, TypeForbidden, message)
}

func NotFound(c *gin.Context, message string) {
	Fail(c, http.StatusNotFound, TypeNotFound, message)
}

func ConfigurationError(c *gin.Context, message string) {
	Fail(c, http.StatusInternalServerError, TypeConfiguration, message)
}

func InternalError(c *gin.Context) {
	Fail(c, http.StatusInternalServerError, TypeInternal, "Internal server error")
}

func EmailError(c *gin.Context, message string) {
	Fail(c, http.StatusInternalServerError, TypeEmail, message)
}
