package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope wraps successful payloads the same way the Steam Web API does,
// so the front-end reads `response.publishedfiledetails` regardless of
// whether it talks to Steam or to this service.
type Envelope struct {
	Response interface{} `json:"response"`
}

// ErrorBody is the error payload.
type ErrorBody struct {
	Error string `json:"error"`
}

// Success sends a 200 response wrapped in the envelope.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Response: data})
}

// JSON sends a 200 response without the envelope.
func JSON(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Error sends an error response.
func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorBody{Error: message})
}

// BadRequest sends a 400 error response.
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// NotFound sends a 404 error response.
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// InternalError sends a 500 error response.
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}
