package util

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the data part of a success envelope.
type Response map[string]interface{}

// business error codes
const (
	CodeOK           = 0
	CodeInvalidParam = 40001
	CodeNotFound     = 40401
	CodeTooMany      = 42901
	CodeServerErr    = 50001
	CodeBackendErr   = 50201
)

// Success writes {"code":0,"data":...}.
func Success(c *gin.Context, data Response) {
	c.JSON(http.StatusOK, gin.H{
		"code": CodeOK,
		"data": data,
	})
}

// Error writes {"code":N,"message":...}.
func Error(c *gin.Context, httpStatus int, code int, msg string) {
	c.JSON(httpStatus, gin.H{
		"code":    code,
		"message": msg,
	})
}

// ValidationFailed writes a 400 naming the offending field and the kind of failure.
func ValidationFailed(c *gin.Context, err *ValidationError) {
	c.JSON(http.StatusBadRequest, gin.H{
		"code":    CodeInvalidParam,
		"message": err.Message,
		"kind":    err.Kind,
		"field":   err.Field,
	})
}
