package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 统一响应信封，success 由状态码推导
type Response struct {
	StatusCode int         `json:"statusCode"`
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data"`
}

// ErrorResponse 失败响应，额外带错误明细列表
type ErrorResponse struct {
	Response
	Errors []string `json:"errors"`
}

// New 组装响应
func New(statusCode int, message string, data interface{}) Response {
	return Response{
		StatusCode: statusCode,
		Success:    statusCode < http.StatusBadRequest,
		Message:    message,
		Data:       data,
	}
}

func JSON(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, New(statusCode, message, data))
}

func OK(c *gin.Context, message string, data interface{}) {
	JSON(c, http.StatusOK, message, data)
}

func Created(c *gin.Context, message string, data interface{}) {
	JSON(c, http.StatusCreated, message, data)
}

// Fail 错误响应，details 为可选的错误明细
func Fail(c *gin.Context, statusCode int, message string, details ...string) {
	if details == nil {
		details = []string{}
	}
	c.AbortWithStatusJSON(statusCode, ErrorResponse{
		Response: New(statusCode, message, nil),
		Errors:   details,
	})
}

func BadRequest(c *gin.Context, message string, details ...string) {
	Fail(c, http.StatusBadRequest, message, details...)
}

func Unauthorized(c *gin.Context, message string) {
	Fail(c, http.StatusUnauthorized, message)
}

func NotFound(c *gin.Context, message string) {
	Fail(c, http.StatusNotFound, message)
}

func Conflict(c *gin.Context, message string) {
	Fail(c, http.StatusConflict, message)
}

func InternalError(c *gin.Context, message string) {
	Fail(c, http.StatusInternalServerError, message)
}
