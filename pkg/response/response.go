package response

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Code    int         `json:"code"` // 200 for success, non-200 for errors
	Message string      `json:"msg"`  // human readable description
	Data    interface{} `json:"data"` // payload, any type
}

func Success(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"code": 200,
		"msg":  msg,
		"data": data,
	})
}

func Fail(c *gin.Context, msg string, data interface{}) {
	// Standardize error response format
	errorResponse := gin.H{
		"code": 500,
		"msg":  msg,
		"data": data,
	}

	// If data contains error information, extract it for consistent format
	if dataMap, ok := data.(gin.H); ok {
		if errorCode, exists := dataMap["error"]; exists {
			errorResponse["error"] = errorCode
		}
		if message, exists := dataMap["message"]; exists && msg == "" {
			errorResponse["msg"] = message
		}
	}

	c.JSON(http.StatusOK, errorResponse)
}

func Result(context *gin.Context, httpStatus int, code int, msg string, data gin.H) {
	context.JSON(httpStatus, gin.H{
		"code": code,
		"msg":  msg,
		"data": data,
	})
}

func AbortWithStatus(c *gin.Context, httpStatus int) {
	c.AbortWithStatus(httpStatus)
}

func AbortWithStatusJSON(c *gin.Context, httpStatus int, err error) {
	errorResponse := gin.H{
		"code": httpStatus,
		"msg":  err.Error(),
		"data": nil,
	}

	// Map well-known errors to stable error codes
	errorMsg := err.Error()
	switch {
	case strings.Contains(errorMsg, "captcha is required"):
		errorResponse["code"] = 400
		errorResponse["msg"] = "captcha is required"
		errorResponse["error"] = "CAPTCHA_REQUIRED"
	case strings.Contains(errorMsg, "invalid captcha code"):
		errorResponse["code"] = 400
		errorResponse["msg"] = "invalid captcha code"
		errorResponse["error"] = "INVALID_CAPTCHA"
	case strings.Contains(errorMsg, "no active captcha"):
		errorResponse["code"] = 400
		errorResponse["msg"] = "no active captcha"
		errorResponse["error"] = "NO_ACTIVE_CAPTCHA"
	case strings.Contains(errorMsg, "invalid image dimensions"):
		errorResponse["code"] = 400
		errorResponse["msg"] = "invalid image dimensions"
		errorResponse["error"] = "INVALID_DIMENSIONS"
	default:
		errorResponse["error"] = "UNKNOWN_ERROR"
	}

	c.AbortWithStatusJSON(httpStatus, errorResponse)
}
