package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/memechain/presale-service/internal/logic"
)

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
	})
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Error:   message,
	})
}

// LogicErrorResponse 业务错误映射为HTTP状态码
func LogicErrorResponse(c *gin.Context, err error) {
	switch {
	case errors.Is(err, logic.ErrInvalidAmount):
		ErrorResponse(c, http.StatusBadRequest, "enter a valid amount")
	case errors.Is(err, logic.ErrMissingTxHash),
		errors.Is(err, logic.ErrInvalidStage),
		errors.Is(err, logic.ErrInvalidEmail):
		ErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, logic.ErrWalletNotResolvable):
		ErrorResponse(c, http.StatusBadRequest, "wallet address is missing or malformed")
	case errors.Is(err, logic.ErrPresaleInactive):
		ErrorResponse(c, http.StatusForbidden, "presale is not active")
	case errors.Is(err, logic.ErrUserNotFound):
		ErrorResponse(c, http.StatusNotFound, "user not found")
	case errors.Is(err, logic.ErrStoreUnavailable),
		errors.Is(err, logic.ErrPresaleNotConfigured):
		// 未部分应用，重试安全
		ErrorResponse(c, http.StatusServiceUnavailable, "temporarily unavailable, please try again")
	default:
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
	}
}
