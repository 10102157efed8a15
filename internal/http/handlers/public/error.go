package public

import (
	"errors"

	handlershared "github.com/aozora-fansite/internal/http/handlers/shared"
	"github.com/aozora-fansite/internal/http/response"
	"github.com/aozora-fansite/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

// respondServiceError 将业务层常见错误映射为统一响应。
// 校验错误直接透出错误消息，其余错误返回 fallbackMsg。
func respondServiceError(c *gin.Context, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		respondError(c, response.CodeBadRequest, err.Error(), nil)
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "记录不存在", nil)
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(c, response.CodeUnauthorized, "用户名或密码错误", nil)
	case errors.Is(err, service.ErrAuthRequired):
		respondError(c, response.CodeUnauthorized, "请先登录", nil)
	case errors.Is(err, service.ErrNotAdmin):
		respondError(c, response.CodeForbidden, "该账号不是管理员", nil)
	case errors.Is(err, service.ErrPermissionDenied):
		respondError(c, response.CodeForbidden, "没有权限执行此操作", nil)
	default:
		respondError(c, response.CodeInternal, fallbackMsg, err)
	}
}
