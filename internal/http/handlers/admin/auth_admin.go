package admin

import (
	"github.com/aozora-fansite/internal/http/response"

	"github.com/gin-gonic/gin"
)

// AdminLoginRequest 管理员登录请求
type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AdminLogin 管理员登录，非管理员账号会被拒绝
func (h *Handler) AdminLogin(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数有误", err)
		return
	}

	user, token, err := h.AuthService.AdminLogin(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondServiceError(c, err, "登录失败")
		return
	}

	response.Success(c, gin.H{
		"user":  user,
		"token": token,
	})
}
