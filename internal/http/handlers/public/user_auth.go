package public

import (
	"github.com/aozora-fansite/internal/http/response"

	"github.com/gin-gonic/gin"
)

// UserRegisterRequest 注册请求
type UserRegisterRequest struct {
	Username        string `json:"username" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

// UserRegister 用户注册，成功后自动登录
func (h *Handler) UserRegister(c *gin.Context) {
	var req UserRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数有误", err)
		return
	}

	user, token, err := h.AuthService.Register(c.Request.Context(), req.Username, req.Password, req.ConfirmPassword)
	if err != nil {
		respondServiceError(c, err, "注册失败")
		return
	}

	response.Success(c, gin.H{
		"user":  user,
		"token": token,
	})
}

// UserLoginRequest 登录请求
type UserLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserLogin 用户登录
func (h *Handler) UserLogin(c *gin.Context) {
	var req UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数有误", err)
		return
	}

	user, token, err := h.AuthService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondServiceError(c, err, "登录失败")
		return
	}

	response.Success(c, gin.H{
		"user":  user,
		"token": token,
	})
}

// UserLogout 退出登录，仅会话归属者可以清除会话
func (h *Handler) UserLogout(c *gin.Context) {
	if err := h.AuthService.Logout(c.Request.Context(), c.GetString("user_id")); err != nil {
		respondServiceError(c, err, "退出登录失败")
		return
	}
	response.SuccessWithMsg(c, "已退出登录", nil)
}

// GetCurrentUser 获取当前登录用户信息。未登录时 data 为 null。
func (h *Handler) GetCurrentUser(c *gin.Context) {
	user, err := h.AuthService.CurrentUser(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "用户信息获取失败", err)
		return
	}
	response.Success(c, user)
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword     string `json:"oldPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

// ChangePassword 修改当前用户密码
func (h *Handler) ChangePassword(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数有误", err)
		return
	}

	if err := h.AuthService.ChangePassword(c.Request.Context(), userID, req.OldPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		respondServiceError(c, err, "密码修改失败")
		return
	}
	response.SuccessWithMsg(c, "密码修改成功", nil)
}
