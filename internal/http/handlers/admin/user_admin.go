package admin

import (
	handlershared "github.com/aozora-fansite/internal/http/handlers/shared"
	"github.com/aozora-fansite/internal/http/response"

	"github.com/gin-gonic/gin"
)

func getUserID(c *gin.Context) (string, bool) {
	return handlershared.GetContextString(c, "user_id")
}

// GetAdminUsers 获取全部用户列表
func (h *Handler) GetAdminUsers(c *gin.Context) {
	actingID, ok := getUserID(c)
	if !ok {
		return
	}

	users, err := h.AuthService.AllUsers(c.Request.Context(), actingID)
	if err != nil {
		respondServiceError(c, err, "用户列表获取失败")
		return
	}
	response.Success(c, users)
}

// ChangeUserRoleRequest 调整用户角色请求
type ChangeUserRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// ChangeUserRole 调整用户角色
func (h *Handler) ChangeUserRole(c *gin.Context) {
	actingID, ok := getUserID(c)
	if !ok {
		return
	}

	var req ChangeUserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数有误", err)
		return
	}

	user, err := h.AuthService.ChangeUserRole(c.Request.Context(), actingID, c.Param("id"), req.Role)
	if err != nil {
		respondServiceError(c, err, "用户角色调整失败")
		return
	}
	response.Success(c, user)
}

// DeleteUser 删除用户
func (h *Handler) DeleteUser(c *gin.Context) {
	actingID, ok := getUserID(c)
	if !ok {
		return
	}

	if err := h.AuthService.DeleteUser(c.Request.Context(), actingID, c.Param("id")); err != nil {
		respondServiceError(c, err, "用户删除失败")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// ClearUserLikes 清除指定用户的全部点赞记录
func (h *Handler) ClearUserLikes(c *gin.Context) {
	removed, err := h.LikeService.ClearUserLikes(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "点赞记录清除失败")
		return
	}
	response.Success(c, gin.H{"removed": removed})
}
