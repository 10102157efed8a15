package public

import (
	"github.com/aozora-fansite/internal/http/response"
	"github.com/aozora-fansite/internal/service"

	"github.com/gin-gonic/gin"
)

// ToggleLikeRequest 点赞/取消点赞请求
type ToggleLikeRequest struct {
	TargetType string `json:"targetType" binding:"required"`
	TargetID   string `json:"targetId" binding:"required"`
}

// ToggleLike 切换点赞状态
func (h *Handler) ToggleLike(c *gin.Context) {
	var req ToggleLikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数有误", err)
		return
	}

	action, count, err := h.LikeService.Toggle(c.Request.Context(), req.TargetType, req.TargetID, currentUser(c))
	if err != nil {
		respondServiceError(c, err, "点赞操作失败")
		return
	}
	response.Success(c, gin.H{
		"action": action,
		"count":  count,
	})
}

// GetLikeStatus 查询单个目标的点赞状态。未登录时 liked 恒为 false。
func (h *Handler) GetLikeStatus(c *gin.Context) {
	userID := ""
	if user := currentUser(c); user != nil {
		userID = user.ID
	}

	status, err := h.LikeService.Status(c.Request.Context(), c.Param("targetType"), c.Param("targetId"), userID)
	if err != nil {
		respondServiceError(c, err, "点赞状态查询失败")
		return
	}
	response.Success(c, status)
}

// BulkLikeStatusRequest 批量查询点赞状态请求
type BulkLikeStatusRequest struct {
	Items []service.BulkStatusItem `json:"items" binding:"required"`
}

// BulkLikeStatus 批量查询点赞状态
func (h *Handler) BulkLikeStatus(c *gin.Context) {
	var req BulkLikeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数有误", err)
		return
	}

	userID := ""
	if user := currentUser(c); user != nil {
		userID = user.ID
	}

	statuses, err := h.LikeService.BulkStatus(c.Request.Context(), req.Items, userID)
	if err != nil {
		respondServiceError(c, err, "点赞状态查询失败")
		return
	}
	response.Success(c, statuses)
}

// GetMyLikes 获取当前用户的全部点赞记录
func (h *Handler) GetMyLikes(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	likes, err := h.LikeService.LikesForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, response.CodeInternal, "点赞记录获取失败", err)
		return
	}
	response.Success(c, likes)
}
