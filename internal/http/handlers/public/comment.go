package public

import (
	"strings"

	"github.com/aozora-fansite/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetComments 获取指定文章的评论列表
func (h *Handler) GetComments(c *gin.Context) {
	postID := strings.TrimSpace(c.Param("postId"))
	if postID == "" {
		respondError(c, response.CodeBadRequest, "缺少评论目标", nil)
		return
	}
	comments, err := h.CommentService.ListByPost(c.Request.Context(), postID)
	if err != nil {
		respondError(c, response.CodeInternal, "评论列表获取失败", err)
		return
	}
	response.Success(c, comments)
}

// GetCommentCount 统计文章评论数（含回复）
func (h *Handler) GetCommentCount(c *gin.Context) {
	postID := strings.TrimSpace(c.Param("postId"))
	if postID == "" {
		respondError(c, response.CodeBadRequest, "缺少评论目标", nil)
		return
	}
	count, err := h.CommentService.CountForPost(c.Request.Context(), postID)
	if err != nil {
		respondError(c, response.CodeInternal, "评论数统计失败", err)
		return
	}
	response.Success(c, gin.H{"count": count})
}

// CreateCommentRequest 发表评论请求
type CreateCommentRequest struct {
	PostID  string `json:"postId" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// CreateComment 发表评论
func (h *Handler) CreateComment(c *gin.Context) {
	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数有误", err)
		return
	}

	comment, err := h.CommentService.Add(c.Request.Context(), req.PostID, req.Content, currentUser(c))
	if err != nil {
		respondServiceError(c, err, "评论发表失败")
		return
	}
	response.Success(c, comment)
}

// CreateReplyRequest 回复评论请求
type CreateReplyRequest struct {
	Content string `json:"content" binding:"required"`
}

// CreateReply 回复评论
func (h *Handler) CreateReply(c *gin.Context) {
	commentID := c.Param("id")
	var req CreateReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数有误", err)
		return
	}

	reply, err := h.CommentService.AddReply(c.Request.Context(), commentID, req.Content, currentUser(c))
	if err != nil {
		respondServiceError(c, err, "回复发表失败")
		return
	}
	response.Success(c, reply)
}

// DeleteComment 删除评论，作者本人或管理员可操作
func (h *Handler) DeleteComment(c *gin.Context) {
	if err := h.CommentService.Delete(c.Request.Context(), c.Param("id"), currentUser(c)); err != nil {
		respondServiceError(c, err, "评论删除失败")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// DeleteReply 删除回复，作者本人或管理员可操作
func (h *Handler) DeleteReply(c *gin.Context) {
	if err := h.CommentService.DeleteReply(c.Request.Context(), c.Param("id"), c.Param("replyId"), currentUser(c)); err != nil {
		respondServiceError(c, err, "回复删除失败")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
