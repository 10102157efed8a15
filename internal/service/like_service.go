package service

import (
	"context"
	"errors"
	"time"

	"github.com/aozora-fansite/internal/data"
	"github.com/aozora-fansite/internal/logger"
	"github.com/aozora-fansite/internal/models"
	"github.com/aozora-fansite/internal/queue"
)

// 点赞动作结果
const (
	LikeActionAdded   = "added"
	LikeActionRemoved = "removed"
)

// LikeStatus 单个目标的点赞状态
type LikeStatus struct {
	Liked bool `json:"liked"`
	Count int  `json:"count"`
}

// LikeService 点赞业务服务
type LikeService struct {
	manager     *data.Manager
	comments    *CommentService
	queueClient *queue.Client
}

// NewLikeService 创建点赞服务
func NewLikeService(m *data.Manager, comments *CommentService, queueClient *queue.Client) *LikeService {
	return &LikeService{
		manager:     m,
		comments:    comments,
		queueClient: queueClient,
	}
}

func (s *LikeService) loadLikes(ctx context.Context) ([]models.Like, error) {
	likes := []models.Like{}
	if _, err := s.manager.Load(ctx, data.CollectionLikes, &likes); err != nil {
		return nil, err
	}
	return likes, nil
}

func (s *LikeService) saveLikes(ctx context.Context, likes []models.Like) error {
	return s.manager.Put(ctx, data.CollectionLikes, likes)
}

func validLikeTarget(targetType string) bool {
	return targetType == models.LikeTargetPost || targetType == models.LikeTargetComment
}

func countLikes(likes []models.Like, targetType, targetID string) int {
	count := 0
	for i := range likes {
		if likes[i].TargetType == targetType && likes[i].TargetID == targetID {
			count++
		}
	}
	return count
}

// Toggle 切换点赞状态。同一用户对同一目标至多存在一条点赞记录，
// 已点赞则取消，未点赞则新增。返回本次动作和最新计数。
func (s *LikeService) Toggle(ctx context.Context, targetType, targetID string, user *models.User) (string, int, error) {
	if user == nil {
		return "", 0, ErrAuthRequired
	}
	if !validLikeTarget(targetType) {
		return "", 0, validationError("未知的点赞目标类型")
	}
	if targetID == "" {
		return "", 0, validationError("缺少点赞目标")
	}

	likes, err := s.loadLikes(ctx)
	if err != nil {
		return "", 0, err
	}

	action := LikeActionAdded
	kept := likes[:0]
	removed := false
	for _, like := range likes {
		if like.TargetType == targetType && like.TargetID == targetID && like.UserID == user.ID {
			removed = true
			continue
		}
		kept = append(kept, like)
	}
	if removed {
		action = LikeActionRemoved
		likes = kept
	} else {
		likes = append(likes, models.Like{
			ID:         data.GenerateID(),
			TargetType: targetType,
			TargetID:   targetID,
			UserID:     user.ID,
			CreatedAt:  time.Now().Format(time.RFC3339),
		})
	}
	if err := s.saveLikes(ctx, likes); err != nil {
		return "", 0, err
	}

	count := countLikes(likes, targetType, targetID)
	logger.Infow("like_toggled",
		"target_type", targetType,
		"target_id", targetID,
		"user_id", user.ID,
		"action", action,
		"count", count,
	)

	if targetType == models.LikeTargetComment {
		s.reconcileCommentLikes(ctx, targetID, count)
	}
	return action, count, nil
}

// 评论点赞计数回写。队列可用时异步重算，否则同步回写。
// 评论已被删除时留下孤儿点赞记录，不视为错误。
func (s *LikeService) reconcileCommentLikes(ctx context.Context, commentID string, count int) {
	if s.queueClient.Enabled() {
		if err := s.queueClient.EnqueueLikeRecount(queue.LikeRecountPayload{CommentID: commentID}); err == nil {
			return
		} else {
			logger.Warnw("like_recount_enqueue_failed", "comment_id", commentID, "error", err)
		}
	}
	if err := s.comments.SetLikes(ctx, commentID, count); err != nil && !errors.Is(err, ErrNotFound) {
		logger.Warnw("comment_likes_writeback_failed", "comment_id", commentID, "error", err)
	}
}

// RecountCommentLikes 按点赞记录重算评论计数并回写，供队列 worker 调用
func (s *LikeService) RecountCommentLikes(ctx context.Context, commentID string) error {
	likes, err := s.loadLikes(ctx)
	if err != nil {
		return err
	}
	count := countLikes(likes, models.LikeTargetComment, commentID)
	if err := s.comments.SetLikes(ctx, commentID, count); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}
	return nil
}

// Status 查询单个目标的点赞状态。userID 为空时 liked 恒为 false。
func (s *LikeService) Status(ctx context.Context, targetType, targetID, userID string) (*LikeStatus, error) {
	if !validLikeTarget(targetType) {
		return nil, validationError("未知的点赞目标类型")
	}
	likes, err := s.loadLikes(ctx)
	if err != nil {
		return nil, err
	}
	status := &LikeStatus{}
	for i := range likes {
		if likes[i].TargetType != targetType || likes[i].TargetID != targetID {
			continue
		}
		status.Count++
		if userID != "" && likes[i].UserID == userID {
			status.Liked = true
		}
	}
	return status, nil
}

// BulkStatusItem 批量查询输入
type BulkStatusItem struct {
	TargetType string `json:"targetType"`
	TargetID   string `json:"targetId"`
}

// BulkStatus 一次遍历批量查询多个目标的点赞状态，key 为 "类型:目标ID"
func (s *LikeService) BulkStatus(ctx context.Context, items []BulkStatusItem, userID string) (map[string]*LikeStatus, error) {
	result := make(map[string]*LikeStatus, len(items))
	for _, item := range items {
		if !validLikeTarget(item.TargetType) {
			return nil, validationError("未知的点赞目标类型")
		}
		result[item.TargetType+":"+item.TargetID] = &LikeStatus{}
	}
	likes, err := s.loadLikes(ctx)
	if err != nil {
		return nil, err
	}
	for i := range likes {
		status, ok := result[likes[i].TargetType+":"+likes[i].TargetID]
		if !ok {
			continue
		}
		status.Count++
		if userID != "" && likes[i].UserID == userID {
			status.Liked = true
		}
	}
	return result, nil
}

// LikesForUser 获取某用户的全部点赞记录
func (s *LikeService) LikesForUser(ctx context.Context, userID string) ([]models.Like, error) {
	likes, err := s.loadLikes(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]models.Like, 0)
	for i := range likes {
		if likes[i].UserID == userID {
			result = append(result, likes[i])
		}
	}
	return result, nil
}

// ClearUserLikes 清除某用户的全部点赞记录，返回清除条数
func (s *LikeService) ClearUserLikes(ctx context.Context, userID string) (int, error) {
	likes, err := s.loadLikes(ctx)
	if err != nil {
		return 0, err
	}
	kept := likes[:0]
	removed := 0
	touchedComments := make(map[string]struct{})
	for _, like := range likes {
		if like.UserID == userID {
			removed++
			if like.TargetType == models.LikeTargetComment {
				touchedComments[like.TargetID] = struct{}{}
			}
			continue
		}
		kept = append(kept, like)
	}
	if removed == 0 {
		return 0, nil
	}
	if err := s.saveLikes(ctx, kept); err != nil {
		return 0, err
	}
	for commentID := range touchedComments {
		s.reconcileCommentLikes(ctx, commentID, countLikes(kept, models.LikeTargetComment, commentID))
	}
	logger.Infow("user_likes_cleared", "user_id", userID, "removed", removed)
	return removed, nil
}
