package service

import (
	"context"
	"strings"
	"time"

	"github.com/aozora-fansite/internal/data"
	"github.com/aozora-fansite/internal/logger"
	"github.com/aozora-fansite/internal/models"
)

// CommentService 评论业务服务
type CommentService struct {
	manager *data.Manager
}

// NewCommentService 创建评论服务
func NewCommentService(m *data.Manager) *CommentService {
	return &CommentService{manager: m}
}

func (s *CommentService) loadComments(ctx context.Context) ([]models.Comment, error) {
	comments := []models.Comment{}
	if _, err := s.manager.Load(ctx, data.CollectionComments, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (s *CommentService) saveComments(ctx context.Context, comments []models.Comment) error {
	return s.manager.Put(ctx, data.CollectionComments, comments)
}

// ListByPost 获取指定文章的全部评论
func (s *CommentService) ListByPost(ctx context.Context, postID string) ([]models.Comment, error) {
	comments, err := s.loadComments(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]models.Comment, 0)
	for i := range comments {
		if comments[i].PostID == postID {
			result = append(result, comments[i])
		}
	}
	return result, nil
}

// CountForPost 统计文章的评论数（包含楼中楼回复）
func (s *CommentService) CountForPost(ctx context.Context, postID string) (int, error) {
	comments, err := s.loadComments(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for i := range comments {
		if comments[i].PostID == postID {
			count += 1 + len(comments[i].Replies)
		}
	}
	return count, nil
}

// Add 发表评论，需要已登录用户
func (s *CommentService) Add(ctx context.Context, postID, content string, user *models.User) (*models.Comment, error) {
	if user == nil {
		return nil, ErrAuthRequired
	}
	postID = strings.TrimSpace(postID)
	content = strings.TrimSpace(content)
	if postID == "" {
		return nil, validationError("缺少评论目标")
	}
	if content == "" {
		return nil, validationError("评论内容不能为空")
	}

	comments, err := s.loadComments(ctx)
	if err != nil {
		return nil, err
	}
	comment := models.Comment{
		ID:         data.GenerateID(),
		PostID:     postID,
		UserID:     user.ID,
		Username:   user.Username,
		UserAvatar: user.Avatar,
		Content:    content,
		CreatedAt:  time.Now().Format(time.RFC3339),
		Likes:      0,
		Replies:    []models.Reply{},
	}
	comments = append(comments, comment)
	if err := s.saveComments(ctx, comments); err != nil {
		return nil, err
	}
	logger.Infow("comment_added", "comment_id", comment.ID, "post_id", postID, "user_id", user.ID)
	return &comment, nil
}

// AddReply 回复评论，需要已登录用户
func (s *CommentService) AddReply(ctx context.Context, commentID, content string, user *models.User) (*models.Reply, error) {
	if user == nil {
		return nil, ErrAuthRequired
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, validationError("回复内容不能为空")
	}

	comments, err := s.loadComments(ctx)
	if err != nil {
		return nil, err
	}
	for i := range comments {
		if comments[i].ID != commentID {
			continue
		}
		reply := models.Reply{
			ID:         data.GenerateID(),
			UserID:     user.ID,
			Username:   user.Username,
			UserAvatar: user.Avatar,
			Content:    content,
			CreatedAt:  time.Now().Format(time.RFC3339),
		}
		comments[i].Replies = append(comments[i].Replies, reply)
		if err := s.saveComments(ctx, comments); err != nil {
			return nil, err
		}
		logger.Infow("comment_reply_added", "comment_id", commentID, "reply_id", reply.ID, "user_id", user.ID)
		return &reply, nil
	}
	return nil, ErrNotFound
}

// Delete 删除评论，仅作者本人或管理员可操作。评论下的回复随评论一并删除。
func (s *CommentService) Delete(ctx context.Context, commentID string, user *models.User) error {
	if user == nil {
		return ErrAuthRequired
	}
	comments, err := s.loadComments(ctx)
	if err != nil {
		return err
	}
	for i := range comments {
		if comments[i].ID != commentID {
			continue
		}
		if comments[i].UserID != user.ID && !user.IsAdmin() {
			return ErrPermissionDenied
		}
		comments = append(comments[:i], comments[i+1:]...)
		if err := s.saveComments(ctx, comments); err != nil {
			return err
		}
		logger.Infow("comment_deleted", "comment_id", commentID, "operator_id", user.ID)
		return nil
	}
	return ErrNotFound
}

// DeleteReply 删除回复，仅作者本人或管理员可操作
func (s *CommentService) DeleteReply(ctx context.Context, commentID, replyID string, user *models.User) error {
	if user == nil {
		return ErrAuthRequired
	}
	comments, err := s.loadComments(ctx)
	if err != nil {
		return err
	}
	for i := range comments {
		if comments[i].ID != commentID {
			continue
		}
		for j := range comments[i].Replies {
			if comments[i].Replies[j].ID != replyID {
				continue
			}
			if comments[i].Replies[j].UserID != user.ID && !user.IsAdmin() {
				return ErrPermissionDenied
			}
			comments[i].Replies = append(comments[i].Replies[:j], comments[i].Replies[j+1:]...)
			if err := s.saveComments(ctx, comments); err != nil {
				return err
			}
			logger.Infow("comment_reply_deleted", "comment_id", commentID, "reply_id", replyID, "operator_id", user.ID)
			return nil
		}
		return ErrNotFound
	}
	return ErrNotFound
}

// SetLikes 覆盖写入评论点赞数，供点赞服务回写计数使用
func (s *CommentService) SetLikes(ctx context.Context, commentID string, likes int) error {
	comments, err := s.loadComments(ctx)
	if err != nil {
		return err
	}
	for i := range comments {
		if comments[i].ID == commentID {
			if comments[i].Likes == likes {
				return nil
			}
			comments[i].Likes = likes
			return s.saveComments(ctx, comments)
		}
	}
	return ErrNotFound
}
