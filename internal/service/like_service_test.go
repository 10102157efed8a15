package service

import (
	"context"
	"errors"
	"testing"

	"github.com/aozora-fansite/internal/data"
	"github.com/aozora-fansite/internal/models"
	"github.com/aozora-fansite/internal/store"
)

func newTestLikeService(t *testing.T) (*LikeService, *CommentService) {
	t.Helper()
	m := data.NewManager(store.NewMemoryStore())
	comments := NewCommentService(m)
	return NewLikeService(m, comments, nil), comments
}

func TestToggleAddRemove(t *testing.T) {
	s, _ := newTestLikeService(t)
	ctx := context.Background()

	if _, _, err := s.Toggle(ctx, models.LikeTargetPost, "p1", nil); !errors.Is(err, ErrAuthRequired) {
		t.Fatalf("anonymous toggle want ErrAuthRequired got %v", err)
	}
	if _, _, err := s.Toggle(ctx, "page", "p1", testUser); !errors.Is(err, ErrValidation) {
		t.Fatalf("bad target type want ErrValidation got %v", err)
	}
	if _, _, err := s.Toggle(ctx, models.LikeTargetPost, "", testUser); !errors.Is(err, ErrValidation) {
		t.Fatalf("missing target id want ErrValidation got %v", err)
	}

	action, count, err := s.Toggle(ctx, models.LikeTargetPost, "p1", testUser)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if action != LikeActionAdded || count != 1 {
		t.Fatalf("first toggle want added/1 got %s/%d", action, count)
	}

	// 同一用户再点一次取消
	action, count, err = s.Toggle(ctx, models.LikeTargetPost, "p1", testUser)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if action != LikeActionRemoved || count != 0 {
		t.Fatalf("second toggle want removed/0 got %s/%d", action, count)
	}
}

func TestToggleDistinctUsersAccumulate(t *testing.T) {
	s, _ := newTestLikeService(t)
	ctx := context.Background()

	if _, _, err := s.Toggle(ctx, models.LikeTargetPost, "p1", testUser); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	_, count, err := s.Toggle(ctx, models.LikeTargetPost, "p1", otherUser)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("count want 2 got %d", count)
	}

	status, err := s.Status(ctx, models.LikeTargetPost, "p1", testUser.ID)
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if !status.Liked || status.Count != 2 {
		t.Fatalf("status want liked/2 got %+v", status)
	}

	// 未登录查询 liked 恒为 false
	status, err = s.Status(ctx, models.LikeTargetPost, "p1", "")
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if status.Liked {
		t.Fatalf("anonymous status must not be liked")
	}
}

func TestToggleCommentWritesBackCount(t *testing.T) {
	s, comments := newTestLikeService(t)
	ctx := context.Background()

	comment, err := comments.Add(ctx, "announcement:1", "好耶", testUser)
	if err != nil {
		t.Fatalf("add comment failed: %v", err)
	}

	// 队列未启用时同步回写评论计数
	if _, _, err := s.Toggle(ctx, models.LikeTargetComment, comment.ID, otherUser); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	listed, err := comments.ListByPost(ctx, "announcement:1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if listed[0].Likes != 1 {
		t.Fatalf("comment likes want 1 got %d", listed[0].Likes)
	}

	// 评论已删除时留下孤儿点赞，不报错
	if err := comments.Delete(ctx, comment.ID, testUser); err != nil {
		t.Fatalf("delete comment failed: %v", err)
	}
	if _, _, err := s.Toggle(ctx, models.LikeTargetComment, comment.ID, testUser); err != nil {
		t.Fatalf("toggle on deleted comment failed: %v", err)
	}
}

func TestRecountCommentLikes(t *testing.T) {
	s, comments := newTestLikeService(t)
	ctx := context.Background()

	comment, err := comments.Add(ctx, "announcement:1", "好耶", testUser)
	if err != nil {
		t.Fatalf("add comment failed: %v", err)
	}
	if _, _, err := s.Toggle(ctx, models.LikeTargetComment, comment.ID, testUser); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if _, _, err := s.Toggle(ctx, models.LikeTargetComment, comment.ID, otherUser); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}

	// 人为写坏计数后重算恢复
	if err := comments.SetLikes(ctx, comment.ID, 99); err != nil {
		t.Fatalf("set likes failed: %v", err)
	}
	if err := s.RecountCommentLikes(ctx, comment.ID); err != nil {
		t.Fatalf("recount failed: %v", err)
	}
	listed, err := comments.ListByPost(ctx, "announcement:1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if listed[0].Likes != 2 {
		t.Fatalf("recounted likes want 2 got %d", listed[0].Likes)
	}

	// 评论不存在时重算静默跳过
	if err := s.RecountCommentLikes(ctx, "missing"); err != nil {
		t.Fatalf("recount missing comment failed: %v", err)
	}
}

func TestBulkStatusSinglePass(t *testing.T) {
	s, _ := newTestLikeService(t)
	ctx := context.Background()

	if _, _, err := s.Toggle(ctx, models.LikeTargetPost, "p1", testUser); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if _, _, err := s.Toggle(ctx, models.LikeTargetPost, "p2", otherUser); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}

	result, err := s.BulkStatus(ctx, []BulkStatusItem{
		{TargetType: models.LikeTargetPost, TargetID: "p1"},
		{TargetType: models.LikeTargetPost, TargetID: "p2"},
		{TargetType: models.LikeTargetPost, TargetID: "p3"},
	}, testUser.ID)
	if err != nil {
		t.Fatalf("bulk status failed: %v", err)
	}
	if len(result) != 3 {
		t.Fatalf("result size want 3 got %d", len(result))
	}
	if !result["post:p1"].Liked || result["post:p1"].Count != 1 {
		t.Fatalf("p1 want liked/1 got %+v", result["post:p1"])
	}
	if result["post:p2"].Liked || result["post:p2"].Count != 1 {
		t.Fatalf("p2 want not-liked/1 got %+v", result["post:p2"])
	}
	if result["post:p3"].Liked || result["post:p3"].Count != 0 {
		t.Fatalf("p3 want empty status got %+v", result["post:p3"])
	}

	if _, err := s.BulkStatus(ctx, []BulkStatusItem{{TargetType: "page", TargetID: "x"}}, ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("bad target type want ErrValidation got %v", err)
	}
}

func TestClearUserLikes(t *testing.T) {
	s, comments := newTestLikeService(t)
	ctx := context.Background()

	comment, err := comments.Add(ctx, "announcement:1", "好耶", otherUser)
	if err != nil {
		t.Fatalf("add comment failed: %v", err)
	}
	if _, _, err := s.Toggle(ctx, models.LikeTargetPost, "p1", testUser); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if _, _, err := s.Toggle(ctx, models.LikeTargetComment, comment.ID, testUser); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if _, _, err := s.Toggle(ctx, models.LikeTargetComment, comment.ID, otherUser); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}

	removed, err := s.ClearUserLikes(ctx, testUser.ID)
	if err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if removed != 2 {
		t.Fatalf("removed want 2 got %d", removed)
	}

	// 其他用户的点赞保留，评论计数同步回落
	remaining, err := s.LikesForUser(ctx, otherUser.ID)
	if err != nil {
		t.Fatalf("likes for user failed: %v", err)
	}
	if len(remaining) != 1 {
		t.Fatalf("other user likes want 1 got %d", len(remaining))
	}
	listed, err := comments.ListByPost(ctx, "announcement:1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if listed[0].Likes != 1 {
		t.Fatalf("comment likes after clear want 1 got %d", listed[0].Likes)
	}

	// 无点赞可清时返回 0
	removed, err = s.ClearUserLikes(ctx, testUser.ID)
	if err != nil || removed != 0 {
		t.Fatalf("second clear want 0 got %d err=%v", removed, err)
	}
}
