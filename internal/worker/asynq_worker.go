package worker

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/aozora-fansite/internal/logger"
	"github.com/aozora-fansite/internal/provider"
	"github.com/aozora-fansite/internal/queue"
	"github.com/aozora-fansite/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskSessionSweep, c.handleSessionSweep)
	mux.HandleFunc(queue.TaskLikeRecount, c.handleLikeRecount)
}

func (c *Consumer) handleSessionSweep(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_session_sweep_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.SessionSweepPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_session_sweep_unmarshal_failed", "error", err)
		return err
	}
	if payload.UserID == "" {
		logger.Debugw("worker_session_sweep_skip_invalid_payload")
		return nil
	}
	if c.AuthService == nil {
		logger.Warnw("worker_session_sweep_skip_auth_service_nil", "user_id", payload.UserID)
		return nil
	}
	if err := c.AuthService.SweepExpiredSession(ctx, payload.UserID); err != nil {
		logger.Warnw("worker_session_sweep_failed", "user_id", payload.UserID, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleLikeRecount(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_like_recount_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.LikeRecountPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_like_recount_unmarshal_failed", "error", err)
		return err
	}
	if payload.CommentID == "" {
		logger.Debugw("worker_like_recount_skip_invalid_payload")
		return nil
	}
	if c.LikeService == nil {
		logger.Warnw("worker_like_recount_skip_like_service_nil", "comment_id", payload.CommentID)
		return nil
	}
	if err := c.LikeService.RecountCommentLikes(ctx, payload.CommentID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			logger.Debugw("worker_like_recount_skip_comment_not_found", "comment_id", payload.CommentID)
			return nil
		}
		logger.Warnw("worker_like_recount_failed", "comment_id", payload.CommentID, "error", err)
		return err
	}
	return nil
}
