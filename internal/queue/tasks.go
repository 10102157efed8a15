package queue

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// TaskSessionSweep 会话到期清理任务
	TaskSessionSweep = "session:sweep"
	// TaskLikeRecount 评论点赞计数重算任务
	TaskLikeRecount = "like:recount"
)

// SessionSweepPayload 会话清理任务载荷
type SessionSweepPayload struct {
	UserID string `json:"user_id"`
}

// LikeRecountPayload 点赞重算任务载荷
type LikeRecountPayload struct {
	CommentID string `json:"comment_id"`
}

// NewSessionSweepTask 创建会话清理任务
func NewSessionSweepTask(payload SessionSweepPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSessionSweep, body), nil
}

// NewLikeRecountTask 创建点赞重算任务
func NewLikeRecountTask(payload LikeRecountPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLikeRecount, body), nil
}
