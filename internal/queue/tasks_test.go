package queue

import (
	"encoding/json"
	"testing"

	"github.com/aozora-fansite/internal/config"
)

func TestNewSessionSweepTask(t *testing.T) {
	task, err := NewSessionSweepTask(SessionSweepPayload{UserID: "u1"})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if task.Type() != TaskSessionSweep {
		t.Fatalf("task type want %s got %s", TaskSessionSweep, task.Type())
	}
	var payload SessionSweepPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		t.Fatalf("unmarshal payload failed: %v", err)
	}
	if payload.UserID != "u1" {
		t.Fatalf("user id want u1 got %s", payload.UserID)
	}
}

func TestNewLikeRecountTask(t *testing.T) {
	task, err := NewLikeRecountTask(LikeRecountPayload{CommentID: "c1"})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if task.Type() != TaskLikeRecount {
		t.Fatalf("task type want %s got %s", TaskLikeRecount, task.Type())
	}
	var payload LikeRecountPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		t.Fatalf("unmarshal payload failed: %v", err)
	}
	if payload.CommentID != "c1" {
		t.Fatalf("comment id want c1 got %s", payload.CommentID)
	}
}

func TestBuildServerConfigDefaults(t *testing.T) {
	opt, cfg := BuildServerConfig(nil)
	if opt.Addr != "127.0.0.1:6379" {
		t.Fatalf("addr want 127.0.0.1:6379 got %s", opt.Addr)
	}
	if cfg.Concurrency != 10 {
		t.Fatalf("concurrency want 10 got %d", cfg.Concurrency)
	}
	if weight, ok := cfg.Queues[DefaultQueue]; !ok || weight != 1 {
		t.Fatalf("default queue weight want 1 got %v", cfg.Queues)
	}
}

func TestBuildServerConfigOverrides(t *testing.T) {
	opt, cfg := BuildServerConfig(&config.QueueConfig{
		Host:        "redis.internal",
		Port:        6380,
		DB:          2,
		Concurrency: 4,
		Queues:      map[string]int{"default": 5},
	})
	if opt.Addr != "redis.internal:6380" || opt.DB != 2 {
		t.Fatalf("unexpected redis opt: %+v", opt)
	}
	if cfg.Concurrency != 4 || cfg.Queues["default"] != 5 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestDisabledClientNoops(t *testing.T) {
	var c *Client
	if c.Enabled() {
		t.Fatalf("nil client must not be enabled")
	}
	if err := c.EnqueueSessionSweep(SessionSweepPayload{UserID: "u1"}, 0); err != nil {
		t.Fatalf("nil client enqueue should be a no-op: %v", err)
	}
	if err := c.EnqueueLikeRecount(LikeRecountPayload{CommentID: "c1"}); err != nil {
		t.Fatalf("nil client enqueue should be a no-op: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("nil client close should be a no-op: %v", err)
	}
}
