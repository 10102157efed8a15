package cache

import (
	"context"
	"testing"

	"github.com/aozora-fansite/internal/config"
)

func TestDisabledCacheNoops(t *testing.T) {
	if err := InitRedis(&config.RedisConfig{Enabled: false}); err != nil {
		t.Fatalf("init disabled failed: %v", err)
	}
	if Enabled() {
		t.Fatalf("disabled cache must not report enabled")
	}
	if Client() != nil {
		t.Fatalf("disabled cache must not expose a client")
	}

	ctx := context.Background()
	var dest map[string]interface{}
	found, err := GetJSON(ctx, "content:gameIntro", &dest)
	if err != nil || found {
		t.Fatalf("disabled get want miss got found=%v err=%v", found, err)
	}
	if err := SetJSON(ctx, "content:gameIntro", map[string]string{"title": "青空之恋"}, 0); err != nil {
		t.Fatalf("disabled set should be a no-op: %v", err)
	}
	if err := Del(ctx, "content:gameIntro"); err != nil {
		t.Fatalf("disabled del should be a no-op: %v", err)
	}

	// nil 配置同样视为未启用
	if err := InitRedis(nil); err != nil {
		t.Fatalf("init nil config failed: %v", err)
	}
	if Enabled() {
		t.Fatalf("nil config must not enable cache")
	}
}

func TestBuildKey(t *testing.T) {
	cases := []struct {
		key  string
		want string
	}{
		{"content:gameIntro", "aozora:content:gameIntro"},
		{"", "aozora"},
		{"  ", "aozora"},
	}
	for _, tc := range cases {
		if got := buildKey(tc.key); got != tc.want {
			t.Fatalf("buildKey(%q) want %s got %s", tc.key, tc.want, got)
		}
	}
}
