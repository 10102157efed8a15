package store

import (
	"context"
	"sync"
)

// Store 字符串键值存储接口，值为 JSON 文本。
// 不提供跨键事务保证，并发写入遵循后写覆盖。
type Store interface {
	// Get 读取键值，第二个返回值表示键是否存在
	Get(ctx context.Context, key string) (string, bool, error)
	// Set 写入键值
	Set(ctx context.Context, key, value string) error
	// Delete 删除键，键不存在时不报错
	Delete(ctx context.Context, key string) error
}

// MemoryStore 内存实现，用于测试与临时运行
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryStore 创建内存存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

// Get 读取键值
func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.data[key]
	return value, ok, nil
}

// Set 写入键值
func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

// Delete 删除键
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
