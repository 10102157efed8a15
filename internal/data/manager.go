package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/aozora-fansite/internal/logger"
	"github.com/aozora-fansite/internal/store"
)

// Record 集合内的通用记录
type Record = map[string]interface{}

var (
	// ErrUnknownCollection 集合名未注册
	ErrUnknownCollection = errors.New("unknown collection")
	// ErrSingletonCollection 单例集合不支持按条目增删
	ErrSingletonCollection = errors.New("operation not supported on singleton collection")
)

// Manager 通用集合 CRUD 门面
// 所有变更都整体重写集合并触发变更广播，不做部分写入。
type Manager struct {
	store store.Store

	// 同进程内读改写串行化；跨进程写入仍为后写覆盖
	mu sync.Mutex

	subMu       sync.RWMutex
	subscribers []func(collection string)
}

// NewManager 创建数据管理器
func NewManager(s store.Store) *Manager {
	return &Manager{store: s}
}

// Subscribe 注册集合变更回调，回调参数为发生变更的集合名
func (m *Manager) Subscribe(fn func(collection string)) {
	if fn == nil {
		return
	}
	m.subMu.Lock()
	defer m.subMu.Unlock()
	m.subscribers = append(m.subscribers, fn)
}

func (m *Manager) notify(collection string) {
	m.subMu.RLock()
	subs := make([]func(string), len(m.subscribers))
	copy(subs, m.subscribers)
	m.subMu.RUnlock()
	for _, fn := range subs {
		fn(collection)
	}
}

// GetRaw 读取集合的原始 JSON，缺失或损坏时返回类型对应的空默认值
func (m *Manager) GetRaw(ctx context.Context, collection string) (string, error) {
	spec, ok := collectionSpec(collection)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}
	raw, found, err := m.store.Get(ctx, collection)
	if err != nil {
		return "", err
	}
	if !found {
		return spec.emptyJSON(), nil
	}
	if !spec.validate(raw) {
		// 损坏的存储内容视为缺失，只记录不上抛
		logger.Warnw("data_collection_corrupt", "collection", collection)
		return spec.emptyJSON(), nil
	}
	return raw, nil
}

// Load 将集合内容解码到 dest，缺失或损坏时保持 dest 不变并返回 false
func (m *Manager) Load(ctx context.Context, collection string, dest interface{}) (bool, error) {
	spec, ok := collectionSpec(collection)
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}
	raw, found, err := m.store.Get(ctx, collection)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}
	if !spec.validate(raw) {
		logger.Warnw("data_collection_corrupt", "collection", collection)
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		logger.Warnw("data_collection_decode_failed", "collection", collection, "error", err)
		return false, nil
	}
	return true, nil
}

// Put 整体写入集合并广播变更
func (m *Manager) Put(ctx context.Context, collection string, value interface{}) error {
	if _, ok := collectionSpec(collection); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}
	return m.put(ctx, collection, value)
}

func (m *Manager) put(ctx context.Context, collection string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := m.store.Set(ctx, collection, string(payload)); err != nil {
		return err
	}
	m.notify(collection)
	return nil
}

// Remove 删除集合键并广播变更
func (m *Manager) Remove(ctx context.Context, collection string) error {
	if err := m.store.Delete(ctx, collection); err != nil {
		return err
	}
	m.notify(collection)
	return nil
}

// AddItem 向列表集合追加记录，分配并返回新 ID
func (m *Manager) AddItem(ctx context.Context, collection string, item Record) (string, error) {
	if _, ok := collectionSpec(collection); !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}
	if IsSingleton(collection) {
		return "", fmt.Errorf("%w: %s", ErrSingletonCollection, collection)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	items, err := m.loadList(ctx, collection)
	if err != nil {
		return "", err
	}
	id := GenerateID()
	item["id"] = id
	items = append(items, item)
	if err := m.put(ctx, collection, items); err != nil {
		return "", err
	}
	return id, nil
}

// UpdateItem 更新记录。列表集合按 id 浅合并字段；单例集合忽略 id 并整体替换。
// 返回是否命中了待更新的记录。
func (m *Manager) UpdateItem(ctx context.Context, collection, id string, patch Record) (bool, error) {
	if _, ok := collectionSpec(collection); !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if IsSingleton(collection) {
		if err := m.put(ctx, collection, patch); err != nil {
			return false, err
		}
		return true, nil
	}

	items, err := m.loadList(ctx, collection)
	if err != nil {
		return false, err
	}
	for i, item := range items {
		if itemID(item) != id {
			continue
		}
		for key, value := range patch {
			if key == "id" {
				continue
			}
			item[key] = value
		}
		items[i] = item
		if err := m.put(ctx, collection, items); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// DeleteItem 从列表集合中移除记录，返回是否有记录被移除
func (m *Manager) DeleteItem(ctx context.Context, collection, id string) (bool, error) {
	if _, ok := collectionSpec(collection); !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}
	if IsSingleton(collection) {
		return false, fmt.Errorf("%w: %s", ErrSingletonCollection, collection)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	items, err := m.loadList(ctx, collection)
	if err != nil {
		return false, err
	}
	kept := items[:0]
	for _, item := range items {
		if itemID(item) == id {
			continue
		}
		kept = append(kept, item)
	}
	if len(kept) == len(items) {
		return false, nil
	}
	if err := m.put(ctx, collection, kept); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Manager) loadList(ctx context.Context, collection string) ([]Record, error) {
	raw, found, err := m.store.Get(ctx, collection)
	if err != nil {
		return nil, err
	}
	if !found {
		return []Record{}, nil
	}
	var items []Record
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		logger.Warnw("data_collection_corrupt", "collection", collection)
		return []Record{}, nil
	}
	if items == nil {
		items = []Record{}
	}
	return items, nil
}

func itemID(item Record) string {
	if value, ok := item["id"].(string); ok {
		return value
	}
	return ""
}

var idRand = rand.New(rand.NewSource(time.Now().UnixNano()))
var idRandMu sync.Mutex

// GenerateID 生成集合内唯一的记录 ID：毫秒时间戳 + 随机后缀，均为 base36。
// 碰撞概率可忽略，但不保证全局唯一，也非加密安全。
func GenerateID() string {
	idRandMu.Lock()
	suffix := idRand.Int63n(36 * 36 * 36 * 36 * 36)
	idRandMu.Unlock()

	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	tail := strconv.FormatInt(suffix, 36)
	for len(tail) < 5 {
		tail = "0" + tail
	}
	return ts + tail
}

// ToRecord 将实体转换为通用记录
func ToRecord(v interface{}) (Record, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var record Record
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, err
	}
	return record, nil
}
