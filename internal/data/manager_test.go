package data

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aozora-fansite/internal/store"
)

func TestAddItemAssignsID(t *testing.T) {
	m := NewManager(store.NewMemoryStore())
	ctx := context.Background()

	id, err := m.AddItem(ctx, CollectionCarousels, Record{"title": "开学季"})
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if id == "" {
		t.Fatalf("expected generated id")
	}

	items := []Record{}
	found, err := m.Load(ctx, CollectionCarousels, &items)
	if err != nil || !found {
		t.Fatalf("load failed: found=%v err=%v", found, err)
	}
	if len(items) != 1 {
		t.Fatalf("items want 1 got %d", len(items))
	}
	if items[0]["id"] != id {
		t.Fatalf("stored id want %s got %v", id, items[0]["id"])
	}
}

func TestUpdateItemShallowMergeSkipsID(t *testing.T) {
	m := NewManager(store.NewMemoryStore())
	ctx := context.Background()

	id, err := m.AddItem(ctx, CollectionCharacters, Record{"name": "美咲", "avatar": "/a.png"})
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}

	found, err := m.UpdateItem(ctx, CollectionCharacters, id, Record{"id": "evil", "name": "诗织"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if !found {
		t.Fatalf("expected update to hit existing record")
	}

	items := []Record{}
	if _, err := m.Load(ctx, CollectionCharacters, &items); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if items[0]["id"] != id {
		t.Fatalf("id must not be overwritten, got %v", items[0]["id"])
	}
	if items[0]["name"] != "诗织" {
		t.Fatalf("name want 诗织 got %v", items[0]["name"])
	}
	if items[0]["avatar"] != "/a.png" {
		t.Fatalf("untouched field should survive merge, got %v", items[0]["avatar"])
	}

	found, err = m.UpdateItem(ctx, CollectionCharacters, "missing", Record{"name": "x"})
	if err != nil {
		t.Fatalf("update missing failed: %v", err)
	}
	if found {
		t.Fatalf("update of missing id should report not found")
	}
}

func TestDeleteItemIdempotent(t *testing.T) {
	m := NewManager(store.NewMemoryStore())
	ctx := context.Background()

	id, err := m.AddItem(ctx, CollectionScreenshots, Record{"caption": "天台"})
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}

	removed, err := m.DeleteItem(ctx, CollectionScreenshots, id)
	if err != nil || !removed {
		t.Fatalf("first delete: removed=%v err=%v", removed, err)
	}
	removed, err = m.DeleteItem(ctx, CollectionScreenshots, id)
	if err != nil {
		t.Fatalf("second delete failed: %v", err)
	}
	if removed {
		t.Fatalf("second delete should be a no-op")
	}
}

func TestSingletonCollectionRejectsItemOps(t *testing.T) {
	m := NewManager(store.NewMemoryStore())
	ctx := context.Background()

	if _, err := m.AddItem(ctx, CollectionGameIntro, Record{}); err == nil {
		t.Fatalf("AddItem on singleton should fail")
	}
	if _, err := m.DeleteItem(ctx, CollectionGameIntro, "x"); err == nil {
		t.Fatalf("DeleteItem on singleton should fail")
	}

	// 单例集合的 UpdateItem 为整体替换
	found, err := m.UpdateItem(ctx, CollectionSiteSettings, "", Record{"siteName": "青空之恋"})
	if err != nil || !found {
		t.Fatalf("singleton update: found=%v err=%v", found, err)
	}
}

func TestUnknownCollection(t *testing.T) {
	m := NewManager(store.NewMemoryStore())
	ctx := context.Background()

	if _, err := m.GetRaw(ctx, "orders"); err == nil {
		t.Fatalf("unknown collection should fail")
	}
	if _, err := m.AddItem(ctx, "orders", Record{}); err == nil {
		t.Fatalf("unknown collection should fail")
	}
}

func TestGetRawCorruptFallsBackToDefault(t *testing.T) {
	s := store.NewMemoryStore()
	m := NewManager(s)
	ctx := context.Background()

	if raw, err := m.GetRaw(ctx, CollectionCarousels); err != nil || raw != "[]" {
		t.Fatalf("missing list want [] got %q err=%v", raw, err)
	}
	if raw, err := m.GetRaw(ctx, CollectionGameIntro); err != nil || raw != "{}" {
		t.Fatalf("missing singleton want {} got %q err=%v", raw, err)
	}

	if err := s.Set(ctx, CollectionCarousels, "{not json"); err != nil {
		t.Fatalf("seed corrupt failed: %v", err)
	}
	if raw, err := m.GetRaw(ctx, CollectionCarousels); err != nil || raw != "[]" {
		t.Fatalf("corrupt list want [] got %q err=%v", raw, err)
	}

	// 类型不匹配同样视为损坏
	if err := s.Set(ctx, CollectionGameIntro, "[1,2]"); err != nil {
		t.Fatalf("seed mismatched failed: %v", err)
	}
	if raw, err := m.GetRaw(ctx, CollectionGameIntro); err != nil || raw != "{}" {
		t.Fatalf("mismatched singleton want {} got %q err=%v", raw, err)
	}
}

func TestSubscribeNotifiesOnWrite(t *testing.T) {
	m := NewManager(store.NewMemoryStore())
	ctx := context.Background()

	var events []string
	m.Subscribe(func(collection string) {
		events = append(events, collection)
	})

	if err := m.Put(ctx, CollectionAnnouncements, []Record{}); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if err := m.Remove(ctx, CollectionAnnouncements); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("events want 2 got %d", len(events))
	}
	for _, event := range events {
		if event != CollectionAnnouncements {
			t.Fatalf("event collection want %s got %s", CollectionAnnouncements, event)
		}
	}
}

func TestGenerateIDUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := GenerateID()
		if len(id) < 6 {
			t.Fatalf("id too short: %s", id)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id generated: %s", id)
		}
		seen[id] = struct{}{}
	}
}

func TestToRecord(t *testing.T) {
	type slide struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	record, err := ToRecord(slide{ID: "s1", Title: "夏日祭"})
	if err != nil {
		t.Fatalf("to record failed: %v", err)
	}
	if record["id"] != "s1" || record["title"] != "夏日祭" {
		payload, _ := json.Marshal(record)
		t.Fatalf("unexpected record: %s", payload)
	}
}

func TestIsSingleton(t *testing.T) {
	cases := []struct {
		collection string
		want       bool
	}{
		{CollectionGameIntro, true},
		{CollectionSiteSettings, true},
		{CollectionSession, true},
		{CollectionCarousels, false},
		{CollectionComments, false},
		{"orders", false},
	}
	for _, tc := range cases {
		if got := IsSingleton(tc.collection); got != tc.want {
			t.Fatalf("IsSingleton(%s) want %v got %v", tc.collection, tc.want, got)
		}
	}
}
