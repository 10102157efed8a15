package service

import (
	"context"
	"errors"
	"testing"

	"github.com/aozora-fansite/internal/data"
	"github.com/aozora-fansite/internal/models"
	"github.com/aozora-fansite/internal/store"
)

func newTestManager(t *testing.T) *data.Manager {
	t.Helper()
	return data.NewManager(store.NewMemoryStore())
}

func TestCarouselCRUD(t *testing.T) {
	s := NewCarouselService(newTestManager(t))
	ctx := context.Background()

	if _, err := s.Create(ctx, CarouselInput{Title: "缺图"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("missing image want ErrValidation got %v", err)
	}

	slide, err := s.Create(ctx, CarouselInput{Image: "/c1.jpg", Title: " 开学季 ", Link: "/announcements"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if slide.ID == "" || slide.Title != "开学季" {
		t.Fatalf("unexpected slide: %+v", slide)
	}

	updated, err := s.Update(ctx, slide.ID, CarouselInput{Image: "/c2.jpg", Title: "夏日祭"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Image != "/c2.jpg" {
		t.Fatalf("update not applied: %+v", updated)
	}
	if _, err := s.Update(ctx, "missing", CarouselInput{Image: "/x.jpg", Title: "x"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update missing want ErrNotFound got %v", err)
	}

	got, err := s.GetByID(ctx, slide.ID)
	if err != nil || got.Title != "夏日祭" {
		t.Fatalf("get by id: %+v err=%v", got, err)
	}

	if err := s.Delete(ctx, slide.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := s.Delete(ctx, slide.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete want ErrNotFound got %v", err)
	}
}

func TestAnnouncementListSortedByDateDesc(t *testing.T) {
	s := NewAnnouncementService(newTestManager(t))
	ctx := context.Background()

	inputs := []AnnouncementInput{
		{Title: "一", Content: "c", Date: "2023-07-28"},
		{Title: "二", Content: "c", Date: "2023-08-12"},
		{Title: "三", Content: "c", Date: "2023-08-05"},
		{Title: "四", Content: "c", Date: "2023-08-12"},
	}
	for _, input := range inputs {
		if _, err := s.Create(ctx, input); err != nil {
			t.Fatalf("create %s failed: %v", input.Title, err)
		}
	}

	listed, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	wantOrder := []string{"二", "四", "三", "一"}
	if len(listed) != len(wantOrder) {
		t.Fatalf("listed want %d got %d", len(wantOrder), len(listed))
	}
	for i, want := range wantOrder {
		if listed[i].Title != want {
			t.Fatalf("position %d want %s got %s (stable sort violated)", i, want, listed[i].Title)
		}
	}
}

func TestAnnouncementDateBackfilled(t *testing.T) {
	s := NewAnnouncementService(newTestManager(t))
	ctx := context.Background()

	announcement, err := s.Create(ctx, AnnouncementInput{Title: "无日期", Content: "c"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if announcement.Date == "" {
		t.Fatalf("missing date should default to today")
	}
}

func TestGameIntroDefaultsAndUpdate(t *testing.T) {
	s := NewGameIntroService(newTestManager(t))
	ctx := context.Background()

	intro, err := s.Get(ctx)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if intro.Title != "青空之恋" {
		t.Fatalf("default title want 青空之恋 got %s", intro.Title)
	}
	if intro.Features == nil {
		t.Fatalf("features should never be nil")
	}

	if _, err := s.Update(ctx, GameIntroInput{Title: "", Description: "d"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("empty title want ErrValidation got %v", err)
	}

	updated, err := s.Update(ctx, GameIntroInput{
		Title:       "青空之恋",
		Description: "校园恋爱视觉小说",
		Features: []FeatureInput{
			{Icon: "story", Title: "多线剧情", Description: "五条线路"},
			{ID: "keep-me", Title: "全彩立绘"},
		},
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if len(updated.Features) != 2 {
		t.Fatalf("features want 2 got %d", len(updated.Features))
	}
	if updated.Features[0].ID == "" {
		t.Fatalf("feature without id should get a generated one")
	}
	if updated.Features[1].ID != "keep-me" {
		t.Fatalf("existing feature id should be kept, got %s", updated.Features[1].ID)
	}

	got, err := s.Get(ctx)
	if err != nil || got.Description != "校园恋爱视觉小说" {
		t.Fatalf("get after update: %+v err=%v", got, err)
	}
}

func TestSiteSettingsDefaultsAndUpdate(t *testing.T) {
	s := NewSiteSettingsService(newTestManager(t))
	ctx := context.Background()

	settings, err := s.Get(ctx)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if settings.SiteName != "青空之恋" || settings.Copyright == "" {
		t.Fatalf("unexpected defaults: %+v", settings)
	}

	if _, err := s.Update(ctx, SiteSettingsInput{SiteName: "  "}); !errors.Is(err, ErrValidation) {
		t.Fatalf("blank site name want ErrValidation got %v", err)
	}

	updated, err := s.Update(ctx, SiteSettingsInput{
		SiteName:     "青空之恋 Fan Site",
		ContactEmail: "contact@example.com",
		SocialLinks:  models.SocialLinks{Weibo: "https://weibo.com/aozora"},
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.SocialLinks.Weibo == "" {
		t.Fatalf("social links lost in update: %+v", updated)
	}

	got, err := s.Get(ctx)
	if err != nil || got.SiteName != "青空之恋 Fan Site" {
		t.Fatalf("get after update: %+v err=%v", got, err)
	}
}

func TestCharacterAndScreenshotValidation(t *testing.T) {
	m := newTestManager(t)
	characters := NewCharacterService(m)
	screenshots := NewScreenshotService(m)
	ctx := context.Background()

	if _, err := characters.Create(ctx, CharacterInput{Avatar: "/a.png"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("missing name want ErrValidation got %v", err)
	}
	character, err := characters.Create(ctx, CharacterInput{Name: "星野美咲", Avatar: "/a.png", Description: "天文社社长"})
	if err != nil {
		t.Fatalf("create character failed: %v", err)
	}
	if _, err := characters.GetByID(ctx, character.ID); err != nil {
		t.Fatalf("get character failed: %v", err)
	}

	if _, err := screenshots.Create(ctx, ScreenshotInput{Caption: "缺图"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("missing image want ErrValidation got %v", err)
	}
	if _, err := screenshots.Create(ctx, ScreenshotInput{Image: "/s1.jpg", Caption: "教室", Category: "日常"}); err != nil {
		t.Fatalf("create screenshot failed: %v", err)
	}
	listed, err := screenshots.List(ctx)
	if err != nil || len(listed) != 1 {
		t.Fatalf("screenshot list: %d err=%v", len(listed), err)
	}
}
