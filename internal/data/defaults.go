package data

import (
	"context"
	"encoding/json"

	"github.com/aozora-fansite/internal/logger"
	"github.com/aozora-fansite/internal/models"
)

// 集合名（持久化键）
const (
	CollectionCarousels     = "carousels"
	CollectionGameIntro     = "gameIntro"
	CollectionCharacters    = "characters"
	CollectionScreenshots   = "screenshots"
	CollectionAnnouncements = "announcements"
	CollectionSiteSettings  = "siteSettings"
	CollectionUsers         = "users"
	CollectionSession       = "userSession"
	CollectionComments      = "comments"
	CollectionLikes         = "likes"
)

type spec struct {
	singleton    bool
	defaultValue func() interface{}
}

func (s spec) emptyJSON() string {
	if s.singleton {
		return "{}"
	}
	return "[]"
}

func (s spec) validate(raw string) bool {
	if s.singleton {
		var probe map[string]interface{}
		return json.Unmarshal([]byte(raw), &probe) == nil
	}
	var probe []interface{}
	return json.Unmarshal([]byte(raw), &probe) == nil
}

func emptyList() interface{} { return []Record{} }

var collections = map[string]spec{
	CollectionCarousels:   {defaultValue: emptyList},
	CollectionCharacters:  {defaultValue: emptyList},
	CollectionScreenshots: {defaultValue: emptyList},
	CollectionUsers:       {defaultValue: emptyList},
	CollectionComments:    {defaultValue: emptyList},
	CollectionLikes:       {defaultValue: emptyList},
	CollectionAnnouncements: {
		defaultValue: emptyList,
	},
	CollectionGameIntro: {
		singleton: true,
		defaultValue: func() interface{} {
			return models.GameIntro{
				Title:       "青空之恋",
				Description: "一款充满青春气息的校园恋爱视觉小说",
				Features:    []models.Feature{},
			}
		},
	},
	CollectionSiteSettings: {
		singleton: true,
		defaultValue: func() interface{} {
			return models.SiteSettings{
				SiteName:  "青空之恋",
				Copyright: "© 2023 青空之恋 版权所有",
			}
		},
	},
	CollectionSession: {
		singleton:    true,
		defaultValue: func() interface{} { return Record{} },
	},
}

func collectionSpec(name string) (spec, bool) {
	s, ok := collections[name]
	return s, ok
}

// IsSingleton 判断集合是否为单例
func IsSingleton(name string) bool {
	s, ok := collections[name]
	return ok && s.singleton
}

// Bootstrap 为尚无存储值的集合写入默认值（只写一次，不触发广播风暴之外的额外写入）
func (m *Manager) Bootstrap(ctx context.Context) error {
	for name, s := range collections {
		if name == CollectionSession {
			// 会话缺失即未登录，不写默认值
			continue
		}
		_, found, err := m.store.Get(ctx, name)
		if err != nil {
			return err
		}
		if found {
			continue
		}
		if err := m.put(ctx, name, s.defaultValue()); err != nil {
			return err
		}
		logger.Debugw("data_collection_bootstrapped", "collection", name)
	}
	return nil
}
