package models

// CarouselSlide 轮播图条目
type CarouselSlide struct {
	ID          string `json:"id"`
	Image       string `json:"image"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link,omitempty"`
}

// Feature 游戏特色子条目
type Feature struct {
	ID          string `json:"id"`
	Icon        string `json:"icon,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// GameIntro 游戏介绍（单例，整体替换更新）
type GameIntro struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Features    []Feature `json:"features"`
}

// Character 角色条目
type Character struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Avatar      string `json:"avatar"`
	Personality string `json:"personality,omitempty"`
	Description string `json:"description"`
	Background  string `json:"background,omitempty"`
}

// Screenshot 游戏截图条目
type Screenshot struct {
	ID       string `json:"id"`
	Image    string `json:"image"`
	Caption  string `json:"caption"`
	Category string `json:"category,omitempty"`
}

// Announcement 公告条目
type Announcement struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Date      string `json:"date"`
	Important bool   `json:"important"`
}

// SocialLinks 社交链接
type SocialLinks struct {
	Weibo  string `json:"weibo"`
	Wechat string `json:"wechat"`
	QQ     string `json:"qq"`
}

// SiteSettings 站点设置（单例，整体替换更新）
type SiteSettings struct {
	SiteName     string      `json:"siteName"`
	Logo         string      `json:"logo"`
	ContactEmail string      `json:"contactEmail"`
	SocialLinks  SocialLinks `json:"socialLinks"`
	Copyright    string      `json:"copyright"`
}
