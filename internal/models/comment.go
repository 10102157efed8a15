package models

// Reply 评论回复（内嵌于所属评论，随评论删除级联移除）
type Reply struct {
	ID         string `json:"id"`
	UserID     string `json:"userId"`
	Username   string `json:"username"`
	UserAvatar string `json:"userAvatar"`
	Content    string `json:"content"`
	CreatedAt  string `json:"createdAt"`
}

// Comment 评论记录
// PostID 为调用方提供的目标标识，不校验目标是否真实存在。
type Comment struct {
	ID         string  `json:"id"`
	PostID     string  `json:"postId"`
	UserID     string  `json:"userId"`
	Username   string  `json:"username"`
	UserAvatar string  `json:"userAvatar"`
	Content    string  `json:"content"`
	CreatedAt  string  `json:"createdAt"`
	Likes      int     `json:"likes"`
	Replies    []Reply `json:"replies"`
}
