package models

// 点赞目标类型
const (
	LikeTargetPost    = "post"
	LikeTargetComment = "comment"
)

// Like 点赞记录
// 不变式：同一 (targetType, targetId, userId) 至多存在一条记录。
type Like struct {
	ID         string `json:"id"`
	TargetType string `json:"targetType"`
	TargetID   string `json:"targetId"`
	UserID     string `json:"userId"`
	CreatedAt  string `json:"createdAt"`
}
