package models

// RoleUser 普通用户角色
const RoleUser = "user"

// RoleAdmin 管理员角色
const RoleAdmin = "admin"

// User 用户记录
// Password 字段保存 bcrypt 哈希，序列化键沿用历史存储格式。
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	Role         string `json:"role"`
	Avatar       string `json:"avatar"`
	RegisterDate string `json:"registerDate"`
	LastLogin    string `json:"lastLogin,omitempty"`
}

// IsAdmin 判断是否为管理员
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Sanitize 返回去除密码字段的用户视图
func (u *User) Sanitize() *PublicUser {
	if u == nil {
		return nil
	}
	return &PublicUser{
		ID:           u.ID,
		Username:     u.Username,
		Role:         u.Role,
		Avatar:       u.Avatar,
		RegisterDate: u.RegisterDate,
		LastLogin:    u.LastLogin,
	}
}

// PublicUser 对外暴露的用户视图（不含密码）
type PublicUser struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Role         string `json:"role"`
	Avatar       string `json:"avatar"`
	RegisterDate string `json:"registerDate"`
	LastLogin    string `json:"lastLogin,omitempty"`
}

// Session 登录会话（每个存储域至多一个）
type Session struct {
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	LoginTime string `json:"loginTime"`
	ExpiresAt string `json:"expiresAt"`
}
