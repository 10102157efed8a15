package models

// Entry 键值存储表（每个集合一行，值为 JSON 文本）
type Entry struct {
	Key   string `gorm:"primarykey" json:"key"`
	Value string `gorm:"type:text" json:"value"`
}

// TableName 指定表名
func (Entry) TableName() string {
	return "entries"
}
