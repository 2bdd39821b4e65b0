package model

// Tag 标签模型，名称、颜色、slug 均唯一
type Tag struct {
	ID    int64  `gorm:"primaryKey;autoIncrement;comment:标签ID" json:"id"`
	Name  string `gorm:"size:200;not null;uniqueIndex;comment:标签名称" json:"name"`
	Color string `gorm:"size:7;not null;uniqueIndex;comment:标签颜色(十六进制)" json:"color"`
	Slug  string `gorm:"size:200;not null;uniqueIndex;comment:标签Slug" json:"slug"`
}

func (Tag) TableName() string {
	return "tags"
}
