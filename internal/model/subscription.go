package model

import "time"

// Subscription 作者订阅关系模型，(订阅者, 作者) 组合唯一，不允许订阅自己
type Subscription struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;comment:订阅关系ID" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:uq_user_author_subscription;index:idx_subscriptions_user_id;comment:订阅者用户ID" json:"user_id"`
	AuthorID  int64     `gorm:"not null;uniqueIndex:uq_user_author_subscription;index:idx_subscriptions_author_id;comment:被订阅作者ID" json:"author_id"`
	CreatedAt time.Time `gorm:"autoCreateTime;comment:订阅时间" json:"created_at"`

	// 关联关系
	User   User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Author User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
