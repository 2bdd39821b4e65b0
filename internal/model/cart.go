package model

import "time"

// ShoppingCartEntry 购物车条目模型，(用户, 食谱) 组合唯一
type ShoppingCartEntry struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;comment:购物车条目ID" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:uq_user_recipe_cart;index:idx_cart_user_id;comment:用户ID" json:"user_id"`
	RecipeID  int64     `gorm:"not null;uniqueIndex:uq_user_recipe_cart;index:idx_cart_recipe_id;comment:食谱ID" json:"recipe_id"`
	CreatedAt time.Time `gorm:"autoCreateTime;comment:加入时间" json:"created_at"`

	// 关联关系
	User   User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Recipe Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"recipe,omitempty"`
}

func (ShoppingCartEntry) TableName() string {
	return "shopping_cart_entries"
}
