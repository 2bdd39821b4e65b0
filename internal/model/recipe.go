package model

import "time"

// Recipe 食谱模型
type Recipe struct {
	ID          int64     `gorm:"primaryKey;autoIncrement;comment:食谱ID" json:"id"`
	AuthorID    int64     `gorm:"not null;index:idx_recipes_author_id;comment:食谱作者ID" json:"author_id"`
	Name        string    `gorm:"size:200;not null;index:idx_recipes_name;comment:食谱名称" json:"name"`
	Image       string    `gorm:"size:500;not null;comment:食谱图片地址" json:"image"`
	Text        string    `gorm:"type:text;not null;comment:食谱描述" json:"text"`
	CookingTime int       `gorm:"not null;comment:烹饪时间（分钟）" json:"cooking_time"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index:idx_recipes_created_at;comment:发布时间" json:"created_at"`

	// 关联关系
	Author            User               `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	Tags              []Tag              `gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE" json:"tags,omitempty"`
	RecipeIngredients []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"recipe_ingredients,omitempty"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// RecipeIngredient 食谱-食材关联模型，(食谱, 食材) 组合唯一
type RecipeIngredient struct {
	ID           int64 `gorm:"primaryKey;autoIncrement;comment:关联ID" json:"id"`
	RecipeID     int64 `gorm:"not null;uniqueIndex:uq_recipe_ingredient;index:idx_recipe_ingredients_recipe_id;comment:食谱ID" json:"recipe_id"`
	IngredientID int64 `gorm:"not null;uniqueIndex:uq_recipe_ingredient;comment:食材ID" json:"ingredient_id"`
	Amount       int   `gorm:"not null;comment:食材数量" json:"amount"`

	// 关联关系
	Recipe     Recipe     `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"recipe,omitempty"`
	Ingredient Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE" json:"ingredient,omitempty"`
}

func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}
