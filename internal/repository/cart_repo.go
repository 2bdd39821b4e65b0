package repository

import (
	"sabor-go/internal/model"

	"gorm.io/gorm"
)

// IngredientTotal 购物清单聚合结果：按 (食材名称, 计量单位) 分组求和
type IngredientTotal struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	TotalAmount     int    `json:"total_amount"`
}

type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

// Create 将食谱加入购物车，(user, recipe) 重复时由唯一约束拒绝
func (r *CartRepository) Create(userID, recipeID int64) (*model.ShoppingCartEntry, error) {
	entry := &model.ShoppingCartEntry{UserID: userID, RecipeID: recipeID}
	if err := r.db.Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// Delete 将食谱移出购物车，返回是否确实删除了行
func (r *CartRepository) Delete(userID, recipeID int64) (bool, error) {
	result := r.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&model.ShoppingCartEntry{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Exists 检查食谱是否已在购物车
func (r *CartRepository) Exists(userID, recipeID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.ShoppingCartEntry{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).Count(&count).Error
	return count > 0, err
}

// CountByUser 统计用户购物车条目数（空购物车守卫用）
func (r *CartRepository) CountByUser(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.ShoppingCartEntry{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// SumIngredients 汇总用户购物车内所有食谱的食材数量：
// 购物车条目 → 食谱食材行 → 食材，按 (名称, 计量单位) 分组求和，按名称排序保证输出稳定
func (r *CartRepository) SumIngredients(userID int64) ([]IngredientTotal, error) {
	var totals []IngredientTotal
	err := r.db.Model(&model.RecipeIngredient{}).
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS total_amount").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN shopping_cart_entries ON shopping_cart_entries.recipe_id = recipe_ingredients.recipe_id").
		Where("shopping_cart_entries.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name").
		Scan(&totals).Error
	return totals, err
}

// BatchCheckInCart 批量查询购物车状态
func (r *CartRepository) BatchCheckInCart(userID int64, recipeIDs []int64) (map[int64]bool, error) {
	if len(recipeIDs) == 0 {
		return map[int64]bool{}, nil
	}

	var inCartIDs []int64
	err := r.db.Model(&model.ShoppingCartEntry{}).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &inCartIDs).Error
	if err != nil {
		return nil, err
	}

	inCartSet := make(map[int64]bool, len(inCartIDs))
	for _, id := range inCartIDs {
		inCartSet[id] = true
	}

	result := make(map[int64]bool, len(recipeIDs))
	for _, id := range recipeIDs {
		result[id] = inCartSet[id]
	}
	return result, nil
}
