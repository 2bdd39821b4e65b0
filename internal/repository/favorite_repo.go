package repository

import (
	"sabor-go/internal/model"

	"gorm.io/gorm"
)

type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Create 创建收藏记录，(user, recipe) 重复时由唯一约束拒绝
func (r *FavoriteRepository) Create(userID, recipeID int64) (*model.FavoriteRecipe, error) {
	fav := &model.FavoriteRecipe{UserID: userID, RecipeID: recipeID}
	if err := r.db.Create(fav).Error; err != nil {
		return nil, err
	}
	return fav, nil
}

// Delete 删除收藏记录，返回是否确实删除了行
func (r *FavoriteRepository) Delete(userID, recipeID int64) (bool, error) {
	result := r.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&model.FavoriteRecipe{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Exists 检查收藏记录是否存在
func (r *FavoriteRepository) Exists(userID, recipeID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.FavoriteRecipe{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).Count(&count).Error
	return count > 0, err
}

// BatchCheckFavorited 批量查询收藏状态
func (r *FavoriteRepository) BatchCheckFavorited(userID int64, recipeIDs []int64) (map[int64]bool, error) {
	if len(recipeIDs) == 0 {
		return map[int64]bool{}, nil
	}

	var favIDs []int64
	err := r.db.Model(&model.FavoriteRecipe{}).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &favIDs).Error
	if err != nil {
		return nil, err
	}

	favSet := make(map[int64]bool, len(favIDs))
	for _, id := range favIDs {
		favSet[id] = true
	}

	result := make(map[int64]bool, len(recipeIDs))
	for _, id := range recipeIDs {
		result[id] = favSet[id]
	}
	return result, nil
}
