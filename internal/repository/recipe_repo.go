package repository

import (
	"sabor-go/internal/model"

	"gorm.io/gorm"
)

type RecipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// GetByID 根据 ID 获取食谱
func (r *RecipeRepository) GetByID(id int64) (*model.Recipe, error) {
	var recipe model.Recipe
	err := r.db.Where("id = ?", id).First(&recipe).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// GetByIDWithRelations 根据 ID 获取食谱（含作者、标签、食材及数量）
func (r *RecipeRepository) GetByIDWithRelations(id int64) (*model.Recipe, error) {
	var recipe model.Recipe
	err := r.db.
		Preload("Author").
		Preload("Tags").
		Preload("RecipeIngredients.Ingredient").
		Where("id = ?", id).
		First(&recipe).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// CreateWithAssociations 在单个事务内创建食谱及其标签、食材关联
func (r *RecipeRepository) CreateWithAssociations(recipe *model.Recipe, tagIDs []int64, ingredients []model.RecipeIngredient) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "RecipeIngredients").Create(recipe).Error; err != nil {
			return err
		}
		if err := replaceTags(tx, recipe, tagIDs); err != nil {
			return err
		}
		return insertIngredients(tx, recipe.ID, ingredients)
	})
}

// UpdateWithAssociations 在单个事务内更新食谱标量字段并整体替换标签、食材关联。
// 食材关联采用先删后插的整体替换，不做增量合并
func (r *RecipeRepository) UpdateWithAssociations(recipe *model.Recipe, updates map[string]interface{}, tagIDs []int64, ingredients []model.RecipeIngredient) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(recipe).Updates(updates).Error; err != nil {
			return err
		}
		if err := replaceTags(tx, recipe, tagIDs); err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&model.RecipeIngredient{}).Error; err != nil {
			return err
		}
		return insertIngredients(tx, recipe.ID, ingredients)
	})
}

// Delete 删除食谱，关联的食材行、收藏、购物车条目由外键级联清理
func (r *RecipeRepository) Delete(recipe *model.Recipe) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(recipe).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&model.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&model.FavoriteRecipe{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&model.ShoppingCartEntry{}).Error; err != nil {
			return err
		}
		return tx.Delete(recipe).Error
	})
}

// ListRecipes 食谱列表查询（分页 + 按作者/标签slug/收藏/购物车过滤）
func (r *RecipeRepository) ListRecipes(skip, limit int, authorID *int64, tagSlugs []string, favoritedBy, inCartOf *int64) ([]model.Recipe, int64, error) {
	query := r.db.Model(&model.Recipe{})

	if authorID != nil {
		query = query.Where("author_id = ?", *authorID)
	}
	if len(tagSlugs) > 0 {
		query = query.Where("recipes.id IN (?)",
			r.db.Table("recipe_tags").
				Select("recipe_tags.recipe_id").
				Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
				Where("tags.slug IN ?", tagSlugs))
	}
	if favoritedBy != nil {
		query = query.Where("recipes.id IN (?)",
			r.db.Model(&model.FavoriteRecipe{}).
				Select("recipe_id").
				Where("user_id = ?", *favoritedBy))
	}
	if inCartOf != nil {
		query = query.Where("recipes.id IN (?)",
			r.db.Model(&model.ShoppingCartEntry{}).
				Select("recipe_id").
				Where("user_id = ?", *inCartOf))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var recipes []model.Recipe
	err := query.
		Preload("Author").
		Preload("Tags").
		Preload("RecipeIngredients.Ingredient").
		Order("created_at DESC").
		Offset(skip).Limit(limit).
		Find(&recipes).Error
	if err != nil {
		return nil, 0, err
	}

	return recipes, total, nil
}

// CountByAuthor 统计作者的食谱数量
func (r *RecipeRepository) CountByAuthor(authorID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Recipe{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

// ListByAuthor 获取作者的食谱列表（订阅展示用，limit <= 0 表示不限制）
func (r *RecipeRepository) ListByAuthor(authorID int64, limit int) ([]model.Recipe, error) {
	query := r.db.Where("author_id = ?", authorID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var recipes []model.Recipe
	err := query.Find(&recipes).Error
	return recipes, err
}

// replaceTags 将食谱的标签关联整体替换为 tagIDs
func replaceTags(tx *gorm.DB, recipe *model.Recipe, tagIDs []int64) error {
	tags := make([]model.Tag, 0, len(tagIDs))
	for _, id := range tagIDs {
		tags = append(tags, model.Tag{ID: id})
	}
	return tx.Model(recipe).Association("Tags").Replace(tags)
}

// insertIngredients 批量插入食谱的食材关联行
func insertIngredients(tx *gorm.DB, recipeID int64, ingredients []model.RecipeIngredient) error {
	if len(ingredients) == 0 {
		return nil
	}
	for i := range ingredients {
		ingredients[i].RecipeID = recipeID
	}
	return tx.Create(&ingredients).Error
}
