package repository

import (
	"sabor-go/internal/model"

	"gorm.io/gorm"
)

type IngredientRepository struct {
	db *gorm.DB
}

func NewIngredientRepository(db *gorm.DB) *IngredientRepository {
	return &IngredientRepository{db: db}
}

// GetByID 根据 ID 获取食材
func (r *IngredientRepository) GetByID(id int64) (*model.Ingredient, error) {
	var ingredient model.Ingredient
	err := r.db.Where("id = ?", id).First(&ingredient).Error
	if err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// List 获取食材列表，支持按名称前缀过滤
func (r *IngredientRepository) List(namePrefix string) ([]model.Ingredient, error) {
	query := r.db.Model(&model.Ingredient{})
	if namePrefix != "" {
		query = query.Where("name ILIKE ?", namePrefix+"%")
	}

	var ingredients []model.Ingredient
	err := query.Order("name").Find(&ingredients).Error
	return ingredients, err
}

// CountByIDs 统计给定 ID 中实际存在的食材数量（校验引用用）
func (r *IngredientRepository) CountByIDs(ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.Model(&model.Ingredient{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}

// GetOrCreate 按 (名称, 计量单位) 幂等创建食材，返回是否新建
func (r *IngredientRepository) GetOrCreate(name, unit string) (*model.Ingredient, bool, error) {
	ingredient := model.Ingredient{Name: name, MeasurementUnit: unit}
	result := r.db.Where("name = ? AND measurement_unit = ?", name, unit).FirstOrCreate(&ingredient)
	if result.Error != nil {
		return nil, false, result.Error
	}
	return &ingredient, result.RowsAffected > 0, nil
}
