package repository

import (
	"sabor-go/internal/model"

	"gorm.io/gorm"
)

type TagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

// GetByID 根据 ID 获取标签
func (r *TagRepository) GetByID(id int64) (*model.Tag, error) {
	var tag model.Tag
	err := r.db.Where("id = ?", id).First(&tag).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// List 获取全部标签
func (r *TagRepository) List() ([]model.Tag, error) {
	var tags []model.Tag
	err := r.db.Order("id").Find(&tags).Error
	return tags, err
}

// CountByIDs 统计给定 ID 中实际存在的标签数量（校验引用用）
func (r *TagRepository) CountByIDs(ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.Model(&model.Tag{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}

// Create 创建标签（导入工具用）
func (r *TagRepository) Create(tag *model.Tag) error {
	return r.db.Create(tag).Error
}
