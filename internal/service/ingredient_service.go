package service

import (
	"errors"

	"sabor-go/internal/api/dto"
	"sabor-go/internal/model"
	"sabor-go/internal/repository"

	"gorm.io/gorm"
)

var ErrIngredientNotFound = errors.New("食材不存在")

type IngredientService struct {
	ingredientRepo *repository.IngredientRepository
}

func NewIngredientService(ingredientRepo *repository.IngredientRepository) *IngredientService {
	return &IngredientService{ingredientRepo: ingredientRepo}
}

// List 获取食材目录，支持按名称前缀过滤
func (s *IngredientService) List(namePrefix string) ([]dto.IngredientInfo, error) {
	ingredients, err := s.ingredientRepo.List(namePrefix)
	if err != nil {
		return nil, err
	}

	items := make([]dto.IngredientInfo, 0, len(ingredients))
	for i := range ingredients {
		items = append(items, *toIngredientInfo(&ingredients[i]))
	}
	return items, nil
}

// Get 根据 ID 获取食材
func (s *IngredientService) Get(id int64) (*dto.IngredientInfo, error) {
	ingredient, err := s.ingredientRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIngredientNotFound
		}
		return nil, err
	}
	return toIngredientInfo(ingredient), nil
}

func toIngredientInfo(ingredient *model.Ingredient) *dto.IngredientInfo {
	return &dto.IngredientInfo{
		ID:              ingredient.ID,
		Name:            ingredient.Name,
		MeasurementUnit: ingredient.MeasurementUnit,
	}
}
