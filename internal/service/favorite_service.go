package service

import (
	"errors"

	"sabor-go/internal/api/dto"
	"sabor-go/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrAlreadyFavorited = errors.New("您已经收藏过该食谱了")
	ErrNotFavorited     = errors.New("您尚未收藏该食谱")
)

type FavoriteService struct {
	favoriteRepo *repository.FavoriteRepository
	recipeRepo   *repository.RecipeRepository
}

func NewFavoriteService(favoriteRepo *repository.FavoriteRepository, recipeRepo *repository.RecipeRepository) *FavoriteService {
	return &FavoriteService{favoriteRepo: favoriteRepo, recipeRepo: recipeRepo}
}

// Favorite 收藏食谱。重复收藏显式拒绝，并发竞争由唯一约束兜底
func (s *FavoriteService) Favorite(userID, recipeID int64) (*dto.RecipeBrief, error) {
	recipe, err := s.recipeRepo.GetByID(recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	exists, err := s.favoriteRepo.Exists(userID, recipeID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyFavorited
	}

	if _, err := s.favoriteRepo.Create(userID, recipeID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyFavorited
		}
		return nil, err
	}

	return toRecipeBrief(recipe), nil
}

// Unfavorite 取消收藏，记录不存在时显式拒绝
func (s *FavoriteService) Unfavorite(userID, recipeID int64) error {
	deleted, err := s.favoriteRepo.Delete(userID, recipeID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFavorited
	}
	return nil
}
