package service

import (
	"errors"
	"testing"

	"sabor-go/internal/api/dto"
	"sabor-go/internal/repository"

	"gorm.io/gorm"
)

func newFavoriteService(db *gorm.DB) *FavoriteService {
	return NewFavoriteService(
		repository.NewFavoriteRepository(db),
		repository.NewRecipeRepository(db),
	)
}

func TestFavorite(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db := setupTestDB(t)
		recipeSvc := newRecipeService(db, &stubImageStore{})
		favSvc := newFavoriteService(db)

		chef := seedUser(t, db, "chef")
		fan := seedUser(t, db, "fan")
		tag := seedTag(t, db, "早餐", "breakfast")
		flour := seedIngredient(t, db, "面粉", "克")

		recipe := seedRecipe(t, recipeSvc, chef.ID, "薄饼", []int64{tag.ID},
			[]dto.RecipeIngredientInput{{ID: flour.ID, Amount: 100}})

		brief, err := favSvc.Favorite(fan.ID, recipe.ID)
		if err != nil {
			t.Fatalf("favorite failed: %v", err)
		}
		if brief.ID != recipe.ID || brief.CookingTime != 30 {
			t.Errorf("unexpected brief: %+v", brief)
		}

		// 详情视图应反映收藏状态
		detail, err := recipeSvc.GetDetail(recipe.ID, &fan.ID)
		if err != nil {
			t.Fatalf("get detail failed: %v", err)
		}
		if !detail.IsFavorited {
			t.Error("is_favorited flag should be true after favoriting")
		}
	})

	t.Run("DuplicateRejected", func(t *testing.T) {
		db := setupTestDB(t)
		recipeSvc := newRecipeService(db, &stubImageStore{})
		favSvc := newFavoriteService(db)

		chef := seedUser(t, db, "chef")
		fan := seedUser(t, db, "fan")
		tag := seedTag(t, db, "早餐", "breakfast")
		flour := seedIngredient(t, db, "面粉", "克")

		recipe := seedRecipe(t, recipeSvc, chef.ID, "薄饼", []int64{tag.ID},
			[]dto.RecipeIngredientInput{{ID: flour.ID, Amount: 100}})

		if _, err := favSvc.Favorite(fan.ID, recipe.ID); err != nil {
			t.Fatalf("first favorite failed: %v", err)
		}
		if _, err := favSvc.Favorite(fan.ID, recipe.ID); !errors.Is(err, ErrAlreadyFavorited) {
			t.Errorf("expected ErrAlreadyFavorited, got %v", err)
		}
	})

	t.Run("UnknownRecipe", func(t *testing.T) {
		db := setupTestDB(t)
		favSvc := newFavoriteService(db)
		fan := seedUser(t, db, "fan")

		if _, err := favSvc.Favorite(fan.ID, 404); !errors.Is(err, ErrRecipeNotFound) {
			t.Errorf("expected ErrRecipeNotFound, got %v", err)
		}
	})
}

func TestUnfavorite(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db := setupTestDB(t)
		recipeSvc := newRecipeService(db, &stubImageStore{})
		favSvc := newFavoriteService(db)

		chef := seedUser(t, db, "chef")
		fan := seedUser(t, db, "fan")
		tag := seedTag(t, db, "早餐", "breakfast")
		flour := seedIngredient(t, db, "面粉", "克")

		recipe := seedRecipe(t, recipeSvc, chef.ID, "薄饼", []int64{tag.ID},
			[]dto.RecipeIngredientInput{{ID: flour.ID, Amount: 100}})

		if _, err := favSvc.Favorite(fan.ID, recipe.ID); err != nil {
			t.Fatalf("favorite failed: %v", err)
		}
		if err := favSvc.Unfavorite(fan.ID, recipe.ID); err != nil {
			t.Fatalf("unfavorite failed: %v", err)
		}
	})

	t.Run("MissingRejected", func(t *testing.T) {
		db := setupTestDB(t)
		recipeSvc := newRecipeService(db, &stubImageStore{})
		favSvc := newFavoriteService(db)

		chef := seedUser(t, db, "chef")
		fan := seedUser(t, db, "fan")
		tag := seedTag(t, db, "早餐", "breakfast")
		flour := seedIngredient(t, db, "面粉", "克")

		recipe := seedRecipe(t, recipeSvc, chef.ID, "薄饼", []int64{tag.ID},
			[]dto.RecipeIngredientInput{{ID: flour.ID, Amount: 100}})

		if err := favSvc.Unfavorite(fan.ID, recipe.ID); !errors.Is(err, ErrNotFavorited) {
			t.Errorf("expected ErrNotFavorited, got %v", err)
		}
	})
}
