package service

import (
	"errors"
	"testing"

	"sabor-go/internal/api/dto"
	"sabor-go/internal/repository"

	"gorm.io/gorm"
)

func newCartService(db *gorm.DB) *CartService {
	return NewCartService(
		repository.NewCartRepository(db),
		repository.NewRecipeRepository(db),
		repository.NewUserRepository(db),
	)
}

func TestCartAddRemove(t *testing.T) {
	t.Run("AddSuccess", func(t *testing.T) {
		db := setupTestDB(t)
		recipeSvc := newRecipeService(db, &stubImageStore{})
		cartSvc := newCartService(db)

		chef := seedUser(t, db, "chef")
		buyer := seedUser(t, db, "buyer")
		tag := seedTag(t, db, "早餐", "breakfast")
		flour := seedIngredient(t, db, "面粉", "克")

		recipe := seedRecipe(t, recipeSvc, chef.ID, "薄饼", []int64{tag.ID},
			[]dto.RecipeIngredientInput{{ID: flour.ID, Amount: 100}})

		brief, err := cartSvc.Add(buyer.ID, recipe.ID)
		if err != nil {
			t.Fatalf("add to cart failed: %v", err)
		}
		if brief.ID != recipe.ID || brief.Name != "薄饼" {
			t.Errorf("unexpected brief: %+v", brief)
		}
	})

	t.Run("AddDuplicateRejected", func(t *testing.T) {
		db := setupTestDB(t)
		recipeSvc := newRecipeService(db, &stubImageStore{})
		cartSvc := newCartService(db)

		chef := seedUser(t, db, "chef")
		buyer := seedUser(t, db, "buyer")
		tag := seedTag(t, db, "早餐", "breakfast")
		flour := seedIngredient(t, db, "面粉", "克")

		recipe := seedRecipe(t, recipeSvc, chef.ID, "薄饼", []int64{tag.ID},
			[]dto.RecipeIngredientInput{{ID: flour.ID, Amount: 100}})

		if _, err := cartSvc.Add(buyer.ID, recipe.ID); err != nil {
			t.Fatalf("first add failed: %v", err)
		}
		if _, err := cartSvc.Add(buyer.ID, recipe.ID); !errors.Is(err, ErrAlreadyInCart) {
			t.Errorf("expected ErrAlreadyInCart, got %v", err)
		}
	})

	t.Run("AddUnknownRecipe", func(t *testing.T) {
		db := setupTestDB(t)
		cartSvc := newCartService(db)
		buyer := seedUser(t, db, "buyer")

		if _, err := cartSvc.Add(buyer.ID, 404); !errors.Is(err, ErrRecipeNotFound) {
			t.Errorf("expected ErrRecipeNotFound, got %v", err)
		}
	})

	t.Run("RemoveMissingRejected", func(t *testing.T) {
		db := setupTestDB(t)
		recipeSvc := newRecipeService(db, &stubImageStore{})
		cartSvc := newCartService(db)

		chef := seedUser(t, db, "chef")
		buyer := seedUser(t, db, "buyer")
		tag := seedTag(t, db, "早餐", "breakfast")
		flour := seedIngredient(t, db, "面粉", "克")

		recipe := seedRecipe(t, recipeSvc, chef.ID, "薄饼", []int64{tag.ID},
			[]dto.RecipeIngredientInput{{ID: flour.ID, Amount: 100}})

		if err := cartSvc.Remove(buyer.ID, recipe.ID); !errors.Is(err, ErrNotInCart) {
			t.Errorf("expected ErrNotInCart, got %v", err)
		}

		if _, err := cartSvc.Add(buyer.ID, recipe.ID); err != nil {
			t.Fatalf("add failed: %v", err)
		}
		if err := cartSvc.Remove(buyer.ID, recipe.ID); err != nil {
			t.Fatalf("remove failed: %v", err)
		}
		// 再次移除应被拒绝
		if err := cartSvc.Remove(buyer.ID, recipe.ID); !errors.Is(err, ErrNotInCart) {
			t.Errorf("expected ErrNotInCart after removal, got %v", err)
		}
	})
}

func TestBuildShoppingList(t *testing.T) {
	t.Run("AggregatesByNameAndUnit", func(t *testing.T) {
		db := setupTestDB(t)
		recipeSvc := newRecipeService(db, &stubImageStore{})
		cartSvc := newCartService(db)

		chef := seedUser(t, db, "chef")
		buyer := seedUser(t, db, "buyer")
		tag := seedTag(t, db, "晚餐", "dinner")
		flour := seedIngredient(t, db, "面粉", "克")
		milk := seedIngredient(t, db, "牛奶", "毫升")

		pancake := seedRecipe(t, recipeSvc, chef.ID, "薄饼", []int64{tag.ID},
			[]dto.RecipeIngredientInput{
				{ID: flour.ID, Amount: 200},
				{ID: milk.ID, Amount: 300},
			})
		bread := seedRecipe(t, recipeSvc, chef.ID, "面包", []int64{tag.ID},
			[]dto.RecipeIngredientInput{{ID: flour.ID, Amount: 500}})

		for _, id := range []int64{pancake.ID, bread.ID} {
			if _, err := cartSvc.Add(buyer.ID, id); err != nil {
				t.Fatalf("add to cart failed: %v", err)
			}
		}

		data, err := cartSvc.BuildShoppingList(buyer.ID)
		if err != nil {
			t.Fatalf("build shopping list failed: %v", err)
		}

		if data.Username != "buyer" {
			t.Errorf("unexpected username: %s", data.Username)
		}
		if len(data.Items) != 2 {
			t.Fatalf("expected 2 aggregated items, got %d", len(data.Items))
		}

		// 按名称排序：牛奶 < 面粉
		if data.Items[0].Name != "牛奶" || data.Items[0].TotalAmount != 300 {
			t.Errorf("unexpected first item: %+v", data.Items[0])
		}
		if data.Items[1].Name != "面粉" || data.Items[1].TotalAmount != 700 {
			t.Errorf("expected flour total 700, got %+v", data.Items[1])
		}

		want := "购物清单\n• 牛奶 (毫升) — 300\n• 面粉 (克) — 700\n"
		if data.Report != want {
			t.Errorf("unexpected report:\n got: %q\nwant: %q", data.Report, want)
		}
	})

	t.Run("SameNameDifferentUnitKeptSeparate", func(t *testing.T) {
		db := setupTestDB(t)
		recipeSvc := newRecipeService(db, &stubImageStore{})
		cartSvc := newCartService(db)

		chef := seedUser(t, db, "chef")
		buyer := seedUser(t, db, "buyer")
		tag := seedTag(t, db, "晚餐", "dinner")
		sugarG := seedIngredient(t, db, "糖", "克")
		sugarTbsp := seedIngredient(t, db, "糖", "汤匙")

		cake := seedRecipe(t, recipeSvc, chef.ID, "蛋糕", []int64{tag.ID},
			[]dto.RecipeIngredientInput{
				{ID: sugarG.ID, Amount: 100},
				{ID: sugarTbsp.ID, Amount: 2},
			})

		if _, err := cartSvc.Add(buyer.ID, cake.ID); err != nil {
			t.Fatalf("add to cart failed: %v", err)
		}

		data, err := cartSvc.BuildShoppingList(buyer.ID)
		if err != nil {
			t.Fatalf("build shopping list failed: %v", err)
		}
		if len(data.Items) != 2 {
			t.Errorf("expected separate items per (name, unit), got %+v", data.Items)
		}
	})

	t.Run("EmptyCartRejected", func(t *testing.T) {
		db := setupTestDB(t)
		cartSvc := newCartService(db)
		buyer := seedUser(t, db, "buyer")

		if _, err := cartSvc.BuildShoppingList(buyer.ID); !errors.Is(err, ErrEmptyCart) {
			t.Errorf("expected ErrEmptyCart, got %v", err)
		}
	})

	t.Run("UnknownUserRejected", func(t *testing.T) {
		db := setupTestDB(t)
		cartSvc := newCartService(db)

		if _, err := cartSvc.BuildShoppingList(404); !errors.Is(err, ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})
}
