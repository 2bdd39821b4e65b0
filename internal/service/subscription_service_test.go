package service

import (
	"errors"
	"testing"

	"sabor-go/internal/api/dto"
	"sabor-go/internal/repository"

	"gorm.io/gorm"
)

func newSubscriptionService(db *gorm.DB) *SubscriptionService {
	return NewSubscriptionService(
		repository.NewSubscriptionRepository(db),
		repository.NewUserRepository(db),
		repository.NewRecipeRepository(db),
	)
}

func TestSubscribe(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db := setupTestDB(t)
		recipeSvc := newRecipeService(db, &stubImageStore{})
		subSvc := newSubscriptionService(db)

		chef := seedUser(t, db, "chef")
		reader := seedUser(t, db, "reader")
		tag := seedTag(t, db, "早餐", "breakfast")
		flour := seedIngredient(t, db, "面粉", "克")

		seedRecipe(t, recipeSvc, chef.ID, "薄饼", []int64{tag.ID},
			[]dto.RecipeIngredientInput{{ID: flour.ID, Amount: 100}})
		seedRecipe(t, recipeSvc, chef.ID, "面包", []int64{tag.ID},
			[]dto.RecipeIngredientInput{{ID: flour.ID, Amount: 500}})

		info, err := subSvc.Subscribe(reader.ID, chef.ID, 0)
		if err != nil {
			t.Fatalf("subscribe failed: %v", err)
		}

		if info.ID != chef.ID || !info.IsSubscribed {
			t.Errorf("unexpected subscription info: %+v", info)
		}
		if info.RecipesCount != 2 || len(info.Recipes) != 2 {
			t.Errorf("expected 2 recipes, got count=%d len=%d", info.RecipesCount, len(info.Recipes))
		}
	})

	t.Run("RecipesLimit", func(t *testing.T) {
		db := setupTestDB(t)
		recipeSvc := newRecipeService(db, &stubImageStore{})
		subSvc := newSubscriptionService(db)

		chef := seedUser(t, db, "chef")
		reader := seedUser(t, db, "reader")
		tag := seedTag(t, db, "早餐", "breakfast")
		flour := seedIngredient(t, db, "面粉", "克")

		seedRecipe(t, recipeSvc, chef.ID, "薄饼", []int64{tag.ID},
			[]dto.RecipeIngredientInput{{ID: flour.ID, Amount: 100}})
		seedRecipe(t, recipeSvc, chef.ID, "面包", []int64{tag.ID},
			[]dto.RecipeIngredientInput{{ID: flour.ID, Amount: 500}})

		info, err := subSvc.Subscribe(reader.ID, chef.ID, 1)
		if err != nil {
			t.Fatalf("subscribe failed: %v", err)
		}
		if info.RecipesCount != 2 {
			t.Errorf("recipes_count should ignore limit, got %d", info.RecipesCount)
		}
		if len(info.Recipes) != 1 {
			t.Errorf("expected 1 recipe with limit, got %d", len(info.Recipes))
		}
	})

	t.Run("SelfRejectedFirst", func(t *testing.T) {
		db := setupTestDB(t)
		subSvc := newSubscriptionService(db)
		reader := seedUser(t, db, "reader")

		if _, err := subSvc.Subscribe(reader.ID, reader.ID, 0); !errors.Is(err, ErrCannotSubscribeSelf) {
			t.Errorf("expected ErrCannotSubscribeSelf, got %v", err)
		}
	})

	t.Run("DuplicateRejected", func(t *testing.T) {
		db := setupTestDB(t)
		subSvc := newSubscriptionService(db)

		chef := seedUser(t, db, "chef")
		reader := seedUser(t, db, "reader")

		if _, err := subSvc.Subscribe(reader.ID, chef.ID, 0); err != nil {
			t.Fatalf("first subscribe failed: %v", err)
		}
		if _, err := subSvc.Subscribe(reader.ID, chef.ID, 0); !errors.Is(err, ErrAlreadySubscribed) {
			t.Errorf("expected ErrAlreadySubscribed, got %v", err)
		}
	})

	t.Run("UnknownAuthor", func(t *testing.T) {
		db := setupTestDB(t)
		subSvc := newSubscriptionService(db)
		reader := seedUser(t, db, "reader")

		if _, err := subSvc.Subscribe(reader.ID, 404, 0); !errors.Is(err, ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestUnsubscribe(t *testing.T) {
	db := setupTestDB(t)
	subSvc := newSubscriptionService(db)

	chef := seedUser(t, db, "chef")
	reader := seedUser(t, db, "reader")

	if err := subSvc.Unsubscribe(reader.ID, chef.ID); !errors.Is(err, ErrNotSubscribed) {
		t.Errorf("expected ErrNotSubscribed, got %v", err)
	}

	if _, err := subSvc.Subscribe(reader.ID, chef.ID, 0); err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	if err := subSvc.Unsubscribe(reader.ID, chef.ID); err != nil {
		t.Fatalf("unsubscribe failed: %v", err)
	}
	// 再次取消应被拒绝
	if err := subSvc.Unsubscribe(reader.ID, chef.ID); !errors.Is(err, ErrNotSubscribed) {
		t.Errorf("expected ErrNotSubscribed after unsubscribe, got %v", err)
	}
}

func TestListSubscriptions(t *testing.T) {
	db := setupTestDB(t)
	recipeSvc := newRecipeService(db, &stubImageStore{})
	subSvc := newSubscriptionService(db)

	reader := seedUser(t, db, "reader")
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	tag := seedTag(t, db, "早餐", "breakfast")
	flour := seedIngredient(t, db, "面粉", "克")

	seedRecipe(t, recipeSvc, alice.ID, "薄饼", []int64{tag.ID},
		[]dto.RecipeIngredientInput{{ID: flour.ID, Amount: 100}})

	for _, author := range []int64{alice.ID, bob.ID} {
		if _, err := subSvc.Subscribe(reader.ID, author, 0); err != nil {
			t.Fatalf("subscribe failed: %v", err)
		}
	}

	data, err := subSvc.ListSubscriptions(reader.ID, 1, 20, 0)
	if err != nil {
		t.Fatalf("list subscriptions failed: %v", err)
	}
	if data.Total != 2 || len(data.Authors) != 2 {
		t.Fatalf("expected 2 subscriptions, got total=%d len=%d", data.Total, len(data.Authors))
	}

	byID := make(map[int64]dto.SubscriptionInfo, len(data.Authors))
	for _, a := range data.Authors {
		byID[a.ID] = a
	}
	if byID[alice.ID].RecipesCount != 1 {
		t.Errorf("expected alice recipes_count 1, got %d", byID[alice.ID].RecipesCount)
	}
	if byID[bob.ID].RecipesCount != 0 {
		t.Errorf("expected bob recipes_count 0, got %d", byID[bob.ID].RecipesCount)
	}
	for _, a := range data.Authors {
		if !a.IsSubscribed {
			t.Errorf("author %d should be marked subscribed", a.ID)
		}
	}
}
