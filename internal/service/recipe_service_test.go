package service

import (
	"context"
	"errors"
	"testing"

	"sabor-go/internal/api/dto"
	"sabor-go/internal/model"

	"gorm.io/gorm"
)

func TestRecipeCreate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newRecipeService(db, &stubImageStore{})

		author := seedUser(t, db, "chef")
		tag := seedTag(t, db, "早餐", "breakfast")
		flour := seedIngredient(t, db, "面粉", "克")
		milk := seedIngredient(t, db, "牛奶", "毫升")

		info, err := svc.Create(context.Background(), author.ID, &dto.RecipeCreateRequest{
			Name:        "薄饼",
			Image:       "https://images.test/pancake.png",
			Text:        "mix and fry",
			CookingTime: 20,
			TagIDs:      []int64{tag.ID},
			Ingredients: []dto.RecipeIngredientInput{
				{ID: flour.ID, Amount: 200},
				{ID: milk.ID, Amount: 300},
			},
		})
		if err != nil {
			t.Fatalf("create recipe failed: %v", err)
		}

		if info.Name != "薄饼" || info.CookingTime != 20 {
			t.Errorf("unexpected recipe fields: %+v", info)
		}
		if info.Author.ID != author.ID || info.Author.Username != "chef" {
			t.Errorf("unexpected author: %+v", info.Author)
		}
		if len(info.Tags) != 1 || info.Tags[0].Slug != "breakfast" {
			t.Errorf("unexpected tags: %+v", info.Tags)
		}
		if len(info.Ingredients) != 2 {
			t.Fatalf("expected 2 ingredients, got %d", len(info.Ingredients))
		}
		if info.IsFavorited || info.IsInShoppingCart {
			t.Error("fresh recipe should not be favorited or in cart")
		}
	})

	t.Run("Base64ImageUploaded", func(t *testing.T) {
		db := setupTestDB(t)
		store := &stubImageStore{}
		svc := newRecipeService(db, store)

		author := seedUser(t, db, "chef")
		tag := seedTag(t, db, "午餐", "lunch")
		rice := seedIngredient(t, db, "米饭", "克")

		info, err := svc.Create(context.Background(), author.ID, &dto.RecipeCreateRequest{
			Name:        "炒饭",
			Image:       "data:image/png;base64,aGVsbG8=",
			Text:        "fry the rice",
			CookingTime: 15,
			TagIDs:      []int64{tag.ID},
			Ingredients: []dto.RecipeIngredientInput{{ID: rice.ID, Amount: 500}},
		})
		if err != nil {
			t.Fatalf("create recipe failed: %v", err)
		}
		if store.saved != 1 {
			t.Errorf("expected 1 image upload, got %d", store.saved)
		}
		if info.Image != "https://images.test/1.png" {
			t.Errorf("unexpected image url: %s", info.Image)
		}
	})

	t.Run("ValidationErrors", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newRecipeService(db, &stubImageStore{})

		author := seedUser(t, db, "chef")
		tag := seedTag(t, db, "晚餐", "dinner")
		salt := seedIngredient(t, db, "盐", "克")

		valid := func() *dto.RecipeCreateRequest {
			return &dto.RecipeCreateRequest{
				Name:        "汤",
				Image:       "https://images.test/soup.png",
				Text:        "boil",
				CookingTime: 10,
				TagIDs:      []int64{tag.ID},
				Ingredients: []dto.RecipeIngredientInput{{ID: salt.ID, Amount: 5}},
			}
		}

		cases := []struct {
			name    string
			mutate  func(*dto.RecipeCreateRequest)
			wantErr error
		}{
			{"NoIngredients", func(r *dto.RecipeCreateRequest) { r.Ingredients = nil }, ErrNoIngredients},
			{"ZeroAmount", func(r *dto.RecipeCreateRequest) { r.Ingredients[0].Amount = 0 }, ErrInvalidAmount},
			{"NegativeAmount", func(r *dto.RecipeCreateRequest) { r.Ingredients[0].Amount = -3 }, ErrInvalidAmount},
			{"DuplicateIngredient", func(r *dto.RecipeCreateRequest) {
				r.Ingredients = append(r.Ingredients, dto.RecipeIngredientInput{ID: salt.ID, Amount: 2})
			}, ErrDuplicateIngredient},
			{"UnknownIngredient", func(r *dto.RecipeCreateRequest) {
				r.Ingredients = []dto.RecipeIngredientInput{{ID: 9999, Amount: 1}}
			}, ErrUnknownIngredient},
			{"NoTags", func(r *dto.RecipeCreateRequest) { r.TagIDs = nil }, ErrNoTags},
			{"DuplicateTag", func(r *dto.RecipeCreateRequest) { r.TagIDs = []int64{tag.ID, tag.ID} }, ErrDuplicateTag},
			{"UnknownTag", func(r *dto.RecipeCreateRequest) { r.TagIDs = []int64{8888} }, ErrUnknownTag},
			{"ZeroCookingTime", func(r *dto.RecipeCreateRequest) { r.CookingTime = 0 }, ErrInvalidCookingTime},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				req := valid()
				tc.mutate(req)
				_, err := svc.Create(context.Background(), author.ID, req)
				if !errors.Is(err, tc.wantErr) {
					t.Errorf("expected %v, got %v", tc.wantErr, err)
				}
			})
		}

		// 校验失败不应留下任何食谱行
		var count int64
		db.Model(&model.Recipe{}).Count(&count)
		if count != 0 {
			t.Errorf("expected no recipes after failed validation, found %d", count)
		}
	})

	t.Run("IngredientChecksPrecedeTagChecks", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newRecipeService(db, &stubImageStore{})

		author := seedUser(t, db, "chef")
		salt := seedIngredient(t, db, "盐", "克")

		// 食材数量非法且标签缺失时，先报食材错误
		_, err := svc.Create(context.Background(), author.ID, &dto.RecipeCreateRequest{
			Name:        "汤",
			Image:       "https://images.test/soup.png",
			Text:        "boil",
			CookingTime: 10,
			Ingredients: []dto.RecipeIngredientInput{{ID: salt.ID, Amount: 0}},
		})
		if !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("expected ErrInvalidAmount, got %v", err)
		}
	})
}

func TestMapRecipeWriteError(t *testing.T) {
	// 提交前标签或食材被删除的竞争：外键冲突报关联失效，而非误报成食材错误
	if got := mapRecipeWriteError(gorm.ErrForeignKeyViolated); !errors.Is(got, ErrReferenceGone) {
		t.Errorf("expected ErrReferenceGone for FK violation, got %v", got)
	}
	if got := mapRecipeWriteError(gorm.ErrDuplicatedKey); !errors.Is(got, ErrDuplicateIngredient) {
		t.Errorf("expected ErrDuplicateIngredient for duplicate key, got %v", got)
	}

	boom := errors.New("boom")
	if got := mapRecipeWriteError(boom); !errors.Is(got, boom) {
		t.Errorf("unrelated errors should pass through, got %v", got)
	}
}

func TestRecipeUpdate(t *testing.T) {
	t.Run("ReplacesAssociationsWholesale", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newRecipeService(db, &stubImageStore{})

		author := seedUser(t, db, "chef")
		breakfast := seedTag(t, db, "早餐", "breakfast")
		dinner := seedTag(t, db, "晚餐", "dinner")
		flour := seedIngredient(t, db, "面粉", "克")
		egg := seedIngredient(t, db, "鸡蛋", "个")

		created := seedRecipe(t, svc, author.ID, "饼", []int64{breakfast.ID},
			[]dto.RecipeIngredientInput{{ID: flour.ID, Amount: 100}})

		updated, err := svc.Update(context.Background(), created.ID, author.ID, &dto.RecipeUpdateRequest{
			Name:        "煎蛋饼",
			Text:        "new steps",
			CookingTime: 25,
			TagIDs:      []int64{dinner.ID},
			Ingredients: []dto.RecipeIngredientInput{{ID: egg.ID, Amount: 3}},
		})
		if err != nil {
			t.Fatalf("update recipe failed: %v", err)
		}

		if updated.Name != "煎蛋饼" || updated.CookingTime != 25 {
			t.Errorf("scalar fields not updated: %+v", updated)
		}
		if len(updated.Tags) != 1 || updated.Tags[0].Slug != "dinner" {
			t.Errorf("tags not replaced: %+v", updated.Tags)
		}
		if len(updated.Ingredients) != 1 || updated.Ingredients[0].ID != egg.ID {
			t.Errorf("ingredients not replaced: %+v", updated.Ingredients)
		}

		// 旧关联行应被清除
		var rows int64
		db.Model(&model.RecipeIngredient{}).Where("recipe_id = ?", created.ID).Count(&rows)
		if rows != 1 {
			t.Errorf("expected 1 ingredient row after replace, got %d", rows)
		}
	})

	t.Run("KeepsImageWhenEmpty", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newRecipeService(db, &stubImageStore{})

		author := seedUser(t, db, "chef")
		tag := seedTag(t, db, "早餐", "breakfast")
		flour := seedIngredient(t, db, "面粉", "克")

		created := seedRecipe(t, svc, author.ID, "饼", []int64{tag.ID},
			[]dto.RecipeIngredientInput{{ID: flour.ID, Amount: 100}})

		updated, err := svc.Update(context.Background(), created.ID, author.ID, &dto.RecipeUpdateRequest{
			Name:        "饼",
			Text:        "same",
			CookingTime: 30,
			TagIDs:      []int64{tag.ID},
			Ingredients: []dto.RecipeIngredientInput{{ID: flour.ID, Amount: 100}},
		})
		if err != nil {
			t.Fatalf("update recipe failed: %v", err)
		}
		if updated.Image != created.Image {
			t.Errorf("image should be kept, was %s now %s", created.Image, updated.Image)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newRecipeService(db, &stubImageStore{})
		author := seedUser(t, db, "chef")

		_, err := svc.Update(context.Background(), 404, author.ID, &dto.RecipeUpdateRequest{})
		if !errors.Is(err, ErrRecipeNotFound) {
			t.Errorf("expected ErrRecipeNotFound, got %v", err)
		}
	})

	t.Run("NoPermission", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newRecipeService(db, &stubImageStore{})

		author := seedUser(t, db, "chef")
		other := seedUser(t, db, "stranger")
		tag := seedTag(t, db, "早餐", "breakfast")
		flour := seedIngredient(t, db, "面粉", "克")

		created := seedRecipe(t, svc, author.ID, "饼", []int64{tag.ID},
			[]dto.RecipeIngredientInput{{ID: flour.ID, Amount: 100}})

		_, err := svc.Update(context.Background(), created.ID, other.ID, &dto.RecipeUpdateRequest{
			Name:        "偷来的饼",
			Text:        "mine now",
			CookingTime: 5,
			TagIDs:      []int64{tag.ID},
			Ingredients: []dto.RecipeIngredientInput{{ID: flour.ID, Amount: 1}},
		})
		if !errors.Is(err, ErrRecipeNoPermission) {
			t.Errorf("expected ErrRecipeNoPermission, got %v", err)
		}
	})
}

func TestRecipeDelete(t *testing.T) {
	t.Run("CleansRelatedRows", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newRecipeService(db, &stubImageStore{})

		author := seedUser(t, db, "chef")
		fan := seedUser(t, db, "fan")
		tag := seedTag(t, db, "早餐", "breakfast")
		flour := seedIngredient(t, db, "面粉", "克")

		created := seedRecipe(t, svc, author.ID, "饼", []int64{tag.ID},
			[]dto.RecipeIngredientInput{{ID: flour.ID, Amount: 100}})

		// 关联收藏和购物车条目
		if err := db.Create(&model.FavoriteRecipe{UserID: fan.ID, RecipeID: created.ID}).Error; err != nil {
			t.Fatalf("failed to seed favorite: %v", err)
		}
		if err := db.Create(&model.ShoppingCartEntry{UserID: fan.ID, RecipeID: created.ID}).Error; err != nil {
			t.Fatalf("failed to seed cart entry: %v", err)
		}

		if err := svc.Delete(created.ID, author.ID); err != nil {
			t.Fatalf("delete recipe failed: %v", err)
		}

		for name, dest := range map[string]interface{}{
			"recipes":               &model.Recipe{},
			"recipe_ingredients":    &model.RecipeIngredient{},
			"favorite_recipes":      &model.FavoriteRecipe{},
			"shopping_cart_entries": &model.ShoppingCartEntry{},
		} {
			var count int64
			db.Model(dest).Count(&count)
			if count != 0 {
				t.Errorf("expected %s to be empty after delete, found %d rows", name, count)
			}
		}
	})

	t.Run("NoPermission", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newRecipeService(db, &stubImageStore{})

		author := seedUser(t, db, "chef")
		other := seedUser(t, db, "stranger")
		tag := seedTag(t, db, "早餐", "breakfast")
		flour := seedIngredient(t, db, "面粉", "克")

		created := seedRecipe(t, svc, author.ID, "饼", []int64{tag.ID},
			[]dto.RecipeIngredientInput{{ID: flour.ID, Amount: 100}})

		if err := svc.Delete(created.ID, other.ID); !errors.Is(err, ErrRecipeNoPermission) {
			t.Errorf("expected ErrRecipeNoPermission, got %v", err)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		db := setupTestDB(t)
		svc := newRecipeService(db, &stubImageStore{})
		author := seedUser(t, db, "chef")

		if err := svc.Delete(404, author.ID); !errors.Is(err, ErrRecipeNotFound) {
			t.Errorf("expected ErrRecipeNotFound, got %v", err)
		}
	})
}

func TestRecipeList(t *testing.T) {
	db := setupTestDB(t)
	svc := newRecipeService(db, &stubImageStore{})

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	breakfast := seedTag(t, db, "早餐", "breakfast")
	dinner := seedTag(t, db, "晚餐", "dinner")
	flour := seedIngredient(t, db, "面粉", "克")

	pancake := seedRecipe(t, svc, alice.ID, "薄饼", []int64{breakfast.ID},
		[]dto.RecipeIngredientInput{{ID: flour.ID, Amount: 100}})
	noodles := seedRecipe(t, svc, bob.ID, "面条", []int64{dinner.ID},
		[]dto.RecipeIngredientInput{{ID: flour.ID, Amount: 300}})

	t.Run("All", func(t *testing.T) {
		data, err := svc.List(1, 20, nil, nil, false, false, nil)
		if err != nil {
			t.Fatalf("list recipes failed: %v", err)
		}
		if data.Total != 2 || len(data.Recipes) != 2 {
			t.Errorf("expected 2 recipes, got total=%d len=%d", data.Total, len(data.Recipes))
		}
	})

	t.Run("ByTagSlug", func(t *testing.T) {
		data, err := svc.List(1, 20, nil, []string{"breakfast"}, false, false, nil)
		if err != nil {
			t.Fatalf("list recipes failed: %v", err)
		}
		if data.Total != 1 || data.Recipes[0].ID != pancake.ID {
			t.Errorf("tag filter failed: %+v", data)
		}
	})

	t.Run("ByAuthor", func(t *testing.T) {
		data, err := svc.List(1, 20, &bob.ID, nil, false, false, nil)
		if err != nil {
			t.Fatalf("list recipes failed: %v", err)
		}
		if data.Total != 1 || data.Recipes[0].ID != noodles.ID {
			t.Errorf("author filter failed: %+v", data)
		}
	})

	t.Run("FavoritedOnly", func(t *testing.T) {
		if err := db.Create(&model.FavoriteRecipe{UserID: bob.ID, RecipeID: pancake.ID}).Error; err != nil {
			t.Fatalf("failed to seed favorite: %v", err)
		}

		data, err := svc.List(1, 20, nil, nil, true, false, &bob.ID)
		if err != nil {
			t.Fatalf("list recipes failed: %v", err)
		}
		if data.Total != 1 || data.Recipes[0].ID != pancake.ID {
			t.Errorf("favorited filter failed: %+v", data)
		}
		if !data.Recipes[0].IsFavorited {
			t.Error("is_favorited flag should be set for current user")
		}
	})
}
