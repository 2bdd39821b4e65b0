package service

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"testing"

	"sabor-go/internal/api/dto"
	"sabor-go/internal/model"
	"sabor-go/internal/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// setupTestDB 创建内存 SQLite 数据库并迁移全部表结构
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// 每个测试独立的共享内存库，避免连接池拿到空库
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Tag{},
		&model.Ingredient{},
		&model.Recipe{},
		&model.RecipeIngredient{},
		&model.FavoriteRecipe{},
		&model.ShoppingCartEntry{},
		&model.Subscription{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return db
}

// stubImageStore 测试用图片存储，不访问对象存储
type stubImageStore struct {
	saved int
}

func (s *stubImageStore) Save(_ context.Context, data []byte, ext string) (string, error) {
	s.saved++
	return fmt.Sprintf("https://images.test/%d.%s", s.saved, ext), nil
}

func newRecipeService(db *gorm.DB, images ImageStore) *RecipeService {
	return NewRecipeService(
		repository.NewRecipeRepository(db),
		repository.NewIngredientRepository(db),
		repository.NewTagRepository(db),
		repository.NewFavoriteRepository(db),
		repository.NewCartRepository(db),
		repository.NewSubscriptionRepository(db),
		images,
	)
}

func seedUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	user := &model.User{
		Email:     username + "@example.com",
		UserName:  username,
		FirstName: "Test",
		LastName:  "User",
		Password:  "hashed-password",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user %s: %v", username, err)
	}
	return user
}

func seedTag(t *testing.T, db *gorm.DB, name, slug string) *model.Tag {
	t.Helper()
	// 颜色由 slug 派生，保证多个标签不撞唯一索引
	h := fnv.New32a()
	h.Write([]byte(slug))
	tag := &model.Tag{Name: name, Color: fmt.Sprintf("#%06X", h.Sum32()&0xFFFFFF), Slug: slug}
	if err := db.Create(tag).Error; err != nil {
		t.Fatalf("failed to seed tag %s: %v", name, err)
	}
	return tag
}

func seedIngredient(t *testing.T, db *gorm.DB, name, unit string) *model.Ingredient {
	t.Helper()
	ingredient := &model.Ingredient{Name: name, MeasurementUnit: unit}
	if err := db.Create(ingredient).Error; err != nil {
		t.Fatalf("failed to seed ingredient %s: %v", name, err)
	}
	return ingredient
}

// seedRecipe 通过业务层创建一份合法食谱
func seedRecipe(t *testing.T, svc *RecipeService, authorID int64, name string, tagIDs []int64, ingredients []dto.RecipeIngredientInput) *dto.RecipeInfo {
	t.Helper()
	info, err := svc.Create(context.Background(), authorID, &dto.RecipeCreateRequest{
		Name:        name,
		Image:       "https://images.test/seed.png",
		Text:        "step by step",
		CookingTime: 30,
		TagIDs:      tagIDs,
		Ingredients: ingredients,
	})
	if err != nil {
		t.Fatalf("failed to seed recipe %s: %v", name, err)
	}
	return info
}
