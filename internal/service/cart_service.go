package service

import (
	"errors"
	"fmt"
	"strings"

	"sabor-go/internal/api/dto"
	"sabor-go/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrAlreadyInCart = errors.New("该食谱已在购物车中")
	ErrNotInCart     = errors.New("该食谱不在购物车中")
	ErrEmptyCart     = errors.New("您的购物车是空的")
)

type CartService struct {
	cartRepo   *repository.CartRepository
	recipeRepo *repository.RecipeRepository
	userRepo   *repository.UserRepository
}

func NewCartService(cartRepo *repository.CartRepository, recipeRepo *repository.RecipeRepository, userRepo *repository.UserRepository) *CartService {
	return &CartService{cartRepo: cartRepo, recipeRepo: recipeRepo, userRepo: userRepo}
}

// Add 将食谱加入购物车。重复加入显式拒绝，并发竞争由唯一约束兜底
func (s *CartService) Add(userID, recipeID int64) (*dto.RecipeBrief, error) {
	recipe, err := s.recipeRepo.GetByID(recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	exists, err := s.cartRepo.Exists(userID, recipeID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyInCart
	}

	if _, err := s.cartRepo.Create(userID, recipeID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyInCart
		}
		return nil, err
	}

	return toRecipeBrief(recipe), nil
}

// Remove 将食谱移出购物车，条目不存在时显式拒绝
func (s *CartService) Remove(userID, recipeID int64) error {
	deleted, err := s.cartRepo.Delete(userID, recipeID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotInCart
	}
	return nil
}

// BuildShoppingList 汇总购物车内全部食谱的食材数量并渲染纯文本购物清单。
// 空购物车守卫在聚合查询之前，以购物车条目数为准
func (s *CartService) BuildShoppingList(userID int64) (*dto.ShoppingListData, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	count, err := s.cartRepo.CountByUser(userID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrEmptyCart
	}

	totals, err := s.cartRepo.SumIngredients(userID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ShoppingListItem, 0, len(totals))
	for _, t := range totals {
		items = append(items, dto.ShoppingListItem{
			Name:            t.Name,
			MeasurementUnit: t.MeasurementUnit,
			TotalAmount:     t.TotalAmount,
		})
	}

	return &dto.ShoppingListData{
		Username: user.UserName,
		Items:    items,
		Report:   renderShoppingList(items),
	}, nil
}

// renderShoppingList 渲染购物清单文本：标题行 + 每组一条
func renderShoppingList(items []dto.ShoppingListItem) string {
	var b strings.Builder
	b.WriteString("购物清单\n")
	for _, item := range items {
		fmt.Fprintf(&b, "• %s (%s) — %d\n", item.Name, item.MeasurementUnit, item.TotalAmount)
	}
	return b.String()
}
