package service

import (
	"errors"

	"sabor-go/internal/api/dto"
	"sabor-go/internal/model"
	"sabor-go/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrCannotSubscribeSelf = errors.New("不能订阅自己")
	ErrAlreadySubscribed   = errors.New("您已经订阅过该作者了")
	ErrNotSubscribed       = errors.New("您尚未订阅该作者")
)

type SubscriptionService struct {
	subscriptionRepo *repository.SubscriptionRepository
	userRepo         *repository.UserRepository
	recipeRepo       *repository.RecipeRepository
}

func NewSubscriptionService(subscriptionRepo *repository.SubscriptionRepository, userRepo *repository.UserRepository, recipeRepo *repository.RecipeRepository) *SubscriptionService {
	return &SubscriptionService{
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
		recipeRepo:       recipeRepo,
	}
}

// Subscribe 订阅作者。自我订阅最先拒绝，重复订阅显式拒绝，
// 并发竞争由唯一约束兜底。recipesLimit 限制返回的食谱条数，<= 0 不限制
func (s *SubscriptionService) Subscribe(userID, authorID int64, recipesLimit int) (*dto.SubscriptionInfo, error) {
	if userID == authorID {
		return nil, ErrCannotSubscribeSelf
	}

	author, err := s.userRepo.GetByID(authorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	exists, err := s.subscriptionRepo.Exists(userID, authorID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadySubscribed
	}

	if _, err := s.subscriptionRepo.Create(userID, authorID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadySubscribed
		}
		return nil, err
	}

	return s.buildSubscriptionInfo(author, recipesLimit)
}

// Unsubscribe 取消订阅，关系不存在时显式拒绝
func (s *SubscriptionService) Unsubscribe(userID, authorID int64) error {
	deleted, err := s.subscriptionRepo.Delete(userID, authorID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotSubscribed
	}
	return nil
}

// ListSubscriptions 获取用户订阅的作者列表（分页），每位作者附带食谱统计
func (s *SubscriptionService) ListSubscriptions(userID int64, page, pageSize, recipesLimit int) (*dto.SubscriptionListData, error) {
	skip := (page - 1) * pageSize
	authorIDs, err := s.subscriptionRepo.ListAuthorIDs(userID, skip, pageSize)
	if err != nil {
		return nil, err
	}

	total, err := s.subscriptionRepo.CountByUser(userID)
	if err != nil {
		return nil, err
	}

	authors, err := s.userRepo.GetByIDs(authorIDs)
	if err != nil {
		return nil, err
	}

	// 按订阅顺序输出
	authorMap := make(map[int64]*model.User, len(authors))
	for i := range authors {
		authorMap[authors[i].ID] = &authors[i]
	}

	items := make([]dto.SubscriptionInfo, 0, len(authorIDs))
	for _, id := range authorIDs {
		author, ok := authorMap[id]
		if !ok {
			continue
		}
		info, err := s.buildSubscriptionInfo(author, recipesLimit)
		if err != nil {
			return nil, err
		}
		items = append(items, *info)
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)

	return &dto.SubscriptionListData{
		Authors:    items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// buildSubscriptionInfo 组装作者资料 + 食谱数量 + 简要食谱列表
func (s *SubscriptionService) buildSubscriptionInfo(author *model.User, recipesLimit int) (*dto.SubscriptionInfo, error) {
	recipesCount, err := s.recipeRepo.CountByAuthor(author.ID)
	if err != nil {
		return nil, err
	}

	recipes, err := s.recipeRepo.ListByAuthor(author.ID, recipesLimit)
	if err != nil {
		return nil, err
	}

	briefs := make([]dto.RecipeBrief, 0, len(recipes))
	for i := range recipes {
		briefs = append(briefs, *toRecipeBrief(&recipes[i]))
	}

	return &dto.SubscriptionInfo{
		ID:           author.ID,
		Email:        author.Email,
		Username:     author.UserName,
		FirstName:    author.FirstName,
		LastName:     author.LastName,
		IsSubscribed: true,
		RecipesCount: recipesCount,
		Recipes:      briefs,
	}, nil
}
