package service

import (
	"errors"

	"sabor-go/internal/api/dto"
	"sabor-go/internal/repository"

	"gorm.io/gorm"
)

type UserService struct {
	userRepo         *repository.UserRepository
	subscriptionRepo *repository.SubscriptionRepository
}

func NewUserService(userRepo *repository.UserRepository, subscriptionRepo *repository.SubscriptionRepository) *UserService {
	return &UserService{userRepo: userRepo, subscriptionRepo: subscriptionRepo}
}

// GetUser 获取用户公开信息，is_subscribed 相对当前请求用户
func (s *UserService) GetUser(userID int64, currentUserID *int64) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var isSubscribed bool
	if currentUserID != nil {
		if isSubscribed, err = s.subscriptionRepo.Exists(*currentUserID, userID); err != nil {
			return nil, err
		}
	}

	return toUserInfo(user, isSubscribed), nil
}

// List 分页获取用户列表，订阅标记批量查询
func (s *UserService) List(page, pageSize int, currentUserID *int64) (*dto.UserListData, error) {
	skip := (page - 1) * pageSize
	users, total, err := s.userRepo.List(skip, pageSize)
	if err != nil {
		return nil, err
	}

	subMap := map[int64]bool{}
	if currentUserID != nil {
		ids := make([]int64, 0, len(users))
		for i := range users {
			ids = append(ids, users[i].ID)
		}
		if subMap, err = s.subscriptionRepo.BatchCheckSubscribed(*currentUserID, ids); err != nil {
			return nil, err
		}
	}

	items := make([]dto.UserInfo, 0, len(users))
	for i := range users {
		items = append(items, *toUserInfo(&users[i], subMap[users[i].ID]))
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)

	return &dto.UserListData{
		Users:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}
