package handler

import (
	"errors"
	"strconv"

	"sabor-go/internal/api/middleware"
	"sabor-go/internal/api/response"
	"sabor-go/internal/service"
	"sabor-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SubscriptionHandler struct {
	subscriptionService *service.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

// Subscribe 订阅作者
// @Summary 订阅作者
// @Description 订阅指定作者，不能订阅自己，重复订阅会被拒绝
// @Tags 订阅
// @Produce json
// @Security BearerAuth
// @Param id path int true "作者ID"
// @Param recipes_limit query int false "返回的食谱条数上限"
// @Success 201 {object} response.Response{data=dto.SubscriptionInfo} "订阅成功"
// @Failure 400 {object} response.ErrorResponse "不能订阅自己或已订阅"
// @Failure 404 {object} response.ErrorResponse "用户不存在"
// @Router /users/{id}/subscribe [post]
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	authorID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的作者ID")
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)
	recipesLimit := parseRecipesLimit(c)

	info, err := h.subscriptionService.Subscribe(currentUserID, authorID, recipesLimit)
	if err != nil {
		handleSubscriptionError(c, err)
		return
	}

	response.Created(c, "订阅成功", info)
}

// Unsubscribe 取消订阅
// @Summary 取消订阅
// @Description 取消订阅指定作者，未订阅会被拒绝
// @Tags 订阅
// @Produce json
// @Security BearerAuth
// @Param id path int true "作者ID"
// @Success 200 {object} response.Response "取消订阅成功"
// @Failure 400 {object} response.ErrorResponse "尚未订阅该作者"
// @Router /users/{id}/subscribe [delete]
func (h *SubscriptionHandler) Unsubscribe(c *gin.Context) {
	authorID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的作者ID")
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	if err := h.subscriptionService.Unsubscribe(currentUserID, authorID); err != nil {
		handleSubscriptionError(c, err)
		return
	}

	response.OK(c, "取消订阅成功", nil)
}

// ListSubscriptions 获取订阅列表
// @Summary 获取订阅列表
// @Description 分页获取当前用户订阅的作者及其食谱
// @Tags 订阅
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Param recipes_limit query int false "每位作者返回的食谱条数上限"
// @Success 200 {object} response.Response{data=dto.SubscriptionListData} "获取成功"
// @Router /users/subscriptions [get]
func (h *SubscriptionHandler) ListSubscriptions(c *gin.Context) {
	currentUserID, _ := middleware.GetCurrentUserID(c)
	page, pageSize := parsePagination(c)
	recipesLimit := parseRecipesLimit(c)

	data, err := h.subscriptionService.ListSubscriptions(currentUserID, page, pageSize, recipesLimit)
	if err != nil {
		logger.Error("List subscriptions failed", zap.Error(err))
		response.InternalError(c, "获取订阅列表失败")
		return
	}

	response.OK(c, "获取订阅列表成功", data)
}

// parseRecipesLimit 解析 recipes_limit 查询参数，缺省或非法时不限制
func parseRecipesLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.Query("recipes_limit"))
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}

func handleSubscriptionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCannotSubscribeSelf),
		errors.Is(err, service.ErrAlreadySubscribed),
		errors.Is(err, service.ErrNotSubscribed):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	default:
		logger.Error("Subscription operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
