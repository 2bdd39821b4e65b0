package handler

import (
	"errors"

	"sabor-go/internal/api/middleware"
	"sabor-go/internal/api/response"
	"sabor-go/internal/service"
	"sabor-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List 获取用户列表
// @Summary 获取用户列表
// @Description 分页获取用户列表，登录时附带订阅标记
// @Tags 用户
// @Produce json
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} response.Response{data=dto.UserListData} "获取成功"
// @Router /users [get]
func (h *UserHandler) List(c *gin.Context) {
	page, pageSize := parsePagination(c)
	currentUserID := optionalCurrentUserID(c)

	data, err := h.userService.List(page, pageSize, currentUserID)
	if err != nil {
		logger.Error("List users failed", zap.Error(err))
		response.InternalError(c, "获取用户列表失败")
		return
	}

	response.OK(c, "获取用户列表成功", data)
}

// Get 获取指定用户信息
// @Summary 获取指定用户信息
// @Description 根据用户 ID 获取公开信息
// @Tags 用户
// @Produce json
// @Param id path int true "用户ID"
// @Success 200 {object} response.Response{data=dto.UserInfo} "获取成功"
// @Failure 404 {object} response.ErrorResponse "用户不存在"
// @Router /users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的用户ID")
		return
	}

	currentUserID := optionalCurrentUserID(c)

	info, err := h.userService.GetUser(userID, currentUserID)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, "获取用户信息成功", info)
}

func handleUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	default:
		logger.Error("User operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}

// optionalCurrentUserID 返回当前登录用户 ID，匿名请求返回 nil
func optionalCurrentUserID(c *gin.Context) *int64 {
	if userID, ok := middleware.GetCurrentUserID(c); ok {
		return &userID
	}
	return nil
}
