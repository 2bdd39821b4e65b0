package handler

import (
	"errors"
	"strconv"
	"strings"

	"sabor-go/internal/api/dto"
	"sabor-go/internal/api/middleware"
	"sabor-go/internal/api/response"
	"sabor-go/internal/service"
	"sabor-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RecipeHandler struct {
	recipeService *service.RecipeService
}

func NewRecipeHandler(recipeService *service.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService}
}

// Create 创建食谱
// @Summary 创建食谱
// @Description 创建食谱及其标签和食材用量，全部校验通过后才写入
// @Tags 食谱
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RecipeCreateRequest true "食谱信息"
// @Success 201 {object} response.Response{data=dto.RecipeInfo} "创建成功"
// @Failure 400 {object} response.ErrorResponse "请求参数无效"
// @Failure 401 {object} response.ErrorResponse "未授权"
// @Router /recipes [post]
func (h *RecipeHandler) Create(c *gin.Context) {
	var req dto.RecipeCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	info, err := h.recipeService.Create(c.Request.Context(), currentUserID, &req)
	if err != nil {
		handleRecipeError(c, err)
		return
	}

	response.Created(c, "创建食谱成功", info)
}

// Update 更新食谱
// @Summary 更新食谱
// @Description 更新食谱，标签和食材整体替换，仅作者可操作
// @Tags 食谱
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "食谱ID"
// @Param request body dto.RecipeUpdateRequest true "食谱信息"
// @Success 200 {object} response.Response{data=dto.RecipeInfo} "更新成功"
// @Failure 403 {object} response.ErrorResponse "没有权限"
// @Failure 404 {object} response.ErrorResponse "食谱不存在"
// @Router /recipes/{id} [put]
func (h *RecipeHandler) Update(c *gin.Context) {
	recipeID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的食谱ID")
		return
	}

	var req dto.RecipeUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	info, err := h.recipeService.Update(c.Request.Context(), recipeID, currentUserID, &req)
	if err != nil {
		handleRecipeError(c, err)
		return
	}

	response.OK(c, "更新食谱成功", info)
}

// Delete 删除食谱
// @Summary 删除食谱
// @Description 删除食谱及其关联记录，仅作者可操作
// @Tags 食谱
// @Produce json
// @Security BearerAuth
// @Param id path int true "食谱ID"
// @Success 200 {object} response.Response "删除成功"
// @Failure 403 {object} response.ErrorResponse "没有权限"
// @Failure 404 {object} response.ErrorResponse "食谱不存在"
// @Router /recipes/{id} [delete]
func (h *RecipeHandler) Delete(c *gin.Context) {
	recipeID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的食谱ID")
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	if err := h.recipeService.Delete(recipeID, currentUserID); err != nil {
		handleRecipeError(c, err)
		return
	}

	response.OK(c, "删除食谱成功", nil)
}

// GetDetail 获取食谱详情
// @Summary 获取食谱详情
// @Description 获取食谱详情，登录时附带收藏和购物车标记
// @Tags 食谱
// @Produce json
// @Param id path int true "食谱ID"
// @Success 200 {object} response.Response{data=dto.RecipeInfo} "获取成功"
// @Failure 404 {object} response.ErrorResponse "食谱不存在"
// @Router /recipes/{id} [get]
func (h *RecipeHandler) GetDetail(c *gin.Context) {
	recipeID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的食谱ID")
		return
	}

	currentUserID := optionalCurrentUserID(c)

	info, err := h.recipeService.GetDetail(recipeID, currentUserID)
	if err != nil {
		handleRecipeError(c, err)
		return
	}

	response.OK(c, "获取食谱详情成功", info)
}

// List 获取食谱列表
// @Summary 获取食谱列表
// @Description 分页获取食谱列表，支持按标签、作者、收藏、购物车过滤
// @Tags 食谱
// @Produce json
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Param tags query string false "标签 slug，可多次传递"
// @Param author query int false "作者ID"
// @Param is_favorited query bool false "仅收藏的食谱（需登录）"
// @Param is_in_shopping_cart query bool false "仅购物车中的食谱（需登录）"
// @Success 200 {object} response.Response{data=dto.RecipeListData} "获取成功"
// @Router /recipes [get]
func (h *RecipeHandler) List(c *gin.Context) {
	page, pageSize := parsePagination(c)
	currentUserID := optionalCurrentUserID(c)

	var authorID *int64
	if v := c.Query("author"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.BadRequest(c, "无效的作者ID")
			return
		}
		authorID = &id
	}

	tagSlugs := c.QueryArray("tags")
	// 兼容逗号分隔的写法
	if len(tagSlugs) == 1 && strings.Contains(tagSlugs[0], ",") {
		tagSlugs = strings.Split(tagSlugs[0], ",")
	}

	favoritedOnly := c.Query("is_favorited") == "1" || c.Query("is_favorited") == "true"
	inCartOnly := c.Query("is_in_shopping_cart") == "1" || c.Query("is_in_shopping_cart") == "true"

	// 收藏/购物车过滤只对已登录用户有意义
	if currentUserID == nil {
		favoritedOnly = false
		inCartOnly = false
	}

	data, err := h.recipeService.List(page, pageSize, authorID, tagSlugs, favoritedOnly, inCartOnly, currentUserID)
	if err != nil {
		logger.Error("List recipes failed", zap.Error(err))
		response.InternalError(c, "获取食谱列表失败")
		return
	}

	response.OK(c, "获取食谱列表成功", data)
}

func handleRecipeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRecipeNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrRecipeNoPermission):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrNoIngredients),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrDuplicateIngredient),
		errors.Is(err, service.ErrUnknownIngredient),
		errors.Is(err, service.ErrNoTags),
		errors.Is(err, service.ErrDuplicateTag),
		errors.Is(err, service.ErrUnknownTag),
		errors.Is(err, service.ErrInvalidCookingTime),
		errors.Is(err, service.ErrInvalidImage),
		errors.Is(err, service.ErrReferenceGone):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("Recipe operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}

func parseIDParam(c *gin.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
