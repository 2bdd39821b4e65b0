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

type FavoriteHandler struct {
	favoriteService *service.FavoriteService
}

func NewFavoriteHandler(favoriteService *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

// Favorite 收藏食谱
// @Summary 收藏食谱
// @Description 收藏指定食谱，重复收藏会被拒绝
// @Tags 收藏
// @Produce json
// @Security BearerAuth
// @Param id path int true "食谱ID"
// @Success 201 {object} response.Response{data=dto.RecipeBrief} "收藏成功"
// @Failure 400 {object} response.ErrorResponse "已收藏过该食谱"
// @Failure 404 {object} response.ErrorResponse "食谱不存在"
// @Router /recipes/{id}/favorite [post]
func (h *FavoriteHandler) Favorite(c *gin.Context) {
	recipeID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的食谱ID")
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	brief, err := h.favoriteService.Favorite(currentUserID, recipeID)
	if err != nil {
		handleFavoriteError(c, err)
		return
	}

	response.Created(c, "收藏成功", brief)
}

// Unfavorite 取消收藏
// @Summary 取消收藏
// @Description 取消收藏指定食谱，未收藏会被拒绝
// @Tags 收藏
// @Produce json
// @Security BearerAuth
// @Param id path int true "食谱ID"
// @Success 200 {object} response.Response "取消收藏成功"
// @Failure 400 {object} response.ErrorResponse "尚未收藏该食谱"
// @Router /recipes/{id}/favorite [delete]
func (h *FavoriteHandler) Unfavorite(c *gin.Context) {
	recipeID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的食谱ID")
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	if err := h.favoriteService.Unfavorite(currentUserID, recipeID); err != nil {
		handleFavoriteError(c, err)
		return
	}

	response.OK(c, "取消收藏成功", nil)
}

func handleFavoriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRecipeNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrAlreadyFavorited):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrNotFavorited):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("Favorite operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
