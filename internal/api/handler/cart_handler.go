package handler

import (
	"errors"
	"fmt"

	"sabor-go/internal/api/middleware"
	"sabor-go/internal/api/response"
	"sabor-go/internal/service"
	"sabor-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CartHandler struct {
	cartService *service.CartService
}

func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// Add 加入购物车
// @Summary 加入购物车
// @Description 将食谱加入购物车，重复加入会被拒绝
// @Tags 购物车
// @Produce json
// @Security BearerAuth
// @Param id path int true "食谱ID"
// @Success 201 {object} response.Response{data=dto.RecipeBrief} "加入成功"
// @Failure 400 {object} response.ErrorResponse "该食谱已在购物车中"
// @Failure 404 {object} response.ErrorResponse "食谱不存在"
// @Router /recipes/{id}/shopping_cart [post]
func (h *CartHandler) Add(c *gin.Context) {
	recipeID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的食谱ID")
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	brief, err := h.cartService.Add(currentUserID, recipeID)
	if err != nil {
		handleCartError(c, err)
		return
	}

	response.Created(c, "加入购物车成功", brief)
}

// Remove 移出购物车
// @Summary 移出购物车
// @Description 将食谱移出购物车，不在购物车中会被拒绝
// @Tags 购物车
// @Produce json
// @Security BearerAuth
// @Param id path int true "食谱ID"
// @Success 200 {object} response.Response "移出成功"
// @Failure 400 {object} response.ErrorResponse "该食谱不在购物车中"
// @Router /recipes/{id}/shopping_cart [delete]
func (h *CartHandler) Remove(c *gin.Context) {
	recipeID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的食谱ID")
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	if err := h.cartService.Remove(currentUserID, recipeID); err != nil {
		handleCartError(c, err)
		return
	}

	response.OK(c, "移出购物车成功", nil)
}

// Download 下载购物清单
// @Summary 下载购物清单
// @Description 汇总购物车中所有食谱的食材用量，导出为纯文本附件
// @Tags 购物车
// @Produce plain
// @Security BearerAuth
// @Success 200 {string} string "购物清单文本"
// @Failure 400 {object} response.ErrorResponse "购物车为空"
// @Router /recipes/download_shopping_cart [get]
func (h *CartHandler) Download(c *gin.Context) {
	currentUserID, _ := middleware.GetCurrentUserID(c)

	data, err := h.cartService.BuildShoppingList(currentUserID)
	if err != nil {
		handleCartError(c, err)
		return
	}

	filename := fmt.Sprintf("%s_shoppingcart_list.txt", data.Username)
	response.Attachment(c, filename, data.Report)
}

func handleCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRecipeNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrAlreadyInCart),
		errors.Is(err, service.ErrNotInCart),
		errors.Is(err, service.ErrEmptyCart):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("Cart operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
