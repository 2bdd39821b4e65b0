package handler

import (
	"errors"

	"sabor-go/internal/api/response"
	"sabor-go/internal/service"
	"sabor-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type IngredientHandler struct {
	ingredientService *service.IngredientService
}

func NewIngredientHandler(ingredientService *service.IngredientService) *IngredientHandler {
	return &IngredientHandler{ingredientService: ingredientService}
}

// List 获取食材目录
// @Summary 获取食材目录
// @Description 获取食材目录，支持按名称前缀过滤
// @Tags 食材
// @Produce json
// @Param name query string false "名称前缀"
// @Success 200 {object} response.Response{data=[]dto.IngredientInfo} "获取成功"
// @Router /ingredients [get]
func (h *IngredientHandler) List(c *gin.Context) {
	items, err := h.ingredientService.List(c.Query("name"))
	if err != nil {
		logger.Error("List ingredients failed", zap.Error(err))
		response.InternalError(c, "获取食材列表失败")
		return
	}

	response.OK(c, "获取食材列表成功", items)
}

// Get 获取指定食材
// @Summary 获取指定食材
// @Description 根据 ID 获取食材
// @Tags 食材
// @Produce json
// @Param id path int true "食材ID"
// @Success 200 {object} response.Response{data=dto.IngredientInfo} "获取成功"
// @Failure 404 {object} response.ErrorResponse "食材不存在"
// @Router /ingredients/{id} [get]
func (h *IngredientHandler) Get(c *gin.Context) {
	ingredientID, err := parseIDParam(c, "id")
	if err != nil {
		response.BadRequest(c, "无效的食材ID")
		return
	}

	info, err := h.ingredientService.Get(ingredientID)
	if err != nil {
		if errors.Is(err, service.ErrIngredientNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		logger.Error("Get ingredient failed", zap.Error(err))
		response.InternalError(c, "获取食材失败")
		return
	}

	response.OK(c, "获取食材成功", info)
}
