package service

import (
	"context"
	"errors"

	"sabor-go/internal/api/dto"
	"sabor-go/internal/model"
	"sabor-go/internal/repository"
	"sabor-go/pkg/utils"

	"gorm.io/gorm"
)

var (
	ErrRecipeNotFound      = errors.New("食谱不存在")
	ErrRecipeNoPermission  = errors.New("没有权限操作该食谱")
	ErrNoIngredients       = errors.New("请至少添加一种食材")
	ErrInvalidAmount       = errors.New("食材数量不能小于1")
	ErrDuplicateIngredient = errors.New("食材不能重复添加")
	ErrUnknownIngredient   = errors.New("提交的食材不存在")
	ErrNoTags              = errors.New("请至少选择一个标签")
	ErrDuplicateTag        = errors.New("标签不能重复选择")
	ErrUnknownTag          = errors.New("提交的标签不存在")
	ErrInvalidCookingTime  = errors.New("烹饪时间不能小于1分钟")
	ErrInvalidImage        = errors.New("图片数据无效")
	ErrReferenceGone       = errors.New("关联的标签或食材已被删除")
)

// ImageStore 食谱图片存储接口，由 infra/minio 实现
type ImageStore interface {
	Save(ctx context.Context, data []byte, ext string) (string, error)
}

type RecipeService struct {
	recipeRepo       *repository.RecipeRepository
	ingredientRepo   *repository.IngredientRepository
	tagRepo          *repository.TagRepository
	favoriteRepo     *repository.FavoriteRepository
	cartRepo         *repository.CartRepository
	subscriptionRepo *repository.SubscriptionRepository
	images           ImageStore
}

func NewRecipeService(
	recipeRepo *repository.RecipeRepository,
	ingredientRepo *repository.IngredientRepository,
	tagRepo *repository.TagRepository,
	favoriteRepo *repository.FavoriteRepository,
	cartRepo *repository.CartRepository,
	subscriptionRepo *repository.SubscriptionRepository,
	images ImageStore,
) *RecipeService {
	return &RecipeService{
		recipeRepo:       recipeRepo,
		ingredientRepo:   ingredientRepo,
		tagRepo:          tagRepo,
		favoriteRepo:     favoriteRepo,
		cartRepo:         cartRepo,
		subscriptionRepo: subscriptionRepo,
		images:           images,
	}
}

// Create 创建食谱：校验输入 → 上传图片 → 事务内写入食谱及标签、食材关联
func (s *RecipeService) Create(ctx context.Context, authorID int64, req *dto.RecipeCreateRequest) (*dto.RecipeInfo, error) {
	if err := s.validateWriteInput(req.Ingredients, req.TagIDs, req.CookingTime); err != nil {
		return nil, err
	}

	imageURL, err := s.storeImage(ctx, req.Image)
	if err != nil {
		return nil, err
	}

	recipe := &model.Recipe{
		AuthorID:    authorID,
		Name:        req.Name,
		Image:       imageURL,
		Text:        req.Text,
		CookingTime: req.CookingTime,
	}

	if err := s.recipeRepo.CreateWithAssociations(recipe, req.TagIDs, toIngredientRows(req.Ingredients)); err != nil {
		return nil, mapRecipeWriteError(err)
	}

	return s.GetDetail(recipe.ID, &authorID)
}

// Update 更新食谱（仅作者本人）：标量字段就地更新，标签和食材关联整体替换
func (s *RecipeService) Update(ctx context.Context, recipeID, currentUserID int64, req *dto.RecipeUpdateRequest) (*dto.RecipeInfo, error) {
	recipe, err := s.recipeRepo.GetByID(recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	if recipe.AuthorID != currentUserID {
		return nil, ErrRecipeNoPermission
	}

	if err := s.validateWriteInput(req.Ingredients, req.TagIDs, req.CookingTime); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"name":         req.Name,
		"text":         req.Text,
		"cooking_time": req.CookingTime,
	}
	// image 为空时保留原图片
	if req.Image != "" {
		imageURL, err := s.storeImage(ctx, req.Image)
		if err != nil {
			return nil, err
		}
		updates["image"] = imageURL
	}

	if err := s.recipeRepo.UpdateWithAssociations(recipe, updates, req.TagIDs, toIngredientRows(req.Ingredients)); err != nil {
		return nil, mapRecipeWriteError(err)
	}

	return s.GetDetail(recipeID, &currentUserID)
}

// Delete 删除食谱（仅作者本人），关联行级联清理
func (s *RecipeService) Delete(recipeID, currentUserID int64) error {
	recipe, err := s.recipeRepo.GetByID(recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecipeNotFound
		}
		return err
	}
	if recipe.AuthorID != currentUserID {
		return ErrRecipeNoPermission
	}

	return s.recipeRepo.Delete(recipe)
}

// GetDetail 获取食谱读取视图，currentUserID 为 nil 时相关标记均为 false
func (s *RecipeService) GetDetail(recipeID int64, currentUserID *int64) (*dto.RecipeInfo, error) {
	recipe, err := s.recipeRepo.GetByIDWithRelations(recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	var isFavorited, isInCart, isSubscribed bool
	if currentUserID != nil {
		if isFavorited, err = s.favoriteRepo.Exists(*currentUserID, recipeID); err != nil {
			return nil, err
		}
		if isInCart, err = s.cartRepo.Exists(*currentUserID, recipeID); err != nil {
			return nil, err
		}
		if isSubscribed, err = s.subscriptionRepo.Exists(*currentUserID, recipe.AuthorID); err != nil {
			return nil, err
		}
	}

	return toRecipeInfo(recipe, isFavorited, isInCart, isSubscribed), nil
}

// List 食谱列表查询（分页 + 过滤），当前用户相关标记批量查询
func (s *RecipeService) List(page, pageSize int, authorID *int64, tagSlugs []string, favoritedOnly, inCartOnly bool, currentUserID *int64) (*dto.RecipeListData, error) {
	// 收藏/购物车过滤只对已登录用户生效
	var favoritedBy, inCartOf *int64
	if currentUserID != nil {
		if favoritedOnly {
			favoritedBy = currentUserID
		}
		if inCartOnly {
			inCartOf = currentUserID
		}
	}

	skip := (page - 1) * pageSize
	recipes, total, err := s.recipeRepo.ListRecipes(skip, pageSize, authorID, tagSlugs, favoritedBy, inCartOf)
	if err != nil {
		return nil, err
	}

	recipeIDs := make([]int64, 0, len(recipes))
	authorIDs := make([]int64, 0, len(recipes))
	for i := range recipes {
		recipeIDs = append(recipeIDs, recipes[i].ID)
		authorIDs = append(authorIDs, recipes[i].AuthorID)
	}

	favMap := map[int64]bool{}
	cartMap := map[int64]bool{}
	subMap := map[int64]bool{}
	if currentUserID != nil {
		if favMap, err = s.favoriteRepo.BatchCheckFavorited(*currentUserID, recipeIDs); err != nil {
			return nil, err
		}
		if cartMap, err = s.cartRepo.BatchCheckInCart(*currentUserID, recipeIDs); err != nil {
			return nil, err
		}
		if subMap, err = s.subscriptionRepo.BatchCheckSubscribed(*currentUserID, authorIDs); err != nil {
			return nil, err
		}
	}

	items := make([]dto.RecipeInfo, 0, len(recipes))
	for i := range recipes {
		r := &recipes[i]
		items = append(items, *toRecipeInfo(r, favMap[r.ID], cartMap[r.ID], subMap[r.AuthorID]))
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)

	return &dto.RecipeListData{
		Recipes:    items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// validateWriteInput 创建/更新共用的输入校验，全部通过后才允许写入
func (s *RecipeService) validateWriteInput(ingredients []dto.RecipeIngredientInput, tagIDs []int64, cookingTime int) error {
	if len(ingredients) == 0 {
		return ErrNoIngredients
	}

	seen := make(map[int64]bool, len(ingredients))
	ingredientIDs := make([]int64, 0, len(ingredients))
	for _, item := range ingredients {
		if item.Amount < 1 {
			return ErrInvalidAmount
		}
		if seen[item.ID] {
			return ErrDuplicateIngredient
		}
		seen[item.ID] = true
		ingredientIDs = append(ingredientIDs, item.ID)
	}

	count, err := s.ingredientRepo.CountByIDs(ingredientIDs)
	if err != nil {
		return err
	}
	if count != int64(len(ingredientIDs)) {
		return ErrUnknownIngredient
	}

	if len(tagIDs) == 0 {
		return ErrNoTags
	}
	tagSeen := make(map[int64]bool, len(tagIDs))
	for _, id := range tagIDs {
		if tagSeen[id] {
			return ErrDuplicateTag
		}
		tagSeen[id] = true
	}

	tagCount, err := s.tagRepo.CountByIDs(tagIDs)
	if err != nil {
		return err
	}
	if tagCount != int64(len(tagIDs)) {
		return ErrUnknownTag
	}

	if cookingTime < 1 {
		return ErrInvalidCookingTime
	}

	return nil
}

// storeImage 解码 base64 图片并上传，返回公开访问 URL。
// 已经是 URL 形式的图片（更新时未改图）原样返回
func (s *RecipeService) storeImage(ctx context.Context, image string) (string, error) {
	if !utils.IsBase64Image(image) {
		return image, nil
	}

	data, ext, err := utils.DecodeBase64Image(image)
	if err != nil {
		return "", ErrInvalidImage
	}

	return s.images.Save(ctx, data, ext)
}

// mapRecipeWriteError 将事务期间的存储层约束冲突映射回业务错误。
// 校验读取已提交状态，提交前标签或食材被删除的竞争在这里兜底；
// 外键冲突无法区分具体是哪个关联，统一报关联已失效
func mapRecipeWriteError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrReferenceGone
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateIngredient
	default:
		return err
	}
}

func toIngredientRows(inputs []dto.RecipeIngredientInput) []model.RecipeIngredient {
	rows := make([]model.RecipeIngredient, 0, len(inputs))
	for _, item := range inputs {
		rows = append(rows, model.RecipeIngredient{
			IngredientID: item.ID,
			Amount:       item.Amount,
		})
	}
	return rows
}

// toRecipeInfo 将 model.Recipe 转换为读取视图
func toRecipeInfo(recipe *model.Recipe, isFavorited, isInCart, isSubscribed bool) *dto.RecipeInfo {
	tags := make([]dto.TagInfo, 0, len(recipe.Tags))
	for _, tag := range recipe.Tags {
		tags = append(tags, dto.TagInfo{
			ID:    tag.ID,
			Name:  tag.Name,
			Color: tag.Color,
			Slug:  tag.Slug,
		})
	}

	ingredients := make([]dto.RecipeIngredientInfo, 0, len(recipe.RecipeIngredients))
	for _, row := range recipe.RecipeIngredients {
		ingredients = append(ingredients, dto.RecipeIngredientInfo{
			ID:              row.IngredientID,
			Name:            row.Ingredient.Name,
			MeasurementUnit: row.Ingredient.MeasurementUnit,
			Amount:          row.Amount,
		})
	}

	return &dto.RecipeInfo{
		ID:   recipe.ID,
		Tags: tags,
		Author: dto.RecipeAuthorInfo{
			ID:           recipe.Author.ID,
			Email:        recipe.Author.Email,
			Username:     recipe.Author.UserName,
			FirstName:    recipe.Author.FirstName,
			LastName:     recipe.Author.LastName,
			IsSubscribed: isSubscribed,
		},
		Ingredients:      ingredients,
		IsFavorited:      isFavorited,
		IsInShoppingCart: isInCart,
		Name:             recipe.Name,
		Image:            recipe.Image,
		Text:             recipe.Text,
		CookingTime:      recipe.CookingTime,
		CreatedAt:        recipe.CreatedAt,
	}
}

func toRecipeBrief(recipe *model.Recipe) *dto.RecipeBrief {
	return &dto.RecipeBrief{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       recipe.Image,
		CookingTime: recipe.CookingTime,
	}
}
