package dto

import "time"

// RecipeIngredientInput 创建/更新食谱时提交的食材条目
type RecipeIngredientInput struct {
	ID     int64 `json:"id" binding:"required"`
	Amount int   `json:"amount"`
}

// RecipeCreateRequest 创建食谱请求。
// 食材数量、标签、烹饪时间的业务校验在 Service 层完成
type RecipeCreateRequest struct {
	Name        string                  `json:"name" binding:"required,min=1,max=200"`
	Image       string                  `json:"image" binding:"required"`
	Text        string                  `json:"text" binding:"required"`
	CookingTime int                     `json:"cooking_time"`
	TagIDs      []int64                 `json:"tags"`
	Ingredients []RecipeIngredientInput `json:"ingredients"`
}

// RecipeUpdateRequest 更新食谱请求，image 为空时保留原图片
type RecipeUpdateRequest struct {
	Name        string                  `json:"name" binding:"required,min=1,max=200"`
	Image       string                  `json:"image"`
	Text        string                  `json:"text" binding:"required"`
	CookingTime int                     `json:"cooking_time"`
	TagIDs      []int64                 `json:"tags"`
	Ingredients []RecipeIngredientInput `json:"ingredients"`
}

// RecipeAuthorInfo 食谱中嵌套的作者信息
type RecipeAuthorInfo struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

// RecipeIngredientInfo 食谱中的食材及数量
type RecipeIngredientInfo struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// RecipeInfo 食谱读取视图：作者、标签、食材数量及当前用户相关标记
type RecipeInfo struct {
	ID               int64                  `json:"id"`
	Tags             []TagInfo              `json:"tags"`
	Author           RecipeAuthorInfo       `json:"author"`
	Ingredients      []RecipeIngredientInfo `json:"ingredients"`
	IsFavorited      bool                   `json:"is_favorited"`
	IsInShoppingCart bool                   `json:"is_in_shopping_cart"`
	Name             string                 `json:"name"`
	Image            string                 `json:"image"`
	Text             string                 `json:"text"`
	CookingTime      int                    `json:"cooking_time"`
	CreatedAt        time.Time              `json:"created_at"`
}

// RecipeBrief 食谱简要信息（收藏/购物车/订阅列表用）
type RecipeBrief struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// RecipeListData 食谱列表数据
type RecipeListData struct {
	Recipes    []RecipeInfo `json:"recipes"`
	Total      int64        `json:"total"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
	TotalPages int64        `json:"total_pages"`
}
