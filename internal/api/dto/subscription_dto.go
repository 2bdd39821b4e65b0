package dto

// SubscriptionInfo 订阅的作者信息：作者资料 + 食谱统计及简要列表
type SubscriptionInfo struct {
	ID           int64         `json:"id"`
	Email        string        `json:"email"`
	Username     string        `json:"username"`
	FirstName    string        `json:"first_name"`
	LastName     string        `json:"last_name"`
	IsSubscribed bool          `json:"is_subscribed"`
	RecipesCount int64         `json:"recipes_count"`
	Recipes      []RecipeBrief `json:"recipes"`
}

// SubscriptionListData 订阅列表数据
type SubscriptionListData struct {
	Authors    []SubscriptionInfo `json:"authors"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalPages int64              `json:"total_pages"`
}
