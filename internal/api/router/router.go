package router

import (
	"sabor-go/internal/api/handler"
	"sabor-go/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

// Setup 注册所有业务路由
func Setup(
	r *gin.Engine,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	subscriptionHandler *handler.SubscriptionHandler,
	tagHandler *handler.TagHandler,
	ingredientHandler *handler.IngredientHandler,
	recipeHandler *handler.RecipeHandler,
	favoriteHandler *handler.FavoriteHandler,
	cartHandler *handler.CartHandler,
) {
	v1 := r.Group("/api/v1")

	// --- 认证模块 ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)

		authRequired := auth.Group("", middleware.AuthRequired())
		{
			authRequired.POST("/logout", authHandler.Logout)
			authRequired.GET("/me", authHandler.Me)
		}
	}

	// --- 用户与订阅模块 ---
	users := v1.Group("/users")
	{
		// 公开接口（登录时附带订阅标记）
		usersPublic := users.Group("", middleware.OptionalAuth())
		{
			usersPublic.GET("", userHandler.List)
			usersPublic.GET("/:id", userHandler.Get)
		}

		usersAuth := users.Group("", middleware.AuthRequired())
		{
			usersAuth.GET("/subscriptions", subscriptionHandler.ListSubscriptions)
			usersAuth.POST("/:id/subscribe", subscriptionHandler.Subscribe)
			usersAuth.DELETE("/:id/subscribe", subscriptionHandler.Unsubscribe)
		}
	}

	// --- 标签模块 ---
	tags := v1.Group("/tags")
	{
		tags.GET("", tagHandler.List)
		tags.GET("/:id", tagHandler.Get)
	}

	// --- 食材模块 ---
	ingredients := v1.Group("/ingredients")
	{
		ingredients.GET("", ingredientHandler.List)
		ingredients.GET("/:id", ingredientHandler.Get)
	}

	// --- 食谱模块 ---
	recipes := v1.Group("/recipes")
	{
		// 公开接口（登录时附带收藏/购物车标记）
		recipesPublic := recipes.Group("", middleware.OptionalAuth())
		{
			recipesPublic.GET("", recipeHandler.List)
			recipesPublic.GET("/:id", recipeHandler.GetDetail)
		}

		recipesAuth := recipes.Group("", middleware.AuthRequired())
		{
			recipesAuth.POST("", recipeHandler.Create)
			recipesAuth.PUT("/:id", recipeHandler.Update)
			recipesAuth.DELETE("/:id", recipeHandler.Delete)

			recipesAuth.POST("/:id/favorite", favoriteHandler.Favorite)
			recipesAuth.DELETE("/:id/favorite", favoriteHandler.Unfavorite)

			recipesAuth.GET("/download_shopping_cart", cartHandler.Download)
			recipesAuth.POST("/:id/shopping_cart", cartHandler.Add)
			recipesAuth.DELETE("/:id/shopping_cart", cartHandler.Remove)
		}
	}
}
