package route

import (
	"time"

	"github.com/RomanKim94/foodgram/controller"
	"github.com/RomanKim94/foodgram/entity"
	"github.com/RomanKim94/foodgram/handler"
	"github.com/RomanKim94/foodgram/middleware"
	"github.com/RomanKim94/foodgram/repository"
	"github.com/RomanKim94/foodgram/service"
	"github.com/RomanKim94/foodgram/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes wires repositories, controllers and handlers onto r.
func SetupRoutes(r *gin.Engine, db *gorm.DB, config *entity.Config, images storage.ImageStore) {
	handler.RegisterValidators()

	r.Use(middleware.RequestLogger())
	if len(config.Server.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     config.Server.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Content-Disposition"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	if local, ok := images.(*storage.LocalStore); ok {
		r.Static(local.URLPrefix, local.Root)
	}

	userRepository := repository.NewUserRepository(db)
	productRepository := repository.NewProductRepository(db)
	tagRepository := repository.NewTagRepository(db)
	recipeRepository := repository.NewRecipeRepository(db)
	collectionRepository := repository.NewCollectionRepository(db)
	followRepository := repository.NewFollowRepository(db)

	userController := controller.NewUserController(userRepository, followRepository, images)
	followController := controller.NewFollowController(followRepository, userRepository, recipeRepository)
	productController := controller.NewProductController(productRepository)
	tagController := controller.NewTagController(tagRepository)
	recipeController := controller.NewRecipeController(recipeRepository, productRepository, tagRepository,
		collectionRepository, followRepository, images, config.Limits)
	collectionController := controller.NewCollectionController(collectionRepository, recipeRepository)
	shoppingListController := controller.NewShoppingListController(recipeRepository)

	// Initialize services
	authService := service.NewAuthService(userController, config)

	paginator := handler.NewPaginator(config.Server.BaseURL, config.Limits)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userController, followController, paginator)
	productHandler := handler.NewProductHandler(productController)
	tagHandler := handler.NewTagHandler(tagController)
	recipeHandler := handler.NewRecipeHandler(recipeController, collectionController, shoppingListController,
		paginator, config.Server.BaseURL)

	requireAuth := middleware.RequireAuth(authService)
	optionalAuth := middleware.OptionalAuth(authService)

	r.GET("/s/:code", recipeHandler.ResolveShortLink)

	api := r.Group("/api")

	api.POST("/auth/token/login", authHandler.Login)
	api.POST("/auth/token/logout", requireAuth, authHandler.Logout)

	api.GET("/tags", tagHandler.ListTags)
	api.GET("/tags/:id", tagHandler.GetTag)
	api.GET("/ingredients", productHandler.ListProducts)
	api.GET("/ingredients/:id", productHandler.GetProduct)

	// users
	api.POST("/users", userHandler.Create)
	api.GET("/users", optionalAuth, userHandler.ListUsers)
	api.GET("/users/me", requireAuth, userHandler.Me)
	api.PUT("/users/me/avatar", requireAuth, userHandler.SetAvatar)
	api.DELETE("/users/me/avatar", requireAuth, userHandler.DeleteAvatar)
	api.POST("/users/set_password", requireAuth, userHandler.SetPassword)
	api.GET("/users/subscriptions", requireAuth, userHandler.Subscriptions)
	api.GET("/users/:id", optionalAuth, userHandler.GetUser)
	api.POST("/users/:id/subscribe", requireAuth, userHandler.Subscribe)
	api.DELETE("/users/:id/subscribe", requireAuth, userHandler.Unsubscribe)

	// recipes
	api.GET("/recipes", optionalAuth, recipeHandler.ListRecipes)
	api.POST("/recipes", requireAuth, recipeHandler.Create)
	api.GET("/recipes/download_shopping_cart", requireAuth, recipeHandler.DownloadShoppingCart)
	api.GET("/recipes/:id", optionalAuth, recipeHandler.GetRecipe)
	api.PATCH("/recipes/:id", requireAuth, recipeHandler.UpdateRecipe)
	api.DELETE("/recipes/:id", requireAuth, recipeHandler.DeleteRecipe)
	api.GET("/recipes/:id/get-link", recipeHandler.GetLink)
	api.POST("/recipes/:id/favorite", requireAuth, recipeHandler.AddFavorite)
	api.DELETE("/recipes/:id/favorite", requireAuth, recipeHandler.RemoveFavorite)
	api.POST("/recipes/:id/shopping_cart", requireAuth, recipeHandler.AddToShoppingCart)
	api.DELETE("/recipes/:id/shopping_cart", requireAuth, recipeHandler.RemoveFromShoppingCart)
}
