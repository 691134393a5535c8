package router

import (
	"net/http"
	"time"

	"greencampus/api"
	"greencampus/config"
	"greencampus/database"
	"greencampus/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "greencampus/docs"
)

// SetupRouter builds the gin engine with all routes registered.
func SetupRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.Cors())
	r.Use(middleware.AuthGate())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.Static("/uploads", cfg.Upload.Dir)

	authHandler := api.NewAuthHandler(cfg)
	resetHandler := api.NewPasswordResetHandler(cfg)
	menuHandler := api.NewMenuHandler()
	boardHandler := api.NewBoardHandler()
	categoryHandler := api.NewCategoryHandler()
	postHandler := api.NewPostHandler()
	pageHandler := api.NewPageHandler()
	heroHandler := api.NewHeroSlideHandler()
	energyHandler := api.NewEnergyDataHandler()
	solarHandler := api.NewSolarDataHandler()
	statsHandler := api.NewStatsHandler()
	uploadHandler := api.NewUploadHandler(cfg)
	exportHandler := api.NewExportHandler()

	publicCache := middleware.PublicCache(database.Redis, cfg.Cache)

	admin := r.Group("/admin")
	{
		admin.POST("/login", middleware.LoginRateLimit(5, time.Minute), authHandler.Login)
		admin.POST("/logout", authHandler.Logout)
		admin.GET("/me", authHandler.Me)

		password := admin.Group("/password")
		{
			password.POST("/request-reset", middleware.LoginRateLimit(3, time.Minute), resetHandler.RequestReset)
			password.GET("/verify-token", resetHandler.VerifyToken)
			password.POST("/reset", resetHandler.ResetPassword)
		}
	}

	apiGroup := r.Group("/api")
	{
		menus := apiGroup.Group("/menus")
		{
			menus.GET("", menuHandler.List)
			menus.GET("/tree", menuHandler.Tree)
			menus.GET("/public", publicCache, menuHandler.PublicList)
			menus.GET("/public/tree", publicCache, menuHandler.PublicTree)
			menus.POST("", menuHandler.Create)
			menus.PUT("/:id", menuHandler.Update)
			menus.PUT("/:id/move", menuHandler.Move)
			menus.DELETE("/:id", menuHandler.Delete)
		}

		boards := apiGroup.Group("/boards")
		{
			boards.GET("", boardHandler.List)
			boards.GET("/:slug", publicCache, boardHandler.GetBySlug)
			boards.GET("/:slug/posts", publicCache, boardHandler.Posts)
			boards.POST("", boardHandler.Create)
			boards.PUT("/:id", boardHandler.Update)
			boards.DELETE("/:id", boardHandler.Delete)
		}

		categories := apiGroup.Group("/categories")
		{
			categories.GET("", categoryHandler.List)
			categories.POST("", categoryHandler.Create)
			categories.PUT("/:id", categoryHandler.Update)
			categories.DELETE("/:id", categoryHandler.Delete)
		}

		posts := apiGroup.Group("/posts")
		{
			posts.GET("/:id", postHandler.Get)
			posts.POST("", postHandler.Create)
			posts.PUT("/:id", postHandler.Update)
			posts.DELETE("/:id", postHandler.Delete)
		}

		pages := apiGroup.Group("/pages")
		{
			pages.GET("", pageHandler.List)
			pages.GET("/:slug", publicCache, pageHandler.GetBySlug)
			pages.POST("", pageHandler.Create)
			pages.PUT("/:id", pageHandler.Update)
			pages.DELETE("/:id", pageHandler.Delete)
		}

		hero := apiGroup.Group("/hero-slides")
		{
			hero.GET("", heroHandler.List)
			hero.GET("/public", publicCache, heroHandler.PublicList)
			hero.POST("", heroHandler.Create)
			hero.PUT("/:id", heroHandler.Update)
			hero.DELETE("/:id", heroHandler.Delete)
		}

		energy := apiGroup.Group("/energy-data")
		{
			energy.GET("", energyHandler.List)
			energy.POST("", energyHandler.Create)
			energy.PUT("/:id", energyHandler.Update)
			energy.DELETE("/:id", energyHandler.Delete)
			energy.POST("/import", exportHandler.ImportCSV("energy"))
			energy.GET("/export/csv", exportHandler.ExportCSV("energy"))
			energy.GET("/export/excel", exportHandler.ExportExcel("energy"))
		}

		solar := apiGroup.Group("/solar-data")
		{
			solar.GET("", solarHandler.List)
			solar.POST("", solarHandler.Create)
			solar.PUT("/:id", solarHandler.Update)
			solar.DELETE("/:id", solarHandler.Delete)
			solar.POST("/import", exportHandler.ImportCSV("solar"))
			solar.GET("/export/csv", exportHandler.ExportCSV("solar"))
			solar.GET("/export/excel", exportHandler.ExportExcel("solar"))
		}

		public := apiGroup.Group("/public")
		{
			public.GET("/greenhouse-gas-stats", publicCache, statsHandler.GreenhouseGasStats)
			public.GET("/energy-stats", publicCache, statsHandler.EnergyStats)
		}

		upload := apiGroup.Group("/upload")
		{
			upload.POST("", uploadHandler.Upload)
			upload.GET("", uploadHandler.List)
			upload.DELETE("/:id", uploadHandler.Delete)
		}
	}

	return r
}
