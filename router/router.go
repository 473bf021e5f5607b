package router

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"spendbot/api"
	"spendbot/config"
	_ "spendbot/docs"
	"spendbot/middleware"
	"spendbot/tokens"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, store tokens.Store) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()

	// CORS 中间件
	r.Use(CORSMiddleware())

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	tokenHandler := api.NewTokenHandler(store)
	apiGroup := r.Group("/api")
	{
		// 机器人进程与仪表盘前端调用，敏感接口限流
		apiGroup.POST("/create-access-token",
			middleware.RateLimit(10, time.Minute), tokenHandler.CreateAccessToken)
		apiGroup.POST("/verify-pin",
			middleware.RateLimit(5, time.Minute), tokenHandler.VerifyPin)

		// 需要访问令牌或会话令牌的接口
		authorized := apiGroup.Group("")
		authorized.Use(middleware.TokenAuth(store))
		{
			authorized.GET("/has-pin", tokenHandler.HasPin)
			authorized.GET("/dashboard", api.NewDashboardHandler().Get)

			expenseHandler := api.NewExpenseHandler()
			expenses := authorized.Group("/expenses")
			{
				expenses.POST("", expenseHandler.Create)
				expenses.PUT("/:id", expenseHandler.Update)
				expenses.DELETE("/:id", expenseHandler.Delete)
			}

			exportHandler := api.NewExportHandler()
			export := authorized.Group("/export")
			{
				export.GET("/csv", exportHandler.ExportCSV)
				export.GET("/excel", exportHandler.ExportExcel)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	return r
}

// CORSMiddleware CORS 跨域中间件
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
