package router

import (
	"github.com/storefront-next/internal/config"
	publichandlers "github.com/storefront-next/internal/http/handlers/public"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口（商品目录，无会话要求）
		public := apiV1.Group("/public")
		{
			public.GET("/products", publicHandler.GetProducts)
			public.GET("/products/:id", publicHandler.GetProduct)
			public.GET("/categories", publicHandler.GetCategories)
		}

		// 会话接口（购物车与结账，按会话 Cookie 隔离）
		session := apiV1.Group("")
		session.Use(SessionMiddleware())
		{
			session.GET("/cart", publicHandler.GetCart)
			session.POST("/cart/items", publicHandler.AddCartItem)
			session.GET("/cart/items/:product_id", publicHandler.GetCartItem)
			session.PUT("/cart/items/:product_id", publicHandler.UpdateCartItem)
			session.DELETE("/cart/items/:product_id", publicHandler.DeleteCartItem)
			session.DELETE("/cart", publicHandler.ClearCart)

			session.GET("/checkout", publicHandler.GetCheckout)
			session.POST("/checkout", publicHandler.SubmitCheckout)
			session.DELETE("/checkout", publicHandler.ResetCheckout)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
