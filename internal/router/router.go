package router

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/memechain/presale-service/internal/config"
	"github.com/memechain/presale-service/internal/handler"
	"github.com/memechain/presale-service/internal/price"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, priceService *price.Service, cfg *config.Config) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "presale-service",
		})
	})

	// API版本组
	v1 := r.Group("/api/v1")
	{
		// 预售相关路由
		presaleHandler := handler.NewPresaleHandler(db)
		presale := v1.Group("/presale")
		{
			presale.POST("/connect-wallet", presaleHandler.ConnectWallet)
			presale.POST("/purchase", presaleHandler.SubmitPurchase)
			presale.GET("/user/:address", presaleHandler.GetUserData)
			presale.GET("/status", presaleHandler.GetStatus)
		}

		// 公共统计路由
		statsHandler := handler.NewStatsHandler(db, priceService)
		v1.GET("/live-stats", statsHandler.GetLiveStats)
		v1.GET("/tokenomics", statsHandler.GetTokenomics)
		v1.GET("/countdown", statsHandler.GetCountdown)
		v1.GET("/prices", statsHandler.GetPrices)

		// 邮件订阅
		newsletterHandler := handler.NewNewsletterHandler(db)
		v1.POST("/newsletter/subscribe", newsletterHandler.Subscribe)

		// 管理后台路由
		adminHandler := handler.NewAdminHandler(db, cfg.Admin)
		admin := v1.Group("/admin")
		{
			admin.POST("/login", adminHandler.Login)

			authed := admin.Group("", adminAuthMiddleware(cfg.Admin))
			{
				authed.GET("/dashboard/stats", adminHandler.GetDashboardStats)
				authed.GET("/participants", adminHandler.GetParticipants)
				authed.GET("/transactions", adminHandler.GetTransactions)
				authed.POST("/presale/update-price", adminHandler.UpdatePrice)
				authed.POST("/presale/update-stage", adminHandler.UpdateStage)
				authed.POST("/presale/toggle-status", adminHandler.ToggleStatus)
				authed.GET("/analytics/overview", adminHandler.GetAnalytics)
			}
		}
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// 管理端Bearer令牌中间件
func adminAuthMiddleware(cfg config.AdminConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		token := strings.TrimPrefix(auth, "Bearer ")
		if cfg.Token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(cfg.Token)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "unauthorized",
			})
			return
		}
		c.Next()
	}
}
