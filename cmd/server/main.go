package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/memechain/presale-service/internal/config"
	"github.com/memechain/presale-service/internal/database"
	"github.com/memechain/presale-service/internal/logger"
	"github.com/memechain/presale-service/internal/price"
	"github.com/memechain/presale-service/internal/router"
	"github.com/memechain/presale-service/internal/scheduler"
)

func main() {
	// 本地开发时从.env读取环境变量
	_ = godotenv.Load()

	// 加载配置
	cfg := config.Load()

	// 按配置初始化日志器
	setupLogger(cfg.Log)
	defer logger.Sync()

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	// 写入单行配置种子数据
	if err := database.Seed(db, cfg.Presale); err != nil {
		logger.Fatal("Failed to seed database: %v", err)
	}

	// 初始化行情服务
	priceService := price.NewService(cfg.Price)

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(db, priceService, cfg)

	// 启动定时任务
	manager := scheduler.Start(priceService, cfg)
	defer manager.Stop()

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}

// setupLogger 按配置切换日志输出
func setupLogger(cfg config.LogConfig) {
	level := logger.ParseLogLevel(cfg.Level)

	if cfg.Output == "file" && cfg.File != "" {
		l, err := logger.NewWithFileRotation(level, cfg.File)
		if err != nil {
			logger.Fatal("Failed to initialize file logger: %v", err)
		}
		logger.SetDefaultLogger(l)
		return
	}

	l, err := logger.New(level)
	if err != nil {
		logger.Fatal("Failed to initialize logger: %v", err)
	}
	logger.SetDefaultLogger(l)
}
