package database

import (
	"fmt"
	"time"

	"github.com/memechain/presale-service/internal/config"
	"github.com/memechain/presale-service/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func Init(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent), // 禁用 GORM 的默认日志输出
		TranslateError: true,                                          // 唯一键冲突翻译为 gorm.ErrDuplicatedKey
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate 自动迁移所有表结构
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.UserModel{},
		&model.PresaleModel{},
		&model.TransactionModel{},
		&model.TokenomicsModel{},
		&model.CountdownModel{},
		&model.NewsletterSubscriberModel{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Seed 初始化单行配置数据（已存在时不覆盖）
func Seed(db *gorm.DB, cfg config.PresaleConfig) error {
	var count int64
	if err := db.Model(&model.PresaleModel{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check presale config: %w", err)
	}
	if count == 0 {
		presale := &model.PresaleModel{
			Stage:        cfg.Stage,
			CurrentPrice: cfg.CurrentPrice,
			HardCap:      cfg.HardCap,
			IsActive:     cfg.IsActive,
		}
		if err := db.Create(presale).Error; err != nil {
			return fmt.Errorf("failed to seed presale config: %w", err)
		}
	}

	if err := db.Model(&model.CountdownModel{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check countdown config: %w", err)
	}
	if count == 0 {
		countdown := &model.CountdownModel{
			TargetDate:  time.Now().AddDate(0, 0, 30),
			Title:       "Memechain Presale",
			Description: "Get ready for the biggest meme coin presale!",
			IsActive:    true,
		}
		if err := db.Create(countdown).Error; err != nil {
			return fmt.Errorf("failed to seed countdown config: %w", err)
		}
	}

	if err := db.Model(&model.TokenomicsModel{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check tokenomics config: %w", err)
	}
	if count == 0 {
		tokenomics := &model.TokenomicsModel{
			TotalSupply:        1000000000,
			PresaleStage1Price: 0.00001,
			PresaleStage2Price: 0.00002,
			PresaleStage3Price: 0.00004,
			PresaleStage4Price: 0.00008,
			PresaleStage5Price: 0.00016,
			PublicSalePrice:    0.0005,

			DistributionTeam:      10,
			DistributionPresale:   40,
			DistributionLiquidity: 20,
			DistributionMarketing: 10,
			DistributionReserve:   10,
			DistributionCommunity: 10,

			IsActive: true,
		}
		if err := db.Create(tokenomics).Error; err != nil {
			return fmt.Errorf("failed to seed tokenomics config: %w", err)
		}
	}

	return nil
}
