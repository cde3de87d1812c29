package logic

import (
	"testing"

	"github.com/memechain/presale-service/internal/database"
	"github.com/memechain/presale-service/internal/model"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// setupTestDB 内存数据库
// 单连接串行化并发事务，避免sqlite锁冲突
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

// seedPresale 写入预售单行配置
func seedPresale(t *testing.T, db *gorm.DB, price float64, active bool) *model.PresaleModel {
	t.Helper()

	presale := &model.PresaleModel{
		Stage:        1,
		CurrentPrice: price,
		HardCap:      1000000,
		IsActive:     active,
	}
	require.NoError(t, db.Create(presale).Error)
	return presale
}

// readPresale 读取预售单行配置
func readPresale(t *testing.T, db *gorm.DB) *model.PresaleModel {
	t.Helper()

	var presale model.PresaleModel
	require.NoError(t, db.First(&presale).Error)
	return &presale
}

// mustTx 按tx_hash读取流水记录
func mustTx(t *testing.T, db *gorm.DB, txHash string) *model.TransactionModel {
	t.Helper()

	var record model.TransactionModel
	require.NoError(t, db.Where("tx_hash = ?", txHash).First(&record).Error)
	return &record
}
