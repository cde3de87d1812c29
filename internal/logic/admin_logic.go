package logic

import (
	"errors"
	"time"

	"github.com/memechain/presale-service/internal/model"
	"gorm.io/gorm"
)

// AdminLogic 管理后台业务逻辑
type AdminLogic struct {
	db *gorm.DB
}

// NewAdminLogic 创建管理后台业务逻辑
func NewAdminLogic(db *gorm.DB) *AdminLogic {
	return &AdminLogic{db: db}
}

// GetDashboardStats 获取仪表盘统计信息
func (a *AdminLogic) GetDashboardStats() (map[string]interface{}, error) {
	var stats struct {
		TotalUsers        int64
		TotalTransactions int64
		TotalAmount       float64
		AverageAmount     float64
	}

	// 用户总数
	if err := a.db.Model(&model.UserModel{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, storeError(err)
	}

	// 已确认交易总数
	if err := a.db.Model(&model.TransactionModel{}).
		Where("status = ?", model.TxStatusConfirmed).
		Count(&stats.TotalTransactions).Error; err != nil {
		return nil, storeError(err)
	}

	// 已确认交易总金额
	if err := a.db.Model(&model.TransactionModel{}).
		Where("status = ?", model.TxStatusConfirmed).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&stats.TotalAmount).Error; err != nil {
		return nil, storeError(err)
	}

	// 平均交易金额
	if stats.TotalTransactions > 0 {
		stats.AverageAmount = stats.TotalAmount / float64(stats.TotalTransactions)
	}

	var presale model.PresaleModel
	if err := a.db.First(&presale).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPresaleNotConfigured
		}
		return nil, storeError(err)
	}

	return map[string]interface{}{
		"total_users":        stats.TotalUsers,
		"total_transactions": stats.TotalTransactions,
		"total_amount":       stats.TotalAmount,
		"average_amount":     stats.AverageAmount,
		"total_raised":       presale.TotalRaised,
		"tokens_allocated":   presale.TokensAllocated,
		"total_participants": presale.TotalParticipants,
		"hard_cap":           presale.HardCap,
		"current_price":      presale.CurrentPrice,
		"stage":              presale.Stage,
		"is_active":          presale.IsActive,
	}, nil
}

// GetParticipants 分页获取参与者列表
func (a *AdminLogic) GetParticipants(page, pageSize int) ([]model.UserModel, int64, error) {
	var users []model.UserModel
	var total int64

	// 获取总数
	if err := a.db.Model(&model.UserModel{}).Count(&total).Error; err != nil {
		return nil, 0, storeError(err)
	}

	// 获取数据
	offset := (page - 1) * pageSize
	if err := a.db.Offset(offset).
		Limit(pageSize).
		Order("created_at DESC").
		Find(&users).Error; err != nil {
		return nil, 0, storeError(err)
	}

	return users, total, nil
}

// GetTransactions 分页获取交易流水
func (a *AdminLogic) GetTransactions(page, pageSize int) ([]model.TransactionModel, int64, error) {
	var transactions []model.TransactionModel
	var total int64

	// 获取总数
	if err := a.db.Model(&model.TransactionModel{}).Count(&total).Error; err != nil {
		return nil, 0, storeError(err)
	}

	// 获取数据
	offset := (page - 1) * pageSize
	if err := a.db.Offset(offset).
		Limit(pageSize).
		Order("created_at DESC").
		Find(&transactions).Error; err != nil {
		return nil, 0, storeError(err)
	}

	return transactions, total, nil
}

// GetAnalyticsOverview 按时间段获取分析概览
func (a *AdminLogic) GetAnalyticsOverview(startDate, endDate *time.Time) (map[string]interface{}, error) {
	query := a.db.Model(&model.TransactionModel{}).Where("status = ?", model.TxStatusConfirmed)
	if startDate != nil {
		query = query.Where("created_at >= ?", *startDate)
	}
	if endDate != nil {
		query = query.Where("created_at <= ?", *endDate)
	}

	var overview struct {
		Transactions int64
		Amount       float64
		Tokens       int64
		Wallets      int64
	}

	if err := query.Session(&gorm.Session{}).Count(&overview.Transactions).Error; err != nil {
		return nil, storeError(err)
	}
	if err := query.Session(&gorm.Session{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&overview.Amount).Error; err != nil {
		return nil, storeError(err)
	}
	if err := query.Session(&gorm.Session{}).
		Select("COALESCE(SUM(meme_received), 0)").
		Scan(&overview.Tokens).Error; err != nil {
		return nil, storeError(err)
	}
	if err := query.Session(&gorm.Session{}).
		Select("COUNT(DISTINCT wallet_address)").
		Scan(&overview.Wallets).Error; err != nil {
		return nil, storeError(err)
	}

	return map[string]interface{}{
		"transactions":   overview.Transactions,
		"total_amount":   overview.Amount,
		"total_tokens":   overview.Tokens,
		"unique_wallets": overview.Wallets,
	}, nil
}
