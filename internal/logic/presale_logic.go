package logic

import (
	"errors"
	"math"
	"time"

	"github.com/memechain/presale-service/internal/logger"
	"github.com/memechain/presale-service/internal/model"
	"gorm.io/gorm"
)

// PresaleLogic 预售配置业务逻辑
// 购买逻辑每次实时读取预售行，这里不做任何跨请求缓存
type PresaleLogic struct {
	db *gorm.DB
}

// NewPresaleLogic 创建预售配置业务逻辑
func NewPresaleLogic(db *gorm.DB) *PresaleLogic {
	return &PresaleLogic{db: db}
}

// GetPresale 读取当前预售配置快照
func (p *PresaleLogic) GetPresale() (*model.PresaleModel, error) {
	var presale model.PresaleModel
	if err := p.db.First(&presale).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPresaleNotConfigured
		}
		return nil, storeError(err)
	}
	return &presale, nil
}

// LiveStats 实时统计
type LiveStats struct {
	Participants    int64   `json:"participants"`
	RaisedAmount    float64 `json:"raised_amount"`
	TokensAllocated int64   `json:"tokens_allocated"`
	DaysToLaunch    int     `json:"days_to_launch"`
	IsActive        bool    `json:"is_active"`
}

// GetLiveStats 获取首页实时统计
func (p *PresaleLogic) GetLiveStats() (*LiveStats, error) {
	presale, err := p.GetPresale()
	if err != nil {
		return nil, err
	}

	stats := &LiveStats{
		Participants:    presale.TotalParticipants,
		RaisedAmount:    presale.TotalRaised,
		TokensAllocated: presale.TokensAllocated,
		IsActive:        presale.IsActive,
	}

	// 距发售天数来自倒计时配置，缺失时为0
	var countdown model.CountdownModel
	if err := p.db.First(&countdown).Error; err == nil {
		days := int(math.Ceil(time.Until(countdown.TargetDate).Hours() / 24))
		if days > 0 {
			stats.DaysToLaunch = days
		}
	}

	return stats, nil
}

// UpdatePrice 更新预售价格（管理端）
// 同时更新阶段号，购买逻辑下一次读取即生效
func (p *PresaleLogic) UpdatePrice(stage int, price float64) (*model.PresaleModel, error) {
	if price <= 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return nil, ErrInvalidAmount
	}

	presale, err := p.GetPresale()
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"current_price": price,
	}
	if stage > 0 {
		updates["stage"] = stage
	}
	if err := p.db.Model(presale).Updates(updates).Error; err != nil {
		return nil, storeError(err)
	}

	logger.Info("Presale price updated: stage=%d price=%.8f", stage, price)
	return p.GetPresale()
}

// UpdateStage 切换预售阶段（管理端）
// 阶段价格取自tokenomics配置
func (p *PresaleLogic) UpdateStage(stage int) (*model.PresaleModel, error) {
	var tokenomics model.TokenomicsModel
	if err := p.db.First(&tokenomics).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPresaleNotConfigured
		}
		return nil, storeError(err)
	}

	price := stagePrice(&tokenomics, stage)
	if price <= 0 {
		return nil, ErrInvalidStage
	}

	return p.UpdatePrice(stage, price)
}

// ToggleStatus 切换预售开关（管理端）
func (p *PresaleLogic) ToggleStatus(isActive bool) (*model.PresaleModel, error) {
	presale, err := p.GetPresale()
	if err != nil {
		return nil, err
	}

	if err := p.db.Model(presale).Update("is_active", isActive).Error; err != nil {
		return nil, storeError(err)
	}

	logger.Info("Presale status toggled: is_active=%t", isActive)
	return p.GetPresale()
}

// stagePrice 取指定阶段的预售价格
func stagePrice(t *model.TokenomicsModel, stage int) float64 {
	switch stage {
	case 1:
		return t.PresaleStage1Price
	case 2:
		return t.PresaleStage2Price
	case 3:
		return t.PresaleStage3Price
	case 4:
		return t.PresaleStage4Price
	case 5:
		return t.PresaleStage5Price
	default:
		return 0
	}
}
