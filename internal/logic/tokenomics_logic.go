package logic

import (
	"errors"

	"github.com/memechain/presale-service/internal/model"
	"gorm.io/gorm"
)

// TokenomicsLogic 代币经济配置业务逻辑
type TokenomicsLogic struct {
	db *gorm.DB
}

// NewTokenomicsLogic 创建代币经济配置业务逻辑
func NewTokenomicsLogic(db *gorm.DB) *TokenomicsLogic {
	return &TokenomicsLogic{db: db}
}

// TokenomicsData 代币经济配置响应
type TokenomicsData struct {
	TotalSupply        int64   `json:"total_supply"`
	PresaleStage1Price float64 `json:"presale_stage1_price"`
	PresaleStage2Price float64 `json:"presale_stage2_price"`
	PresaleStage3Price float64 `json:"presale_stage3_price"`
	PresaleStage4Price float64 `json:"presale_stage4_price"`
	PresaleStage5Price float64 `json:"presale_stage5_price"`
	PublicSalePrice    float64 `json:"public_sale_price"`

	Distribution map[string]float64 `json:"distribution"`

	IsActive bool `json:"is_active"`
}

// GetTokenomics 获取代币经济配置
func (t *TokenomicsLogic) GetTokenomics() (*TokenomicsData, error) {
	var tokenomics model.TokenomicsModel
	if err := t.db.First(&tokenomics).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPresaleNotConfigured
		}
		return nil, storeError(err)
	}

	return &TokenomicsData{
		TotalSupply:        tokenomics.TotalSupply,
		PresaleStage1Price: tokenomics.PresaleStage1Price,
		PresaleStage2Price: tokenomics.PresaleStage2Price,
		PresaleStage3Price: tokenomics.PresaleStage3Price,
		PresaleStage4Price: tokenomics.PresaleStage4Price,
		PresaleStage5Price: tokenomics.PresaleStage5Price,
		PublicSalePrice:    tokenomics.PublicSalePrice,
		Distribution: map[string]float64{
			"team":      tokenomics.DistributionTeam,
			"presale":   tokenomics.DistributionPresale,
			"liquidity": tokenomics.DistributionLiquidity,
			"marketing": tokenomics.DistributionMarketing,
			"reserve":   tokenomics.DistributionReserve,
			"community": tokenomics.DistributionCommunity,
		},
		IsActive: tokenomics.IsActive,
	}, nil
}
