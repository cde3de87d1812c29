package model

import (
	"time"
)

// TokenomicsModel 代币经济配置（全局单行）
type TokenomicsModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	TotalSupply int64 `json:"total_supply"`

	// 各阶段预售价格（USD/枚）
	PresaleStage1Price float64 `json:"presale_stage1_price"`
	PresaleStage2Price float64 `json:"presale_stage2_price"`
	PresaleStage3Price float64 `json:"presale_stage3_price"`
	PresaleStage4Price float64 `json:"presale_stage4_price"`
	PresaleStage5Price float64 `json:"presale_stage5_price"`
	PublicSalePrice    float64 `json:"public_sale_price"`

	// 分配比例（百分比）
	DistributionTeam      float64 `json:"distribution_team"`
	DistributionPresale   float64 `json:"distribution_presale"`
	DistributionLiquidity float64 `json:"distribution_liquidity"`
	DistributionMarketing float64 `json:"distribution_marketing"`
	DistributionReserve   float64 `json:"distribution_reserve"`
	DistributionCommunity float64 `json:"distribution_community"`

	IsActive bool `json:"is_active" gorm:"default:true"`
}

// TableName 自定义表名
func (TokenomicsModel) TableName() string {
	return "tokenomics"
}
