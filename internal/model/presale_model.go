package model

import (
	"time"
)

// PresaleModel 预售配置（全局单行）
// 聚合字段只允许原子自增更新，禁止读-改-写
type PresaleModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 当前阶段与价格（USD/枚）
	Stage        int     `json:"stage" gorm:"default:1"`
	CurrentPrice float64 `json:"current_price" gorm:"not null"`

	// 运行中的聚合数据
	TotalRaised       float64 `json:"total_raised" gorm:"default:0"`
	TokensAllocated   int64   `json:"tokens_allocated" gorm:"default:0"`
	TotalParticipants int64   `json:"total_participants" gorm:"default:0"`

	// 硬顶（仅展示，不作为购买拦截）
	HardCap float64 `json:"hard_cap"`

	// 预售开关
	IsActive bool `json:"is_active" gorm:"default:true"`
}

// TableName 自定义表名
func (PresaleModel) TableName() string {
	return "presale"
}
