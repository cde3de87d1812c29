package model

import (
	"time"
)

// UserModel 钱包用户记录
// 首次连接或首次购买时懒创建，余额只由购买逻辑更新
type UserModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 钱包信息（地址统一小写存储）
	WalletAddress string `json:"wallet_address" gorm:"uniqueIndex;not null"`
	Chain         string `json:"chain"`

	// 累计数据
	TotalContributed float64 `json:"total_contributed" gorm:"default:0"`
	MemeBalance      int64   `json:"meme_balance" gorm:"default:0"`

	// 是否已有确认购买
	Paid bool `json:"paid" gorm:"default:false"`

	// 附加信息（只保留白名单内的键）
	Metadata JSONMap `json:"metadata" gorm:"type:text"`

	// 贡献时间
	FirstContribution *time.Time `json:"first_contribution"`
	LastContribution  *time.Time `json:"last_contribution"`
}

// TableName 自定义表名
func (UserModel) TableName() string {
	return "users"
}
