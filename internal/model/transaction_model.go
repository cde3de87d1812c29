package model

import (
	"time"
)

// TxStatus 交易状态
type TxStatus string

const (
	TxStatusConfirmed TxStatus = "confirmed" // 已确认
	TxStatusFailed    TxStatus = "failed"    // 失败
)

// TransactionModel 购买流水记录
// tx_hash 唯一索引是幂等边界，记录创建后不可变
type TransactionModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	WalletAddress   string   `json:"wallet_address" gorm:"index;not null"`
	Amount          float64  `json:"amount" gorm:"not null"`
	Chain           string   `json:"chain" gorm:"not null"`
	MemeReceived    int64    `json:"meme_received" gorm:"not null"`
	PriceAtPurchase float64  `json:"price_at_purchase" gorm:"not null"`
	TxHash          string   `json:"tx_hash" gorm:"uniqueIndex;not null"`
	Status          TxStatus `json:"status" gorm:"default:'confirmed'"`

	// 本次落账后的余额快照，重复提交按此回放
	BalanceAfter     int64   `json:"balance_after" gorm:"not null"`
	ContributedAfter float64 `json:"contributed_after" gorm:"not null"`
}

// TableName 自定义表名
func (TransactionModel) TableName() string {
	return "transactions"
}
