package model

import (
	"time"
)

// CountdownModel 发售倒计时配置（全局单行）
type CountdownModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	TargetDate  time.Time `json:"target_date" gorm:"not null"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
}

// TableName 自定义表名
func (CountdownModel) TableName() string {
	return "countdown"
}
