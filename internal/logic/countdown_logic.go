package logic

import (
	"errors"

	"github.com/memechain/presale-service/internal/model"
	"gorm.io/gorm"
)

// CountdownLogic 发售倒计时业务逻辑
type CountdownLogic struct {
	db *gorm.DB
}

// NewCountdownLogic 创建发售倒计时业务逻辑
func NewCountdownLogic(db *gorm.DB) *CountdownLogic {
	return &CountdownLogic{db: db}
}

// GetCountdown 获取倒计时配置
func (c *CountdownLogic) GetCountdown() (*model.CountdownModel, error) {
	var countdown model.CountdownModel
	if err := c.db.First(&countdown).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPresaleNotConfigured
		}
		return nil, storeError(err)
	}
	return &countdown, nil
}
