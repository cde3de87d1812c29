package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/memechain/presale-service/internal/logic"
	"github.com/memechain/presale-service/internal/price"
	"gorm.io/gorm"
)

// StatsHandler 公共统计处理器
type StatsHandler struct {
	presaleLogic    *logic.PresaleLogic
	tokenomicsLogic *logic.TokenomicsLogic
	countdownLogic  *logic.CountdownLogic
	priceService    *price.Service
}

// NewStatsHandler 创建公共统计处理器
func NewStatsHandler(db *gorm.DB, priceService *price.Service) *StatsHandler {
	return &StatsHandler{
		presaleLogic:    logic.NewPresaleLogic(db),
		tokenomicsLogic: logic.NewTokenomicsLogic(db),
		countdownLogic:  logic.NewCountdownLogic(db),
		priceService:    priceService,
	}
}

// GetLiveStats 获取实时统计
// 前端首页轮询，保持与原接口一致的扁平结构
func (h *StatsHandler) GetLiveStats(c *gin.Context) {
	stats, err := h.presaleLogic.GetLiveStats()
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetTokenomics 获取代币经济配置
func (h *StatsHandler) GetTokenomics(c *gin.Context) {
	data, err := h.tokenomicsLogic.GetTokenomics()
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, data)
}

// GetCountdown 获取发售倒计时配置
func (h *StatsHandler) GetCountdown(c *gin.Context) {
	countdown, err := h.countdownLogic.GetCountdown()
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"target_date": countdown.TargetDate,
		"title":       countdown.Title,
		"description": countdown.Description,
		"is_active":   countdown.IsActive,
	})
}

// GetPrices 获取展示用行情报价
// 仅供前端展示，购买换算以预售配置价格为准
func (h *StatsHandler) GetPrices(c *gin.Context) {
	SuccessResponse(c, http.StatusOK, h.priceService.GetPrices())
}
