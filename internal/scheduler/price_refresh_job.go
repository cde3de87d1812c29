package scheduler

import (
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/memechain/presale-service/internal/config"
	"github.com/memechain/presale-service/internal/logger"
	"github.com/memechain/presale-service/internal/price"
)

// PriceRefreshJob 行情刷新任务
// 周期性预热行情缓存，让 /prices 始终返回热数据
type PriceRefreshJob struct {
	priceService *price.Service
	config       *config.Config
}

// NewPriceRefreshJob 创建行情刷新任务
func NewPriceRefreshJob(priceService *price.Service, cfg *config.Config) *PriceRefreshJob {
	return &PriceRefreshJob{
		priceService: priceService,
		config:       cfg,
	}
}

// GetName 获取任务名称
func (j *PriceRefreshJob) GetName() string {
	return "price_refresher"
}

// GetSchedule 获取调度配置
func (j *PriceRefreshJob) GetSchedule() gocron.JobDefinition {
	interval := j.config.Price.RefreshInterval
	if interval <= 0 {
		interval = 60
	}
	return gocron.DurationJob(time.Duration(interval) * time.Second)
}

// Execute 执行任务
func (j *PriceRefreshJob) Execute() {
	if err := j.priceService.Refresh(); err != nil {
		logger.Warn("Price refresh job failed: %v", err)
		return
	}
	logger.Debug("Price cache refreshed")
}
