package scheduler

import (
	"github.com/go-co-op/gocron/v2"
	"github.com/memechain/presale-service/internal/config"
	"github.com/memechain/presale-service/internal/logger"
	"github.com/memechain/presale-service/internal/price"
)

// Manager 任务管理器
type Manager struct {
	scheduler    gocron.Scheduler
	priceService *price.Service
	config       *config.Config
}

// NewManager 创建新的任务管理器
func NewManager(priceService *price.Service, cfg *config.Config) *Manager {
	s, err := gocron.NewScheduler()
	if err != nil {
		logger.Fatal("Failed to create scheduler: %v", err)
	}

	return &Manager{
		scheduler:    s,
		priceService: priceService,
		config:       cfg,
	}
}

// Start 启动任务管理器
func Start(priceService *price.Service, cfg *config.Config) *Manager {
	manager := NewManager(priceService, cfg)

	// 注册所有任务
	manager.RegisterJobs()

	// 启动调度器
	manager.scheduler.Start()

	logger.Info("Task manager started successfully")
	return manager
}

// RegisterJobs 注册所有任务
func (m *Manager) RegisterJobs() {
	// 注册行情刷新任务
	m.RegisterPriceRefreshJob()
}

// RegisterPriceRefreshJob 注册行情刷新任务
func (m *Manager) RegisterPriceRefreshJob() {
	job := NewPriceRefreshJob(m.priceService, m.config)

	_, err := m.scheduler.NewJob(
		job.GetSchedule(),
		gocron.NewTask(job.Execute),
		gocron.WithName(job.GetName()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		logger.Error("Failed to register job %s: %v", job.GetName(), err)
	}
}

// Stop 停止任务管理器
func (m *Manager) Stop() {
	if err := m.scheduler.Shutdown(); err != nil {
		logger.Error("Failed to shutdown scheduler: %v", err)
	}
}
