package handler

import (
	"crypto/subtle"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/memechain/presale-service/internal/config"
	"github.com/memechain/presale-service/internal/logic"
	"gorm.io/gorm"
)

// AdminHandler 管理后台处理器
type AdminHandler struct {
	adminLogic   *logic.AdminLogic
	presaleLogic *logic.PresaleLogic
	cfg          config.AdminConfig
}

// NewAdminHandler 创建管理后台处理器
func NewAdminHandler(db *gorm.DB, cfg config.AdminConfig) *AdminHandler {
	return &AdminHandler{
		adminLogic:   logic.NewAdminLogic(db),
		presaleLogic: logic.NewPresaleLogic(db),
		cfg:          cfg,
	}
}

// Login 管理端登录
// 凭证与令牌来自配置，用户体系不在本服务范围内
func (h *AdminHandler) Login(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	emailOK := subtle.ConstantTimeCompare([]byte(req.Email), []byte(h.cfg.Email)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.cfg.Password)) == 1
	if h.cfg.Password == "" || !emailOK || !passOK {
		ErrorResponse(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	SuccessResponse(c, http.StatusOK, gin.H{"token": h.cfg.Token})
}

// GetDashboardStats 获取仪表盘统计
func (h *AdminHandler) GetDashboardStats(c *gin.Context) {
	stats, err := h.adminLogic.GetDashboardStats()
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, stats)
}

// GetParticipants 分页获取参与者列表
func (h *AdminHandler) GetParticipants(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	// 调用logic层获取参与者列表
	users, total, err := h.adminLogic.GetParticipants(page, pageSize)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    users,
		"pagination": Pagination{
			Page:      page,
			PageSize:  pageSize,
			Total:     total,
			TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
		},
	})
}

// GetTransactions 分页获取交易流水
func (h *AdminHandler) GetTransactions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	// 调用logic层获取交易流水
	transactions, total, err := h.adminLogic.GetTransactions(page, pageSize)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    transactions,
		"pagination": Pagination{
			Page:      page,
			PageSize:  pageSize,
			Total:     total,
			TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
		},
	})
}

// UpdatePrice 更新预售价格
func (h *AdminHandler) UpdatePrice(c *gin.Context) {
	var req UpdatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	presale, err := h.presaleLogic.UpdatePrice(req.Stage, req.Price)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, presale)
}

// UpdateStage 切换预售阶段
func (h *AdminHandler) UpdateStage(c *gin.Context) {
	var req UpdateStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	presale, err := h.presaleLogic.UpdateStage(req.Stage)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, presale)
}

// ToggleStatus 切换预售开关
func (h *AdminHandler) ToggleStatus(c *gin.Context) {
	var req ToggleStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsActive == nil {
		ErrorResponse(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	presale, err := h.presaleLogic.ToggleStatus(*req.IsActive)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, presale)
}

// GetAnalytics 按时间段获取分析概览
func (h *AdminHandler) GetAnalytics(c *gin.Context) {
	var startDate, endDate *time.Time
	if s := c.Query("startDate"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			ErrorResponse(c, http.StatusBadRequest, "invalid startDate")
			return
		}
		startDate = &t
	}
	if s := c.Query("endDate"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			ErrorResponse(c, http.StatusBadRequest, "invalid endDate")
			return
		}
		// 含当天
		t = t.Add(24*time.Hour - time.Nanosecond)
		endDate = &t
	}

	overview, err := h.adminLogic.GetAnalyticsOverview(startDate, endDate)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, overview)
}
