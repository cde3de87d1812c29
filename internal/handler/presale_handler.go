package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/memechain/presale-service/internal/logic"
	"gorm.io/gorm"
)

// PresaleHandler 预售处理器
type PresaleHandler struct {
	purchaseLogic *logic.PurchaseLogic
	userLogic     *logic.UserLogic
	presaleLogic  *logic.PresaleLogic
}

// NewPresaleHandler 创建预售处理器
func NewPresaleHandler(db *gorm.DB) *PresaleHandler {
	return &PresaleHandler{
		purchaseLogic: logic.NewPurchaseLogic(db),
		userLogic:     logic.NewUserLogic(db),
		presaleLogic:  logic.NewPresaleLogic(db),
	}
}

// ConnectWallet 钱包连接
func (h *PresaleHandler) ConnectWallet(c *gin.Context) {
	var req ConnectWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	// 调用logic层创建或读取用户
	data, err := h.userLogic.ConnectWallet(req.WalletAddress, req.Chain, req.Annotations)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, data)
}

// SubmitPurchase 提交购买
func (h *PresaleHandler) SubmitPurchase(c *gin.Context) {
	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	// 调用logic层执行购买
	result, err := h.purchaseLogic.SubmitPurchase(&logic.PurchaseRequest{
		WalletAddress: req.WalletAddress,
		Amount:        req.Amount,
		Chain:         req.Chain,
		TxHash:        req.TxHash,
	})
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, result)
}

// GetUserData 获取用户数据
func (h *PresaleHandler) GetUserData(c *gin.Context) {
	address := c.Param("address")
	if address == "" {
		ErrorResponse(c, http.StatusBadRequest, "Wallet address required")
		return
	}

	// 调用logic层获取用户数据
	data, err := h.userLogic.GetUserData(address)
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, data)
}

// GetStatus 获取预售状态
func (h *PresaleHandler) GetStatus(c *gin.Context) {
	presale, err := h.presaleLogic.GetPresale()
	if err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, PresaleStatusResponse{
		CurrentPrice:      presale.CurrentPrice,
		Stage:             presale.Stage,
		TotalRaised:       presale.TotalRaised,
		TokensAllocated:   presale.TokensAllocated,
		TotalParticipants: presale.TotalParticipants,
		HardCap:           presale.HardCap,
		IsActive:          presale.IsActive,
	})
}
