package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/memechain/presale-service/internal/logic"
	"gorm.io/gorm"
)

// NewsletterHandler 邮件订阅处理器
type NewsletterHandler struct {
	newsletterLogic *logic.NewsletterLogic
}

// NewNewsletterHandler 创建邮件订阅处理器
func NewNewsletterHandler(db *gorm.DB) *NewsletterHandler {
	return &NewsletterHandler{
		newsletterLogic: logic.NewNewsletterLogic(db),
	}
}

// Subscribe 订阅邮件
func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	if err := h.newsletterLogic.Subscribe(req.Email); err != nil {
		LogicErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, gin.H{"subscribed": true})
}
