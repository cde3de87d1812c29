package logic

import (
	"errors"
	"net/mail"
	"strings"

	"github.com/memechain/presale-service/internal/model"
	"gorm.io/gorm"
)

// NewsletterLogic 邮件订阅业务逻辑
type NewsletterLogic struct {
	db *gorm.DB
}

// NewNewsletterLogic 创建邮件订阅业务逻辑
func NewNewsletterLogic(db *gorm.DB) *NewsletterLogic {
	return &NewsletterLogic{db: db}
}

// ErrInvalidEmail 邮箱格式非法
var ErrInvalidEmail = errors.New("invalid email address")

// Subscribe 订阅邮件
// 重复订阅不报错，唯一索引冲突视为已订阅
func (n *NewsletterLogic) Subscribe(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrInvalidEmail
	}

	subscriber := model.NewsletterSubscriberModel{Email: email}
	if err := n.db.Create(&subscriber).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return storeError(err)
	}
	return nil
}
