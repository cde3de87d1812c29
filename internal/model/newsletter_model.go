package model

import (
	"time"
)

// NewsletterSubscriberModel 邮件订阅记录
type NewsletterSubscriberModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	Email string `json:"email" gorm:"uniqueIndex;not null"`
}

// TableName 自定义表名
func (NewsletterSubscriberModel) TableName() string {
	return "newsletter_subscribers"
}
