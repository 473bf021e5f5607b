package models

import "time"

// AccessToken 仪表盘访问令牌，随机不透明字符串，过期即失效、只重发不续期
type AccessToken struct {
	Token     string    `json:"token" gorm:"primaryKey;size:100"`
	OwnerID   string    `json:"owner_id" gorm:"size:50;index;not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName 设置表名
func (AccessToken) TableName() string {
	return "dashboard_tokens"
}

// Valid 令牌是否有效：当前时间早于过期时间
func (t *AccessToken) Valid(now time.Time) bool {
	return now.Before(t.ExpiresAt)
}
