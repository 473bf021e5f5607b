package models

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// User 用户模型，主键为 owner_id（手机号或聊天平台用户ID），首次交互时自动创建
type User struct {
	OwnerID         string     `json:"owner_id" gorm:"primaryKey;size:50"`
	DisplayName     string     `json:"display_name" gorm:"size:100"`
	PinHash         *string    `json:"-" gorm:"size:64"`
	MonthlyBudget   float64    `json:"monthly_budget" gorm:"type:decimal(10,2);default:0"`
	CurrencySymbol  string     `json:"currency_symbol" gorm:"size:8;default:$"`
	BudgetAlertedAt *time.Time `json:"-"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// TableName 设置表名
func (User) TableName() string {
	return "users"
}

// HasPin 是否已设置 PIN
func (u *User) HasPin() bool {
	return u.PinHash != nil && *u.PinHash != ""
}

// CheckPin 校验 PIN，哈希与哈希比较，不接触明文存储
func (u *User) CheckPin(pin string) bool {
	return u.HasPin() && *u.PinHash == HashPin(pin)
}

// Currency 展示货币符号，空值回退为 $
func (u *User) Currency() string {
	if u.CurrencySymbol == "" {
		return "$"
	}
	return u.CurrencySymbol
}

// HashPin PIN 单向哈希：SHA-256 十六进制截取前16位，仅存储哈希值
func HashPin(pin string) string {
	sum := sha256.Sum256([]byte(pin))
	return hex.EncodeToString(sum[:])[:16]
}
