package models

import (
	"strings"
	"time"
)

// Expense 消费记录模型，按 owner_id（手机号或聊天平台用户ID）隔离数据
type Expense struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	OwnerID     string    `json:"owner_id" gorm:"size:50;index;not null"`
	Description string    `json:"description" gorm:"size:255;not null"`
	Amount      float64   `json:"amount" gorm:"type:decimal(10,2);not null"`
	Category    string    `json:"category" gorm:"size:20;not null"`
	ExpenseTime time.Time `json:"expense_time" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName 设置表名
func (Expense) TableName() string {
	return "expenses"
}

// Category 消费类别常量（固定8类枚举）
const (
	CategoryFood          = "food"
	CategoryTransport     = "transport"
	CategoryShopping      = "shopping"
	CategoryBills         = "bills"
	CategoryEntertainment = "entertainment"
	CategoryHealth        = "health"
	CategorySubscription  = "subscription"
	CategoryOther         = "other"
)

// GetCategories 获取所有消费类别
func GetCategories() []string {
	return []string{
		CategoryFood,
		CategoryTransport,
		CategoryShopping,
		CategoryBills,
		CategoryEntertainment,
		CategoryHealth,
		CategorySubscription,
		CategoryOther,
	}
}

// categoryEmojis 类别对应的展示图标
var categoryEmojis = map[string]string{
	CategoryFood:          "🍔",
	CategoryTransport:     "🚗",
	CategoryShopping:      "🛒",
	CategoryBills:         "💡",
	CategoryEntertainment: "🎬",
	CategoryHealth:        "💊",
	CategorySubscription:  "📺",
	CategoryOther:         "📦",
}

// CategoryEmoji 获取类别图标，未知类别返回默认图标
func CategoryEmoji(category string) string {
	if emoji, ok := categoryEmojis[category]; ok {
		return emoji
	}
	return "📦"
}

// IsValidCategory 判断是否为合法类别
func IsValidCategory(category string) bool {
	_, ok := categoryEmojis[strings.ToLower(category)]
	return ok
}

// ValidateCategory 校验类别，支持前缀匹配的宽松写法（如 ent -> entertainment），
// 无法匹配时回退到 other，永不拒绝
func ValidateCategory(category string) string {
	cat := strings.ToLower(strings.TrimSpace(category))
	if cat == "" {
		return CategoryOther
	}
	if IsValidCategory(cat) {
		return cat
	}
	// 前缀匹配（双向），保留原实现的宽松行为
	for _, c := range GetCategories() {
		if strings.HasPrefix(c, cat) || strings.HasPrefix(cat, c) {
			return c
		}
	}
	return CategoryOther
}
