package models

import "time"

// RecurringExpense 周期消费模板，仅做记录展示，不自动生成消费记录；
// 停用时软删除（is_active=false），不物理删除
type RecurringExpense struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	OwnerID     string    `json:"owner_id" gorm:"size:50;index;not null"`
	Description string    `json:"description" gorm:"size:255;not null"`
	Amount      float64   `json:"amount" gorm:"type:decimal(10,2);not null"`
	Category    string    `json:"category" gorm:"size:20;not null"`
	DayOfMonth  int       `json:"day_of_month" gorm:"default:1"`
	IsActive    bool      `json:"is_active" gorm:"default:true;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName 设置表名
func (RecurringExpense) TableName() string {
	return "recurring_expenses"
}
